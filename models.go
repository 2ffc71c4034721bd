package codeswitch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ieee0824/codeswitch-go/corpus"
	"github.com/ieee0824/codeswitch-go/gold"
	"github.com/ieee0824/codeswitch-go/internal/config"
	"github.com/ieee0824/codeswitch-go/internal/fileutil"
	"github.com/ieee0824/codeswitch-go/internal/logging"
	"github.com/ieee0824/codeswitch-go/language"
	"github.com/ieee0824/codeswitch-go/ner"
	"github.com/ieee0824/codeswitch-go/transition"
)

// TrainModels builds one character model per primary tag from the
// configured training corpora.
func TrainModels(cfg *config.Config, logger *slog.Logger) ([]*language.CharModel, error) {
	if err := cfg.ValidateTraining(); err != nil {
		return nil, err
	}
	logger = logging.NewComponentLogger(logger, "train")
	models := make([]*language.CharModel, 0, len(cfg.Languages.Primary))
	for _, tag := range cfg.Languages.Primary {
		path := cfg.Languages.Training[tag]
		words, err := corpus.Load(path)
		if err != nil {
			return nil, err
		}
		m, err := language.Build(tag, words, cfg.Model.Order, cfg.Model.AlphabetSize)
		if err != nil {
			return nil, fmt.Errorf("train %s from %s: %w", tag, path, err)
		}
		logger.Info("trained language model",
			slog.String("language", tag),
			slog.String("corpus", path),
			slog.Int("tokens", len(words)),
			slog.Int("contexts", m.Contexts()),
		)
		models = append(models, m)
	}
	return models, nil
}

// SaveModels writes each model to its configured path.
func SaveModels(cfg *config.Config, models []*language.CharModel) error {
	for _, m := range models {
		path := cfg.ModelPath(m.Language())
		err := fileutil.WriteAtomic(path, func(w io.Writer) error {
			return language.WriteModel(w, m)
		})
		if err != nil {
			return fmt.Errorf("save %s model: %w", m.Language(), err)
		}
	}
	return nil
}

// LoadModels reads the saved model of every primary tag. The returned error
// wraps fs.ErrNotExist when any model file is missing.
func LoadModels(cfg *config.Config) ([]*language.CharModel, error) {
	models := make([]*language.CharModel, 0, len(cfg.Languages.Primary))
	for _, tag := range cfg.Languages.Primary {
		m, err := loadModel(cfg.ModelPath(tag))
		if err != nil {
			return nil, err
		}
		if m.Language() != tag {
			return nil, fmt.Errorf("%w: %s holds language %q, want %q",
				language.ErrInvalidModel, cfg.ModelPath(tag), m.Language(), tag)
		}
		if m.Order() != cfg.Model.Order || m.AlphabetSize() != cfg.Model.AlphabetSize {
			return nil, fmt.Errorf("%w: %s was trained with order %d alphabet %d, config has order %d alphabet %d; retrain with cstag train",
				language.ErrInvalidModel, tag, m.Order(), m.AlphabetSize(), cfg.Model.Order, cfg.Model.AlphabetSize)
		}
		models = append(models, m)
	}
	return models, nil
}

func loadModel(path string) (*language.CharModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	m, err := language.LoadModel(f)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// LoadOrTrainBank loads the saved models, or trains them from the corpora
// when any model file is missing.
func LoadOrTrainBank(cfg *config.Config, logger *slog.Logger) (*language.Bank, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	models, err := LoadModels(cfg)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("no saved models, training from corpora", slog.String("model_dir", cfg.Model.Dir))
		models, err = TrainModels(cfg, logger)
	}
	if err != nil {
		return nil, err
	}
	return language.NewBank(models...)
}

// ReadGold reads the configured gold file and applies the alias table.
func ReadGold(cfg *config.Config, logger *slog.Logger) (*gold.Document, error) {
	doc, err := gold.ReadFile(cfg.Gold.Path, cfg.Gold.Delimiter, logger)
	if err != nil {
		return nil, err
	}
	doc.Normalize(cfg.AliasMap())
	return doc, nil
}

// BuildMatrix estimates the transition matrix from the primary-language
// rows of doc.
func BuildMatrix(cfg *config.Config, doc *gold.Document) (*transition.Matrix, error) {
	norm, err := transition.ParseNormalization(cfg.Transition.Normalization)
	if err != nil {
		return nil, err
	}
	m, err := transition.Build(doc.TransitionTags(cfg.Languages.Primary), cfg.Languages.Primary,
		transition.WithNormalization(norm))
	if err != nil {
		return nil, fmt.Errorf("build transition matrix from %s: %w", cfg.Gold.Path, err)
	}
	return m, nil
}

// BuildChannels creates one named-entity channel per configured language,
// in primary tag order.
func BuildChannels(cfg *config.Config) ([]ner.Channel, error) {
	var out []ner.Channel
	for _, tag := range cfg.Languages.Primary {
		ch, ok := cfg.NER.Channels[tag]
		if !ok {
			continue
		}
		var p ner.Provider
		switch {
		case ch.Gazetteer != "":
			g, err := ner.LoadGazetteerFile(ch.Gazetteer)
			if err != nil {
				return nil, fmt.Errorf("ner channel %s: %w", tag, err)
			}
			p = g
		default:
			c, err := ner.NewCommand(ch.Command)
			if err != nil {
				return nil, fmt.Errorf("ner channel %s: %w", tag, err)
			}
			p = c
		}
		out = append(out, ner.Channel{Language: tag, Provider: p})
	}
	return out, nil
}
