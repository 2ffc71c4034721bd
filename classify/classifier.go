package classify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ieee0824/codeswitch-go/decoder"
	"github.com/ieee0824/codeswitch-go/internal/logging"
	"github.com/ieee0824/codeswitch-go/ner"
	"github.com/ieee0824/codeswitch-go/tokenize"
	"github.com/ieee0824/codeswitch-go/transition"
)

// Scorer scores a word under a language tag. *language.Bank satisfies it.
type Scorer = decoder.Emitter

// Config holds the tag vocabulary and NER batching parameters.
type Config struct {
	Primary   [2]string
	PunctTag  string
	NumTag    string
	Outside   string
	Separator string
	ChunkSize int
}

// DefaultConfig returns the Eng/Spn vocabulary used by the bundled corpora.
func DefaultConfig() Config {
	return Config{
		Primary:   [2]string{"Eng", "Spn"},
		PunctTag:  "Punct",
		NumTag:    "Num",
		Outside:   ner.Outside,
		Separator: "/",
		ChunkSize: 1000,
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Primary[0] == "" || c.Primary[1] == "" {
		return errors.New("classify: both primary tags must be set")
	}
	if c.Primary[0] == c.Primary[1] {
		return fmt.Errorf("classify: primary tags must be distinct, got %q twice", c.Primary[0])
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("classify: chunk size must be at least 1, got %d", c.ChunkSize)
	}
	return nil
}

// IsPrimary reports whether tag is one of the two primary language tags.
func (c Config) IsPrimary(tag string) bool {
	return tag == c.Primary[0] || tag == c.Primary[1]
}

// Classifier annotates token sequences. It is safe for concurrent use when
// its scorer, matrix and NER providers are.
type Classifier struct {
	cfg      Config
	scorer   Scorer
	tm       *transition.Matrix
	channels []ner.Channel
	logger   *slog.Logger
}

// New creates a classifier. Both primary tags must be states of tm.
func New(cfg Config, scorer Scorer, tm *transition.Matrix, channels []ner.Channel, logger *slog.Logger) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil {
		return nil, errors.New("classify: scorer is nil")
	}
	if tm == nil {
		return nil, errors.New("classify: transition matrix is nil")
	}
	for _, tag := range cfg.Primary {
		if _, ok := tm.Index(tag); !ok {
			return nil, fmt.Errorf("classify: primary tag %q is not in the transition matrix", tag)
		}
	}
	if cfg.Outside == "" {
		cfg.Outside = ner.Outside
	}
	return &Classifier{
		cfg:      cfg,
		scorer:   scorer,
		tm:       tm,
		channels: channels,
		logger:   logging.NewComponentLogger(logger, "classify"),
	}, nil
}

// Config returns the classifier's configuration.
func (c *Classifier) Config() Config { return c.cfg }

// Classify decodes words and returns one Token per word, in order.
func (c *Classifier) Classify(ctx context.Context, words []string) ([]Token, error) {
	lowered := make([]string, len(words))
	kinds := make([]tokenize.Kind, len(words))
	for i, w := range words {
		lowered[i] = tokenize.Lower(w)
		kinds[i] = tokenize.KindOf(w)
	}

	res, err := decoder.Decode(lowered, c.scorer, c.tm)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	channelTags := make([][]string, len(c.channels))
	for ci, ch := range c.channels {
		skip := func(i int) bool { return kinds[i] == tokenize.Punct }
		tags, failed := ner.TagChunks(ctx, ch.Provider, words, c.cfg.ChunkSize, skip,
			c.logger.With(slog.String("language", ch.Language)))
		if failed > 0 {
			c.logger.Warn("named-entity channel degraded",
				slog.String("language", ch.Language),
				slog.Int("failed_chunks", failed),
			)
		}
		channelTags[ci] = tags
	}

	tokens := make([]Token, len(words))
	prev := c.cfg.Primary[0]
	for k, w := range words {
		tok := Token{Text: w, Position: k, Kind: kinds[k]}
		switch kinds[k] {
		case tokenize.Punct:
			tok.Language = c.cfg.PunctTag
		case tokenize.Numeral:
			tok.Language = c.cfg.NumTag
		default:
			tok.Language = res.Tags[k]
		}

		tok.Channels = make([]string, len(c.channels))
		for ci := range c.channels {
			tag := channelTags[ci][k]
			if kinds[k] == tokenize.Punct || c.isOutside(tag) {
				tag = c.cfg.Outside
			}
			tok.Channels[ci] = tag
		}
		tok.NamedEntity = c.mergeEntity(tok.Channels)

		if c.cfg.IsPrimary(tok.Language) {
			d, err := c.diagnose(prev, tok.Language, lowered[k])
			if err != nil {
				return nil, fmt.Errorf("token %d (%q): %w", k, w, err)
			}
			tok.Diagnostics = d
			prev = tok.Language
		}
		tokens[k] = tok
	}

	c.logger.Debug("classified tokens",
		slog.Int("tokens", len(tokens)),
		slog.Float64("log_score", res.LogScore),
	)
	return tokens, nil
}

func (c *Classifier) diagnose(prev, lang, word string) (*Diagnostics, error) {
	var d Diagnostics
	for i, tag := range c.cfg.Primary {
		s, err := c.scorer.ScoreFor(tag, word)
		if err != nil {
			return nil, err
		}
		d.Emission[i] = s
	}
	d.Transition = c.tm.LogProb(prev, lang)
	if lang == c.cfg.Primary[0] {
		d.Combined = d.Transition + d.Emission[0]
	} else {
		d.Combined = d.Transition + d.Emission[1]
	}
	return &d, nil
}

func (c *Classifier) isOutside(tag string) bool {
	return tag == "" || tag == c.cfg.Outside || tag == ner.Outside
}

func (c *Classifier) mergeEntity(tags []string) string {
	for _, tag := range tags {
		if !c.isOutside(tag) {
			return strings.Join(tags, c.cfg.Separator)
		}
	}
	return c.cfg.Outside
}
