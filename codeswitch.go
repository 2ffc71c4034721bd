// Package codeswitch tags every token of a mixed-language text with the
// language it belongs to and whether it is a named entity.
//
// A Tagger bundles the trained character models, the transition matrix
// estimated from a gold standard and the named-entity channels:
//
//	cfg, _, _, err := config.Load("")
//	tagger, err := codeswitch.NewTagger(cfg)
//	tokens, err := tagger.AnnotateText(ctx, "I went to la tienda")
package codeswitch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ieee0824/codeswitch-go/classify"
	"github.com/ieee0824/codeswitch-go/evaluate"
	"github.com/ieee0824/codeswitch-go/gold"
	"github.com/ieee0824/codeswitch-go/internal/config"
	"github.com/ieee0824/codeswitch-go/internal/logging"
	"github.com/ieee0824/codeswitch-go/language"
	"github.com/ieee0824/codeswitch-go/ner"
	"github.com/ieee0824/codeswitch-go/tokenize"
	"github.com/ieee0824/codeswitch-go/transition"
)

// Tagger is the top-level code-switching annotator.
type Tagger struct {
	Bank     *language.Bank
	Matrix   *transition.Matrix
	ClassCfg classify.Config
	EvalCfg  evaluate.Config
	KeepCase bool
	// Gold is the alias-normalized gold standard the matrix was estimated
	// from. It is nil for taggers built from pre-built models.
	Gold *gold.Document

	channels    []ner.Channel
	channelsSet bool
	logger      *slog.Logger
	classifier  *classify.Classifier
}

// Option configures a Tagger.
type Option func(*Tagger)

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tagger) {
		t.logger = logger
	}
}

// WithChannels replaces the named-entity channels built from configuration.
func WithChannels(channels ...ner.Channel) Option {
	return func(t *Tagger) {
		t.channels = channels
		t.channelsSet = true
	}
}

// WithClassifierConfig sets the tag vocabulary and NER batching parameters.
func WithClassifierConfig(cfg classify.Config) Option {
	return func(t *Tagger) {
		t.ClassCfg = cfg
	}
}

// WithKeepCase controls whether AnnotateText keeps the original case of
// tokens. Scoring is case-insensitive either way.
func WithKeepCase(keep bool) Option {
	return func(t *Tagger) {
		t.KeepCase = keep
	}
}

// NewTagger loads the language models (training them from the configured
// corpora when no saved model exists), reads the gold standard and builds
// the transition matrix.
func NewTagger(cfg *config.Config, opts ...Option) (*Tagger, error) {
	t := &Tagger{
		ClassCfg: ClassifierConfig(cfg),
		EvalCfg:  EvaluationConfig(cfg),
		KeepCase: cfg.Output.KeepCase,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.NewComponentLogger(t.logger, "codeswitch")

	bank, err := LoadOrTrainBank(cfg, t.logger)
	if err != nil {
		return nil, err
	}
	t.Bank = bank

	if cfg.Gold.Path == "" {
		return nil, errors.New("gold.path must be set to estimate transition probabilities")
	}
	doc, err := ReadGold(cfg, t.logger)
	if err != nil {
		return nil, err
	}
	t.Gold = doc
	t.Matrix, err = BuildMatrix(cfg, doc)
	if err != nil {
		return nil, err
	}
	t.logger.Info("transition matrix ready",
		slog.String("gold", cfg.Gold.Path),
		slog.Int("pairs", t.Matrix.Pairs()),
		slog.String("normalization", t.Matrix.Normalization().String()),
	)

	if !t.channelsSet {
		t.channels, err = BuildChannels(cfg)
		if err != nil {
			return nil, err
		}
	}
	if err := t.init(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTaggerFromModels creates a Tagger from pre-built models. The default
// classifier configuration is used unless overridden.
func NewTaggerFromModels(bank *language.Bank, matrix *transition.Matrix, opts ...Option) (*Tagger, error) {
	if bank == nil || matrix == nil {
		return nil, errors.New("codeswitch: bank and matrix are required")
	}
	t := &Tagger{
		Bank:     bank,
		Matrix:   matrix,
		ClassCfg: classify.DefaultConfig(),
		KeepCase: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.NewComponentLogger(t.logger, "codeswitch")
	if t.EvalCfg.Primary == ([2]string{}) {
		t.EvalCfg = evaluate.Config{
			Primary:        t.ClassCfg.Primary,
			NamedEntityTag: "NamedEnt",
			Outside:        t.ClassCfg.Outside,
		}
	}
	if err := t.init(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tagger) init() error {
	c, err := classify.New(t.ClassCfg, t.Bank, t.Matrix, t.channels, t.logger)
	if err != nil {
		return fmt.Errorf("create classifier: %w", err)
	}
	t.classifier = c
	return nil
}

// Channels returns the named-entity channels in use.
func (t *Tagger) Channels() []ner.Channel { return t.channels }

// AnnotateText tokenizes text and classifies the tokens.
func (t *Tagger) AnnotateText(ctx context.Context, text string) ([]classify.Token, error) {
	return t.AnnotateTokens(ctx, tokenize.Split(text, t.KeepCase))
}

// AnnotateTokens classifies an already tokenized sequence.
func (t *Tagger) AnnotateTokens(ctx context.Context, tokens []string) ([]classify.Token, error) {
	return t.classifier.Classify(ctx, tokens)
}

// Evaluate classifies the gold tokens and scores the result against the
// gold tags, which must already be alias-normalized.
func (t *Tagger) Evaluate(ctx context.Context, rows []gold.Row) (*evaluate.Report, error) {
	words := make([]string, len(rows))
	for i, r := range rows {
		words[i] = r.Token
	}
	tokens, err := t.AnnotateTokens(ctx, words)
	if err != nil {
		return nil, err
	}
	rep, err := evaluate.Evaluate(rows, tokens, t.EvalCfg)
	if err != nil {
		return nil, err
	}
	t.logger.Info("evaluation complete",
		slog.Int("tokens", len(rows)),
		slog.String("language_accuracy", rep.Language.String()),
		slog.String("ne_accuracy", rep.NamedEntity.String()),
	)
	return rep, nil
}

// ClassifierConfig derives the classifier settings from cfg.
func ClassifierConfig(cfg *config.Config) classify.Config {
	cc := classify.DefaultConfig()
	if len(cfg.Languages.Primary) == 2 {
		cc.Primary = [2]string{cfg.Languages.Primary[0], cfg.Languages.Primary[1]}
	}
	cc.Outside = cfg.NER.OutsideTag
	cc.Separator = cfg.NER.Separator
	cc.ChunkSize = cfg.NER.ChunkSize
	return cc
}

// EvaluationConfig derives the evaluation settings from cfg.
func EvaluationConfig(cfg *config.Config) evaluate.Config {
	cc := ClassifierConfig(cfg)
	return evaluate.Config{
		Primary:        cc.Primary,
		NamedEntityTag: cfg.Gold.NamedEntityTag,
		Outside:        cc.Outside,
	}
}
