package codeswitch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ieee0824/codeswitch-go/classify"
	"github.com/ieee0824/codeswitch-go/evaluate"
	"github.com/ieee0824/codeswitch-go/internal/config"
	"github.com/ieee0824/codeswitch-go/language"
	"github.com/ieee0824/codeswitch-go/ner"
	"github.com/ieee0824/codeswitch-go/transition"
)

const (
	engCorpus = "The house is big and the dog is in the house there. The other house is near."
	spnCorpus = "La casa es grande y el perro esta en la casa alla. La otra casa esta cerca."
	goldData  = "1\tthe\tEng\n" +
		"2\thouse\tEng\n" +
		"3\t,\tPunct\n" +
		"4\tla\tSpn\n" +
		"5\tcasa\tNonStSpn\n" +
		"6\tMaria\tNamedEnt\n" +
		"7\ty\tSpn\n" +
		"8\tthe\tEng\n"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	cfg := config.Default()
	cfg.Model.Order = 3
	cfg.Model.Dir = filepath.Join(dir, "models")
	cfg.Languages.Training = map[string]string{
		"Eng": write("eng.txt", engCorpus),
		"Spn": write("spn.txt", spnCorpus),
	}
	cfg.Gold.Path = write("gold.tsv", goldData)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config invalid: %v", err)
	}
	return &cfg
}

func TestNewTagger_TrainsAndAnnotates(t *testing.T) {
	cfg := testConfig(t)
	tagger, err := NewTagger(cfg)
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}
	if got := tagger.Matrix.Pairs(); got != 5 {
		t.Errorf("transition pairs = %d, want 5", got)
	}
	if got := tagger.Matrix.Count("Spn", "Spn"); got != 2 {
		t.Errorf("Spn->Spn count = %d, want 2 (casa is an alias of Spn)", got)
	}

	tokens, err := tagger.AnnotateText(context.Background(), "The house , la casa 42")
	if err != nil {
		t.Fatalf("AnnotateText: %v", err)
	}
	var got []string
	for _, tok := range tokens {
		got = append(got, tok.Language)
	}
	if want := "Eng Eng Punct Spn Spn Num"; strings.Join(got, " ") != want {
		t.Errorf("languages = %v, want %s", got, want)
	}
	if tokens[0].Text != "The" {
		t.Errorf("keep_case: Text = %q, want The", tokens[0].Text)
	}
}

func TestSaveAndLoadModels(t *testing.T) {
	cfg := testConfig(t)
	models, err := TrainModels(cfg, nil)
	if err != nil {
		t.Fatalf("TrainModels: %v", err)
	}
	if err := SaveModels(cfg, models); err != nil {
		t.Fatalf("SaveModels: %v", err)
	}
	loaded, err := LoadModels(cfg)
	if err != nil {
		t.Fatalf("LoadModels: %v", err)
	}
	for i, m := range loaded {
		if m.Language() != models[i].Language() || m.Contexts() != models[i].Contexts() {
			t.Errorf("model %d mismatch after reload", i)
		}
		if a, b := m.WordLogProb("casa"), models[i].WordLogProb("casa"); a != b {
			t.Errorf("%s WordLogProb = %f after reload, want %f", m.Language(), a, b)
		}
	}

	// saved models are used even when the corpora disappear
	for _, p := range cfg.Languages.Training {
		os.Remove(p)
	}
	if _, err := LoadOrTrainBank(cfg, nil); err != nil {
		t.Fatalf("LoadOrTrainBank from saved models: %v", err)
	}

	cfg.Model.Order = 4
	if _, err := LoadModels(cfg); err == nil {
		t.Error("expected order mismatch error")
	}
}

func TestTagger_Evaluate(t *testing.T) {
	cfg := testConfig(t)
	always := ner.Func(func(_ context.Context, tokens []string) ([]ner.Pair, error) {
		out := make([]ner.Pair, len(tokens))
		for i, tok := range tokens {
			out[i] = ner.Pair{Token: tok, Tag: "PER"}
		}
		return out, nil
	})
	tagger, err := NewTagger(cfg, WithChannels(ner.Channel{Language: "Eng", Provider: always}))
	if err != nil {
		t.Fatalf("NewTagger: %v", err)
	}
	if tagger.Gold == nil {
		t.Fatal("tagger did not keep the gold document")
	}
	doc, err := ReadGold(cfg, nil)
	if err != nil {
		t.Fatalf("ReadGold: %v", err)
	}
	if len(tagger.Gold.Rows) != len(doc.Rows) {
		t.Fatalf("kept gold has %d rows, want %d", len(tagger.Gold.Rows), len(doc.Rows))
	}
	rep, err := tagger.Evaluate(context.Background(), tagger.Gold.Rows)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if rep.Language.Den != 6 {
		t.Errorf("language total = %d, want 6", rep.Language.Den)
	}
	if rep.NamedEntity != (evaluate.Ratio{Num: 1, Den: 1}) {
		t.Errorf("NE = %+v, want 1/1", rep.NamedEntity)
	}
	if rep.Entries[2].Verdict != evaluate.NotApplicable {
		t.Errorf("punctuation verdict = %v", rep.Entries[2].Verdict)
	}
	if rep.Entries[4].Gold != "Spn" {
		t.Errorf("gold tag = %q, want alias-normalized Spn", rep.Entries[4].Gold)
	}
}

func TestNewTaggerFromModels(t *testing.T) {
	eng, err := language.Build("Eng", []string{"the", "house"}, 2, 26)
	if err != nil {
		t.Fatal(err)
	}
	spn, err := language.Build("Spn", []string{"la", "casa"}, 2, 26)
	if err != nil {
		t.Fatal(err)
	}
	bank, err := language.NewBank(eng, spn)
	if err != nil {
		t.Fatal(err)
	}
	tm, err := transition.Build([]string{"Eng", "Spn", "Eng", "Eng", "Spn", "Spn"}, []string{"Eng", "Spn"})
	if err != nil {
		t.Fatal(err)
	}
	tagger, err := NewTaggerFromModels(bank, tm)
	if err != nil {
		t.Fatalf("NewTaggerFromModels: %v", err)
	}
	tokens, err := tagger.AnnotateTokens(context.Background(), []string{"house", "casa"})
	if err != nil {
		t.Fatalf("AnnotateTokens: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Diagnostics == nil {
		t.Fatalf("tokens = %+v", tokens)
	}

	cc := classify.DefaultConfig()
	cc.Primary = [2]string{"Eng", "Fra"}
	if _, err := NewTaggerFromModels(bank, tm, WithClassifierConfig(cc)); err == nil {
		t.Error("expected error for primary tag outside the matrix")
	}
	if _, err := NewTaggerFromModels(nil, tm); err == nil {
		t.Error("expected error for nil bank")
	}
}

func TestNewTagger_RequiresGold(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gold.Path = ""
	if _, err := NewTagger(cfg); err == nil {
		t.Fatal("expected error without gold path")
	}
}
