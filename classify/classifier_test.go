package classify

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ieee0824/codeswitch-go/decoder"
	"github.com/ieee0824/codeswitch-go/language"
	"github.com/ieee0824/codeswitch-go/ner"
	"github.com/ieee0824/codeswitch-go/tokenize"
	"github.com/ieee0824/codeswitch-go/transition"
)

type tableScorer map[string]map[string]float64

func (s tableScorer) ScoreFor(tag, word string) (float64, error) {
	row, ok := s[tag]
	if !ok {
		return 0, language.ErrUnknownLanguage
	}
	return row[word], nil
}

func mapProvider(tags map[string]string, seen *[][]string) ner.Provider {
	return ner.Func(func(_ context.Context, tokens []string) ([]ner.Pair, error) {
		if seen != nil {
			*seen = append(*seen, append([]string(nil), tokens...))
		}
		out := make([]ner.Pair, len(tokens))
		for i, tok := range tokens {
			tag, ok := tags[tok]
			if !ok {
				tag = ner.Outside
			}
			out[i] = ner.Pair{Token: tok, Tag: tag}
		}
		return out, nil
	})
}

// Gold Eng Eng Eng Spn Eng: Eng->Eng 2/4, Eng->Spn 1/4, Spn->Eng 1/4.
func fixture(t *testing.T) (tableScorer, *transition.Matrix) {
	t.Helper()
	tm, err := transition.Build([]string{"Eng", "Eng", "Eng", "Spn", "Eng"}, []string{"Eng", "Spn"})
	if err != nil {
		t.Fatalf("transition.Build: %v", err)
	}
	sc := tableScorer{
		"Eng": {"the": -1, "casa": -6},
		"Spn": {"the": -5, "casa": -1},
	}
	return sc, tm
}

func TestClassify_LanguagesAndKinds(t *testing.T) {
	sc, tm := fixture(t)
	c, err := New(DefaultConfig(), sc, tm, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := c.Classify(context.Background(), []string{"the", ",", "casa", "42", "the"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	var langs []string
	var kinds []tokenize.Kind
	for i, tok := range tokens {
		if tok.Position != i {
			t.Errorf("token %d Position = %d", i, tok.Position)
		}
		langs = append(langs, tok.Language)
		kinds = append(kinds, tok.Kind)
	}
	if want := []string{"Eng", "Punct", "Spn", "Num", "Eng"}; !reflect.DeepEqual(langs, want) {
		t.Errorf("languages = %v, want %v", langs, want)
	}
	wantKinds := []tokenize.Kind{tokenize.Word, tokenize.Punct, tokenize.Word, tokenize.Numeral, tokenize.Word}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Errorf("kinds = %v, want %v", kinds, wantKinds)
	}
	for _, tok := range tokens {
		if tok.NamedEntity != ner.Outside {
			t.Errorf("%q NamedEntity = %q without channels, want O", tok.Text, tok.NamedEntity)
		}
	}
}

func TestClassify_Diagnostics(t *testing.T) {
	sc, tm := fixture(t)
	c, err := New(DefaultConfig(), sc, tm, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := c.Classify(context.Background(), []string{"the", ",", "casa", "42", "the"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if tokens[1].Diagnostics != nil || tokens[3].Diagnostics != nil {
		t.Fatal("punctuation and numerals must not carry diagnostics")
	}

	tests := []struct {
		pos        int
		transition float64
		emission   [2]float64
		combined   float64
	}{
		// first token: previous tag starts as the first primary tag
		{0, math.Log(0.5), [2]float64{-1, -5}, math.Log(0.5) - 1},
		// previous tag skips the comma
		{2, math.Log(0.25), [2]float64{-6, -1}, math.Log(0.25) - 1},
		// previous tag skips the numeral and is still Spn
		{4, math.Log(0.25), [2]float64{-1, -5}, math.Log(0.25) - 1},
	}
	for _, tt := range tests {
		d := tokens[tt.pos].Diagnostics
		if d == nil {
			t.Fatalf("token %d has no diagnostics", tt.pos)
		}
		if math.Abs(d.Transition-tt.transition) > 1e-10 {
			t.Errorf("token %d Transition = %f, want %f", tt.pos, d.Transition, tt.transition)
		}
		if d.Emission != tt.emission {
			t.Errorf("token %d Emission = %v, want %v", tt.pos, d.Emission, tt.emission)
		}
		if math.Abs(d.Combined-tt.combined) > 1e-10 {
			t.Errorf("token %d Combined = %f, want %f", tt.pos, d.Combined, tt.combined)
		}
	}
}

func TestClassify_ScoresLowerCasedWords(t *testing.T) {
	sc, tm := fixture(t)
	c, err := New(DefaultConfig(), sc, tm, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := c.Classify(context.Background(), []string{"The", "CASA"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if tokens[0].Text != "The" || tokens[1].Text != "CASA" {
		t.Errorf("texts = %q, %q, want original case", tokens[0].Text, tokens[1].Text)
	}
	if tokens[0].Language != "Eng" || tokens[1].Language != "Spn" {
		t.Errorf("languages = %s, %s, want Eng, Spn", tokens[0].Language, tokens[1].Language)
	}
	if got := tokens[1].Diagnostics.Emission; got != [2]float64{-6, -1} {
		t.Errorf("CASA emission = %v, want scores of casa", got)
	}
}

func TestClassify_NamedEntities(t *testing.T) {
	sc, tm := fixture(t)
	var engCalls [][]string
	channels := []ner.Channel{
		{Language: "Eng", Provider: mapProvider(map[string]string{"casa": "LOC", ",": "MISC"}, &engCalls)},
		{Language: "Spn", Provider: mapProvider(map[string]string{"42": "NUM"}, nil)},
	}
	c, err := New(DefaultConfig(), sc, tm, channels, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := c.Classify(context.Background(), []string{"the", ",", "casa", "42", "the"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	want := []string{"O", "O", "LOC/O", "O/NUM", "O"}
	for i, tok := range tokens {
		if tok.NamedEntity != want[i] {
			t.Errorf("token %d (%q) NamedEntity = %q, want %q", i, tok.Text, tok.NamedEntity, want[i])
		}
	}
	if got := tokens[2].Channels; !reflect.DeepEqual(got, []string{"LOC", "O"}) {
		t.Errorf("Channels = %v, want [LOC O]", got)
	}
	if !tokens[2].IsEntity(ner.Outside) || tokens[0].IsEntity(ner.Outside) {
		t.Error("IsEntity mismatch")
	}
	if len(engCalls) != 1 || len(engCalls[0]) != 5 {
		t.Fatalf("Eng provider calls = %v, want one batch of 5", engCalls)
	}
}

func TestClassify_ChunkedNER(t *testing.T) {
	sc, tm := fixture(t)
	var calls [][]string
	cfg := DefaultConfig()
	cfg.ChunkSize = 2
	channels := []ner.Channel{{Language: "Eng", Provider: mapProvider(nil, &calls)}}
	c, err := New(cfg, sc, tm, channels, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// the second chunk is all punctuation and is not sent
	if _, err := c.Classify(context.Background(), []string{"the", "casa", ",", ".", "the"}); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := [][]string{{"the", "casa"}, {"the"}}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestClassify_NERFailureDegrades(t *testing.T) {
	sc, tm := fixture(t)
	failing := ner.Func(func(context.Context, []string) ([]ner.Pair, error) {
		return nil, errors.New("tagger crashed")
	})
	channels := []ner.Channel{
		{Language: "Eng", Provider: failing},
		{Language: "Spn", Provider: mapProvider(map[string]string{"casa": "LUG"}, nil)},
	}
	c, err := New(DefaultConfig(), sc, tm, channels, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := c.Classify(context.Background(), []string{"the", "casa"})
	if err != nil {
		t.Fatalf("Classify must not fail on NER errors: %v", err)
	}
	if tokens[1].NamedEntity != "O/LUG" {
		t.Errorf("NamedEntity = %q, want O/LUG", tokens[1].NamedEntity)
	}
}

func TestClassify_CustomOutsideTag(t *testing.T) {
	sc, tm := fixture(t)
	cfg := DefaultConfig()
	cfg.Outside = "NONE"
	channels := []ner.Channel{{Language: "Eng", Provider: mapProvider(map[string]string{"casa": "LOC"}, nil)}}
	c, err := New(cfg, sc, tm, channels, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tokens, err := c.Classify(context.Background(), []string{"the", "casa"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if tokens[0].NamedEntity != "NONE" || tokens[1].NamedEntity != "LOC" {
		t.Errorf("NamedEntity = %q, %q; want NONE, LOC", tokens[0].NamedEntity, tokens[1].NamedEntity)
	}
}

func TestClassify_Errors(t *testing.T) {
	sc, tm := fixture(t)
	c, err := New(DefaultConfig(), sc, tm, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Classify(context.Background(), nil); !errors.Is(err, decoder.ErrEmptyInput) {
		t.Errorf("empty input err = %v, want ErrEmptyInput", err)
	}

	cfg := DefaultConfig()
	cfg.Primary = [2]string{"Eng", "Fra"}
	if _, err := New(cfg, sc, tm, nil, nil); err == nil {
		t.Error("expected error for primary tag missing from matrix")
	}
	cfg.Primary = [2]string{"Eng", "Eng"}
	if _, err := New(cfg, sc, tm, nil, nil); err == nil {
		t.Error("expected error for duplicate primary tags")
	}
	cfg = DefaultConfig()
	cfg.ChunkSize = 0
	if _, err := New(cfg, sc, tm, nil, nil); err == nil {
		t.Error("expected error for zero chunk size")
	}

	missing := tableScorer{"Eng": {}}
	c, err = New(DefaultConfig(), missing, tm, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Classify(context.Background(), []string{"the"}); !errors.Is(err, language.ErrUnknownLanguage) {
		t.Errorf("err = %v, want ErrUnknownLanguage", err)
	}
}

func TestClassify_WithBank(t *testing.T) {
	eng, err := language.Build("Eng", []string{"the", "house", "is", "there", "these"}, 3, 26)
	if err != nil {
		t.Fatal(err)
	}
	spn, err := language.Build("Spn", []string{"la", "casa", "esta", "alla", "las"}, 3, 26)
	if err != nil {
		t.Fatal(err)
	}
	bank, err := language.NewBank(eng, spn)
	if err != nil {
		t.Fatal(err)
	}
	tm, err := transition.Build([]string{"Eng", "Eng", "Spn", "Spn", "Eng"}, []string{"Eng", "Spn"})
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(DefaultConfig(), bank, tm, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a, err := c.Classify(context.Background(), []string{"The", "house", "la", "casa"})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	b, _ := c.Classify(context.Background(), []string{"The", "house", "la", "casa"})
	if !reflect.DeepEqual(a, b) {
		t.Fatal("classification is not deterministic")
	}
	if a[0].Language != "Eng" || a[3].Language != "Spn" {
		t.Errorf("languages = %s ... %s, want Eng ... Spn", a[0].Language, a[3].Language)
	}
}
