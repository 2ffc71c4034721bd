package ner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ieee0824/codeswitch-go/tokenize"
)

// Gazetteer is a Provider backed by a fixed token -> entity type list.
// Lookups try the exact token first and then its lower-cased form.
type Gazetteer struct {
	Entries map[string]string // token -> entity type
}

// NewGazetteer creates an empty gazetteer.
func NewGazetteer() *Gazetteer {
	return &Gazetteer{
		Entries: make(map[string]string),
	}
}

// Add registers token as an entity of the given type.
func (g *Gazetteer) Add(token, entityType string) {
	g.Entries[token] = entityType
}

// LoadGazetteer reads a tab-separated gazetteer.
// Format: token<TAB>TYPE, one entry per line; blank lines and # comments are skipped.
func LoadGazetteer(r io.Reader) (*Gazetteer, error) {
	g := NewGazetteer()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		token, entityType, ok := strings.Cut(line, "\t")
		token = strings.TrimSpace(token)
		entityType = strings.TrimSpace(entityType)
		if !ok || token == "" || entityType == "" {
			return nil, fmt.Errorf("line %d: expected token<TAB>type, got %q", lineNum, line)
		}
		g.Add(token, entityType)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return g, nil
}

// LoadGazetteerFile is a convenience wrapper that opens a file path.
func LoadGazetteerFile(path string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadGazetteer(f)
}

// Lookup returns the entity type of token, or Outside.
func (g *Gazetteer) Lookup(token string) string {
	if t, ok := g.Entries[token]; ok {
		return t
	}
	if t, ok := g.Entries[tokenize.Lower(token)]; ok {
		return t
	}
	return Outside
}

// Tag looks up every token.
func (g *Gazetteer) Tag(_ context.Context, tokens []string) ([]Pair, error) {
	out := make([]Pair, len(tokens))
	for i, tok := range tokens {
		out[i] = Pair{Token: tok, Tag: g.Lookup(tok)}
	}
	return out, nil
}
