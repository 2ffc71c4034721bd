package ner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command is a Provider that runs an external tagger once per batch.
// Tokens are written to the process's stdin one per line; the process must
// print one line per token whose last whitespace-separated field is the tag
// (for example "Obama<TAB>PERSON").
type Command struct {
	Name string
	Args []string
}

// NewCommand creates a subprocess provider from an argv slice.
func NewCommand(argv []string) (*Command, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("ner command: empty argv")
	}
	return &Command{Name: argv[0], Args: append([]string(nil), argv[1:]...)}, nil
}

// Tag runs the command over tokens in a single invocation.
func (c *Command) Tag(ctx context.Context, tokens []string) ([]Pair, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = strings.NewReader(strings.Join(tokens, "\n") + "\n")
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("ner command %s: %w: %s", c.Name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("ner command %s: %w", c.Name, err)
	}
	return parseTaggerOutput(tokens, string(out))
}

// parseTaggerOutput aligns tagger output lines with the input tokens.
func parseTaggerOutput(tokens []string, out string) ([]Pair, error) {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(tokens) {
		return nil, fmt.Errorf("tagger returned %d lines for %d tokens", len(lines), len(tokens))
	}
	pairs := make([]Pair, len(tokens))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected token and tag, got %q", i+1, line)
		}
		pairs[i] = Pair{Token: tokens[i], Tag: fields[len(fields)-1]}
	}
	return pairs, nil
}
