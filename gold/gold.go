// Package gold reads gold-standard files: delimiter-separated rows whose
// second-to-last field is the token and whose last field is the reference
// tag.
package gold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ieee0824/codeswitch-go/internal/logging"
)

// ErrMalformedRow is the sentinel every MalformedRowError unwraps to.
var ErrMalformedRow = errors.New("malformed gold row")

// MalformedRowError describes a row with fewer than two fields.
type MalformedRowError struct {
	Line    int
	Content string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, ErrMalformedRow, e.Content)
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// Row is one gold-standard token. Tag is the alias-normalized tag; RawTag is
// the tag as written in the file.
type Row struct {
	Line   int
	Token  string
	Tag    string
	RawTag string
}

// Document is a parsed gold file.
type Document struct {
	Rows      []Row
	Malformed []*MalformedRowError
}

// Tokens returns the row tokens in file order.
func (d *Document) Tokens() []string {
	out := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Token
	}
	return out
}

// Tags returns the normalized row tags in file order.
func (d *Document) Tags() []string {
	out := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Tag
	}
	return out
}

// Read parses rows split on delimiter. Blank lines are skipped; rows with
// fewer than two fields are logged, recorded in Document.Malformed and
// skipped. Fields are trimmed of surrounding whitespace.
func Read(r io.Reader, delimiter string, logger *slog.Logger) (*Document, error) {
	if delimiter == "" {
		return nil, errors.New("gold: empty delimiter")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	doc := &Document{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, delimiter)
		if len(fields) < 2 {
			bad := &MalformedRowError{Line: line, Content: text}
			logger.Warn("skipping malformed gold row",
				slog.Int("line", line),
				slog.Any("error", bad),
			)
			doc.Malformed = append(doc.Malformed, bad)
			continue
		}
		tag := strings.TrimSpace(fields[len(fields)-1])
		doc.Rows = append(doc.Rows, Row{
			Line:   line,
			Token:  strings.TrimSpace(fields[len(fields)-2]),
			Tag:    tag,
			RawTag: tag,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read gold rows: %w", err)
	}
	return doc, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path, delimiter string, logger *slog.Logger) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gold file: %w", err)
	}
	defer f.Close()
	doc, err := Read(f, delimiter, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
