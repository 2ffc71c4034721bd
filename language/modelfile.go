package language

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Model files use an ARPA-like text layout holding raw counts. Probabilities
// are recomputed by the normalization pass on load.
//
//	\charlm\
//	language	"Eng"
//	order	5
//	alphabet	26
//
//	\counts:
//	"  th"	'e'	1042
//	\end\
const (
	headerMarker = `\charlm\`
	countsMarker = `\counts:`
	endMarker    = `\end\`
)

// WriteModel writes m to w. Contexts are sorted so output is deterministic.
func WriteModel(w io.Writer, m *CharModel) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, headerMarker)
	fmt.Fprintf(bw, "language\t%s\n", strconv.Quote(m.lang))
	fmt.Fprintf(bw, "order\t%d\n", m.order)
	fmt.Fprintf(bw, "alphabet\t%d\n", m.alphabetSize)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, countsMarker)

	ctxs := make([]string, 0, len(m.counts))
	for ctx := range m.counts {
		ctxs = append(ctxs, ctx)
	}
	sort.Strings(ctxs)
	for _, ctx := range ctxs {
		next := m.counts[ctx]
		runes := make([]rune, 0, len(next))
		for r := range next {
			runes = append(runes, r)
		}
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
		for _, r := range runes {
			fmt.Fprintf(bw, "%s\t%s\t%d\n", strconv.Quote(ctx), strconv.QuoteRune(r), next[r])
		}
	}
	fmt.Fprintln(bw, endMarker)
	return bw.Flush()
}

// LoadModel reads a model written by WriteModel.
func LoadModel(r io.Reader) (*CharModel, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0

	next := func() (string, bool) {
		for scanner.Scan() {
			lineNum++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	if line, ok := next(); !ok || line != headerMarker {
		return nil, fmt.Errorf("%w: missing %s header", ErrMalformedModel, headerMarker)
	}

	m := &CharModel{counts: make(map[string]map[rune]int)}
	inCounts := false
	ended := false
	for !ended {
		line, ok := next()
		if !ok {
			break
		}
		switch {
		case line == countsMarker:
			inCounts = true
		case line == endMarker:
			ended = true
		case inCounts:
			if err := m.parseCount(line); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedModel, lineNum, err)
			}
		default:
			if err := m.parseHeader(line); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedModel, lineNum, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !ended {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedModel, endMarker)
	}
	if m.order < 2 || m.alphabetSize < 1 {
		return nil, fmt.Errorf("%w: order %d, alphabet %d", ErrInvalidModel, m.order, m.alphabetSize)
	}
	if len(m.counts) == 0 {
		return nil, fmt.Errorf("load %s model: %w", m.lang, ErrEmptyTrainingData)
	}
	m.normalize()
	return m, nil
}

func (m *CharModel) parseHeader(line string) error {
	key, value, ok := strings.Cut(line, "\t")
	if !ok {
		return fmt.Errorf("expected key<TAB>value, got %q", line)
	}
	var err error
	switch key {
	case "language":
		m.lang, err = strconv.Unquote(value)
	case "order":
		m.order, err = strconv.Atoi(value)
	case "alphabet":
		m.alphabetSize, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("unknown header key %q", key)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	return nil
}

func (m *CharModel) parseCount(line string) error {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return fmt.Errorf("expected 3 tab-separated fields, got %d", len(fields))
	}
	ctx, err := strconv.Unquote(fields[0])
	if err != nil {
		return fmt.Errorf("parse context %s: %w", fields[0], err)
	}
	if m.order > 0 && len([]rune(ctx)) != m.order-1 {
		return fmt.Errorf("context %q has %d runes, want %d", ctx, len([]rune(ctx)), m.order-1)
	}
	c, err := strconv.Unquote(fields[1])
	if err != nil {
		return fmt.Errorf("parse rune %s: %w", fields[1], err)
	}
	runes := []rune(c)
	if len(runes) != 1 {
		return fmt.Errorf("expected a single rune, got %s", fields[1])
	}
	count, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("parse count: %w", err)
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	next, ok := m.counts[ctx]
	if !ok {
		next = make(map[rune]int)
		m.counts[ctx] = next
	}
	next[runes[0]] += count
	return nil
}
