package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ieee0824/codeswitch-go/classify"
	"github.com/ieee0824/codeswitch-go/evaluate"
)

// NotApplicable fills numeric columns of tokens without diagnostics.
const NotApplicable = "N/A"

// Options controls delimited output.
type Options struct {
	Header    bool
	Precision int
	Delimiter string
}

// DefaultOptions matches the bundled configuration defaults.
func DefaultOptions() Options {
	return Options{Header: true, Precision: 2, Delimiter: "\t"}
}

func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return "\t"
	}
	return o.Delimiter
}

// AnnotatedHeader returns the annotated-file column names for the two
// primary languages.
func AnnotatedHeader(primary [2]string) []string {
	return []string{
		"Token", "Language", "Named Entity",
		primary[0] + "-NGram Prob", primary[1] + "-NGram Prob",
		"HMM Prob", "Total Prob",
	}
}

// EvaluationHeader is the column header of the evaluation file.
var EvaluationHeader = []string{"Token", "Gold Standard", "Tagged Language", "Named Entity", "Evaluation"}

// WriteAnnotated writes one row per token.
func WriteAnnotated(w io.Writer, tokens []classify.Token, primary [2]string, opts Options) error {
	bw := bufio.NewWriter(w)
	sep := opts.delimiter()
	if opts.Header {
		writeRow(bw, sep, AnnotatedHeader(primary))
	}
	row := make([]string, 7)
	for _, tok := range tokens {
		row[0], row[1], row[2] = tok.Text, tok.Language, tok.NamedEntity
		if d := tok.Diagnostics; d != nil {
			row[3] = formatScore(d.Emission[0], opts.Precision)
			row[4] = formatScore(d.Emission[1], opts.Precision)
			row[5] = formatScore(d.Transition, opts.Precision)
			row[6] = formatScore(d.Combined, opts.Precision)
		} else {
			row[3], row[4], row[5], row[6] = NotApplicable, NotApplicable, NotApplicable, NotApplicable
		}
		writeRow(bw, sep, row)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write annotated output: %w", err)
	}
	return nil
}

// WriteEvaluation writes the two accuracy lines followed by one row per
// evaluated token.
func WriteEvaluation(w io.Writer, rep *evaluate.Report, opts Options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Language Accuracy: %s\n", rep.Language)
	fmt.Fprintf(bw, "NE Accuracy: %s\n", rep.NamedEntity)
	sep := opts.delimiter()
	if opts.Header {
		writeRow(bw, sep, EvaluationHeader)
	}
	row := make([]string, 5)
	for _, e := range rep.Entries {
		row[0], row[1], row[2], row[3], row[4] = e.Token, e.Gold, e.Language, e.NamedEntity, e.Verdict.String()
		writeRow(bw, sep, row)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write evaluation output: %w", err)
	}
	return nil
}

func writeRow(w *bufio.Writer, sep string, fields []string) {
	w.WriteString(strings.Join(fields, sep))
	w.WriteByte('\n')
}

func formatScore(v float64, precision int) string {
	if math.IsInf(v, -1) {
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
