package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ieee0824/codeswitch-go/evaluate"
)

// Alignment is the horizontal alignment of a table column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable renders rows under headers with rounded borders.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// RenderSummary renders the accuracy figures of rep as a table.
func RenderSummary(rep *evaluate.Report) string {
	counts := map[evaluate.Verdict]int{}
	for _, e := range rep.Entries {
		counts[e.Verdict]++
	}
	rows := [][]string{
		ratioRow("Language", rep.Language),
		ratioRow("Named Entity", rep.NamedEntity),
		{"Not applicable", "", itoa(counts[evaluate.NotApplicable]), ""},
	}
	return RenderTable(
		[]string{"Metric", "Correct", "Total", "Accuracy"},
		rows,
		[]Alignment{AlignLeft, AlignRight, AlignRight, AlignRight},
	)
}

func ratioRow(name string, r evaluate.Ratio) []string {
	acc := "undefined"
	if v, err := r.Value(); err == nil {
		acc = strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
	}
	return []string{name, itoa(r.Num), itoa(r.Den), acc}
}

func itoa(n int) string { return strconv.Itoa(n) }
