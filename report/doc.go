// Package report writes classifier and evaluation results: the delimited
// annotated and evaluation files, and rounded-corner terminal tables for
// interactive summaries.
package report
