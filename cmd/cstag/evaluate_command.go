package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	codeswitch "github.com/ieee0824/codeswitch-go"
	"github.com/ieee0824/codeswitch-go/evaluate"
	"github.com/ieee0824/codeswitch-go/internal/config"
	"github.com/ieee0824/codeswitch-go/internal/fileutil"
	"github.com/ieee0824/codeswitch-go/internal/store"
	"github.com/ieee0824/codeswitch-go/report"
)

func newEvaluateCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var record bool

	cmd := &cobra.Command{
		Use:   "evaluate <gold>",
		Short: "Tag a gold-standard file and score the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerValue()
			goldPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			cfg.Gold.Path = goldPath

			tagger, err := codeswitch.NewTagger(cfg, codeswitch.WithLogger(logger))
			if err != nil {
				return err
			}
			doc := tagger.Gold
			rep, err := tagger.Evaluate(cmd.Context(), doc.Rows)
			if err != nil {
				return err
			}

			target := outPath
			if target == "" {
				target = goldPath + "_outputwithHMM.txt"
			}
			opts := report.Options{Header: cfg.Output.Header, Precision: cfg.Output.Precision, Delimiter: cfg.Output.Delimiter}
			err = fileutil.WriteAtomic(target, func(w io.Writer) error {
				return report.WriteEvaluation(w, rep, opts)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isTerminal(out) {
				fmt.Fprintln(out, report.RenderSummary(rep))
			} else {
				fmt.Fprintf(out, "Language Accuracy: %s\n", rep.Language)
				fmt.Fprintf(out, "NE Accuracy: %s\n", rep.NamedEntity)
			}
			fmt.Fprintf(out, "Wrote evaluation to %s\n", target)

			if record || cfg.Store.Enabled {
				run, err := recordRun(cmd, cfg, rep, len(doc.Malformed))
				if err != nil {
					return err
				}
				logger.Info("recorded evaluation run", slog.String("run", run.ID), slog.String("store", cfg.Store.Path))
				fmt.Fprintf(out, "Recorded run %s\n", run.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default <gold>_outputwithHMM.txt)")
	cmd.Flags().BoolVar(&record, "record", false, "Record the run in the history database")
	return cmd
}

func recordRun(cmd *cobra.Command, cfg *config.Config, rep *evaluate.Report, malformed int) (store.Run, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return store.Run{}, err
	}
	defer st.Close()
	return st.RecordRun(cmd.Context(), store.Run{
		GoldPath:      cfg.Gold.Path,
		Normalization: cfg.Transition.Normalization,
		Tokens:        len(rep.Entries),
		LangCorrect:   rep.Language.Num,
		LangTotal:     rep.Language.Den,
		NECorrect:     rep.NamedEntity.Num,
		NETotal:       rep.NamedEntity.Den,
		Malformed:     malformed,
	})
}
