package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ieee0824/codeswitch-go/evaluate"
	"github.com/ieee0824/codeswitch-go/internal/store"
	"github.com/ieee0824/codeswitch-go/report"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded evaluation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			st, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.ID,
					r.CreatedAt.Local().Format(time.DateTime),
					r.GoldPath,
					r.Normalization,
					strconv.Itoa(r.Tokens),
					evaluate.Ratio{Num: r.LangCorrect, Den: r.LangTotal}.String(),
					evaluate.Ratio{Num: r.NECorrect, Den: r.NETotal}.String(),
				})
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"ID", "Time", "Gold", "Transition", "Tokens", "Language", "NE"},
				rows,
				[]report.Alignment{
					report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft,
					report.AlignRight, report.AlignRight, report.AlignRight,
				},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	return cmd
}
