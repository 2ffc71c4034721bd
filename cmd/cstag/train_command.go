package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	codeswitch "github.com/ieee0824/codeswitch-go"
	"github.com/ieee0824/codeswitch-go/report"
)

func newTrainCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train and save one character model per primary language",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			models, err := codeswitch.TrainModels(cfg, ctx.loggerValue())
			if err != nil {
				return err
			}
			if err := codeswitch.SaveModels(cfg, models); err != nil {
				return err
			}

			rows := make([][]string, 0, len(models))
			for _, m := range models {
				rows = append(rows, []string{
					m.Language(),
					strconv.Itoa(m.Order()),
					strconv.Itoa(m.Contexts()),
					cfg.ModelPath(m.Language()),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.RenderTable(
				[]string{"Language", "Order", "Contexts", "Model"},
				rows,
				[]report.Alignment{report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignLeft},
			))
			return nil
		},
	}
}
