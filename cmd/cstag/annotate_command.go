package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	codeswitch "github.com/ieee0824/codeswitch-go"
	"github.com/ieee0824/codeswitch-go/corpus"
	"github.com/ieee0824/codeswitch-go/internal/config"
	"github.com/ieee0824/codeswitch-go/internal/fileutil"
	"github.com/ieee0824/codeswitch-go/report"
	"github.com/ieee0824/codeswitch-go/tokenize"
)

func newAnnotateCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var goldPath string

	cmd := &cobra.Command{
		Use:   "annotate <corpus>",
		Short: "Tag every token of a text, PDF or DOCX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if goldPath != "" {
				expanded, err := config.ExpandPath(goldPath)
				if err != nil {
					return err
				}
				cfg.Gold.Path = expanded
			}
			tagger, err := codeswitch.NewTagger(cfg, codeswitch.WithLogger(ctx.loggerValue()))
			if err != nil {
				return err
			}

			input := args[0]
			text, err := corpus.ReadText(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}
			tokens, err := tagger.AnnotateTokens(cmd.Context(), tokenize.Split(text, cfg.Output.KeepCase))
			if err != nil {
				return err
			}

			target := outPath
			if target == "" {
				target = annotatedPath(input)
			}
			opts := report.Options{Header: cfg.Output.Header, Precision: cfg.Output.Precision, Delimiter: cfg.Output.Delimiter}
			err = fileutil.WriteAtomic(target, func(w io.Writer) error {
				return report.WriteAnnotated(w, tokens, tagger.ClassCfg.Primary, opts)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Annotated %d tokens to %s\n", len(tokens), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default <corpus>_annotated.txt)")
	cmd.Flags().StringVarP(&goldPath, "gold", "g", "", "Gold file for transition estimates (overrides gold.path)")
	return cmd
}

func annotatedPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_annotated.txt"
}
