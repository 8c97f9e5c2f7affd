// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/corpgraph/corpgraph/internal/crawl"
	"github.com/corpgraph/corpgraph/internal/sink"
)

type runOptions struct {
	outputDir string
	dryRun    bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [company...]",
		Short: "Extract the given companies, or the configured ones, and write their records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			if opts.outputDir != "" {
				cfg.Output.Dir = opts.outputDir
			}
			companies := args
			if len(companies) == 0 {
				companies = cfg.Companies
			}

			p, err := newPipeline(cfg, newWikidataClient(cfg, logger), logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var out sink.Sink = sink.NewMemorySink()
			if !opts.dryRun {
				if out, err = newSink(ctx, cfg.Output); err != nil {
					return err
				}
			}

			runner := crawl.NewRunner(crawl.RunnerParams{
				Extractor:       p.extractor,
				Normalizer:      p.normalizer,
				Validator:       p.validator,
				Sink:            out,
				NameMap:         cfg.PropsNameMap,
				SubsidiaryProps: cfg.SubsidiaryProps,
				MaxDepth:        cfg.MaxDepth,
				Logger:          logger,
			})
			report, err := runner.Run(ctx, companies...)
			if report != nil {
				logger.Info("run finished",
					"written", len(report.Entities),
					"not_found", len(report.NotFound),
					"duplicates", len(report.Duplicates),
					"failed", len(report.Failed),
				)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for the file backend (overrides output.dir)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "extract without writing any output")
	return cmd
}
