// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/corpgraph/corpgraph/internal/config"
	"github.com/corpgraph/corpgraph/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "corpgraph",
		Short:         "Extract and normalize corporate entities from Wikidata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the YAML configuration file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging (also DEBUG=true)")

	cmd.AddCommand(
		newRunCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads .env and the configuration file and builds the logger.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	config.LoadEnv()
	logger := logging.New(logging.Params{
		Debug:  o.debug || config.GetEnvBool("DEBUG", false),
		Writer: cmd.ErrOrStderr(),
	})
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded", "path", o.configPath, "companies", len(cfg.Companies))
	return cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "corpgraph %s\n", version)
			return err
		},
	}
}
