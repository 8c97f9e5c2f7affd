// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/corpgraph/corpgraph/internal/tool"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the extraction tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			p, err := newPipeline(cfg, newWikidataClient(cfg, logger), logger)
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Implementation{Name: "corpgraph", Version: version}, nil)
			tool.Register(server, p.extractor, p.normalizer, p.validator)

			logger.Info("serving MCP over stdio")
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
