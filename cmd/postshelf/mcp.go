package main

import (
	"os"

	"github.com/labstack/gommon/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/eringen/postshelf/catalog"
	"github.com/eringen/postshelf/mcptools"
)

var mcpTTL = catalog.DefaultTTL

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the catalog as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so logs go to stderr.
		logger := log.New("catalog")
		logger.SetOutput(os.Stderr)

		s := catalog.NewDirScanner(postsDir)
		s.Logger = logger
		posts := catalog.NewCatalogue(catalog.NewCache(s, mcpTTL))
		if _, err := posts.List(); err != nil {
			return err
		}

		mcpServer := server.NewMCPServer(
			"postshelf",
			version,
			server.WithToolCapabilities(true),
		)
		mcptools.Register(mcpServer, posts)
		return server.ServeStdio(mcpServer)
	},
}

func init() {
	mcpCmd.Flags().DurationVar(&mcpTTL, "ttl", catalog.DefaultTTL, "how long a scanned catalog is served before rescanning")
}
