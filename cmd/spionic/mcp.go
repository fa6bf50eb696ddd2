package main

import (
	"github.com/hazyhaar/spionic/pkg/api"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		Long: `mcp runs an MCP server on stdin/stdout with the tools convert_spionic,
normalize_spionic, lookup_word and list_lexicons. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMCP(configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	return cmd
}

func runMCP(configPath string) error {
	cfg, logger, err := setup(configPath)
	if err != nil {
		return err
	}
	form, _ := cfg.form()

	reg, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}
	return server.ServeStdio(newMCPServer(api.Options{Registry: reg, Form: form, Logger: logger}))
}
