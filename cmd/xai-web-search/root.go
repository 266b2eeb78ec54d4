package main

import (
	"github.com/spf13/cobra"

	"github.com/leonardcser/xai-web-search/internal/config"
	"github.com/leonardcser/xai-web-search/internal/livesearch"
	"github.com/leonardcser/xai-web-search/internal/logger"
)

var (
	flagConfig string
	flagStdio  bool
	flagServer bool
	flagHTTP   bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "xai-web-search",
	Short: "Live web search through xAI Grok, as an MCP server, HTTP API or CLI",
	Long: `xai-web-search forwards natural-language questions to the xAI live search
API and returns the answer text.

It runs as an MCP server over stdio, as an HTTP server exposing /search and
/mcp, or as a one-shot command line client.

Examples:
  xai-web-search --stdio
  xai-web-search serve --port 9876
  xai-web-search search "latest Go release" --sources web,news`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case flagStdio:
			return runStdio(cmd, args)
		case flagServer, flagHTTP:
			return runServe(cmd, args)
		default:
			return cmd.Help()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (yaml, json, toml or .env)")
	rootCmd.Flags().BoolVar(&flagStdio, "stdio", false, "Serve MCP over stdio")
	rootCmd.Flags().BoolVar(&flagServer, "server", false, "Serve HTTP (same as the serve command)")
	rootCmd.Flags().BoolVar(&flagHTTP, "http", false, "Serve HTTP (same as the serve command)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	return err
}

func initLogger(stderr bool) error {
	return logger.Init(logger.Options{
		Path:   cfg.LogPath,
		Level:  cfg.LogLevel,
		Stderr: stderr,
	})
}

func newSearchClient() *livesearch.Client {
	return livesearch.NewClient(livesearch.NewRestyPoster(cfg.Timeout))
}
