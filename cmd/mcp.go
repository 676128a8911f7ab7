package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/polishedai/polished/internal/mcp"
	"github.com/polishedai/polished/internal/polish"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio exposing the polish_text and list_tones tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var imp polish.Improver
		if svc, err := newService(cfg, logger); err != nil {
			// Tools still list tones and report the missing provider.
			logger.Warn("polishing disabled", zap.Error(err))
		} else {
			imp = svc
		}

		mcpserver.Version = Version
		logger.Info("polished MCP server started on stdio", zap.String("provider", string(cfg.Provider)), zap.String("model", cfg.Model))

		return mcpserver.NewServer(imp, cfg.DefaultTone, logger).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
