package cmd

import (
	"github.com/spf13/cobra"

	"github.com/polishedai/polished/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize polished configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick the LLM provider, quality tier, default tone and backend URL, and writes them to .polished.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
