package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polishedai/polished/internal/polish"
)

var tonesCmd = &cobra.Command{
	Use:   "tones",
	Short: "List the available tones",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, t := range polish.Tones() {
			marker := " "
			if t == cfg.DefaultTone {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tonesCmd)
}
