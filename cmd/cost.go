package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polishedai/polished/internal/config"
	"github.com/polishedai/polished/internal/improve"
	"github.com/polishedai/polished/internal/polish"
)

var costTone string

var costCmd = &cobra.Command{
	Use:   "cost [text]",
	Short: "Estimate the API cost of polishing a piece of text",
	Long:  `Estimates tokens and the expected API cost of one polish request, for each quality tier of the configured provider, without making any calls.`,
	RunE:  runCost,
}

func init() {
	costCmd.Flags().StringVarP(&costTone, "tone", "t", "", "tone to estimate for (default from config)")
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tone := cfg.DefaultTone
	if costTone != "" {
		if tone, err = polish.ParseTone(costTone); err != nil {
			return err
		}
	}

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	est := improve.EstimateRequest(cfg.Model, text, tone)

	fmt.Fprintln(out, "Cost Estimate")
	fmt.Fprintln(out, "=============")
	fmt.Fprintf(out, "  Characters:          %d\n", len([]rune(text)))
	fmt.Fprintf(out, "  Input tokens:        ~%d\n", est.InputTokens)
	fmt.Fprintf(out, "  Output tokens:       ~%d\n", est.OutputTokens)
	fmt.Fprintf(out, "  Cost per request:    $%.6f\n", est.CostUSD)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Tier Comparison:")
	for _, tier := range []config.QualityTier{config.QualityLite, config.QualityNormal, config.QualityMax} {
		model := config.GetPreset(cfg.Provider, tier)
		tierEst := improve.EstimateRequest(model, text, tone)

		marker := " "
		if tier == cfg.Quality {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %-8s  ~$%.6f  (model: %s)\n", marker, tier, tierEst.CostUSD, model)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  * = current configuration")
	fmt.Fprintf(out, "  Provider: %s\n", cfg.Provider)
	fmt.Fprintf(out, "  Model:    %s\n", cfg.Model)
	fmt.Fprintf(out, "  Tone:     %s\n", tone)

	return nil
}
