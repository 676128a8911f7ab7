package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/improve"
	"github.com/polishedai/polished/internal/polish"
)

var (
	polishTone   string
	polishRemote string
)

var polishCmd = &cobra.Command{
	Use:   "polish [text]",
	Short: "Polish a piece of text and print the result",
	Long: `Improves the given text (or standard input when no argument is given)
in the selected tone and prints only the improved text. With --remote the
request goes to a running polished backend instead of the LLM provider.`,
	Example: `  polished polish "i was wonderng if u could send the files"
  pbpaste | polished polish --tone casual
  polished polish --remote http://localhost:8080 "hi there"`,
	RunE: runPolish,
}

func init() {
	polishCmd.Flags().StringVarP(&polishTone, "tone", "t", "", "tone: Neutral, Professional, Casual or Creative (default from config)")
	polishCmd.Flags().StringVar(&polishRemote, "remote", "", "base URL of a polished backend to call instead of the provider")
	rootCmd.AddCommand(polishCmd)
}

func runPolish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tone := cfg.DefaultTone
	if polishTone != "" {
		tone, err = polish.ParseTone(polishTone)
		if err != nil {
			return err
		}
	}

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	var imp polish.Improver
	if polishRemote != "" {
		client := improve.NewClient(polishRemote, &http.Client{Timeout: 60 * time.Second})
		logger.Debug("using remote backend", zap.String("endpoint", client.Endpoint()))
		imp = client
	} else {
		svc, err := newService(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			u := svc.Usage()
			logger.Debug("usage", zap.Int("input_tokens", u.InputTokens), zap.Int("output_tokens", u.OutputTokens), zap.Float64("cost_usd", u.CostUSD))
		}()
		imp = svc
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	improved, err := polish.PolishText(ctx, imp, text, tone)
	if errors.Is(err, polish.ErrEmptySelection) {
		return errors.New("nothing to polish: input is empty")
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		logger.Debug("polish failed", zap.Error(err))
		return errors.New(polish.FailureMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), improved)
	return nil
}

// readInput joins the arguments, or reads r when there are none or the
// only argument is "-".
func readInput(r io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
