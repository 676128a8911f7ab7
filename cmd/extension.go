package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/polishedai/polished/internal/progress"
)

var (
	extOut     string
	extZip     string
	extBackend string
)

var extensionCmd = &cobra.Command{
	Use:   "extension",
	Short: "Generate the browser extension for your backend",
	Long: `Writes the Manifest V3 browser extension, with the backend URL baked in,
either as an unpacked directory (load it via chrome://extensions with
Developer Mode on) or as a zip archive.`,
	RunE: runExtension,
}

func init() {
	extensionCmd.Flags().StringVarP(&extOut, "out", "o", "polished-extension", "directory to write the unpacked extension to")
	extensionCmd.Flags().StringVar(&extZip, "zip", "", "write a zip archive to this path instead of a directory")
	extensionCmd.Flags().StringVar(&extBackend, "backend", "", "backend URL to bake in (overrides config backend_url)")
	rootCmd.AddCommand(extensionCmd)
}

func runExtension(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bundle, err := buildBundle(cfg, extBackend)
	if err != nil {
		return fmt.Errorf("building extension: %w", err)
	}
	logger.Debug("extension built", zap.String("endpoint", bundle.Endpoint), zap.Int("files", len(bundle.Files)))

	if extZip != "" {
		f, err := os.Create(extZip)
		if err != nil {
			return fmt.Errorf("creating %s: %w", extZip, err)
		}
		if err := bundle.WriteZip(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", extZip, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", extZip, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Extension archive written to %s (endpoint %s)\n", extZip, bundle.Endpoint)
		return nil
	}

	if err := bundle.WriteDir(extOut, progress.NewReporter(os.Stderr)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Extension written to %s (endpoint %s)\n", extOut, bundle.Endpoint)
	fmt.Fprintln(cmd.OutOrStdout(), "Load it unpacked from chrome://extensions with Developer Mode enabled.")
	return nil
}
