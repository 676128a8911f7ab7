package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/polishedai/polished/internal/polish"
	"github.com/polishedai/polished/internal/proxy"
	"github.com/polishedai/polished/internal/server"
	"github.com/polishedai/polished/internal/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the polishing backend and web demo",
	Long: `Starts the HTTP backend the browser extension calls (POST /api/polish),
together with the web demo, the extension download page and a WebSocket
demo stream.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	var imp polish.Improver
	svc, err := newService(cfg, logger)
	if err != nil {
		logger.Warn("polishing disabled", zap.Error(err))
	} else {
		imp = svc
	}

	bundle, err := buildBundle(cfg, "")
	if err != nil {
		logger.Warn("extension download disabled", zap.Error(err))
	}

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.AllowAllOrigins,
	}, logger)

	proxy.RegisterRoutes(srv.API(), imp, logger)

	site, err := web.New(web.Options{
		Improver:    imp,
		Bundle:      bundle,
		DefaultTone: cfg.DefaultTone,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("building web site: %w", err)
	}
	site.RegisterRoutes(srv.API(), srv.Router())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("polished server starting",
		zap.String("version", Version),
		zap.String("addr", srv.Addr()),
		zap.String("provider", string(cfg.Provider)),
		zap.String("model", cfg.Model),
		zap.String("default_tone", cfg.DefaultTone.String()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	err = g.Wait()

	if svc != nil {
		u := svc.Usage()
		logger.Info("session usage",
			zap.Int("requests", u.Requests),
			zap.Int("input_tokens", u.InputTokens),
			zap.Int("output_tokens", u.OutputTokens),
			zap.Float64("cost_usd", u.CostUSD),
		)
	}
	return err
}
