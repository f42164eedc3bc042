package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/KaramelBytes/channelstat/internal/pipeline"
	"github.com/KaramelBytes/channelstat/internal/server"
	"github.com/KaramelBytes/channelstat/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr      string
	serveMaxUpload int64
	serveOpts      analyzeOptions
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the research summary and analysis over HTTP",
	Example: `  channelstat serve --addr :8080
  CHANNELSTAT_SOURCE_PATH=survey.csv channelstat serve --no-ai`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		addr := serveAddr
		if addr == "" {
			addr = c.ServerAddr
		}

		opt := server.Options{
			Version:   Version,
			Logger:    logger,
			MaxUpload: serveMaxUpload,
			Pipeline: pipeline.Options{
				Engine:   analysis.NewEngine(logger),
				Composer: buildComposer(cmd.Context(), c, serveOpts),
				Logger:   logger,
			},
		}
		summary := c.SourcePath
		if summary == "" {
			summary = c.SourceDSN
		}
		if summary != "" {
			src, err := source.Open(summary, source.Options{Table: c.SourceTable})
			if err != nil {
				return fmt.Errorf("summary source: %w", err)
			}
			opt.Summary = src
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.New(opt).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return runServer(cmd.Context(), srv)
	},
}

// runServer serves until ctx is cancelled, then drains connections.
func runServer(ctx context.Context, srv *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		fmt.Printf("✓ Listening on http://%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config server_addr)")
	serveCmd.Flags().Int64Var(&serveMaxUpload, "max-upload", server.DefaultMaxUpload, "max bytes accepted by POST /api/analyze")
	serveCmd.Flags().BoolVar(&serveOpts.NoAI, "no-ai", false, "always use the local interpretation")
	serveCmd.Flags().StringVar(&serveOpts.Provider, "provider", "", "AI provider: openrouter|ollama|gemini")
	serveCmd.Flags().StringVar(&serveOpts.Model, "model", "", "preferred model")
	serveCmd.Flags().IntVar(&serveOpts.TimeoutSec, "timeout-sec", 0, "AI interpretation timeout in seconds")
}
