package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msomdec/knitshape/internal/handler"
	"github.com/msomdec/knitshape/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calculator web server",
	Long: `Serve the calculator page, its live recalculation endpoints and the JSON API.
Configuration comes from the environment (or a .env file): PORT, SHARE_SECRET,
LOG_LEVEL, CREW_NECK_RULE, RATE_LIMIT_RPS, RATE_LIMIT_BURST, SHARE_TTL.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port [env PORT, default 8080]")
	serveCmd.Flags().String("crew-neck-rule", "", "crew neck split (third|quarter) [env CREW_NECK_RULE]")
	if err := viper.BindPFlag(keyPort, serveCmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag(keyCrewNeckRule, serveCmd.Flags().Lookup("crew-neck-rule")); err != nil {
		panic(err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := setupServerLogger(); err != nil {
		return err
	}

	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	straight := service.NewStraightLineShaper()
	neck := service.NewCrewNeckShaper(cfg.CrewNeckRule)
	shares := service.NewShareService(cfg.ShareSecret, cfg.ShareTTL)
	limiter := service.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, straight, neck, shares, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.RequestLogger(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "crew_neck_rule", cfg.CrewNeckRule)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
