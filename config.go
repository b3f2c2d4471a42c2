package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/msomdec/knitshape/internal/domain"
)

const (
	keyPort           = "port"
	keyShareSecret    = "share_secret"
	keyLogLevel       = "log_level"
	keyCrewNeckRule   = "crew_neck_rule"
	keyRateLimitRPS   = "rate_limit_rps"
	keyRateLimitBurst = "rate_limit_burst"
	keyShareTTL       = "share_ttl"

	minShareSecretLen = 32
)

// initConfig loads an optional .env file and wires environment variables
// (PORT, SHARE_SECRET, ...) into viper. Flags bound with BindPFlag win.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	viper.SetDefault(keyPort, "8080")
	viper.SetDefault(keyLogLevel, "info")
	viper.SetDefault(keyCrewNeckRule, string(domain.CrewNeckRuleThird))
	viper.SetDefault(keyRateLimitRPS, 5.0)
	viper.SetDefault(keyRateLimitBurst, 20.0)
	viper.SetDefault(keyShareTTL, 30*24*time.Hour)
	viper.AutomaticEnv()
}

// serverConfig is the validated configuration of the serve command.
type serverConfig struct {
	Port           string
	ShareSecret    string
	CrewNeckRule   domain.CrewNeckRule
	RateLimitRPS   float64
	RateLimitBurst float64
	ShareTTL       time.Duration
}

func loadServerConfig() (serverConfig, error) {
	cfg := serverConfig{
		Port:           viper.GetString(keyPort),
		ShareSecret:    viper.GetString(keyShareSecret),
		RateLimitRPS:   viper.GetFloat64(keyRateLimitRPS),
		RateLimitBurst: viper.GetFloat64(keyRateLimitBurst),
		ShareTTL:       viper.GetDuration(keyShareTTL),
	}

	if cfg.ShareSecret == "" {
		return cfg, errors.New("SHARE_SECRET environment variable is required")
	}
	if len(cfg.ShareSecret) < minShareSecretLen {
		return cfg, fmt.Errorf("SHARE_SECRET must be at least %d characters for HMAC-SHA256 security", minShareSecretLen)
	}
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 1 {
		return cfg, errors.New("RATE_LIMIT_RPS must be >= 0 and RATE_LIMIT_BURST >= 1")
	}
	if cfg.ShareTTL <= 0 {
		return cfg, errors.New("SHARE_TTL must be a positive duration")
	}

	rule, err := domain.ParseCrewNeckRule(viper.GetString(keyCrewNeckRule))
	if err != nil {
		return cfg, fmt.Errorf("CREW_NECK_RULE: %w", err)
	}
	cfg.CrewNeckRule = rule

	return cfg, nil
}

func logLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString(keyLogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// setupServerLogger logs text to stdout and JSON to stderr.
func setupServerLogger() error {
	level, err := logLevel()
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}
	slog.SetDefault(slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, opts),
		slog.NewJSONHandler(os.Stderr, opts),
	)))
	return nil
}

// setupCLILogger keeps stdout free for calculation output.
func setupCLILogger(w io.Writer) error {
	level, err := logLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

func envCrewNeckRule() string {
	return viper.GetString(keyCrewNeckRule)
}
