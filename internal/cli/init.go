// Package cli holds the command implementations and the initialization
// helpers shared by cmd/financas.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"financas/internal/backend"
	"financas/internal/config"
	applog "financas/internal/log"
)

// SetupLogger initializes structured logging at level and sets it as the
// default logger. Logs go to w so they never mix with command output.
func SetupLogger(w io.Writer, level string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(level),
		Component: applog.ComponentApp,
		Output:    w,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitBackend opens the configured store and, when configured, the AMQP
// client.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize %s backend: %w", backendCfg.Type, err)
	}
	return result, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *applog.Logger) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		if parent.Err() == nil {
			logger.Debug("Shutdown signal received")
		}
	}()
	return ctx, stop
}

// ExitOnError logs err and exits with status 1.
func ExitOnError(logger *applog.Logger, msg string, err error) {
	if err == nil {
		return
	}
	logger.Error(msg, applog.FieldError, err)
	fmt.Fprintf(os.Stderr, "erro: %v\n", err)
	os.Exit(1)
}
