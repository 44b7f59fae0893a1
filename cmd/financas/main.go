package main

import (
	"context"
	"os"

	"financas/internal/cache"
	"financas/internal/cli"
	applog "financas/internal/log"
	"financas/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.ExitOnError(applog.New(applog.DefaultConfig()), "Configuration validation failed", err)
	}

	logger := cli.SetupLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := cli.SignalContext(context.Background(), logger)
	defer stop()

	result, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		cli.ExitOnError(logger, "Failed to initialize backend", err)
	}

	deps := cli.Deps{
		KV:         result.KV,
		StorageKey: cfg.StorageKey,
		Publisher:  result.Publisher(),
		ViewCache:  cache.NewLRUCache[services.MonthView](cfg.ViewCacheSize, cfg.ViewCacheTTL),
		Logger:     logger,
	}
	if result.AMQP != nil {
		deps.Consumer = result.AMQP
	}

	code := cli.New(deps).Run(ctx, os.Args[1:], os.Stdout, os.Stdin)

	if err := result.Cleanup(); err != nil {
		logger.Warn("Cleanup failed", applog.FieldError, err)
	}
	stop()
	os.Exit(code)
}
