// Package main - Entry point for the cloud adapter API server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cloud-adapter/api"
	"cloud-adapter/internal/app"
	"cloud-adapter/internal/config"
	"cloud-adapter/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "Config file")
	addr := flag.String("addr", "", "Server address (default from config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	a, err := app.New(cfg)
	if err != nil {
		logging.Fatal("build adapters", zap.Error(err))
	}

	listen := cfg.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	server := api.NewServer(a.Registry,
		api.WithVersion(version),
		api.WithCredentialTimeout(cfg.Hyperstack.RequestTimeout()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("cloud adapter server starting",
		zap.String("version", version),
		zap.String("addr", listen),
		zap.Stringers("clouds", a.Registry.Names()),
	)
	if err := server.ListenAndServe(ctx, listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("server stopped", zap.Error(err))
	}
	logging.Info("server stopped")
}
