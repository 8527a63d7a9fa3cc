package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/tuannm99/novaparse/internal"
	"github.com/tuannm99/novaparse/server/sqlwire"
)

func main() {
	fs := pflag.NewFlagSet("novaparse-server", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "YAML config file")
	fs.String("server.addr", "127.0.0.1:8866", "listen address")
	fs.Bool("server.debug", false, "log every request")
	fs.Int("server.cache_size", 1024, "parsed statements kept for repeated requests (0 disables)")
	fs.String("log.level", "info", "log level: debug, info, warn, error")
	_ = fs.Parse(os.Args[1:])

	cfg, err := internal.LoadConfig(*cfgPath, fs)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	internal.SetupLogger(os.Stdout, cfg)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = sqlwire.Run(ctx, sqlwire.ServerConfig{
		Addr:      cfg.Server.Addr,
		Debug:     cfg.Server.Debug,
		CacheSize: cfg.Server.CacheSize,
	})
	if err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}
