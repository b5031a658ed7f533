package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/liftstack/liftlog/internal/config"
	"github.com/liftstack/liftlog/internal/mcp"
	"github.com/liftstack/liftlog/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	baseURL := flag.String("url", "", "base URL of a running LiftLog server (remote mode)")
	userID := flag.Int("user", 1, "user ID to scope queries to (local mode)")
	flag.Parse()

	// MCP speaks JSON-RPC on stdout; logs must go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource

	if *baseURL != "" {
		ds = mcp.NewHTTPClient(*baseURL)
		log.Info("remote mode", "url", *baseURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("local mode", "user", *userID)
	}

	srv := mcp.New(ds, Version, log)

	err := server.ServeStdio(srv, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, *userID)
	}))
	if err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
