package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docnav/internal/api"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/navsync"
	"github.com/dgallion1/docnav/internal/sidebar"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the site navigation shared by every session.
	var nav []*sidebar.Node
	if cfg.SidebarSource != "" {
		var err error
		nav, err = sidebar.Load(cfg.SidebarSource, sidebar.DirOptions{
			Include: cfg.SidebarInclude,
			Exclude: cfg.SidebarExclude,
		})
		if err != nil {
			log.Error("failed to load sidebar", "source", cfg.SidebarSource, "error", err)
			os.Exit(1)
		}
		log.Info("sidebar loaded", "source", cfg.SidebarSource, "entries", len(nav))
	}

	// Initialize session manager.
	manager := navsync.NewManager(cfg, nav, log)
	manager.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(manager, log, cfg)

	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		manager.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting navd", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
