package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/trustbox/auth"
	"github.com/danielhkuo/trustbox/cliparse"
	"github.com/danielhkuo/trustbox/db"
	"github.com/danielhkuo/trustbox/ledger"
	"github.com/danielhkuo/trustbox/middleware"
	"github.com/danielhkuo/trustbox/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(auth.AdminScopeReset, cfg.AdminKeySalt))
		return
	}

	// Open the snapshot store
	store, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("store open failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Store ready", "type", cfg.DatabaseType)

	// Load or seed the ledger
	l, err := ledger.New(context.Background(), store, ledger.Options{Logger: slog.Default()})
	if err != nil {
		slog.Error("ledger load failed", "error", err)
		store.Close()
		os.Exit(1)
	}
	if cfg.AdminKeySalt == "" {
		slog.Warn("ADMIN_KEY_SALT not set, ledger reset is disabled")
	}

	// Create router
	mux := router.NewRouter(l, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight requests finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Shutdown error", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
