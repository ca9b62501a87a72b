// Package main implements a mock search API for local development. It replays
// JSON fixtures under /api/search/* with the same envelope, pagination and
// limits as the application server, so the CLI and picker can run without it.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
)

func main() {
	addr := flag.String("addr", ":5000", "address to listen on")
	dir := flag.String("fixtures", "tools/mock-server/testdata", "directory holding <endpoint>.json fixtures")
	latency := flag.Duration("latency", 0, "artificial delay added to every search")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           parseLogLevel(*level),
		ReportTimestamp: true,
	})

	f, err := loadFixtures(*dir)
	if err != nil {
		logger.Fatal("failed to load fixtures", "dir", *dir, "err", err)
	}
	for endpoint, cat := range f {
		logger.Info("loaded fixture", "endpoint", endpoint, "records", len(cat.records))
	}

	e := newServer(f, *latency, slog.New(logger))

	go func() {
		logger.Info("starting mock search server", "addr", *addr, "latency", *latency)
		if err := e.Start(*addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
