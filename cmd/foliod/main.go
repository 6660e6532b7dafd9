// Command foliod runs the folio document-processing service: an HTTP API
// that accepts page images (or a PDF, when a rasterizer is plugged in),
// extracts the requested fields and any table grid, and serves results by
// job id.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsawler/folio/ocr"
	"github.com/tsawler/folio/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := service.LoadConfig(*configPath)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	store, err := service.OpenStore(config.DBPath)
	if err != nil {
		logger.Error("job store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("job store opened", "path", config.DBPath)

	recognizer, err := ocr.New()
	if err != nil {
		logger.Error("ocr client", "error", err)
		os.Exit(1)
	}
	defer recognizer.Close()
	if err := recognizer.SetLanguage(config.OCRLanguage); err != nil {
		logger.Error("ocr language", "language", config.OCRLanguage, "error", err)
		os.Exit(1)
	}

	svc := service.New(*config, store, recognizer, nil, logger)

	srv := &http.Server{
		Addr:         config.Addr,
		Handler:      svc.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("listening", "addr", config.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
}
