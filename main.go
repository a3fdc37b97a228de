// @title           Dessert API
// @version         1.0
// @description     CRUD service for desserts with hosted images
// @BasePath        /

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"dessert-api/config"
	"dessert-api/db"
	"dessert-api/handlers"
	"dessert-api/imagehost"
	"dessert-api/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	images, err := newUploader(cfg)
	if err != nil {
		return err
	}
	slog.Info("Image uploader ready", "provider", cfg.ImageProvider)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	desserts := handlers.NewDessertHandler(store, images, cfg.MaxUploadBytes)
	router := handlers.NewRouter(desserts, handlers.RouterOptions{
		AuthSecret:     cfg.AuthSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Registry:       reg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr), "auth", cfg.AuthSecret != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newUploader(cfg *config.Config) (imagehost.Uploader, error) {
	opts := imagehost.Options{Tags: cfg.UploadTags, Folder: cfg.UploadFolder}
	switch cfg.ImageProvider {
	case config.ProviderCloudinary:
		return imagehost.NewCloudinary(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret, opts)
	default:
		return imagehost.NewImageKit(cfg.PrivateKey, cfg.PublicKey, cfg.URLEndpoint, opts), nil
	}
}
