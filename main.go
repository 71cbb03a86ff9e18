package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/assets"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/httpapi"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/logging"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/storage"
	"github.com/Innocent9712/much-to-do/Server/TodoKV/internal/todo"
)

// @title     Todo KV API
// @version   1.0
// @BasePath  /api
func main() {
	configPath := flag.String("config", "", "path to config file (yaml, json, toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("logging: %v", err)
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Errorf("store close error: %v", err)
		}
	}()

	assetHandler, err := assets.New(cfg.Assets)
	if err != nil {
		log.Fatalf("assets: %v", err)
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: httpapi.NewHandler(todo.NewService(store), httpapi.Options{
			Assets:      assetHandler,
			Logger:      log,
			CORSOrigins: cfg.Server.CORSOrigins,
			Swagger:     cfg.Server.Swagger,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":  srv.Addr,
			"store": cfg.Store.Driver,
		}).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("shutdown signal: %s", sig)
	case err := <-errCh:
		log.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
	log.Info("shutdown complete")
}
