package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodquery/internal/api"
	"foodquery/internal/config"
	"foodquery/internal/logger"
	"foodquery/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load("config.yaml", os.Args[1:])
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Error("config error", "error", err)
		os.Exit(1)
	}
	if !logger.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Хранилище: без него не стартуем
	st, err := store.Open(context.Background(), store.Options{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		URL:    cfg.DBURL,
	})
	if err != nil {
		log.Error("store open failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	log.Info("store opened", "driver", st.Driver())

	// 2. HTTP
	router := api.NewRouter(st, api.RouterOptions{
		Logger:       log,
		StaticDir:    cfg.StaticDir,
		CORSOrigins:  cfg.CORSOrigins,
		ExposeErrors: cfg.ExposeErrors,
	})
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 3. Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
			_ = st.Close()
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("server stopped")
}
