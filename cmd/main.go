package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"orderdesk/internal/auth"
	"orderdesk/internal/config"
	httpapi "orderdesk/internal/http"
	"orderdesk/internal/logger"
	"orderdesk/internal/metrics"
	"orderdesk/internal/repository"
	"orderdesk/internal/service"
	"orderdesk/internal/shopify"

	_ "orderdesk/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err.Error())
		os.Exit(1)
	}
	log := logger.New("orderdesk", cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	users, err := repository.LoadUsersFile(cfg.UsersFile)
	if err != nil {
		log.Error("failed to load users", "action", "startup", "error", err.Error())
		os.Exit(1)
	}
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		log.Error("failed to init tokens", "action", "startup", "error", err.Error())
		os.Exit(1)
	}
	if cfg.StoreDomain == "" || cfg.AccessToken == "" {
		log.Warn("STORE_DOMAIN or ACCESS_TOKEN is empty, upstream calls will fail", "action", "startup")
	}

	metrics.Register(prometheus.DefaultRegisterer)

	client := shopify.NewClient(
		shopify.Endpoint(cfg.StoreDomain, cfg.APIVersion),
		cfg.AccessToken,
		&http.Client{Timeout: cfg.UpstreamTimeout},
	)
	authSvc := service.NewAuthService(users, tokens)
	ordersSvc := service.NewOrderService(client)

	srv := httpapi.NewServer(authSvc, ordersSvc, httpapi.Options{
		PublicDir: cfg.PublicDir,
		Logger:    log,
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Engine(),
	}

	go func() {
		log.Info("HTTP server listening", "action", "startup", "addr", httpServer.Addr, "users", users.Len())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "action", "serve", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "action", "shutdown", "error", err.Error())
	}
}
