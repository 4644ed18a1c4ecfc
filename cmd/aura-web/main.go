package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"aura/client"
	"aura/config"
	"aura/handlers"
	"aura/lifecycle"
	"aura/middleware"
	"aura/routes"
	"aura/session"
	"aura/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Session persistence: Redis when configured, in-process otherwise. The
	// memory fallback only suits a single instance.
	var newStore func(sessionID string) session.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		newStore = func(sessionID string) session.Store {
			return session.NewRedisStore(rdb, sessionID, cfg.SessionTTL)
		}
	} else {
		logger.Warn("REDIS_ADDR not set, using in-process session store")
		memStores := newMemorySessionStores()
		newStore = memStores.store
	}

	bundle := &handlers.Bundle{
		Log:      logger,
		Machine:  lifecycle.New(cfg.AllowCancelInProgress),
		NewStore: newStore,
		NewAPI: func(ts client.TokenSource) client.API {
			return client.New(cfg.APIBaseURL, logger,
				client.WithTokenSource(ts),
				client.WithTimeout(cfg.APITimeout),
				client.WithRateLimit(cfg.APIRatePerSec, cfg.APIRateBurst),
			)
		},
		CookieName:   cfg.SessionCookie,
		CookieSecure: config.IsProduction(),
		SessionTTL:   cfg.SessionTTL,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimit(200))

	routes.RegisterRoutes(router, bundle, cfg.WebCORSOrigins)

	srv := &http.Server{
		Addr:    cfg.WebAddr,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// memorySessionStores keeps one MemoryStore per session ID so sessions
// survive across requests within the process.
type memorySessionStores struct {
	mu     sync.Mutex
	stores map[string]*session.MemoryStore
}

func newMemorySessionStores() *memorySessionStores {
	return &memorySessionStores{stores: map[string]*session.MemoryStore{}}
}

func (m *memorySessionStores) store(sessionID string) session.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := session.NewMemoryStore()
	m.stores[sessionID] = s
	return s
}
