// README: Entry point; loads config, wires the dialog engine, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"flybot/internal/config"
	httptransport "flybot/internal/http"
	"flybot/internal/http/handlers"
	"flybot/internal/infra"
	"flybot/internal/logger"
	"flybot/internal/maps"
	"flybot/internal/modules/booking"
	"flybot/internal/modules/dialog"
	"flybot/internal/modules/session"
	"flybot/internal/nlu"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := infra.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	sessions := session.NewStore(redisClient, time.Duration(cfg.SessionTTLMin)*time.Minute)

	var archive handlers.Archive
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			zlog.Fatal("postgres init", zap.Error(err))
		}
		defer pool.Close()
		archive = booking.NewStore(pool)
	} else {
		zlog.Warn("DATABASE_URL not set, bookings will not be archived")
	}

	var recognizer nlu.Recognizer
	if cfg.GeminiAPIKey != "" {
		gem, err := nlu.NewGeminiRecognizer(ctx, cfg.GeminiAPIKey)
		if err != nil {
			zlog.Fatal("gemini init", zap.Error(err))
		}
		recognizer = gem
	} else {
		zlog.Warn("GEMINI_API_KEY not set, running in degraded mode")
	}

	var cities handlers.Cities
	if cfg.GoogleMapsAPIKey != "" {
		resolver, err := maps.NewCityResolver(cfg.GoogleMapsAPIKey)
		if err != nil {
			zlog.Fatal("maps init", zap.Error(err))
		}
		cities = resolver
	}

	engine := dialog.NewEngine(recognizer, zlog)
	chat := handlers.NewChatHandler(engine, sessions, archive, cities, zlog)

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: httptransport.NewRouter(httptransport.RouterDeps{Chat: chat, Log: zlog}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	zlog.Info("listening", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server", zap.Error(err))
	}
}
