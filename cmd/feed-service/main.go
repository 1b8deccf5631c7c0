package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/shopera/retino-feed/internal/api/httpx"
	"github.com/shopera/retino-feed/internal/config"
	"github.com/shopera/retino-feed/internal/pkg/lock"
	"github.com/shopera/retino-feed/internal/pkg/telemetry"
	"github.com/shopera/retino-feed/internal/retino/feed"
	"github.com/shopera/retino-feed/internal/retino/feed/feedlog"
	feedlogsqlite "github.com/shopera/retino-feed/internal/retino/feed/feedlog/sqlite"
	"github.com/shopera/retino-feed/internal/retino/xmlfeed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	telemetry.InitLogger(telemetry.ParseLevel(cfg.Log.Level))

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.App.Name, cfg.Telemetry.Endpoint)
		if err != nil {
			log.Fatalf("setup tracer: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	// Lock capability is selected by configuration, not probed at runtime.
	// Without it the service degrades to unsynchronized feed generation.
	var locker lock.Locker = lock.Nop{}
	if cfg.Lock.Enabled {
		redisLocker := lock.NewRedisLocker(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err := redisLocker.Ping(ctx); err != nil {
			log.Fatalf("connect lock service: %v", err)
		}
		defer redisLocker.Close()
		locker = redisLocker
		slog.Info("feed lock enabled", "redis", cfg.Redis.Addr())
	} else {
		slog.Warn("feed lock disabled, generations run unsynchronized")
	}

	var runs feedlog.Repository
	if cfg.FeedLog.Path != "" {
		repo, err := feedlogsqlite.Open(cfg.FeedLog.Path)
		if err != nil {
			log.Fatalf("open feed run log: %v", err)
		}
		defer repo.Close()
		runs = repo
	}

	processor := feed.NewProcessor(locker, xmlfeed.Renderer{}, runs)
	handler := httpx.NewHandler(processor, runs)
	router := httpx.NewRouter(handler)

	slog.Info("feed service running", "addr", cfg.HTTP.Addr, "env", cfg.App.Env)
	if err := http.ListenAndServe(cfg.HTTP.Addr, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}
