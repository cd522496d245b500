package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/LoadBox/config"
	"github.com/BearBump/LoadBox/internal/broker/kafka"
	"github.com/BearBump/LoadBox/internal/cache"
	"github.com/BearBump/LoadBox/internal/cache/rediscache"
	"github.com/BearBump/LoadBox/internal/matching"
	"github.com/BearBump/LoadBox/internal/platform/logger"
	"github.com/BearBump/LoadBox/internal/services/inbound"
	"github.com/BearBump/LoadBox/internal/storage/pgload"
)

type loadAPIApp struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   loadAPIOpts
	svc    *inbound.Service
	log    *logger.Logger

	closers []func()
}

func mustBootstrapLoadAPI() *loadAPIApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	swaggerPath := os.Getenv("swaggerPath")
	if swaggerPath == "" {
		panic("swaggerPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	log, err := logger.New(cfg.LoadBox.LogMode)
	if err != nil {
		panic(fmt.Sprintf("logger: %v", err))
	}

	app := &loadAPIApp{log: log}
	app.closers = append(app.closers, log.Sync)

	httpAddr := cfg.LoadBox.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	concurrency := cfg.LoadBox.QueueConcurrency
	if concurrency <= 0 {
		concurrency = 8
	}
	topic := cfg.Kafka.LoadCommittedTopicName
	if topic == "" {
		topic = "load.committed"
	}
	cacheTTL := time.Duration(cfg.LoadBox.MatchCacheTTLSeconds) * time.Second

	st := mustOpenPostgresWithRetry(cfg.Database.ConnString(), 60*time.Second)
	app.closers = append(app.closers, st.Close)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app.ctx, app.cancel = ctx, cancel

	if cfg.Database.AutoMigrate {
		if err := st.EnsureSchema(ctx); err != nil {
			panic(fmt.Sprintf("ensure schema: %v", err))
		}
	}
	caps, err := st.ProbeCapabilities(ctx)
	if err != nil {
		panic(fmt.Sprintf("probe schema capabilities: %v", err))
	}
	log.Info("schema capabilities",
		"pull_point_table", caps.PullPointTable,
		"join_table", caps.JoinTable,
		"join_soft_delete", caps.JoinSoftDelete,
		"phonetic", caps.PhoneticMatch,
	)

	var c cache.BytesCache
	if cfg.Redis.Host != "" && cacheTTL > 0 {
		rc := rediscache.New(fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port))
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unavailable, match cache disabled", "error", err)
			_ = rc.Close()
		} else {
			c = rc
			app.closers = append(app.closers, func() { _ = rc.Close() })
		}
	}

	var pub inbound.Publisher
	if cfg.Kafka.Host != "" {
		p := kafka.NewProducer([]string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)})
		pub = p
		app.closers = append(app.closers, func() { _ = p.Close() })
	}

	app.svc = inbound.New(st, matching.NewResolver(st, caps), c, pub, inbound.Config{
		QueueConcurrency: concurrency,
		MatchCacheTTL:    cacheTTL,
		CommittedTopic:   topic,
	}, log)
	app.opts = loadAPIOpts{httpAddr: httpAddr, swaggerPath: swaggerPath}
	return app
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgload.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgload.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *loadAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *loadAPIApp) Run() error {
	return runLoadAPI(a.ctx, a.opts, a.svc, a.log)
}
