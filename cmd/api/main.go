package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/adil-farooq/solana-lending-agent/internal/agent"
	"github.com/adil-farooq/solana-lending-agent/internal/cache"
	"github.com/adil-farooq/solana-lending-agent/internal/config"
	"github.com/adil-farooq/solana-lending-agent/internal/flags"
	"github.com/adil-farooq/solana-lending-agent/internal/intent"
	"github.com/adil-farooq/solana-lending-agent/internal/server"
	"github.com/adil-farooq/solana-lending-agent/internal/warehouse"
)

// loadEnv loads .env from the project root before anything reads os.Getenv.
func loadEnv(logger *logrus.Logger) {
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	loadEnv(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Redis backs the exchange rate cache and the runtime flags store.
	rclient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})
	if err := rclient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}

	rateCache := cache.NewRateCache(rclient, logger)

	flagStore, err := flags.NewStore(rclient)
	if err != nil {
		logger.WithError(err).Fatal("failed to create flags store")
	}

	// Warehouse connection is required: there is no substitute for query
	// execution.
	wh, err := warehouse.New(ctx, warehouse.Config{
		Addr:     cfg.ClickHouseAddr,
		Database: cfg.ClickHouseDatabase,
		Username: cfg.ClickHouseUsername,
		Password: cfg.ClickHousePassword,
		Logger:   logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to warehouse")
	}
	defer func() {
		_ = wh.Close()
	}()

	// The LLM parser is optional: without an API key the deterministic
	// fallback handles everything.
	var primary intent.Parser
	if cfg.OpenRouterAPIKey != "" {
		p, err := intent.NewLLMParser(intent.LLMConfig{
			OpenRouterAPIKey: cfg.OpenRouterAPIKey,
			Model:            cfg.Model,
			Logger:           logger,
		})
		if err != nil {
			logger.WithError(err).Warn("failed to initialize LLM parser, using deterministic fallback only")
		} else {
			primary = p
		}
	}

	parser := &intent.ChainParser{
		Primary:  primary,
		Fallback: intent.FallbackParser{},
		Logger:   logger,
		PrimaryEnabled: func(ctx context.Context) bool {
			return flagStore.Enabled(ctx, flags.FlagLLMParser, true)
		},
	}

	pipeline, err := agent.New(agent.Config{
		Parser:    parser,
		Warehouse: wh,
		Rates:     rateCache,
		Logger:    logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create query pipeline")
	}

	h := &server.Handlers{
		Agent:   pipeline,
		Rates:   rateCache,
		Flags:   flagStore,
		DevMode: cfg.DevMode,
		Logger:  logger,
	}

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: h,
		Config: server.ServerConfig{
			Addr:    cfg.APIAddr,
			DevMode: cfg.DevMode,
			APIKey:  cfg.APIKey,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create http server")
	}

	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
		_ = srv.Shutdown(context.Background())
	}()

	logger.WithField("addr", cfg.APIAddr).Info("api server starting")
	if err := srv.Start(); err != nil {
		if err.Error() == "http: Server closed" {
			return
		}
		logger.WithError(err).Fatal("api server failed")
	}

	if err := srv.WaitClosed(context.Background()); err != nil {
		fmt.Println(err)
	}
}
