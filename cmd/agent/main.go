package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/adil-farooq/solana-lending-agent/internal/agent"
	"github.com/adil-farooq/solana-lending-agent/internal/config"
	"github.com/adil-farooq/solana-lending-agent/internal/intent"
	"github.com/adil-farooq/solana-lending-agent/internal/warehouse"
)

func main() {
	// Flags
	queryFlag := flag.String("q", "", "Run a single question and exit")
	modelFlag := flag.String("model", "", "OpenRouter model name (overrides OPENROUTER_MODEL)")
	flag.Parse()

	// Logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.WarnLevel)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	// Config
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	if *modelFlag != "" {
		cfg.Model = *modelFlag
	}

	// Context + signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

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
	defer wh.Close()

	var primary intent.Parser
	if cfg.OpenRouterAPIKey != "" {
		p, err := intent.NewLLMParser(intent.LLMConfig{
			OpenRouterAPIKey: cfg.OpenRouterAPIKey,
			Model:            cfg.Model,
			Logger:           logger,
		})
		if err != nil {
			logger.WithError(err).Warn("LLM parser unavailable, using deterministic fallback only")
		} else {
			primary = p
		}
	}

	pipeline, err := agent.New(agent.Config{
		Parser: &intent.ChainParser{
			Primary:  primary,
			Fallback: intent.FallbackParser{},
			Logger:   logger,
		},
		Warehouse: wh,
		Logger:    logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create query pipeline")
	}

	// Single-shot mode
	if *queryFlag != "" {
		if err := runSingle(ctx, pipeline, *queryFlag); err != nil {
			logger.WithError(err).Fatal("query failed")
		}
		return
	}

	// REPL mode
	runREPL(ctx, pipeline)
}

func runSingle(ctx context.Context, pipeline *agent.Agent, q string) error {
	res, err := pipeline.Ask(ctx, q)
	if err != nil {
		return err
	}

	if res.SQL != "" {
		fmt.Printf("SQL:\n%s\n\n", res.SQL)
	}
	fmt.Println(res.Report)
	return nil
}

func runREPL(ctx context.Context, pipeline *agent.Agent) {
	fmt.Println("Solana Lending Position Agent")
	fmt.Println("Ask about a wallet's lending positions. Empty line to exit.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		q, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("error reading input:", err)
			return
		}
		q = strings.TrimSpace(q)
		if q == "" {
			fmt.Println("bye")
			return
		}

		// Short cooldown to avoid hammering the LLM if the user spams enter.
		time.Sleep(200 * time.Millisecond)

		res, err := pipeline.Ask(ctx, q)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}

		if res.SQL != "" {
			fmt.Printf("\nSQL:\n%s\n", res.SQL)
		}
		fmt.Printf("\n%s\n", res.Report)
	}
}
