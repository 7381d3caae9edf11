package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sufi2801/restaurant-billing-system/internal/config"
	"github.com/sufi2801/restaurant-billing-system/internal/engine"
	"github.com/sufi2801/restaurant-billing-system/internal/logger"
	"github.com/sufi2801/restaurant-billing-system/internal/messaging"
	"github.com/sufi2801/restaurant-billing-system/internal/session"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML config file")
	receiptDir := flag.String("receipt-dir", "", "Directory for receipt files (overrides config)")
	flag.Parse()

	// A .env file may set RESTAURANT_CONFIG to an alternate config path.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		path = os.Getenv("RESTAURANT_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}

	log := logger.New("billing-session")

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *receiptDir != "" {
		cfg.App.ReceiptDir = *receiptDir
	}

	// Kitchen events are optional; a missing broker never blocks the
	// session, it just runs without publishing.
	var events messaging.Publisher = messaging.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.Connect(cfg, log)
		if err != nil {
			log.Error("rabbitmq_unavailable", err, map[string]any{"host": cfg.RabbitMQ.Host})
		} else {
			events = messaging.NewPublisher(conn, log)
			log.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host})
		}
	}
	defer events.Close()

	eng, err := engine.New(cfg, log, events, nil)
	if err != nil {
		log.Error("engine_init_failed", err, nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("session_started", map[string]any{
		"config":         path,
		"receipt_dir":    cfg.App.ReceiptDir,
		"kitchen_events": cfg.RabbitMQ.Enabled,
	})

	driver := session.New(eng, log, os.Stdin, os.Stdout)
	if err := driver.Run(ctx); err != nil {
		log.Error("session_failed", err, nil)
		os.Exit(1)
	}

	log.Info("session_stopped", nil)
}
