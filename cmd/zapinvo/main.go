package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zapinvo/zapinvo/internal/entity"
	"github.com/zapinvo/zapinvo/internal/export"
	"github.com/zapinvo/zapinvo/internal/extract/gemini"
	"github.com/zapinvo/zapinvo/internal/form"
	"github.com/zapinvo/zapinvo/internal/guard"
	"github.com/zapinvo/zapinvo/internal/render"
	"github.com/zapinvo/zapinvo/internal/settings"
	"github.com/zapinvo/zapinvo/internal/store/mongo"
)

func main() {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settingsStore, err := settings.Open(getenv("ZAPINVO_DB", "zapinvo.db"), logger)
	if err != nil {
		logger.Error("failed to open settings store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := settingsStore.Close(); err != nil {
			logger.Warn("settings store close error", "error", err)
		}
	}()

	extractor := gemini.NewClient(gemini.Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Model:   os.Getenv("GEMINI_MODEL"),
		Timeout: 45 * time.Second,
	}, logger)

	remote := mongo.NewClient(settingsStore, nil, logger)

	session := form.NewSession(seedBusiness(), form.WithLogger(logger))
	driver := render.NewDriver(os.Stdout, "", logger)
	flow := guard.NewFlow(driver, logger)
	exporter := export.NewService(logger)

	r := &repl{
		ctx:       ctx,
		in:        os.Stdin,
		out:       os.Stdout,
		session:   session,
		flow:      flow,
		driver:    driver,
		extractor: extractor,
		remote:    remote,
		settings:  settingsStore,
		exporter:  exporter,
	}
	r.run()
}

// seedBusiness pre-fills the very first record so the editor never opens
// on a fully blank FROM block.
func seedBusiness() entity.BusinessDetails {
	return entity.BusinessDetails{
		AddressDetails: entity.AddressDetails{
			Name:         "Your Company LLC",
			AddressLine1: "123 Business Rd",
			City:         "New York",
			State:        "NY",
			Pincode:      "10001",
			Phone:        "(555) 123-4567",
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logLevel() slog.Level {
	if os.Getenv("ZAPINVO_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
