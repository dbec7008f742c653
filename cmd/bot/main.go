package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/beyabay/jubjub-bot/internal/ai"
	"github.com/beyabay/jubjub-bot/internal/bot"
	"github.com/beyabay/jubjub-bot/internal/bot/handlers"
	"github.com/beyabay/jubjub-bot/internal/config"
	"github.com/beyabay/jubjub-bot/internal/database"
	"github.com/beyabay/jubjub-bot/internal/reminders"
	"github.com/beyabay/jubjub-bot/internal/repository"
	"github.com/beyabay/jubjub-bot/internal/roast"
	"github.com/beyabay/jubjub-bot/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Optional AI roast generation
	var roastGen roast.Generator
	if cfg.AIAPIKey != "" {
		roastGen = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		log.Printf("AI roasts enabled (model: %s)", cfg.AIModel)
	} else {
		log.Println("AI client not configured, using built-in roasts")
	}

	// Telegram API client for the scheduler's deliveries
	tgAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create Telegram API: %v", err)
	}

	reminderRepo := repository.NewReminderRepository(db)

	sched := scheduler.New(reminderRepo, bot.NewNotifier(tgAPI))
	go sched.Start(ctx)

	h := handlers.New(
		tgAPI,
		reminders.New(reminderRepo),
		&handlers.Repositories{
			Gifs:  repository.NewGifRepository(db),
			Usage: repository.NewUsageRepository(db),
			Prefs: repository.NewPreferenceRepository(db),
		},
		roast.New(roastGen),
		sched,
		db,
		cfg.OwnerID,
	)

	b, err := bot.New(cfg.TelegramToken, h)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	log.Println("Starting bot...")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot error: %v", err)
	}
}
