package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/j03-dev/ankamantatra-bot/internal/bot"
	"github.com/j03-dev/ankamantatra-bot/internal/config"
	"github.com/j03-dev/ankamantatra-bot/internal/database"
	"github.com/j03-dev/ankamantatra-bot/internal/gemini"
	"github.com/j03-dev/ankamantatra-bot/internal/handler"
	"github.com/j03-dev/ankamantatra-bot/internal/messenger"
	"github.com/j03-dev/ankamantatra-bot/internal/middleware"
	"github.com/j03-dev/ankamantatra-bot/internal/payload"
	"github.com/j03-dev/ankamantatra-bot/internal/quiz"
	"github.com/j03-dev/ankamantatra-bot/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	userRepo := repository.NewUserAccountRepository(db)

	var pending bot.ActionStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("redis: %v", err)
		}
		cancel()
		pending = repository.NewPendingActionRepository(client)
	} else {
		log.Println("REDIS_ADDR not set, keeping pending actions in memory")
		pending = repository.NewMemoryPendingStore()
	}

	source := quiz.NewLazySource(cfg.DataPath)
	if _, err := source.Bank(); err != nil {
		// Handlers report this per turn; a broken document should not
		// keep the webhook from answering the platform.
		log.Printf("questions not loaded: %v", err)
	}

	codec := payload.NewCodec([]byte(cfg.PayloadSecret))
	client := messenger.NewClient(cfg.PageAccessToken)
	explainer := gemini.NewClient(cfg.GeminiAPIKey)

	router := bot.NewRouter(userRepo, pending, source, codec, explainer, client)

	if err := setupProfile(client, codec); err != nil {
		log.Printf("messenger profile setup: %v", err)
	}

	webhook := handler.NewWebhookHandler(cfg.VerifyToken, router, codec)

	mux := http.NewServeMux()
	mux.Handle("/webhook", middleware.VerifySignature(cfg.AppSecret, http.HandlerFunc(webhook.Webhook)))

	log.Printf("bot listening on :%s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}

func setupProfile(client *messenger.Client, codec *payload.Codec) error {
	getStarted, err := codec.Encode(string(bot.ActionEntry), nil)
	if err != nil {
		return err
	}

	settingPayload := func(choice string) (string, error) {
		return codec.Encode(string(bot.ActionSettings), payload.SettingsChoice{
			V:      payload.Version,
			Choice: choice,
		})
	}

	resetScore, err := settingPayload(payload.SettingResetScore)
	if err != nil {
		return err
	}
	deleteAccount, err := settingPayload(payload.SettingDeleteAccount)
	if err != nil {
		return err
	}
	changeCategory, err := settingPayload(payload.SettingChooseCategory)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return client.SetupProfile(ctx, getStarted, []messenger.MenuButton{
		{Title: "Reset Score", Payload: resetScore},
		{Title: "Delete Account", Payload: deleteAccount},
		{Title: "Change Category", Payload: changeCategory},
	})
}
