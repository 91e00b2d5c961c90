// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "hubkeeper/internal/command/admin"
	_ "hubkeeper/internal/command/assistant"
	_ "hubkeeper/internal/command/core"
	_ "hubkeeper/internal/command/engage"
	_ "hubkeeper/internal/command/moderation"

	"hubkeeper/internal/ai"
	"hubkeeper/internal/config"
	"hubkeeper/internal/discord"
	"hubkeeper/internal/storage"
)

func main() {
	log.Println("[INFO] Starting hubkeeper bot...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	provider := ai.NewOpenAIProvider(cfg.AIAPIURL, cfg.AIModel)

	bot := discord.NewBot(cfg, store, provider)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...\n", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
