// Command reminder checks once whether anything was recorded today and logs
// a reminder if not. Run it daily from cron or a systemd timer.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/bucket/internal/app"
	"github.com/MrJamesThe3rd/bucket/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	sent, err := a.Reminder.Check(ctx, time.Now())
	if err != nil {
		slog.Error("reminder check failed", "error", err)
		os.Exit(1)
	}

	slog.Info("reminder check done", "sent", sent)
}
