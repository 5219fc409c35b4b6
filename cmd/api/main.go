package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/bucket/internal/app"
	"github.com/MrJamesThe3rd/bucket/internal/config"
	bucketHttp "github.com/MrJamesThe3rd/bucket/internal/http"
	accountHandler "github.com/MrJamesThe3rd/bucket/internal/http/account"
	"github.com/MrJamesThe3rd/bucket/internal/http/auth"
	categoryHandler "github.com/MrJamesThe3rd/bucket/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/bucket/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/bucket/internal/http/importcsv"
	insightsHandler "github.com/MrJamesThe3rd/bucket/internal/http/insights"
	loanHandler "github.com/MrJamesThe3rd/bucket/internal/http/loan"
	matchingHandler "github.com/MrJamesThe3rd/bucket/internal/http/matching"
	settingsHandler "github.com/MrJamesThe3rd/bucket/internal/http/settings"
	txHandler "github.com/MrJamesThe3rd/bucket/internal/http/transaction"
	walletHandler "github.com/MrJamesThe3rd/bucket/internal/http/wallet"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if _, err := a.Accounts.Preload(ctx); err != nil {
		slog.Warn("failed to preload accounts", "error", err)
	}

	if _, err := a.Categories.Preload(ctx); err != nil {
		slog.Warn("failed to preload categories", "error", err)
	}

	go syncRates(ctx, a, cfg.Rates.TTL)

	secret := []byte(cfg.Auth.Secret)
	if len(secret) > 0 {
		token, err := auth.Issue(secret, cfg.App.Name, cfg.Auth.TokenTTL)
		if err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}

		slog.Info("issued api token", "token", token, "ttl", cfg.Auth.TokenTTL)
	} else {
		slog.Warn("AUTH_SECRET not set, api is unauthenticated")
	}

	router := bucketHttp.New(bucketHttp.Handlers{
		Transactions: txHandler.NewHandler(a.Transactions, a.Settings),
		Accounts:     accountHandler.NewHandler(a.Accounts, a.Settings),
		Categories:   categoryHandler.NewHandler(a.Categories, a.Settings),
		Loans:        loanHandler.NewHandler(a.Loans, a.Settings),
		Wallet:       walletHandler.NewHandler(a.Wallet, a.Settings),
		Import:       importHandler.NewHandler(a.Importer, a.Settings),
		Export:       exportHandler.NewHandler(a.Export, a.Settings),
		Matching:     matchingHandler.NewHandler(a.Matching),
		Insights:     insightsHandler.NewHandler(a.Insights, a.Settings),
		Settings:     settingsHandler.NewHandler(a.Settings, a.Exchange),
	}, bucketHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Secret:         secret,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// syncRates refreshes exchange rates for the current base currency on start
// and then once per ttl.
func syncRates(ctx context.Context, a *app.App, ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		st, err := a.Settings.Get(ctx)
		if err != nil {
			slog.Warn("loading settings for rate sync", "error", err)
		} else if err := a.Exchange.Sync(ctx, st.Currency); err != nil {
			slog.Warn("exchange rate sync failed", "base", st.Currency, "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
