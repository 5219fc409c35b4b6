package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/bucket/internal/http/account"
	"github.com/MrJamesThe3rd/bucket/internal/http/auth"
	"github.com/MrJamesThe3rd/bucket/internal/http/category"
	"github.com/MrJamesThe3rd/bucket/internal/http/export"
	"github.com/MrJamesThe3rd/bucket/internal/http/importcsv"
	"github.com/MrJamesThe3rd/bucket/internal/http/insights"
	"github.com/MrJamesThe3rd/bucket/internal/http/loan"
	"github.com/MrJamesThe3rd/bucket/internal/http/matching"
	"github.com/MrJamesThe3rd/bucket/internal/http/settings"
	"github.com/MrJamesThe3rd/bucket/internal/http/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/http/wallet"
)

type Handlers struct {
	Transactions *transaction.Handler
	Accounts     *account.Handler
	Categories   *category.Handler
	Loans        *loan.Handler
	Wallet       *wallet.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
	Matching     *matching.Handler
	Insights     *insights.Handler
	Settings     *settings.Handler
}

type Options struct {
	AllowedOrigins []string

	// Secret signs bearer tokens. Empty disables authentication.
	Secret []byte
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if len(opts.Secret) > 0 {
			r.Use(auth.Middleware(opts.Secret))
		}

		json := func(handler interface{ Routes(chi.Router) }) func(chi.Router) {
			return func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				handler.Routes(r)
			}
		}

		r.Route("/transactions", json(h.Transactions))
		r.Route("/accounts", json(h.Accounts))
		r.Route("/categories", json(h.Categories))
		r.Route("/loans", json(h.Loans))
		r.Route("/wallet", h.Wallet.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/export", json(h.Export))
		r.Route("/matching", json(h.Matching))
		r.Route("/insights", json(h.Insights))
		r.Route("/settings", json(h.Settings))
	})

	return router
}
