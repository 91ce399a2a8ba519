package api

import (
	"log/slog"
	"net/http"
	"time"

	_ "isp-ledger/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"isp-ledger/internal/api/handler"
	mw "isp-ledger/internal/api/middleware"
	"isp-ledger/internal/config"
	"isp-ledger/internal/domain/account"
	"isp-ledger/internal/domain/ledger"
	"isp-ledger/internal/report"
)

func SetupRouter(accountService account.AccountService, ledgerService ledger.LedgerService,
	reportGenerator *report.Generator, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupAccountRoutes(router, cfg, accountService, ledgerService, logger)
	setupReportRoutes(router, cfg, accountService, ledgerService, reportGenerator, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupAccountRoutes(router *chi.Mux, cfg *config.Config, accountService account.AccountService,
	ledgerService ledger.LedgerService, logger *slog.Logger) {
	accountHandler := handler.NewAccountHandler(accountService, cfg.Batch.UpcomingWindowDays, logger)
	paymentHandler := handler.NewPaymentHandler(ledgerService, logger)

	router.Route("/accounts", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))

		// Staff-only surface; customer tokens are rejected here.
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)
			r.Post("/", accountHandler.CreateAccount)
			r.Get("/", accountHandler.ListAccounts)
			r.Get("/renewals", accountHandler.ListRenewals)
			r.Post("/rollover", accountHandler.TriggerRollover)
		})

		r.Route("/{accountID}", func(r chi.Router) {
			// Reads are account-scoped for customer tokens.
			r.Get("/", accountHandler.GetAccount)
			r.Get("/payments", paymentHandler.ListPaymentHistory)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)
				r.Put("/", accountHandler.UpdateAccount)
				r.Delete("/", accountHandler.DeleteAccount)
				r.Post("/payments", paymentHandler.RecordPayment)
			})
		})
	})
}

func setupReportRoutes(router *chi.Mux, cfg *config.Config, accountService account.AccountService,
	ledgerService ledger.LedgerService, reportGenerator *report.Generator, logger *slog.Logger) {
	reportHandler := handler.NewReportHandler(accountService, ledgerService, reportGenerator,
		cfg.Batch.UpcomingWindowDays, logger)

	router.Route("/reports", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)
			r.Get("/pending-balances", reportHandler.PendingBalances)
			r.Get("/renewals", reportHandler.Renewals)
		})

		r.Get("/accounts/{accountID}/payments", reportHandler.PaymentHistory)
	})
}
