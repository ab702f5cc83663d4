package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/config"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/logger"
	"finance-tracker/internal/storage"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.NewHandlers(db, tokens, log)

	var handler http.Handler = setupRouter(h)
	handler = handlers.CORS(cfg.CORSOrigins)(handler)
	handler = handlers.RequestLogger(log)(handler)
	handler = handlers.Recovery(log)(handler)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
}

// setupRouter maps HTTP verbs and paths to handlers. Everything except the
// liveness message and the signup/login pair requires a token.
func setupRouter(h *handlers.Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Welcome)

	mux.HandleFunc("POST /auth/signup", h.Signup)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.Handle("GET /auth/session", h.RequireUser(http.HandlerFunc(h.Session)))

	mux.Handle("POST /subscriptions/{$}", h.RequireUser(http.HandlerFunc(h.CreateSubscription)))
	mux.Handle("GET /subscriptions/{$}", h.RequireUser(http.HandlerFunc(h.ListSubscriptions)))
	mux.Handle("GET /subscriptions/{id}", h.RequireUser(http.HandlerFunc(h.GetSubscription)))
	mux.Handle("PUT /subscriptions/{id}", h.RequireUser(http.HandlerFunc(h.UpdateSubscription)))
	mux.Handle("DELETE /subscriptions/{id}", h.RequireUser(http.HandlerFunc(h.DeleteSubscription)))

	mux.Handle("POST /bank-accounts/{$}", h.RequireUser(http.HandlerFunc(h.CreateBankAccount)))
	mux.Handle("GET /bank-accounts/{$}", h.RequireUser(http.HandlerFunc(h.ListBankAccounts)))

	mux.Handle("POST /transactions/{$}", h.RequireUser(http.HandlerFunc(h.CreateTransaction)))
	mux.Handle("GET /transactions/{$}", h.RequireUser(http.HandlerFunc(h.ListTransactions)))

	return mux
}
