package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"

	"github.com/rs/zerolog"
)

// Context key type to avoid collisions.
type contextKey string

// userContextKey is the context key for the authenticated user.
const userContextKey contextKey = "user"

// dateFormat is the wire format for transaction and billing dates.
const dateFormat = "2006-01-02"

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db     *storage.DB
	tokens *auth.Tokens
	log    zerolog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, tokens *auth.Tokens, log zerolog.Logger) *Handlers {
	return &Handlers{db: db, tokens: tokens, log: log}
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// RequireUser wraps handlers to require a valid token. The token travels as
// a `token` query parameter, is verified against the signing secret, and the
// userId claim must resolve to an existing user. This runs on every request;
// there is no session cache.
func (h *Handlers) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			h.unauthorized(w)
			return
		}

		userID, err := h.tokens.Verify(token)
		if err != nil {
			h.unauthorized(w)
			return
		}

		user, err := h.db.GetUserByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to resolve token user")
			}
			h.unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
}

// Welcome handles GET /, the unauthenticated liveness message.
func (h *Handlers) Welcome(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Finance Tracker API"})
}

func validDate(s string) bool {
	_, err := time.Parse(dateFormat, s)
	return err == nil
}
