package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"finance-tracker/internal/auth"
)

type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /auth/signup: self-registration.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["first_name"] = "This field is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["last_name"] = "This field is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "This field is required"
	}
	if req.Password == "" {
		fields["password"] = "This field is required"
	}
	if len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	if _, err := h.db.GetUserByEmail(r.Context(), req.Email); err == nil {
		WriteError(w, http.StatusConflict, "Email already in use")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.log.Error().Err(err).Msg("Failed to check email uniqueness")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.db.CreateUser(r.Context(), req.FirstName, req.LastName, req.Email, hash)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create user")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /auth/login: password verification and token issuance.
// A missing user and a wrong password produce the same response.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "This field is required"
	}
	if req.Password == "" {
		fields["password"] = "This field is required"
	}
	if len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			h.log.Error().Err(err).Msg("Failed to look up user")
		}
		WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to sign token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Session handles GET /auth/session: returns the authenticated user.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, GetUserFromContext(r))
}
