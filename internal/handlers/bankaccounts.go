package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type bankAccountRequest struct {
	Name          string           `json:"name"`
	AccountType   string           `json:"account_type"`
	Institution   string           `json:"institution"`
	AccountNumber string           `json:"account_number"`
	Balance       *decimal.Decimal `json:"balance"`
}

// CreateBankAccount handles POST /bank-accounts/.
func (h *Handlers) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req bankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "This field is required"
	}
	if strings.TrimSpace(req.AccountType) == "" {
		fields["account_type"] = "This field is required"
	}
	if len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	account, err := h.db.CreateBankAccount(r.Context(), &models.BankAccount{
		UserID:        user.ID,
		Name:          req.Name,
		AccountType:   req.AccountType,
		Institution:   req.Institution,
		AccountNumber: req.AccountNumber,
		Balance:       balance,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create bank account")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusCreated, account)
}

// ListBankAccounts handles GET /bank-accounts/.
func (h *Handlers) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	accounts, err := h.db.ListBankAccounts(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list bank accounts")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if accounts == nil {
		accounts = []models.BankAccount{}
	}
	WriteJSON(w, http.StatusOK, accounts)
}
