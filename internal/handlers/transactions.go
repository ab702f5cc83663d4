package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	BankAccountID   *int64           `json:"bank_account_id"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	TransactionDate string           `json:"transaction_date"`
}

// CreateTransaction handles POST /transactions/. The target bank account
// must belong to the caller; an account owned by someone else is reported
// as not found and nothing is inserted.
func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	fields := map[string]string{}
	if req.BankAccountID == nil {
		fields["bank_account_id"] = "This field is required"
	}
	if req.Amount == nil {
		fields["amount"] = "This field is required"
	}
	if req.TransactionDate == "" {
		fields["transaction_date"] = "This field is required"
	} else if !validDate(req.TransactionDate) {
		fields["transaction_date"] = "Must be a date in YYYY-MM-DD format"
	}
	if len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	if _, err := h.db.GetBankAccount(r.Context(), *req.BankAccountID, user.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Bank account not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to check bank account ownership")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	transaction, err := h.db.CreateTransaction(r.Context(), &models.Transaction{
		BankAccountID:   *req.BankAccountID,
		Amount:          *req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusCreated, transaction)
}

// ListTransactions handles GET /transactions/?bank_account_id=N, scoped to
// one of the caller's bank accounts.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	accountParam := r.URL.Query().Get("bank_account_id")
	if accountParam == "" {
		WriteValidationError(w, map[string]string{"bank_account_id": "This field is required"})
		return
	}
	accountID, err := strconv.ParseInt(accountParam, 10, 64)
	if err != nil {
		WriteValidationError(w, map[string]string{"bank_account_id": "Must be a number"})
		return
	}

	if _, err := h.db.GetBankAccount(r.Context(), accountID, user.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "Bank account not found")
			return
		}
		h.log.Error().Err(err).Msg("Failed to check bank account ownership")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	transactions, err := h.db.ListTransactions(r.Context(), accountID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	WriteJSON(w, http.StatusOK, transactions)
}
