package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type subscriptionRequest struct {
	Name            string           `json:"name"`
	Amount          *decimal.Decimal `json:"amount"`
	BillingCycle    string           `json:"billing_cycle"`
	NextBillingDate string           `json:"next_billing_date"`
	Category        string           `json:"category"`
	IsActive        *bool            `json:"is_active"`
}

func (req *subscriptionRequest) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "This field is required"
	}
	if req.Amount == nil {
		fields["amount"] = "This field is required"
	}
	// Billing cycle is deliberately unvalidated free text
	if strings.TrimSpace(req.BillingCycle) == "" {
		fields["billing_cycle"] = "This field is required"
	}
	if req.NextBillingDate == "" {
		fields["next_billing_date"] = "This field is required"
	} else if !validDate(req.NextBillingDate) {
		fields["next_billing_date"] = "Must be a date in YYYY-MM-DD format"
	}
	return fields
}

// model maps the payload onto a subscription row. Omitted optional fields
// take their declared defaults: empty category, active true.
func (req *subscriptionRequest) model(userID int64) *models.Subscription {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &models.Subscription{
		UserID:          userID,
		Name:            req.Name,
		Amount:          *req.Amount,
		BillingCycle:    req.BillingCycle,
		NextBillingDate: req.NextBillingDate,
		Category:        req.Category,
		IsActive:        isActive,
	}
}

// CreateSubscription handles POST /subscriptions/.
func (h *Handlers) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	subscription, err := h.db.CreateSubscription(r.Context(), req.model(user.ID))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create subscription")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusCreated, subscription)
}

// ListSubscriptions handles GET /subscriptions/.
func (h *Handlers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	subscriptions, err := h.db.ListSubscriptions(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list subscriptions")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if subscriptions == nil {
		subscriptions = []models.Subscription{}
	}
	WriteJSON(w, http.StatusOK, subscriptions)
}

// GetSubscription handles GET /subscriptions/{id}. A subscription that
// exists but belongs to another user is reported as not found.
func (h *Handlers) GetSubscription(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	id, err := subscriptionID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	subscription, err := h.db.GetSubscription(r.Context(), id, user.ID)
	if err != nil {
		h.subscriptionError(w, err, "Failed to get subscription")
		return
	}

	WriteJSON(w, http.StatusOK, subscription)
}

// UpdateSubscription handles PUT /subscriptions/{id} as a full replace:
// every stored field is overwritten from the payload, with omitted optional
// fields falling back to their defaults rather than the prior values.
func (h *Handlers) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	id, err := subscriptionID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if fields := req.validate(); len(fields) > 0 {
		WriteValidationError(w, fields)
		return
	}

	subscription := req.model(user.ID)
	subscription.ID = id

	updated, err := h.db.UpdateSubscription(r.Context(), subscription)
	if err != nil {
		h.subscriptionError(w, err, "Failed to update subscription")
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// DeleteSubscription handles DELETE /subscriptions/{id}.
func (h *Handlers) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	id, err := subscriptionID(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subscription not found")
		return
	}

	if err := h.db.DeleteSubscription(r.Context(), id, user.ID); err != nil {
		h.subscriptionError(w, err, "Failed to delete subscription")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Subscription deleted successfully"})
}

func subscriptionID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (h *Handlers) subscriptionError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, http.StatusNotFound, "Subscription not found")
		return
	}
	h.log.Error().Err(err).Msg(msg)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
