package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBankAccount(t *testing.T) {
	h, db := newTestHandlers(t)
	user := createTestUser(t, db, "alice@example.com")

	body := `{"name":"Everyday","account_type":"checking","institution":"First National","account_number":"12345678","balance":150.25}`
	rec := httptest.NewRecorder()
	h.CreateBankAccount(rec, authedRequest(user, "POST", "/bank-accounts/", body))

	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var got models.BankAccount
	decodeBody(t, rec, &got)
	assert.NotZero(t, got.ID)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "Everyday", got.Name)
	assert.Equal(t, "checking", got.AccountType)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("150.25")))
	assert.False(t, got.CreatedAt.IsZero(), "creation timestamp should be server-assigned")
}

func TestCreateBankAccount_DefaultBalance(t *testing.T) {
	h, db := newTestHandlers(t)
	user := createTestUser(t, db, "alice@example.com")

	rec := httptest.NewRecorder()
	h.CreateBankAccount(rec, authedRequest(user, "POST", "/bank-accounts/", `{"name":"Everyday","account_type":"checking"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.BankAccount
	decodeBody(t, rec, &got)
	assert.True(t, got.Balance.IsZero(), "balance should default to 0")
}

func TestCreateBankAccount_Validation(t *testing.T) {
	h, db := newTestHandlers(t)
	user := createTestUser(t, db, "alice@example.com")

	rec := httptest.NewRecorder()
	h.CreateBankAccount(rec, authedRequest(user, "POST", "/bank-accounts/", `{"institution":"First National"}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "account_type")
}

func TestListBankAccounts_OwnerScoped(t *testing.T) {
	h, db := newTestHandlers(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	for _, a := range []struct {
		owner *models.User
		name  string
	}{
		{alice, "Alice Checking"},
		{bob, "Bob Checking"},
		{alice, "Alice Savings"},
	} {
		rec := httptest.NewRecorder()
		h.CreateBankAccount(rec, authedRequest(a.owner, "POST", "/bank-accounts/", `{"name":"`+a.name+`","account_type":"checking"}`))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ListBankAccounts(rec, authedRequest(alice, "GET", "/bank-accounts/", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var accounts []models.BankAccount
	decodeBody(t, rec, &accounts)
	require.Len(t, accounts, 2, "alice sees exactly her own accounts")
	assert.Equal(t, "Alice Checking", accounts[0].Name, "insertion order expected")
	assert.Equal(t, "Alice Savings", accounts[1].Name)
}

func TestListBankAccounts_Empty(t *testing.T) {
	h, db := newTestHandlers(t)
	user := createTestUser(t, db, "alice@example.com")

	rec := httptest.NewRecorder()
	h.ListBankAccounts(rec, authedRequest(user, "GET", "/bank-accounts/", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "empty list, not null")
}
