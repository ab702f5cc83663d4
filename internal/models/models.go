package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered user. The stored password hash is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// BankAccount is a financial account belonging to exactly one user.
type BankAccount struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Name          string          `json:"name"`
	AccountType   string          `json:"account_type"`
	Institution   string          `json:"institution"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Transaction is a ledger entry belonging to exactly one bank account.
// TransactionDate is the date the transaction happened, distinct from
// CreatedAt, and is held in YYYY-MM-DD form.
type Transaction struct {
	ID              int64           `json:"id"`
	BankAccountID   int64           `json:"bank_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	TransactionDate string          `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Subscription is a recurring payment obligation belonging to exactly one
// user. BillingCycle is free text (monthly, yearly, ...).
type Subscription struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	BillingCycle    string          `json:"billing_cycle"`
	NextBillingDate string          `json:"next_billing_date"`
	Category        string          `json:"category"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}
