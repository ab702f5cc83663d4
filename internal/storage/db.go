package storage

import (
	"context"
	"database/sql"

	"finance-tracker/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. Every read and write on owned
// resources is scoped by the owning user's id; a row that exists but
// belongs to another user is indistinguishable from a missing row
// (sql.ErrNoRows).
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bank_accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			account_type TEXT NOT NULL,
			institution TEXT NOT NULL DEFAULT '',
			account_number TEXT NOT NULL DEFAULT '',
			balance TEXT NOT NULL DEFAULT '0',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bank_account_id INTEGER NOT NULL,
			amount TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			transaction_date TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (bank_account_id) REFERENCES bank_accounts(id)
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			amount TEXT NOT NULL,
			billing_cycle TEXT NOT NULL,
			next_billing_date TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// --- Users ------------------------------------------------------------------

// CreateUser creates a new user and returns the persisted row.
func (db *DB) CreateUser(ctx context.Context, firstName, lastName, email, passwordHash string) (*models.User, error) {
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password_hash) VALUES (?, ?, ?, ?)",
		firstName, lastName, email, passwordHash,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, email, password_hash, created_at FROM users WHERE id = ?",
		id,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, email, password_hash, created_at FROM users WHERE email = ?",
		email,
	)

	var u models.User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Bank accounts ----------------------------------------------------------

// CreateBankAccount inserts a new bank account for the given owner and
// returns the persisted row.
func (db *DB) CreateBankAccount(ctx context.Context, a *models.BankAccount) (*models.BankAccount, error) {
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO bank_accounts (user_id, name, account_type, institution, account_number, balance) VALUES (?, ?, ?, ?, ?, ?)",
		a.UserID, a.Name, a.AccountType, a.Institution, a.AccountNumber, a.Balance,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetBankAccount(ctx, id, a.UserID)
}

// GetBankAccount retrieves a bank account by ID, but only if it belongs to
// the given user.
func (db *DB) GetBankAccount(ctx context.Context, id, userID int64) (*models.BankAccount, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, user_id, name, account_type, institution, account_number, balance, created_at FROM bank_accounts WHERE id = ? AND user_id = ?",
		id, userID,
	)
	return scanBankAccount(row)
}

// ListBankAccounts retrieves all bank accounts owned by the given user in
// insertion order.
func (db *DB) ListBankAccounts(ctx context.Context, userID int64) ([]models.BankAccount, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, user_id, name, account_type, institution, account_number, balance, created_at FROM bank_accounts WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		var a models.BankAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.AccountType, &a.Institution, &a.AccountNumber, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func scanBankAccount(row *sql.Row) (*models.BankAccount, error) {
	var a models.BankAccount
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.AccountType, &a.Institution, &a.AccountNumber, &a.Balance, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// --- Transactions -----------------------------------------------------------

// CreateTransaction inserts a new transaction and returns the persisted
// row. The caller must have verified ownership of the target account; the
// parent account's balance is not touched.
func (db *DB) CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO transactions (bank_account_id, amount, description, category, transaction_date) VALUES (?, ?, ?, ?, ?)",
		t.BankAccountID, t.Amount, t.Description, t.Category, t.TransactionDate,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	row := db.conn.QueryRowContext(ctx,
		"SELECT id, bank_account_id, amount, description, category, transaction_date, created_at FROM transactions WHERE id = ?",
		id,
	)
	var tx models.Transaction
	if err := row.Scan(&tx.ID, &tx.BankAccountID, &tx.Amount, &tx.Description, &tx.Category, &tx.TransactionDate, &tx.CreatedAt); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions retrieves all transactions for a bank account in
// insertion order. The caller must have verified ownership of the account.
func (db *DB) ListTransactions(ctx context.Context, bankAccountID int64) ([]models.Transaction, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, bank_account_id, amount, description, category, transaction_date, created_at FROM transactions WHERE bank_account_id = ? ORDER BY id",
		bankAccountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.BankAccountID, &t.Amount, &t.Description, &t.Category, &t.TransactionDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// --- Subscriptions ----------------------------------------------------------

// CreateSubscription inserts a new subscription for the given owner and
// returns the persisted row.
func (db *DB) CreateSubscription(ctx context.Context, s *models.Subscription) (*models.Subscription, error) {
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO subscriptions (user_id, name, amount, billing_cycle, next_billing_date, category, is_active) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.UserID, s.Name, s.Amount, s.BillingCycle, s.NextBillingDate, s.Category, s.IsActive,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetSubscription(ctx, id, s.UserID)
}

// GetSubscription retrieves a subscription by ID, but only if it belongs to
// the given user.
func (db *DB) GetSubscription(ctx context.Context, id, userID int64) (*models.Subscription, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, user_id, name, amount, billing_cycle, next_billing_date, category, is_active, created_at FROM subscriptions WHERE id = ? AND user_id = ?",
		id, userID,
	)

	var s models.Subscription
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Amount, &s.BillingCycle, &s.NextBillingDate, &s.Category, &s.IsActive, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSubscriptions retrieves all subscriptions owned by the given user in
// insertion order.
func (db *DB) ListSubscriptions(ctx context.Context, userID int64) ([]models.Subscription, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, user_id, name, amount, billing_cycle, next_billing_date, category, is_active, created_at FROM subscriptions WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscriptions []models.Subscription
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Amount, &s.BillingCycle, &s.NextBillingDate, &s.Category, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, s)
	}

	return subscriptions, rows.Err()
}

// UpdateSubscription replaces every stored field of a subscription with the
// values in s, but only if the row belongs to the given user. Returns
// sql.ErrNoRows when no owned row matches.
func (db *DB) UpdateSubscription(ctx context.Context, s *models.Subscription) (*models.Subscription, error) {
	result, err := db.conn.ExecContext(ctx,
		"UPDATE subscriptions SET name = ?, amount = ?, billing_cycle = ?, next_billing_date = ?, category = ?, is_active = ? WHERE id = ? AND user_id = ?",
		s.Name, s.Amount, s.BillingCycle, s.NextBillingDate, s.Category, s.IsActive, s.ID, s.UserID,
	)
	if err != nil {
		return nil, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, sql.ErrNoRows
	}

	return db.GetSubscription(ctx, s.ID, s.UserID)
}

// DeleteSubscription removes a subscription, but only if it belongs to the
// given user. Returns sql.ErrNoRows when no owned row matches.
func (db *DB) DeleteSubscription(ctx context.Context, id, userID int64) error {
	result, err := db.conn.ExecContext(ctx,
		"DELETE FROM subscriptions WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
