package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

// ledgerSchema sticks to DDL accepted by both MySQL and SQLite.
var ledgerSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		number VARCHAR(64) PRIMARY KEY,
		balance_cents BIGINT NOT NULL,
		version INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		reference VARCHAR(36) PRIMARY KEY,
		id INT NOT NULL,
		account VARCHAR(64) NOT NULL,
		channel VARCHAR(32) NOT NULL,
		category VARCHAR(255) NOT NULL,
		amount_cents BIGINT NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at_ms BIGINT NOT NULL
	)`,
}

type SQLLedger struct {
	db *sql.DB
}

func NewSQLLedger(db *sql.DB) *SQLLedger {
	return &SQLLedger{db: db}
}

// OpenLedgerDB opens and pings a database for the given driver ("mysql" or "sqlite").
func OpenLedgerDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

func (l *SQLLedger) EnsureSchema(ctx context.Context) error {
	for _, stmt := range ledgerSchema {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (l *SQLLedger) Record(ctx context.Context, t domain.Transaction, balanceCents int64) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (reference, id, account, channel, category, amount_cents, status, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Reference, t.ID, t.Account, string(t.Channel), t.Category, t.AmountCents,
		string(t.Status), t.Date.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance_cents = ?, version = version + 1
		WHERE number = ?`,
		balanceCents, t.Account,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO accounts (number, balance_cents, version) VALUES (?, ?, 1)`,
			t.Account, balanceCents,
		)
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
	}

	return tx.Commit()
}

func (l *SQLLedger) Transactions(ctx context.Context, account string) ([]domain.Transaction, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT reference, id, account, channel, category, amount_cents, status, created_at_ms
		FROM transactions WHERE account = ? ORDER BY id`, account,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			t       domain.Transaction
			channel string
			status  string
			created int64
		)
		if err := rows.Scan(&t.Reference, &t.ID, &t.Account, &channel, &t.Category,
			&t.AmountCents, &status, &created); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Channel = domain.Channel(channel)
		t.Status = domain.TransactionStatus(status)
		t.Date = time.UnixMilli(created)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance returns the last recorded balance. The bool is false for unknown accounts.
func (l *SQLLedger) Balance(ctx context.Context, account string) (int64, bool, error) {
	var balance int64
	err := l.db.QueryRowContext(ctx,
		`SELECT balance_cents FROM accounts WHERE number = ?`, account,
	).Scan(&balance)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query balance: %w", err)
	}
	return balance, true, nil
}
