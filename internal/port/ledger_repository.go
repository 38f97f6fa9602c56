package port

import (
	"context"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

type LedgerRepository interface {
	// Record persists a processed transaction together with the account balance after it
	Record(ctx context.Context, tx domain.Transaction, balanceCents int64) error

	// Transactions lists recorded transactions for an account, oldest first
	Transactions(ctx context.Context, account string) ([]domain.Transaction, error)
}
