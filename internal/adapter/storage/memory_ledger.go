package storage

import (
	"context"
	"sync"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

// MemoryLedger keeps transactions for the lifetime of the process only.
type MemoryLedger struct {
	mu       sync.Mutex
	txs      map[string][]domain.Transaction
	balances map[string]int64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		txs:      make(map[string][]domain.Transaction),
		balances: make(map[string]int64),
	}
}

func (m *MemoryLedger) Record(ctx context.Context, tx domain.Transaction, balanceCents int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs[tx.Account] = append(m.txs[tx.Account], tx)
	m.balances[tx.Account] = balanceCents
	return nil
}

func (m *MemoryLedger) Transactions(ctx context.Context, account string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, len(m.txs[account]))
	copy(out, m.txs[account])
	return out, nil
}

func (m *MemoryLedger) Balance(ctx context.Context, account string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[account]
	return b, ok, nil
}
