package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/port"
)

// Processor confirms a transaction over one payment channel.
type Processor interface {
	Process(tx domain.Transaction) string
}

type channelProcessor struct {
	label string
}

func (p channelProcessor) Process(tx domain.Transaction) string {
	return fmt.Sprintf("[%s] Processed %s for %s", p.label, domain.FormatCents(tx.AmountCents), tx.Category)
}

var processors = map[domain.Channel]Processor{
	domain.ChannelMobileMoney:  channelProcessor{label: "Mobile Money"},
	domain.ChannelBankTransfer: channelProcessor{label: "Bank Transfer"},
	domain.ChannelCryptoWallet: channelProcessor{label: "Crypto Wallet"},
}

func ProcessorFor(channel domain.Channel) (Processor, error) {
	p, ok := processors[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	return p, nil
}

// SavingsAccount never lets the balance drop below zero.
type SavingsAccount struct {
	Number       string
	balanceCents int64
}

func NewSavingsAccount(number string, openingCents int64) *SavingsAccount {
	return &SavingsAccount{Number: number, balanceCents: openingCents}
}

func (a *SavingsAccount) BalanceCents() int64 { return a.balanceCents }

func (a *SavingsAccount) Apply(tx domain.Transaction) error {
	if tx.AmountCents > a.balanceCents {
		return ErrInsufficientFunds
	}
	a.balanceCents -= tx.AmountCents
	return nil
}

type Receipt struct {
	Transaction  domain.Transaction
	Confirmation string
	BalanceCents int64
}

type Finance struct {
	mu      sync.Mutex
	account *SavingsAccount
	history []domain.Transaction
	ledger  port.LedgerRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewFinance(account *SavingsAccount, ledger port.LedgerRepository, logger *zap.Logger) *Finance {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finance{
		account: account,
		ledger:  ledger,
		logger:  logger,
		now:     time.Now,
	}
}

// Process runs a transaction through the channel's processor and applies it
// to the account. A transaction refused for insufficient funds is still
// recorded, with status rejected, and the receipt is returned alongside
// ErrInsufficientFunds.
func (f *Finance) Process(ctx context.Context, channel domain.Channel, amountCents int64, category string) (Receipt, error) {
	if amountCents <= 0 {
		return Receipt{}, fmt.Errorf("%w: must be greater than zero, got %d", domain.ErrInvalidAmount, amountCents)
	}
	processor, err := ProcessorFor(channel)
	if err != nil {
		return Receipt{}, err
	}
	if strings.TrimSpace(category) == "" {
		category = "Uncategorized"
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tx := domain.Transaction{
		ID:          len(f.history) + 1,
		Reference:   uuid.NewString(),
		Account:     f.account.Number,
		Date:        f.now(),
		AmountCents: amountCents,
		Category:    category,
		Channel:     channel,
		Status:      domain.TransactionStatusApplied,
	}

	receipt := Receipt{Confirmation: processor.Process(tx)}

	applyErr := f.account.Apply(tx)
	if applyErr != nil {
		tx.Status = domain.TransactionStatusRejected
	}
	f.history = append(f.history, tx)

	receipt.Transaction = tx
	receipt.BalanceCents = f.account.BalanceCents()

	if f.ledger != nil {
		if err := f.ledger.Record(ctx, tx, receipt.BalanceCents); err != nil {
			f.logger.Warn("ledger record failed",
				zap.String("reference", tx.Reference), zap.Error(err))
		}
	}

	f.logger.Debug("transaction processed",
		zap.Int("id", tx.ID),
		zap.String("channel", string(channel)),
		zap.Int64("amount_cents", amountCents),
		zap.String("status", string(tx.Status)),
	)
	return receipt, applyErr
}

func (f *Finance) BalanceCents() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.account.BalanceCents()
}

func (f *Finance) History() []domain.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Transaction, len(f.history))
	copy(out, f.history)
	return out
}
