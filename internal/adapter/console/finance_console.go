package console

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/service"
)

var channelChoices = map[int]domain.Channel{
	1: domain.ChannelMobileMoney,
	2: domain.ChannelBankTransfer,
	3: domain.ChannelCryptoWallet,
}

type FinanceConsole struct {
	finance *service.Finance
	p       *Prompter
}

func NewFinanceConsole(finance *service.Finance, p *Prompter) *FinanceConsole {
	return &FinanceConsole{finance: finance, p: p}
}

// Run asks for another transaction after each attempt instead of pausing.
// Only an answer of "y" keeps the loop going.
func (c *FinanceConsole) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		if err := c.step(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		answer, err := c.p.Ask("\nDo you want to make another transaction? (y/n): ")
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			break
		}
	}
	c.p.Println("Thank you for using the Finance Management System!")
	return nil
}

func (c *FinanceConsole) step(ctx context.Context) error {
	c.p.Println("\n===== Finance Management System =====")
	c.p.Printf("Current Balance: %s\n", domain.FormatCents(c.finance.BalanceCents()))
	c.p.Println("\n1. Mobile Money Transfer")
	c.p.Println("2. Bank Transfer")
	c.p.Println("3. Crypto Transfer")
	c.p.Println("4. View Transaction History")
	choice, ok, err := c.p.AskInt("\nSelect transaction type (1-4): ")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Invalid choice!")
		return nil
	}
	if choice == 4 {
		c.printHistory()
		return nil
	}
	return c.transact(ctx, choice)
}

func (c *FinanceConsole) transact(ctx context.Context, choice int) error {
	raw, err := c.p.Ask("Enter amount: ")
	if err != nil {
		return err
	}
	amount, err := domain.ParseCents(raw)
	if err != nil {
		c.p.Println("Invalid amount!")
		return nil
	}
	category, err := c.p.Ask("Enter category: ")
	if err != nil {
		return err
	}

	channel, ok := channelChoices[choice]
	if !ok {
		c.p.Println("Invalid processor type.")
		return nil
	}

	receipt, err := c.finance.Process(ctx, channel, amount, category)
	switch {
	case errors.Is(err, service.ErrInsufficientFunds):
		c.p.Println(receipt.Confirmation)
		c.p.Println("Insufficient funds for transaction.")
	case errors.Is(err, domain.ErrInvalidAmount):
		c.p.Println("Invalid amount!")
	case err != nil:
		c.p.Printf("Error: %v\n", err)
	default:
		c.p.Println(receipt.Confirmation)
		c.p.Printf("Transaction successful. Remaining balance: %s\n", domain.FormatCents(receipt.BalanceCents))
	}
	return nil
}

func (c *FinanceConsole) printHistory() {
	history := c.finance.History()
	if len(history) == 0 {
		c.p.Println("No transactions yet.")
		return
	}
	c.p.Println("\nTransaction History:")
	for _, tx := range history {
		c.p.Printf("#%d %s %-13s %-9s %10s  %s\n",
			tx.ID, tx.Date.Format("2006-01-02 15:04"), tx.Channel, tx.Status,
			domain.FormatCents(tx.AmountCents), tx.Category)
	}
}
