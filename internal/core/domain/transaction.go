package domain

import "time"

type Channel string

const (
	ChannelMobileMoney  Channel = "mobile_money"
	ChannelBankTransfer Channel = "bank_transfer"
	ChannelCryptoWallet Channel = "crypto_wallet"
)

type TransactionStatus string

const (
	TransactionStatusApplied  TransactionStatus = "applied"
	TransactionStatusRejected TransactionStatus = "rejected"
)

type Transaction struct {
	ID          int
	Reference   string
	Account     string
	Date        time.Time
	AmountCents int64
	Category    string
	Channel     Channel
	Status      TransactionStatus
}
