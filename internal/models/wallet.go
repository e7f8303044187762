package models

import "time"

// Transaction types for the wallet ledger.
const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

// Wallet balances are kept in integer currency-agnostic units so the ledger
// invariant (balance == sum of credits - sum of debits) is exact.
type Wallet struct {
	UserID  int   `json:"user_id"`
	Balance int64 `json:"balance"`
}

type WalletTransaction struct {
	ID          int64     `json:"id"`
	UserID      int       `json:"user_id"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"timestamp"`
}

type WalletAmountRequest struct {
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}
