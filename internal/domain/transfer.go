package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidOwner indicates that the user is unauthorized to transfer money from the account.
	ErrInvalidOwner = errors.New("unauthorized owner")
)

// Transfer moves amount from one account to another.
//
// The source balance is checked strictly against amount: the overdraft limit
// of a current account only applies to direct withdrawals. Either both
// balances change or neither does. from and to may be the same account, in
// which case the balance is checked but left unchanged.
func Transfer(from, to *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if from.balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	from.balance = from.balance.Sub(amount)
	to.balance = to.balance.Add(amount)

	return nil
}

// TransferRecord holds transfer data between two accounts.
type TransferRecord struct {
	ID                uuid.UUID       `json:"id"`
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"` // must be positive
	CreatedAt         time.Time       `json:"created_at"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountNumber string          `json:"from_account_number"`
	ToAccountNumber   string          `json:"to_account_number"`
	Amount            decimal.Decimal `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Transfer    TransferRecord `json:"transfer"`
	FromAccount AccountView    `json:"from_account"`
	ToAccount   AccountView    `json:"to_account"`
}
