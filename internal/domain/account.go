// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the account with the given number already exists.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrInvalidAccountKind indicates that the account kind is not supported.
	ErrInvalidAccountKind = errors.New("invalid account type")
	// ErrAccountOwnerMismatch indicates that the account does not belong to the user.
	ErrAccountOwnerMismatch = errors.New("account owner mismatch")
	// ErrOverdraftExceeded indicates that the withdrawal goes beyond the overdraft limit.
	ErrOverdraftExceeded = errors.New("overdraft limit exceeded")
	// ErrUnsupportedOperation indicates that the operation is not defined for the account kind.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Kind is the account variant.
type Kind string

// Supported account kinds.
const (
	KindSavings Kind = "savings"
	KindCurrent Kind = "current"
)

// IsSupportedKind returns true if the kind is supported.
func IsSupportedKind(kind string) bool {
	switch Kind(kind) {
	case KindSavings, KindCurrent:
		return true
	}

	return false
}

// CreateAccountParams is the input data to open an account.
type CreateAccountParams struct {
	Number         string
	Holder         string
	Kind           Kind
	Balance        decimal.Decimal
	InterestRate   decimal.Decimal // savings only
	OverdraftLimit decimal.Decimal // current only
}

// Account is a live bank account.
//
// Its fields are unexported: the balance changes only through Deposit,
// Withdraw, ApplyInterest and Transfer, each of which validates the whole
// request before touching the balance.
type Account struct {
	number         string
	holder         string
	kind           Kind
	balance        decimal.Decimal
	interestRate   decimal.Decimal
	overdraftLimit decimal.Decimal
	createdAt      time.Time
}

// NewAccount opens an account from the given params.
func NewAccount(arg CreateAccountParams) (*Account, error) {
	a := &Account{
		number:    arg.Number,
		holder:    arg.Holder,
		kind:      arg.Kind,
		balance:   arg.Balance,
		createdAt: time.Now().UTC(),
	}

	switch arg.Kind {
	case KindSavings:
		if arg.InterestRate.IsNegative() {
			return nil, ErrInvalidAmount
		}

		a.interestRate = arg.InterestRate
	case KindCurrent:
		if arg.OverdraftLimit.IsNegative() {
			return nil, ErrInvalidAmount
		}

		a.overdraftLimit = arg.OverdraftLimit
	default:
		return nil, ErrInvalidAccountKind
	}

	if a.balance.LessThan(a.floor()) {
		return nil, ErrInvalidAmount
	}

	return a, nil
}

// Number returns the account number.
func (a *Account) Number() string { return a.number }

// Holder returns the account holder name.
func (a *Account) Holder() string { return a.holder }

// Kind returns the account variant.
func (a *Account) Kind() Kind { return a.kind }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// floor is the lowest balance the account may reach.
func (a *Account) floor() decimal.Decimal {
	if a.kind == KindCurrent {
		return a.overdraftLimit.Neg()
	}

	return decimal.Zero
}

// Deposit increases the balance by amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.balance = a.balance.Add(amount)

	return nil
}

// Withdraw decreases the balance by amount following the policy of the account kind.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	switch a.kind {
	case KindSavings:
		if amount.GreaterThan(a.balance) {
			return ErrInsufficientBalance
		}
	case KindCurrent:
		if amount.GreaterThan(a.balance.Add(a.overdraftLimit)) {
			return ErrOverdraftExceeded
		}
	default:
		return ErrInvalidAccountKind
	}

	a.balance = a.balance.Sub(amount)

	return nil
}

// ApplyInterest credits balance*rate to a savings account.
func (a *Account) ApplyInterest() error {
	if a.kind != KindSavings {
		return ErrUnsupportedOperation
	}

	a.balance = a.balance.Add(a.balance.Mul(a.interestRate))

	return nil
}

// View returns a read-only snapshot of the account.
func (a *Account) View() AccountView {
	v := AccountView{
		Number:    a.number,
		Holder:    a.holder,
		Kind:      a.kind,
		Balance:   a.balance,
		CreatedAt: a.createdAt,
	}

	switch a.kind {
	case KindSavings:
		rate := a.interestRate
		v.InterestRate = &rate
	case KindCurrent:
		limit := a.overdraftLimit
		v.OverdraftLimit = &limit
	}

	return v
}

// AccountView is a point in time copy of an account.
type AccountView struct {
	Number         string           `json:"account_number"`
	Holder         string           `json:"account_holder"`
	Kind           Kind             `json:"kind"`
	Balance        decimal.Decimal  `json:"balance"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}
