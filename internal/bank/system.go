// Package bank wires the account registry, the credential store and the
// operations on them into one System owned by its caller.
package bank

import (
	"context"
	"fmt"

	"github.com/go-petr/pet-bank/internal/accountrepo"
	"github.com/go-petr/pet-bank/internal/accountservice"
	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/internal/sessionrepo"
	"github.com/go-petr/pet-bank/internal/sessionservice"
	"github.com/go-petr/pet-bank/internal/transferservice"
	"github.com/go-petr/pet-bank/internal/userrepo"
	"github.com/go-petr/pet-bank/internal/userservice"
	"github.com/go-petr/pet-bank/pkg/configpkg"
	"github.com/go-petr/pet-bank/pkg/passpkg"
	"github.com/go-petr/pet-bank/pkg/tokenpkg"
	"github.com/shopspring/decimal"
)

// System is an isolated bank: two Systems never share accounts or users.
type System struct {
	accounts  *accountservice.Service
	transfers *transferservice.Service
	users     *userservice.Service
	sessions  *sessionservice.Service
}

// New returns an empty System configured by c.
func New(c configpkg.Config) (*System, error) {
	hasher, err := passpkg.New(c.PasswordHasher)
	if err != nil {
		return nil, err
	}

	rate, err := c.InterestRate()
	if err != nil {
		return nil, fmt.Errorf("savings interest rate: %w", err)
	}

	limit, err := c.OverdraftLimit()
	if err != nil {
		return nil, fmt.Errorf("current overdraft limit: %w", err)
	}

	tokenMaker, err := tokenpkg.New(c.TokenType, c.TokenSymmetricKey)
	if err != nil {
		return nil, err
	}

	accountRepo := accountrepo.NewRepoMem()

	users := userservice.New(userrepo.NewRepoMem(), hasher)

	sessions, err := sessionservice.New(sessionrepo.NewRepoMem(), c, tokenMaker)
	if err != nil {
		return nil, err
	}

	return &System{
		accounts: accountservice.New(accountRepo, users, accountservice.Defaults{
			InterestRate:   rate,
			OverdraftLimit: limit,
		}),
		transfers: transferservice.New(accountRepo),
		users:     users,
		sessions:  sessions,
	}, nil
}

// Accounts returns the account operations.
func (s *System) Accounts() *accountservice.Service { return s.accounts }

// Transfers returns the transfer operations.
func (s *System) Transfers() *transferservice.Service { return s.transfers }

// Users returns the credential store.
func (s *System) Users() *userservice.Service { return s.users }

// Sessions returns the login session manager.
func (s *System) Sessions() *sessionservice.Service { return s.sessions }

// CreateAccount opens an empty account of kind and lets holder log in to it
// with password.
func (s *System) CreateAccount(ctx context.Context, kind, number, holder, password string) error {
	_, err := s.accounts.Create(ctx, kind, number, holder, password)

	return err
}

// Authenticate returns the account number bound to userID.
func (s *System) Authenticate(ctx context.Context, userID, password string) (string, error) {
	user, err := s.users.Authenticate(ctx, userID, password)
	if err != nil {
		return "", err
	}

	return user.AccountNumber, nil
}

// GetAccountView returns a snapshot of the account.
func (s *System) GetAccountView(ctx context.Context, number string) (domain.AccountView, error) {
	return s.accounts.Get(ctx, number)
}

// Deposit returns the balance after adding amount.
func (s *System) Deposit(ctx context.Context, number string, amount decimal.Decimal) (decimal.Decimal, error) {
	account, err := s.accounts.Deposit(ctx, number, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return account.Balance, nil
}

// Withdraw returns the balance after taking amount.
func (s *System) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (decimal.Decimal, error) {
	account, err := s.accounts.Withdraw(ctx, number, amount)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return account.Balance, nil
}

// ApplyInterest returns the balance of a savings account after crediting interest.
func (s *System) ApplyInterest(ctx context.Context, number string) (decimal.Decimal, error) {
	account, err := s.accounts.ApplyInterest(ctx, number)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return account.Balance, nil
}

// Transfer returns the balance of from after moving amount to to.
func (s *System) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	result, err := s.transfers.Transfer(ctx, domain.CreateTransferParams{
		FromAccountNumber: from,
		ToAccountNumber:   to,
		Amount:            amount,
	})
	if err != nil {
		return decimal.Decimal{}, err
	}

	return result.FromAccount.Balance, nil
}
