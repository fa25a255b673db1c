// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	CreateWith(
		ctx context.Context,
		arg domain.CreateAccountParams,
		commit func(domain.AccountView) error,
	) (domain.AccountView, error)
	Get(ctx context.Context, number string) (domain.AccountView, error)
	List(ctx context.Context, holder string, limit, offset int32) ([]domain.AccountView, error)
	Update(ctx context.Context, number string, fn func(*domain.Account) error) (domain.AccountView, error)
}

// Registrar binds login credentials to an account.
type Registrar interface {
	Register(ctx context.Context, username, password, accountNumber string) (domain.UserWihtoutPassword, error)
}

// Defaults holds the variant parameters given to newly opened accounts.
type Defaults struct {
	InterestRate   decimal.Decimal
	OverdraftLimit decimal.Decimal
}

// Service facilitates account service layer logic.
type Service struct {
	repo      Repo
	registrar Registrar
	defaults  Defaults
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, r Registrar, d Defaults) *Service {
	return &Service{
		repo:      ar,
		registrar: r,
		defaults:  d,
	}
}

// Create opens an empty account and registers the holder's credentials for it.
//
// The holder name is the login name. Registration runs while the new account
// is still locked, so if it fails the account is taken back before any other
// operation has touched it.
func (s *Service) Create(ctx context.Context, kind, number, holder, password string) (account domain.AccountView, err error) {
	l := zerolog.Ctx(ctx)

	defer func() { metrics.Observe(metrics.OpCreateAccount, err) }()

	params := domain.CreateAccountParams{
		Number:         number,
		Holder:         holder,
		Kind:           domain.Kind(kind),
		Balance:        decimal.Zero,
		InterestRate:   s.defaults.InterestRate,
		OverdraftLimit: s.defaults.OverdraftLimit,
	}

	account, err = s.repo.CreateWith(ctx, params, func(domain.AccountView) error {
		if _, err := s.registrar.Register(ctx, holder, password, number); err != nil {
			l.Error().Err(err).Str("account_number", number).Msg("cannot register credentials")
			return err
		}

		return nil
	})
	if err != nil {
		return domain.AccountView{}, err
	}

	l.Info().Str("account_number", number).Str("kind", kind).Msg("account created")

	return account, nil
}

// Get returns account for the given account number.
func (s *Service) Get(ctx context.Context, number string) (domain.AccountView, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns accounts that are owned by the given holder.
func (s *Service) List(ctx context.Context, holder string, pageSize, pageID int32) ([]domain.AccountView, error) {
	if pageID < 1 {
		pageID = 1
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, holder, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, err
}

func (s *Service) update(ctx context.Context, op, number string, fn func(*domain.Account) error) (domain.AccountView, error) {
	account, err := s.repo.Update(ctx, number, fn)

	metrics.Observe(op, err)

	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Str("operation", op).Str("account_number", number).Send()
		return account, err
	}

	return account, nil
}

// Deposit adds amount to the account and returns the updated account.
func (s *Service) Deposit(ctx context.Context, number string, amount decimal.Decimal) (domain.AccountView, error) {
	return s.update(ctx, metrics.OpDeposit, number, func(a *domain.Account) error {
		return a.Deposit(amount)
	})
}

// Withdraw takes amount from the account following its kind's policy.
func (s *Service) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (domain.AccountView, error) {
	return s.update(ctx, metrics.OpWithdraw, number, func(a *domain.Account) error {
		return a.Withdraw(amount)
	})
}

// ApplyInterest credits interest to a savings account.
//
// Current accounts have no interest and yield domain.ErrUnsupportedOperation.
func (s *Service) ApplyInterest(ctx context.Context, number string) (domain.AccountView, error) {
	return s.update(ctx, metrics.OpApplyInterest, number, func(a *domain.Account) error {
		return a.ApplyInterest()
	})
}
