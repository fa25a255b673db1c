// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/rs/zerolog"
)

type record struct {
	mu      sync.Mutex
	account *domain.Account
	// removed is set under mu when a failed CreateWith takes the account back.
	removed bool
}

// RepoMem is the in-memory account registry.
//
// The map is guarded by mu; each account has its own lock so operations on
// unrelated accounts do not serialize.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[string]*record
}

// NewRepoMem returns an empty account registry.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[string]*record),
	}
}

func (r *RepoMem) lookup(number string) (*record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.accounts[number]

	return rec, ok
}

// Create opens the account and then returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.AccountView, error) {
	return r.CreateWith(ctx, arg, nil)
}

// CreateWith opens the account and runs commit while the new account is
// still locked. If commit fails the account is taken out of the registry
// before any other operation can see its balance, and the commit error is
// returned.
func (r *RepoMem) CreateWith(
	ctx context.Context,
	arg domain.CreateAccountParams,
	commit func(domain.AccountView) error,
) (domain.AccountView, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()

	if _, ok := r.accounts[arg.Number]; ok {
		r.mu.Unlock()
		l.Info().Str("account_number", arg.Number).Msg("duplicate account number")

		return domain.AccountView{}, domain.ErrAccountAlreadyExists
	}

	account, err := domain.NewAccount(arg)
	if err != nil {
		r.mu.Unlock()
		l.Info().Err(err).Str("account_number", arg.Number).Send()

		return domain.AccountView{}, err
	}

	rec := &record{account: account}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	r.accounts[arg.Number] = rec
	r.mu.Unlock()

	view := account.View()

	if commit == nil {
		return view, nil
	}

	if err := commit(view); err != nil {
		r.mu.Lock()
		delete(r.accounts, arg.Number)
		r.mu.Unlock()

		rec.removed = true

		l.Info().Err(err).Str("account_number", arg.Number).Msg("account creation rolled back")

		return domain.AccountView{}, err
	}

	return view, nil
}

// Get returns the account with the given number.
func (r *RepoMem) Get(ctx context.Context, number string) (domain.AccountView, error) {
	rec, ok := r.lookup(number)
	if !ok {
		zerolog.Ctx(ctx).Info().Str("account_number", number).Msg("account not found")
		return domain.AccountView{}, domain.ErrAccountNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.removed {
		return domain.AccountView{}, domain.ErrAccountNotFound
	}

	return rec.account.View(), nil
}

// List returns the specified number of accounts for the given holder ordered by number.
func (r *RepoMem) List(ctx context.Context, holder string, limit, offset int32) ([]domain.AccountView, error) {
	r.mu.RLock()

	owned := make([]*record, 0)

	for _, rec := range r.accounts {
		if rec.account.Holder() == holder {
			owned = append(owned, rec)
		}
	}

	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].account.Number() < owned[j].account.Number()
	})

	items := []domain.AccountView{}

	if offset < 0 {
		offset = 0
	}

	for i := int(offset); i < len(owned) && len(items) < int(limit); i++ {
		rec := owned[i]

		rec.mu.Lock()
		if !rec.removed {
			items = append(items, rec.account.View())
		}
		rec.mu.Unlock()
	}

	return items, nil
}

// Update runs fn on the account with the given number while holding its lock
// and returns the account as fn left it.
func (r *RepoMem) Update(ctx context.Context, number string, fn func(*domain.Account) error) (domain.AccountView, error) {
	rec, ok := r.lookup(number)
	if !ok {
		zerolog.Ctx(ctx).Info().Str("account_number", number).Msg("account not found")
		return domain.AccountView{}, domain.ErrAccountNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.removed {
		return domain.AccountView{}, domain.ErrAccountNotFound
	}

	if err := fn(rec.account); err != nil {
		return domain.AccountView{}, err
	}

	return rec.account.View(), nil
}

// UpdatePair runs fn on two accounts while holding both locks.
//
// To avoid deadlocks the locks are taken in ascending account number order.
// When both numbers are equal fn receives the same account twice.
func (r *RepoMem) UpdatePair(
	ctx context.Context,
	fromNumber, toNumber string,
	fn func(from, to *domain.Account) error,
) (domain.AccountView, domain.AccountView, error) {
	l := zerolog.Ctx(ctx)

	from, ok := r.lookup(fromNumber)
	if !ok {
		l.Info().Str("account_number", fromNumber).Msg("account not found")
		return domain.AccountView{}, domain.AccountView{}, domain.ErrAccountNotFound
	}

	to, ok := r.lookup(toNumber)
	if !ok {
		l.Info().Str("account_number", toNumber).Msg("account not found")
		return domain.AccountView{}, domain.AccountView{}, domain.ErrAccountNotFound
	}

	switch {
	case fromNumber == toNumber:
		from.mu.Lock()
		defer from.mu.Unlock()
	case fromNumber < toNumber:
		from.mu.Lock()
		defer from.mu.Unlock()
		to.mu.Lock()
		defer to.mu.Unlock()
	default:
		to.mu.Lock()
		defer to.mu.Unlock()
		from.mu.Lock()
		defer from.mu.Unlock()
	}

	if from.removed || to.removed {
		return domain.AccountView{}, domain.AccountView{}, domain.ErrAccountNotFound
	}

	if err := fn(from.account, to.account); err != nil {
		return domain.AccountView{}, domain.AccountView{}, err
	}

	return from.account.View(), to.account.View(), nil
}
