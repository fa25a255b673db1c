// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/rs/zerolog"
)

// RepoMem is the in-memory credential store keyed by username.
type RepoMem struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewRepoMem returns an empty credential store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		users: make(map[string]domain.User),
	}
}

// Create stores the credentials and then returns them.
//
// An existing entry with the same username is replaced.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	u := domain.User{
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
		AccountNumber:  arg.AccountNumber,
		CreatedAt:      time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.users[arg.Username]; ok {
		zerolog.Ctx(ctx).Warn().
			Str("username", arg.Username).
			Str("previous_account_number", prev.AccountNumber).
			Str("account_number", arg.AccountNumber).
			Msg("credentials overwritten")
	}

	r.users[arg.Username] = u

	return u, nil
}

// Get returns the credentials of the given username.
func (r *RepoMem) Get(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}
