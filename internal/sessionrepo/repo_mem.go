// Package sessionrepo manages repository layer of sessions.
package sessionrepo

import (
	"context"
	"sync"
	"time"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RepoMem keeps login sessions in memory.
type RepoMem struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.Session
}

// NewRepoMem returns an empty session store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		sessions: make(map[uuid.UUID]domain.Session),
	}
}

// Create creates the session and then returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	s := domain.Session{
		ID:            arg.ID,
		Username:      arg.Username,
		AccountNumber: arg.AccountNumber,
		RefreshToken:  arg.RefreshToken,
		UserAgent:     arg.UserAgent,
		ClientIP:      arg.ClientIP,
		IsBlocked:     arg.IsBlocked,
		ExpiresAt:     arg.ExpiresAt,
		CreatedAt:     time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s

	return s, nil
}

// Get returns session with the given id.
func (r *RepoMem) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		zerolog.Ctx(ctx).Info().Str("session_id", id.String()).Msg("session not found")
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return s, nil
}

// Block marks the session as blocked so its refresh token stops working.
func (r *RepoMem) Block(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	s.IsBlocked = true
	r.sessions[id] = s

	return nil
}
