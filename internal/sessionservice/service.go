// Package sessionservice manages business logic layer of login sessions.
package sessionservice

import (
	"context"
	"errors"
	"time"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/pkg/configpkg"
	"github.com/go-petr/pet-bank/pkg/errorspkg"
	"github.com/go-petr/pet-bank/pkg/tokenpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidDuration indicates a non-positive token duration in the config.
var ErrInvalidDuration = errors.New("token duration must be positive")

// Repo provides data access layer interface needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Block(ctx context.Context, id uuid.UUID) error
}

// Service facilitates session service layer logic.
type Service struct {
	repo       Repo
	config     configpkg.Config
	tokenMaker tokenpkg.Maker
}

// New returns session service struct to manage session bussines logic.
func New(sr Repo, c configpkg.Config, tm tokenpkg.Maker) (*Service, error) {
	if c.AccessTokenDuration <= 0 || c.RefreshTokenDuration <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Service{
		repo:       sr,
		config:     c,
		tokenMaker: tm,
	}, nil
}

// TokenMaker returns the maker used to sign and verify tokens.
func (s *Service) TokenMaker() tokenpkg.Maker {
	return s.tokenMaker
}

// Create issues an access token and a refresh token and stores the session
// identified by the refresh token.
func (s *Service) Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error) {
	l := zerolog.Ctx(ctx)

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(arg.Username, arg.AccountNumber, s.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	refreshToken, refreshPayload, err := s.tokenMaker.CreateToken(arg.Username, arg.AccountNumber, s.config.RefreshTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		return "", time.Time{}, domain.Session{}, errorspkg.ErrInternal
	}

	arg.ID = refreshPayload.ID
	arg.RefreshToken = refreshToken
	arg.ExpiresAt = refreshPayload.ExpiredAt

	sess, err := s.repo.Create(ctx, arg)
	if err != nil {
		return "", time.Time{}, domain.Session{}, err
	}

	return accessToken, accessPayload.ExpiredAt, sess, nil
}

func (s *Service) activeSession(ctx context.Context, refreshToken string) (domain.Session, error) {
	l := zerolog.Ctx(ctx)

	refreshPayload, err := s.tokenMaker.VerifyToken(refreshToken)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Session{}, err
	}

	sess, err := s.repo.Get(ctx, refreshPayload.ID)
	if err != nil {
		return domain.Session{}, err
	}

	if sess.IsBlocked {
		return domain.Session{}, domain.ErrBlockedSession
	}

	if sess.Username != refreshPayload.Username {
		l.Warn().Str("session_id", refreshPayload.ID.String()).Msg("session user mismatch")
		return domain.Session{}, domain.ErrInvalidUser
	}

	if sess.RefreshToken != refreshToken {
		return domain.Session{}, domain.ErrMismatchedRefreshToken
	}

	if time.Now().After(sess.ExpiresAt) {
		return domain.Session{}, domain.ErrExpiredSession
	}

	sess.ID = refreshPayload.ID

	return sess, nil
}

// RenewAccessToken issues a new access token for a valid refresh token.
func (s *Service) RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	sess, err := s.activeSession(ctx, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}

	accessToken, accessPayload, err := s.tokenMaker.CreateToken(sess.Username, sess.AccountNumber, s.config.AccessTokenDuration)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return "", time.Time{}, errorspkg.ErrInternal
	}

	return accessToken, accessPayload.ExpiredAt, nil
}

// Logout blocks the session of the given refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	sess, err := s.activeSession(ctx, refreshToken)
	if err != nil {
		return err
	}

	return s.repo.Block(ctx, sess.ID)
}
