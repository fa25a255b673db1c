// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/internal/metrics"
	"github.com/go-petr/pet-bank/pkg/errorspkg"
	"github.com/go-petr/pet-bank/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo   Repo
	hasher passpkg.Hasher
}

// New return user service struct to manage user bussines logic.
func New(ur Repo, hasher passpkg.Hasher) *Service {
	return &Service{
		repo:   ur,
		hasher: hasher,
	}
}

// NewUserWihtoutPassword returns user with removed sensitive data.
func NewUserWihtoutPassword(u domain.User) domain.UserWihtoutPassword {
	return domain.UserWihtoutPassword{
		Username:      u.Username,
		AccountNumber: u.AccountNumber,
		CreatedAt:     u.CreatedAt,
	}
}

// Register binds username and password to the account.
//
// No duplicate check is made: registering an existing username replaces its
// password and account.
func (s *Service) Register(ctx context.Context, username, password, accountNumber string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWihtoutPassword

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		AccountNumber:  accountNumber,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	result = NewUserWihtoutPassword(gotUser)

	return result, nil
}

// Authenticate checks the password of username and returns the bound account.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWihtoutPassword

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		l.Info().Err(err).Str("username", username).Send()
		metrics.Observe(metrics.OpAuthenticate, err)

		return response, err
	}

	err = s.hasher.Check(password, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Str("username", username).Send()
		metrics.Observe(metrics.OpAuthenticate, domain.ErrWrongPassword)

		return response, domain.ErrWrongPassword
	}

	metrics.Observe(metrics.OpAuthenticate, nil)

	response = NewUserWihtoutPassword(gotUser)

	return response, nil
}
