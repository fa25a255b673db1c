// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"time"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	UpdatePair(
		ctx context.Context,
		fromNumber, toNumber string,
		fn func(from, to *domain.Account) error,
	) (domain.AccountView, domain.AccountView, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo Repo
}

// New return transfer service struct to manage transfer bussines logic.
func New(tr Repo) *Service {
	return &Service{
		repo: tr,
	}
}

// Transfer moves money between two accounts as a single step.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	return s.transfer(ctx, arg, func(*domain.Account) error { return nil })
}

// TransferAs is Transfer on behalf of a user logged in to accountNumber,
// which must be the source account.
func (s *Service) TransferAs(ctx context.Context, accountNumber string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	return s.transfer(ctx, arg, func(from *domain.Account) error {
		if from.Number() != accountNumber {
			return domain.ErrInvalidOwner
		}

		return nil
	})
}

func (s *Service) transfer(
	ctx context.Context,
	arg domain.CreateTransferParams,
	authorize func(from *domain.Account) error,
) (result domain.TransferTxResult, err error) {
	l := zerolog.Ctx(ctx)

	defer func() { metrics.Observe(metrics.OpTransfer, err) }()

	fromAccount, toAccount, err := s.repo.UpdatePair(ctx, arg.FromAccountNumber, arg.ToAccountNumber,
		func(from, to *domain.Account) error {
			if err := authorize(from); err != nil {
				return err
			}

			return domain.Transfer(from, to, arg.Amount)
		})
	if err != nil {
		l.Info().Err(err).
			Str("from_account_number", arg.FromAccountNumber).
			Str("to_account_number", arg.ToAccountNumber).
			Send()

		return domain.TransferTxResult{}, err
	}

	result = domain.TransferTxResult{
		Transfer: domain.TransferRecord{
			ID:                uuid.New(),
			FromAccountNumber: arg.FromAccountNumber,
			ToAccountNumber:   arg.ToAccountNumber,
			Amount:            arg.Amount,
			CreatedAt:         time.Now().UTC(),
		},
		FromAccount: fromAccount,
		ToAccount:   toAccount,
	}

	l.Info().Str("transfer_id", result.Transfer.ID.String()).Msg("transfer completed")

	return result, nil
}
