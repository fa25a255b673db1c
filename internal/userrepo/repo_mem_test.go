package userrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-petr/pet-bank/internal/domain"
	"github.com/go-petr/pet-bank/pkg/randompkg"
)

func TestCreateGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRepoMem()

	arg := domain.CreateUserParams{
		Username:       randompkg.Holder(),
		HashedPassword: randompkg.String(64),
		AccountNumber:  randompkg.AccountNumber(),
	}

	created, err := r.Create(ctx, arg)
	if err != nil {
		t.Fatalf("r.Create(%+v) returned error: %v", arg, err)
	}

	got, err := r.Get(ctx, arg.Username)
	if err != nil {
		t.Fatalf("r.Get(%v) returned error: %v", arg.Username, err)
	}

	want := domain.User{
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
		AccountNumber:  arg.AccountNumber,
		CreatedAt:      time.Now(),
	}

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(want, got, compareCreatedAt); diff != "" {
		t.Errorf("r.Get() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("created and stored user differ (-created +stored):\n%s", diff)
	}
}

func TestCreateOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRepoMem()
	username := randompkg.Holder()

	first := domain.CreateUserParams{Username: username, HashedPassword: "a", AccountNumber: "1000000001"}
	second := domain.CreateUserParams{Username: username, HashedPassword: "b", AccountNumber: "1000000002"}

	for _, arg := range []domain.CreateUserParams{first, second} {
		if _, err := r.Create(ctx, arg); err != nil {
			t.Fatalf("r.Create(%+v) returned error: %v", arg, err)
		}
	}

	got, err := r.Get(ctx, username)
	if err != nil {
		t.Fatalf("r.Get(%v) returned error: %v", username, err)
	}

	if got.AccountNumber != second.AccountNumber || got.HashedPassword != second.HashedPassword {
		t.Errorf("r.Get(%v) = %+v, want the second registration", username, got)
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewRepoMem().Get(context.Background(), randompkg.Holder())
	if err != domain.ErrUserNotFound {
		t.Errorf("r.Get() returned error %v, want %v", err, domain.ErrUserNotFound)
	}
}
