package usecase_listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moviehistory/core/internal/model"
)

var (
	ErrUnauthenticated   = errors.New("no authenticated user")
	ErrFailedToLoadList  = errors.New("failed to load tracked movies")
	ErrFailedToLoadUsers = errors.New("failed to load users")
)

type TrackedRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TrackedEntryView, error)
}

type UserRepository interface {
	ListExcept(ctx context.Context, userID uuid.UUID) ([]model.User, error)
}

type Usecase struct {
	tracked TrackedRepository
	users   UserRepository
}

func New(tracked TrackedRepository, users UserRepository) *Usecase {
	return &Usecase{
		tracked: tracked,
		users:   users,
	}
}

// ForUser assembles the caller's tracked movies and the set of users
// eligible to receive recommendations. Pure read; a user with no
// tracked movies gets an empty list, not an error.
func (u *Usecase) ForUser(ctx context.Context, user model.User) (model.TrackedList, error) {
	if user.Zero() {
		return model.TrackedList{}, ErrUnauthenticated
	}

	entries, err := u.tracked.ListByUser(ctx, user.ID)
	if err != nil {
		return model.TrackedList{}, fmt.Errorf("%w: %w", ErrFailedToLoadList, err)
	}

	others, err := u.users.ListExcept(ctx, user.ID)
	if err != nil {
		return model.TrackedList{}, fmt.Errorf("%w: %w", ErrFailedToLoadUsers, err)
	}

	return model.TrackedList{
		Entries:    entries,
		OtherUsers: others,
	}, nil
}
