package usecase_tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moviehistory/core/internal/model"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("no authenticated user")
	ErrNotFound        = errors.New("tracked entry not found")
	ErrAlreadyTracked  = errors.New("movie already tracked")
	ErrInternal        = errors.New("internal error")
)

type Repository interface {
	// Track finds or creates the movie for the given catalog id and
	// inserts a tracked entry for the user within one transaction.
	// Returns ErrAlreadyTracked when the (user, movie) pair exists.
	Track(ctx context.Context, userID uuid.UUID, apiID int64, title, imgURL string) (model.TrackedEntry, error)

	SetFavorited(ctx context.Context, userID, entryID uuid.UUID, favorited bool) error
	SetWatched(ctx context.Context, userID, entryID uuid.UUID, watched bool) error
	SetGenre(ctx context.Context, userID, entryID uuid.UUID, genre string) error
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

type Usecase struct {
	repository Repository
}

func New(r Repository) *Usecase {
	return &Usecase{repository: r}
}

// Track records that a user has watched a movie. Tracking the same
// catalog id twice is a no-op reported via TrackResult.AlreadyTracked.
// The duplicate guard is the store's uniqueness constraint, so two
// concurrent calls still produce exactly one entry.
func (u *Usecase) Track(ctx context.Context, user model.User, apiID int64, title, imgURL string) (model.TrackResult, error) {
	if user.Zero() {
		return model.TrackResult{}, ErrUnauthenticated
	}
	if apiID <= 0 {
		return model.TrackResult{}, fmt.Errorf("%w: apiID must be positive", ErrInvalidInput)
	}
	if title == "" {
		return model.TrackResult{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	entry, err := u.repository.Track(ctx, user.ID, apiID, title, imgURL)
	if err != nil {
		if errors.Is(err, ErrAlreadyTracked) {
			return model.TrackResult{AlreadyTracked: true}, nil
		}
		return model.TrackResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return model.TrackResult{Entry: entry}, nil
}

func (u *Usecase) SetFavorited(ctx context.Context, user model.User, entryID uuid.UUID, favorited bool) error {
	if user.Zero() {
		return ErrUnauthenticated
	}
	if err := u.repository.SetFavorited(ctx, user.ID, entryID, favorited); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

func (u *Usecase) SetWatched(ctx context.Context, user model.User, entryID uuid.UUID, watched bool) error {
	if user.Zero() {
		return ErrUnauthenticated
	}
	if err := u.repository.SetWatched(ctx, user.ID, entryID, watched); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

func (u *Usecase) SetGenre(ctx context.Context, user model.User, entryID uuid.UUID, genre string) error {
	if user.Zero() {
		return ErrUnauthenticated
	}
	if err := u.repository.SetGenre(ctx, user.ID, entryID, genre); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Untrack(ctx context.Context, user model.User, entryID uuid.UUID) error {
	if user.Zero() {
		return ErrUnauthenticated
	}
	if err := u.repository.Delete(ctx, user.ID, entryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}
