package usecase_recommendation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/moviehistory/core/internal/model"
)

var (
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrEntryNotFound      = errors.New("tracked entry not found")
	ErrUserNotFound       = errors.New("target user not found")
	ErrNotOwner           = errors.New("tracked entry belongs to another user")
	ErrAlreadyRecommended = errors.New("already recommended to this user")
	ErrInternal           = errors.New("internal error")
)

type Repository interface {
	// Insert persists a recommendation. Returns ErrAlreadyRecommended
	// when the (entry, target) pair already exists and ErrUserNotFound
	// when the target user reference cannot be satisfied.
	Insert(ctx context.Context, rec model.Recommendation) error

	ReceivedBy(ctx context.Context, userID uuid.UUID) ([]model.ReceivedRecommendation, error)
}

// EntryRepository resolves a tracked entry together with its movie.
// Returns ErrEntryNotFound when the entry does not exist.
type EntryRepository interface {
	LoadEntry(ctx context.Context, entryID uuid.UUID) (model.TrackedEntry, model.Movie, error)
}

type UserRepository interface {
	ByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// Notifier pushes a best-effort event to the target user. Failures
// never affect the recommendation itself.
type Notifier interface {
	RecommendationReceived(toUserID uuid.UUID, fromLogin, title string)
}

type Usecase struct {
	repository Repository
	entries    EntryRepository
	users      UserRepository
	notifier   Notifier
}

func New(r Repository, entries EntryRepository, users UserRepository, notifier Notifier) *Usecase {
	return &Usecase{
		repository: r,
		entries:    entries,
		users:      users,
		notifier:   notifier,
	}
}

// Recommend links one of the caller's tracked entries to a target
// user. The entry must exist and belong to the caller, and the target
// must resolve to a real user; a duplicate recommendation of the same
// entry to the same user is a no-op.
func (u *Usecase) Recommend(ctx context.Context, user model.User, entryID, toUserID uuid.UUID) (model.RecommendResult, error) {
	if user.Zero() {
		return model.RecommendResult{}, ErrUnauthenticated
	}

	entry, movie, err := u.entries.LoadEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return model.RecommendResult{}, err
		}
		return model.RecommendResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if entry.UserID != user.ID {
		return model.RecommendResult{}, ErrNotOwner
	}

	target, err := u.users.ByID(ctx, toUserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.RecommendResult{}, err
		}
		return model.RecommendResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	rec := model.Recommendation{
		ID:             uuid.New(),
		TrackedEntryID: entryID,
		FromUserID:     user.ID,
		ToUserID:       target.ID,
	}

	if err := u.repository.Insert(ctx, rec); err != nil {
		if errors.Is(err, ErrAlreadyRecommended) {
			return model.RecommendResult{AlreadyRecommended: true}, nil
		}
		if errors.Is(err, ErrUserNotFound) {
			return model.RecommendResult{}, err
		}
		return model.RecommendResult{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if u.notifier != nil {
		u.notifier.RecommendationReceived(target.ID, user.Login, movie.Title)
	}

	return model.RecommendResult{Recommendation: rec}, nil
}

// ReceivedBy lists recommendations addressed to the caller.
func (u *Usecase) ReceivedBy(ctx context.Context, user model.User) ([]model.ReceivedRecommendation, error) {
	if user.Zero() {
		return nil, ErrUnauthenticated
	}

	recs, err := u.repository.ReceivedBy(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return recs, nil
}
