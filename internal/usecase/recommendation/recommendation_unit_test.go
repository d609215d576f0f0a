package usecase_recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/moviehistory/core/internal/model"
	"github.com/moviehistory/core/internal/usecase/recommendation/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type UsecaseRecommendationUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase    *Usecase
	repository *mocks.Repository
	entries    *mocks.EntryRepository
	users      *mocks.UserRepository
	notifier   *mocks.Notifier
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	repository := mocks.NewRepository(t)
	entries := mocks.NewEntryRepository(t)
	users := mocks.NewUserRepository(t)
	notifier := mocks.NewNotifier(t)
	usecase := New(repository, entries, users, notifier)

	return &resources{
		usecase:    usecase,
		repository: repository,
		entries:    entries,
		users:      users,
		notifier:   notifier,
		ctx:        context.Background(),
	}
}

func sender() model.User {
	return model.User{ID: uuid.New(), Login: "neo"}
}

func ownedEntry(owner model.User) (model.TrackedEntry, model.Movie) {
	return model.TrackedEntry{
			ID:      uuid.New(),
			UserID:  owner.ID,
			MovieID: uuid.New(),
		}, model.Movie{
			APIID: 603,
			Title: "The Matrix",
		}
}

func (s *UsecaseRecommendationUnitSuite) TestRecommend(t provider.T) {
	t.Parallel()

	t.Run("Should persist recommendation and notify target", func(t provider.T) {
		r := initResources(t)
		user := sender()
		entry, movie := ownedEntry(user)
		target := model.User{ID: uuid.New(), Login: "trinity"}

		r.entries.On("LoadEntry", r.ctx, entry.ID).Return(entry, movie, nil).Once()
		r.users.On("ByID", r.ctx, target.ID).Return(target, nil).Once()
		r.repository.On("Insert", r.ctx, mock.MatchedBy(func(rec model.Recommendation) bool {
			return rec.TrackedEntryID == entry.ID &&
				rec.FromUserID == user.ID &&
				rec.ToUserID == target.ID
		})).Return(nil).Once()
		r.notifier.On("RecommendationReceived", target.ID, user.Login, movie.Title).Once()

		result, err := r.usecase.Recommend(r.ctx, user, entry.ID, target.ID)

		assert.NoError(t, err)
		assert.False(t, result.AlreadyRecommended)
		assert.Equal(t, target.ID, result.Recommendation.ToUserID)
	})

	t.Run("Should fail with not found for unknown target user", func(t provider.T) {
		r := initResources(t)
		user := sender()
		entry, movie := ownedEntry(user)
		targetID := uuid.New()

		r.entries.On("LoadEntry", r.ctx, entry.ID).Return(entry, movie, nil).Once()
		r.users.On("ByID", r.ctx, targetID).Return(model.User{}, ErrUserNotFound).Once()

		_, err := r.usecase.Recommend(r.ctx, user, entry.ID, targetID)

		assert.True(t, errors.Is(err, ErrUserNotFound))
		r.repository.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Should fail for unknown tracked entry", func(t provider.T) {
		r := initResources(t)
		user := sender()
		entryID := uuid.New()

		r.entries.On("LoadEntry", r.ctx, entryID).
			Return(model.TrackedEntry{}, model.Movie{}, ErrEntryNotFound).Once()

		_, err := r.usecase.Recommend(r.ctx, user, entryID, uuid.New())

		assert.True(t, errors.Is(err, ErrEntryNotFound))
	})

	t.Run("Should refuse recommending another user's entry", func(t provider.T) {
		r := initResources(t)
		user := sender()
		other := sender()
		entry, movie := ownedEntry(other)

		r.entries.On("LoadEntry", r.ctx, entry.ID).Return(entry, movie, nil).Once()

		_, err := r.usecase.Recommend(r.ctx, user, entry.ID, uuid.New())

		assert.True(t, errors.Is(err, ErrNotOwner))
		r.repository.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Should treat duplicate recommendation as no-op", func(t provider.T) {
		r := initResources(t)
		user := sender()
		entry, movie := ownedEntry(user)
		target := model.User{ID: uuid.New(), Login: "trinity"}

		r.entries.On("LoadEntry", r.ctx, entry.ID).Return(entry, movie, nil).Once()
		r.users.On("ByID", r.ctx, target.ID).Return(target, nil).Once()
		r.repository.On("Insert", r.ctx, mock.Anything).Return(ErrAlreadyRecommended).Once()

		result, err := r.usecase.Recommend(r.ctx, user, entry.ID, target.ID)

		assert.NoError(t, err)
		assert.True(t, result.AlreadyRecommended)
		r.notifier.AssertNotCalled(t, "RecommendationReceived", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject unresolved user", func(t provider.T) {
		r := initResources(t)

		_, err := r.usecase.Recommend(r.ctx, model.User{}, uuid.New(), uuid.New())

		assert.True(t, errors.Is(err, ErrUnauthenticated))
	})
}

func (s *UsecaseRecommendationUnitSuite) TestReceivedBy(t provider.T) {
	t.Parallel()

	t.Run("Should list received recommendations", func(t provider.T) {
		r := initResources(t)
		user := sender()

		recs := []model.ReceivedRecommendation{
			{ID: uuid.New(), Title: "The Matrix", FromLogin: "trinity"},
		}
		r.repository.On("ReceivedBy", r.ctx, user.ID).Return(recs, nil).Once()

		got, err := r.usecase.ReceivedBy(r.ctx, user)

		assert.NoError(t, err)
		assert.Equal(t, recs, got)
	})

	t.Run("Should reject unresolved user", func(t provider.T) {
		r := initResources(t)

		_, err := r.usecase.ReceivedBy(r.ctx, model.User{})

		assert.True(t, errors.Is(err, ErrUnauthenticated))
	})
}

func TestUsecaseRecommendationUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRecommendationUnitSuite))
}
