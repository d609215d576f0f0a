package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/moviehistory/core/internal/model"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func NewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *Repository {
	m := &Repository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Repository) Track(ctx context.Context, userID uuid.UUID, apiID int64, title, imgURL string) (model.TrackedEntry, error) {
	args := m.Called(ctx, userID, apiID, title, imgURL)
	if rf, ok := args.Get(0).(func(context.Context, uuid.UUID, int64, string, string) (model.TrackedEntry, error)); ok {
		return rf(ctx, userID, apiID, title, imgURL)
	}
	return args.Get(0).(model.TrackedEntry), args.Error(1)
}

func (m *Repository) SetFavorited(ctx context.Context, userID, entryID uuid.UUID, favorited bool) error {
	args := m.Called(ctx, userID, entryID, favorited)
	return args.Error(0)
}

func (m *Repository) SetWatched(ctx context.Context, userID, entryID uuid.UUID, watched bool) error {
	args := m.Called(ctx, userID, entryID, watched)
	return args.Error(0)
}

func (m *Repository) SetGenre(ctx context.Context, userID, entryID uuid.UUID, genre string) error {
	args := m.Called(ctx, userID, entryID, genre)
	return args.Error(0)
}

func (m *Repository) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}
