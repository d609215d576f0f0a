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

func (m *Repository) Insert(ctx context.Context, rec model.Recommendation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *Repository) ReceivedBy(ctx context.Context, userID uuid.UUID) ([]model.ReceivedRecommendation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReceivedRecommendation), args.Error(1)
}

type EntryRepository struct {
	mock.Mock
}

func NewEntryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *EntryRepository {
	m := &EntryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EntryRepository) LoadEntry(ctx context.Context, entryID uuid.UUID) (model.TrackedEntry, model.Movie, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).(model.TrackedEntry), args.Get(1).(model.Movie), args.Error(2)
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

type Notifier struct {
	mock.Mock
}

func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Notifier) RecommendationReceived(toUserID uuid.UUID, fromLogin, title string) {
	m.Called(toUserID, fromLogin, title)
}
