package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/moviehistory/core/internal/model"
	"github.com/stretchr/testify/mock"
)

type TrackedRepository struct {
	mock.Mock
}

func NewTrackedRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *TrackedRepository {
	m := &TrackedRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TrackedRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TrackedEntryView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TrackedEntryView), args.Error(1)
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

func (m *UserRepository) ListExcept(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}
