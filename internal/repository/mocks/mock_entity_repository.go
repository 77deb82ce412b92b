package mocks

import (
	"context"

	"entityapi/internal/model"
	"entityapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockEntityRepository struct {
	mock.Mock
}

var _ repository.EntityRepository = (*MockEntityRepository)(nil)

func (m *MockEntityRepository) FindAll(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Entity], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Entity]), args.Error(1)
}

func (m *MockEntityRepository) FindByID(ctx context.Context, id int64) (*model.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindByName(ctx context.Context, name string) (*model.Entity, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entity), args.Error(1)
}

func (m *MockEntityRepository) Save(ctx context.Context, e *model.Entity) (*model.Entity, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entity), args.Error(1)
}

func (m *MockEntityRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
