package mocks

import (
	"context"

	"entityapi/internal/model"
	"entityapi/internal/service"
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"
)

type MockEntityService struct {
	mock.Mock
}

var _ service.EntityService = (*MockEntityService)(nil)

func (m *MockEntityService) GetAllEntities(ctx context.Context, page, size int) (*model.Page[model.Entity], error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Entity]), args.Error(1)
}

func (m *MockEntityService) GetEntityByID(ctx context.Context, id int64) (mo.Option[model.Entity], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[model.Entity]), args.Error(1)
}

func (m *MockEntityService) GetEntityByName(ctx context.Context, name string) (mo.Option[model.Entity], error) {
	args := m.Called(ctx, name)
	return args.Get(0).(mo.Option[model.Entity]), args.Error(1)
}

func (m *MockEntityService) CreateEntity(ctx context.Context, req model.EntityCreateRequest) (*model.Entity, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entity), args.Error(1)
}

func (m *MockEntityService) UpdateEntity(ctx context.Context, id int64, e model.Entity) (mo.Option[model.Entity], error) {
	args := m.Called(ctx, id, e)
	return args.Get(0).(mo.Option[model.Entity]), args.Error(1)
}

func (m *MockEntityService) DeleteEntity(ctx context.Context, id int64) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}
