package repository

import (
	"context"
	"errors"

	"entityapi/internal/model"
)

// ErrNotFound is returned when no entity matches the requested key.
var ErrNotFound = errors.New("entity not found")

// EntityRepository defines data access for entities using SQL queries only.
// No business logic here, strictly persistence operations.
type EntityRepository interface {
	// FindAll returns one page of entities ordered by id and the total row count.
	FindAll(ctx context.Context, pq PageQuery) (*PageResult[model.Entity], error)

	// FindByID returns the entity with the given id or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Entity, error)

	// FindByName returns the lowest-id entity with the given name or ErrNotFound.
	FindByName(ctx context.Context, name string) (*model.Entity, error)

	// Save inserts e when e.ID is zero and the store assigns the id.
	// Otherwise it replaces every column of the row with that id, returning
	// ErrNotFound when there is no such row.
	Save(ctx context.Context, e *model.Entity) (*model.Entity, error)

	// DeleteByID removes the entity with the given id. It returns ErrNotFound
	// when no row was deleted.
	DeleteByID(ctx context.Context, id int64) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int64
}
