package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"entityapi/internal/model"
	"entityapi/internal/repository"
)

// EntityPostgres is a PostgreSQL implementation of repository.EntityRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type EntityPostgres struct {
	db *sql.DB
}

// NewEntityPostgres creates a new EntityPostgres repository.
func NewEntityPostgres(db *sql.DB) *EntityPostgres {
	return &EntityPostgres{db: db}
}

var _ repository.EntityRepository = (*EntityPostgres)(nil)

const entityColumns = `id, name, description`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(s scanner) (*model.Entity, error) {
	var e model.Entity
	if err := s.Scan(&e.ID, &e.Name, &e.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindAll returns entities using LIMIT/OFFSET pagination and a total count.
func (r *EntityPostgres) FindAll(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Entity], error) {
	const qCount = `SELECT COUNT(*) FROM entities`
	var total int64
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, errors.Wrap(err, "count entities")
	}

	const qList = `
		SELECT ` + entityColumns + `
		FROM entities
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "list entities")
	}
	defer rows.Close()

	items := make([]model.Entity, 0, pq.Limit)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan entity")
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate entities")
	}

	return &repository.PageResult[model.Entity]{
		Items: items,
		Total: total,
	}, nil
}

// FindByID fetches a single entity by its id.
func (r *EntityPostgres) FindByID(ctx context.Context, id int64) (*model.Entity, error) {
	const q = `
		SELECT ` + entityColumns + `
		FROM entities
		WHERE id = $1
	`
	e, err := scanEntity(r.db.QueryRowContext(ctx, q, id))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrapf(err, "find entity %d", id)
	}
	return e, err
}

// FindByName fetches the first entity, by id, carrying the given name.
func (r *EntityPostgres) FindByName(ctx context.Context, name string) (*model.Entity, error) {
	const q = `
		SELECT ` + entityColumns + `
		FROM entities
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 1
	`
	e, err := scanEntity(r.db.QueryRowContext(ctx, q, name))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "find entity by name")
	}
	return e, err
}

// Save inserts a new row when e.ID is zero, otherwise replaces the existing row.
func (r *EntityPostgres) Save(ctx context.Context, e *model.Entity) (*model.Entity, error) {
	if e == nil {
		return nil, errors.New("entity is nil")
	}
	if e.ID == 0 {
		return r.insert(ctx, e)
	}
	return r.update(ctx, e)
}

func (r *EntityPostgres) insert(ctx context.Context, e *model.Entity) (*model.Entity, error) {
	const q = `
		INSERT INTO entities (name, description)
		VALUES ($1, $2)
		RETURNING ` + entityColumns
	out, err := scanEntity(r.db.QueryRowContext(ctx, q, e.Name, e.Description))
	if err != nil {
		return nil, errors.Wrap(err, "insert entity")
	}
	return out, nil
}

func (r *EntityPostgres) update(ctx context.Context, e *model.Entity) (*model.Entity, error) {
	const q = `
		UPDATE entities
		SET name = $1, description = $2
		WHERE id = $3
		RETURNING ` + entityColumns
	out, err := scanEntity(r.db.QueryRowContext(ctx, q, e.Name, e.Description, e.ID))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrapf(err, "update entity %d", e.ID)
	}
	return out, err
}

// DeleteByID removes an entity by id, reporting ErrNotFound when nothing was deleted.
func (r *EntityPostgres) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM entities WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return errors.Wrapf(err, "delete entity %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
