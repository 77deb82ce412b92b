package service

import (
	"context"
	"errors"
	"math"

	"github.com/samber/mo"
	"go.uber.org/zap"

	"entityapi/internal/events"
	"entityapi/internal/model"
	"entityapi/internal/repository"
)

// ErrInvalidPage is returned for a negative page index, a non-positive size,
// or a page whose row offset would overflow.
var ErrInvalidPage = errors.New("page must be >= 0, size must be > 0 and page*size must fit in an int")

// EntityService defines the use cases for managing entities.
type EntityService interface {
	// GetAllEntities returns the zero-based page of the given size.
	GetAllEntities(ctx context.Context, page, size int) (*model.Page[model.Entity], error)

	// GetEntityByID returns None when no entity has the id. The error is
	// reserved for store failures.
	GetEntityByID(ctx context.Context, id int64) (mo.Option[model.Entity], error)

	// GetEntityByName returns None when no entity has the name.
	GetEntityByName(ctx context.Context, name string) (mo.Option[model.Entity], error)

	// CreateEntity persists the payload. The caller validates it first.
	CreateEntity(ctx context.Context, req model.EntityCreateRequest) (*model.Entity, error)

	// UpdateEntity replaces name and description of the entity with the given
	// id. Any id carried by e is ignored. Returns None when the id is unknown.
	UpdateEntity(ctx context.Context, id int64, e model.Entity) (mo.Option[model.Entity], error)

	// DeleteEntity reports whether the entity existed and was removed.
	// Failures of any kind yield false.
	DeleteEntity(ctx context.Context, id int64) bool
}

type entityService struct {
	repo      repository.EntityRepository
	publisher events.Publisher
	log       *zap.Logger
}

// NewEntityService constructs a new EntityService. A nil publisher or logger
// disables events or logging respectively.
func NewEntityService(repo repository.EntityRepository, publisher events.Publisher, log *zap.Logger) EntityService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &entityService{repo: repo, publisher: publisher, log: log.With(zap.String("component", "entity_service"))}
}

func (s *entityService) GetAllEntities(ctx context.Context, page, size int) (*model.Page[model.Entity], error) {
	if page < 0 || size <= 0 || page > math.MaxInt/size {
		return nil, ErrInvalidPage
	}

	res, err := s.repo.FindAll(ctx, repository.PageQuery{Limit: size, Offset: page * size})
	if err != nil {
		return nil, err
	}
	return &model.Page[model.Entity]{Items: res.Items, Page: page, Size: size, Total: res.Total}, nil
}

func (s *entityService) GetEntityByID(ctx context.Context, id int64) (mo.Option[model.Entity], error) {
	return optional(s.repo.FindByID(ctx, id))
}

func (s *entityService) GetEntityByName(ctx context.Context, name string) (mo.Option[model.Entity], error) {
	return optional(s.repo.FindByName(ctx, name))
}

func (s *entityService) CreateEntity(ctx context.Context, req model.EntityCreateRequest) (*model.Entity, error) {
	created, err := s.repo.Save(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EntityCreated, created.ID, created))
	return created, nil
}

func (s *entityService) UpdateEntity(ctx context.Context, id int64, e model.Entity) (mo.Option[model.Entity], error) {
	if id <= 0 {
		return mo.None[model.Entity](), nil
	}
	e.ID = id

	updated, err := optional(s.repo.Save(ctx, &e))
	if err != nil {
		return updated, err
	}
	if v, ok := updated.Get(); ok {
		s.publish(ctx, events.NewEvent(events.EntityUpdated, id, &v))
	}
	return updated, nil
}

func (s *entityService) DeleteEntity(ctx context.Context, id int64) bool {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("delete_failed", zap.Int64("entity_id", id), zap.Error(err))
		}
		return false
	}
	s.publish(ctx, events.NewEvent(events.EntityDeleted, id, nil))
	return true
}

// publish never fails the request; the change is already committed.
func (s *entityService) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("event_publish_failed",
			zap.String("event_type", string(ev.Type)),
			zap.Int64("entity_id", ev.EntityID),
			zap.Error(err),
		)
	}
}

func optional(e *model.Entity, err error) (mo.Option[model.Entity], error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return mo.None[model.Entity](), nil
		}
		return mo.None[model.Entity](), err
	}
	return mo.Some(*e), nil
}
