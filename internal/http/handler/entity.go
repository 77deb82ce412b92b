package handler

import (
	"errors"
	"math"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"entityapi/internal/model"
	"entityapi/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseID reads the numeric :id path parameter. Only positive ids are valid.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// notFound answers 404 with an empty body so nothing about the entity leaks.
func notFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return nil
}

func writeValidationError(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", verr.Error())
	}
	return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "invalid payload")
}

// ListEntities godoc
// @Summary List entities
// @Tags entities
// @Produce json
// @Param page query int false "zero-based page index" default(0)
// @Param size query int false "page size (1-100)" default(20)
// @Success 200 {object} model.EntityPageResponse
// @Failure 400 {object} errorPayload
// @Security BearerAuth
// @Router /entities [get]
func ListEntities(svc service.EntityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "0"))
		if err != nil || page < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page must be a non-negative integer")
		}
		size, err := strconv.Atoi(c.Query("size", strconv.Itoa(defaultPageSize)))
		if err != nil || size < 1 || size > maxPageSize {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "size must be an integer between 1 and 100")
		}
		// page*size is the row offset and must not overflow
		if page > math.MaxInt/size {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page is out of range")
		}

		res, err := svc.GetAllEntities(c.UserContext(), page, size)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(model.NewEntityPageResponse(res))
	}
}

// GetEntity godoc
// @Summary Get an entity by id
// @Tags entities
// @Produce json
// @Param id path int true "entity id"
// @Success 200 {object} model.EntityResponse
// @Failure 404
// @Security BearerAuth
// @Router /entities/{id} [get]
func GetEntity(svc service.EntityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		found, err := svc.GetEntityByID(c.UserContext(), id)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		e, ok := found.Get()
		if !ok {
			return notFound(c)
		}
		return c.JSON(model.NewEntityResponse(e))
	}
}

// GetEntityByName godoc
// @Summary Get the first entity with a name
// @Tags entities
// @Produce json
// @Param name path string true "entity name"
// @Success 200 {object} model.EntityResponse
// @Failure 404
// @Security BearerAuth
// @Router /entities/name/{name} [get]
func GetEntityByName(svc service.EntityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid name encoding")
		}

		found, err := svc.GetEntityByName(c.UserContext(), name)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		e, ok := found.Get()
		if !ok {
			return notFound(c)
		}
		return c.JSON(model.NewEntityResponse(e))
	}
}

// CreateEntity godoc
// @Summary Create an entity
// @Tags entities
// @Accept json
// @Produce json
// @Param body body model.EntityCreateRequest true "entity to create"
// @Success 201 {object} model.EntityResponse
// @Failure 400 {object} errorPayload
// @Security BearerAuth
// @Router /entities [post]
func CreateEntity(svc service.EntityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.EntityCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeValidationError(c, err)
		}

		created, err := svc.CreateEntity(c.UserContext(), req)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(model.NewEntityResponse(*created))
	}
}

// UpdateEntity godoc
// @Summary Replace an entity
// @Description The body uses the full record shape. Its id, if any, is ignored in favour of the path id.
// @Tags entities
// @Accept json
// @Produce json
// @Param id path int true "entity id"
// @Param body body model.Entity true "replacement values"
// @Success 200 {object} model.EntityResponse
// @Failure 400 {object} errorPayload
// @Failure 404
// @Security BearerAuth
// @Router /entities/{id} [put]
func UpdateEntity(svc service.EntityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var body model.Entity
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		updated, err := svc.UpdateEntity(c.UserContext(), id, body)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		e, ok := updated.Get()
		if !ok {
			return notFound(c)
		}
		return c.JSON(model.NewEntityResponse(e))
	}
}

// DeleteEntity godoc
// @Summary Delete an entity
// @Tags entities
// @Param id path int true "entity id"
// @Success 204
// @Failure 404
// @Security BearerAuth
// @Router /entities/{id} [delete]
func DeleteEntity(svc service.EntityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if !svc.DeleteEntity(c.UserContext(), id) {
			return notFound(c)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
