package model

import "github.com/samber/lo"

// EntityResponse is the projection of an Entity exposed over HTTP.
type EntityResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewEntityResponse projects e onto its response shape.
func NewEntityResponse(e Entity) EntityResponse {
	return EntityResponse{ID: e.ID, Name: e.Name, Description: e.Description}
}

// Page is one slice of a larger ordered collection.
type Page[T any] struct {
	Items []T
	// Page is the zero-based page index that was requested.
	Page  int
	Size  int
	Total int64
}

// Pageable describes which slice of the collection a page holds.
type Pageable struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	Offset     int `json:"offset"`
}

// EntityPageResponse is the body of GET /entities.
type EntityPageResponse struct {
	Content       []EntityResponse `json:"content"`
	Pageable      Pageable         `json:"pageable"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
}

// NewEntityPageResponse projects a page of entities onto the list response.
func NewEntityPageResponse(p *Page[Entity]) EntityPageResponse {
	totalPages := 0
	if p.Size > 0 {
		totalPages = int((p.Total + int64(p.Size) - 1) / int64(p.Size))
	}
	return EntityPageResponse{
		Content: lo.Map(p.Items, func(e Entity, _ int) EntityResponse {
			return NewEntityResponse(e)
		}),
		Pageable: Pageable{
			PageNumber: p.Page,
			PageSize:   p.Size,
			Offset:     p.Page * p.Size,
		},
		TotalElements: p.Total,
		TotalPages:    totalPages,
	}
}
