package dto

import (
	"time"

	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

// CreateLandingPageRequest entrada para crear una landing page.
// Slug opcional: se deriva del título si viene vacío.
type CreateLandingPageRequest struct {
	Title   string                `json:"title" validate:"required,min=1,max=200"`
	Slug    string                `json:"slug"`
	Content entity.LandingContent `json:"content"`
}

// UpdateLandingPageRequest entrada de actualización (campos opcionales).
type UpdateLandingPageRequest struct {
	Title   *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Slug    *string                `json:"slug"`
	Content *entity.LandingContent `json:"content"`
}

// LandingPageResponse salida administrativa de una landing page.
type LandingPageResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Slug        string                `json:"slug"`
	Content     entity.LandingContent `json:"content"`
	IsPublished bool                  `json:"is_published"`
	ViewCount   int64                 `json:"view_count"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// LandingPageListResponse lista paginada de landing pages.
type LandingPageListResponse struct {
	Items []LandingPageResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// PublicLandingResponse contenido público servido en /landing/:slug.
// No expone contadores ni identificadores internos.
type PublicLandingResponse struct {
	Title   string                `json:"title"`
	Slug    string                `json:"slug"`
	Content entity.LandingContent `json:"content"`
}
