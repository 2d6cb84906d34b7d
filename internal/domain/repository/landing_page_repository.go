package repository

import (
	"context"

	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

// LandingPageRepository puerto de persistencia para LandingPage.
type LandingPageRepository interface {
	Create(page *entity.LandingPage) error
	GetByID(id string) (*entity.LandingPage, error)
	// GetPublishedBySlug resuelve SOLO páginas publicadas; las borradores no son
	// visibles públicamente.
	GetPublishedBySlug(slug string) (*entity.LandingPage, error)
	GetBySlug(slug string) (*entity.LandingPage, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.LandingPage, error)
	Update(page *entity.LandingPage) error
	SetPublished(id, organizationID string, published bool) error
	Delete(id, organizationID string) error
	// IncrementViewCount incremento atómico del contador de vistas.
	IncrementViewCount(ctx context.Context, id string) error
}
