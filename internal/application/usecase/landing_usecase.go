package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
	"github.com/cosmic-portals/portals-api/pkg/logger"
	"github.com/cosmic-portals/portals-api/pkg/metrics"
	"github.com/cosmic-portals/portals-api/pkg/slug"
)

// LandingUseCase casos de uso de landing pages: CRUD administrativo acotado a
// la organización y resolución pública por slug. La resolución pública solo
// sirve páginas publicadas.
type LandingUseCase struct {
	pageRepo repository.LandingPageRepository
	log      *logger.Logger
}

// NewLandingUseCase construye el caso de uso.
func NewLandingUseCase(pageRepo repository.LandingPageRepository, log *logger.Logger) *LandingUseCase {
	return &LandingUseCase{pageRepo: pageRepo, log: log.Component("landing")}
}

// Create crea una landing page en estado borrador. El slug se deriva del
// título si viene vacío; un slug ya tomado devuelve ErrDuplicate.
func (uc *LandingUseCase) Create(organizationID string, in dto.CreateLandingPageRequest) (*dto.LandingPageResponse, error) {
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Title)
	}
	if !slug.IsValid(s) {
		return nil, domain.ErrInvalidInput
	}
	if dup, _ := uc.pageRepo.GetBySlug(s); dup != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	page := &entity.LandingPage{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Title:          in.Title,
		Slug:           s,
		Content:        in.Content,
		IsPublished:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.pageRepo.Create(page); err != nil {
		return nil, err
	}
	return toLandingResponse(page), nil
}

// GetByID obtiene una landing page de la organización.
func (uc *LandingUseCase) GetByID(organizationID, id string) (*dto.LandingPageResponse, error) {
	page, err := uc.getOwned(organizationID, id)
	if err != nil || page == nil {
		return nil, err
	}
	return toLandingResponse(page), nil
}

// List lista las landing pages de la organización (paginado).
func (uc *LandingUseCase) List(organizationID string, page dto.PageRequest) (*dto.LandingPageListResponse, error) {
	page.DefaultPage()
	pages, err := uc.pageRepo.ListByOrganization(organizationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LandingPageResponse, 0, len(pages))
	for _, p := range pages {
		items = append(items, *toLandingResponse(p))
	}
	return &dto.LandingPageListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza título, slug o contenido. Cambiar el slug valida unicidad.
func (uc *LandingUseCase) Update(organizationID, id string, in dto.UpdateLandingPageRequest) (*dto.LandingPageResponse, error) {
	page, err := uc.getOwned(organizationID, id)
	if err != nil || page == nil {
		return nil, err
	}
	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Slug != nil && *in.Slug != page.Slug {
		if !slug.IsValid(*in.Slug) {
			return nil, domain.ErrInvalidInput
		}
		if dup, _ := uc.pageRepo.GetBySlug(*in.Slug); dup != nil {
			return nil, domain.ErrDuplicate
		}
		page.Slug = *in.Slug
	}
	if in.Content != nil {
		page.Content = *in.Content
	}
	page.UpdatedAt = time.Now()
	if err := uc.pageRepo.Update(page); err != nil {
		return nil, err
	}
	return toLandingResponse(page), nil
}

// SetPublished publica o despublica la página. Despublicar corta de inmediato
// la visibilidad pública.
func (uc *LandingUseCase) SetPublished(organizationID, id string, published bool) (*dto.LandingPageResponse, error) {
	page, err := uc.getOwned(organizationID, id)
	if err != nil || page == nil {
		return nil, err
	}
	if err := uc.pageRepo.SetPublished(id, organizationID, published); err != nil {
		return nil, err
	}
	page.IsPublished = published
	return toLandingResponse(page), nil
}

// Delete elimina una landing page de la organización.
func (uc *LandingUseCase) Delete(organizationID, id string) error {
	page, err := uc.getOwned(organizationID, id)
	if err != nil {
		return err
	}
	if page == nil {
		return domain.ErrNotFound
	}
	return uc.pageRepo.Delete(id, organizationID)
}

// ResolvePublic resuelve la ruta pública /landing/:slug: solo páginas
// publicadas. El incremento de vistas es best-effort; un fallo del contador
// nunca rompe la visita.
func (uc *LandingUseCase) ResolvePublic(ctx context.Context, s string) (*dto.PublicLandingResponse, error) {
	page, err := uc.pageRepo.GetPublishedBySlug(s)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}
	if err := uc.pageRepo.IncrementViewCount(ctx, page.ID); err != nil {
		uc.log.Warn().Err(err).Str("page_id", page.ID).Msg("no se pudo incrementar el contador de vistas")
	}
	metrics.LandingViews.Inc()
	return &dto.PublicLandingResponse{
		Title:   page.Title,
		Slug:    page.Slug,
		Content: page.Content,
	}, nil
}

func (uc *LandingUseCase) getOwned(organizationID, id string) (*entity.LandingPage, error) {
	page, err := uc.pageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if page == nil || page.OrganizationID != organizationID {
		return nil, nil
	}
	return page, nil
}

func toLandingResponse(p *entity.LandingPage) *dto.LandingPageResponse {
	if p == nil {
		return nil
	}
	return &dto.LandingPageResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Content:     p.Content,
		IsPublished: p.IsPublished,
		ViewCount:   p.ViewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
