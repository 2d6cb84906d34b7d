package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
	"github.com/cosmic-portals/portals-api/pkg/slug"
)

// OrganizationUseCase casos de uso de organizaciones (tenant). Un usuario solo
// puede operar sobre su propia organización; el cruce de tenant devuelve
// ErrForbidden, nunca 404 silencioso.
type OrganizationUseCase struct {
	orgRepo       repository.OrganizationRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(orgRepo repository.OrganizationRepository, analyticsRepo repository.AnalyticsRepository) *OrganizationUseCase {
	return &OrganizationUseCase{orgRepo: orgRepo, analyticsRepo: analyticsRepo}
}

// Create crea una organización. El slug se deriva del nombre si viene vacío.
func (uc *OrganizationUseCase) Create(ownerID string, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Name)
	}
	if !slug.IsValid(s) {
		return nil, domain.ErrInvalidInput
	}
	if dup, _ := uc.orgRepo.GetBySlug(s); dup != nil {
		return nil, domain.ErrDuplicate
	}
	plan := in.PlanType
	if plan == "" {
		plan = entity.PlanStarter
	}
	if !entity.ValidPlan(plan) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	org := &entity.Organization{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Slug:               s,
		PlanType:           plan,
		SubscriptionStatus: entity.SubscriptionActive,
		OwnerID:            ownerID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.orgRepo.Create(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

// Get devuelve la organización del usuario con su rollup de conteos.
func (uc *OrganizationUseCase) Get(ctx context.Context, organizationID, requestedID string) (*dto.OrganizationDetailResponse, error) {
	if requestedID != organizationID {
		return nil, domain.ErrForbidden
	}
	org, err := uc.orgRepo.GetByID(requestedID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}
	devices, scans, pages, members, err := uc.analyticsRepo.GetOrganizationRollup(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	return &dto.OrganizationDetailResponse{
		OrganizationResponse: *toOrganizationResponse(org),
		Stats: dto.OrganizationStatsDTO{
			Devices:      devices,
			Scans:        scans,
			LandingPages: pages,
			Members:      members,
		},
	}, nil
}

// Update actualiza el nombre de la propia organización.
// El slug es inmutable una vez creado: hay hardware NFC apuntando a él.
// El plan y el estado de suscripción los administra la plataforma (panel
// superadmin); intentar cambiarlos por esta vía devuelve ErrForbidden.
func (uc *OrganizationUseCase) Update(organizationID, requestedID string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if requestedID != organizationID {
		return nil, domain.ErrForbidden
	}
	if in.PlanType != nil || in.SubscriptionStatus != nil {
		return nil, domain.ErrForbidden
	}
	org, err := uc.orgRepo.GetByID(requestedID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, nil
	}
	if in.Name != nil {
		org.Name = *in.Name
	}
	org.UpdatedAt = time.Now()
	if err := uc.orgRepo.Update(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:                 o.ID,
		Name:               o.Name,
		Slug:               o.Slug,
		PlanType:           o.PlanType,
		SubscriptionStatus: o.SubscriptionStatus,
		OwnerID:            o.OwnerID,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
