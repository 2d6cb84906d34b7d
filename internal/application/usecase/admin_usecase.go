package usecase

import (
	"context"
	"time"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

// recentActivityLimit tamaño del feed de actividad del panel.
const recentActivityLimit = 20

// AdminUseCase panel de administración global. Solo accesible para el rol
// superadmin (lo exige el middleware); opera sin acotar por organización.
type AdminUseCase struct {
	orgRepo       repository.OrganizationRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(orgRepo repository.OrganizationRepository, analyticsRepo repository.AnalyticsRepository) *AdminUseCase {
	return &AdminUseCase{orgRepo: orgRepo, analyticsRepo: analyticsRepo}
}

// Stats totales de plataforma + actividad reciente.
func (uc *AdminUseCase) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	stats, err := uc.analyticsRepo.GetPlatformStats(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := uc.analyticsRepo.GetRecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	entries := make([]dto.ActivityEntryDTO, 0, len(activity))
	for _, a := range activity {
		entries = append(entries, dto.ActivityEntryDTO{Kind: a.Kind, Label: a.Label, CreatedAt: a.CreatedAt})
	}
	return &dto.AdminStatsResponse{
		Stats: dto.PlatformStatsDTO{
			Organizations: stats.Organizations,
			Users:         stats.Users,
			Devices:       stats.Devices,
			Scans:         stats.Scans,
			LandingPages:  stats.LandingPages,
		},
		RecentActivity: entries,
	}, nil
}

// ListOrganizations lista todas las organizaciones de la plataforma (paginado).
func (uc *AdminUseCase) ListOrganizations(page dto.PageRequest) (*dto.OrganizationListResponse, error) {
	page.DefaultPage()
	orgs, err := uc.orgRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		items = append(items, *toOrganizationResponse(o))
	}
	return &dto.OrganizationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateOrganization cambia plan o estado de suscripción de cualquier
// organización (sin restricción de tenant, es el panel global). Plan y estado
// se validan contra el catálogo de la entidad.
func (uc *AdminUseCase) UpdateOrganization(id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if in.PlanType != nil && !entity.ValidPlan(*in.PlanType) {
		return nil, domain.ErrInvalidInput
	}
	if in.SubscriptionStatus != nil && !entity.ValidSubscriptionStatus(*in.SubscriptionStatus) {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		org.Name = *in.Name
	}
	if in.PlanType != nil {
		org.PlanType = *in.PlanType
	}
	if in.SubscriptionStatus != nil {
		org.SubscriptionStatus = *in.SubscriptionStatus
	}
	org.UpdatedAt = time.Now()
	if err := uc.orgRepo.Update(org); err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}
