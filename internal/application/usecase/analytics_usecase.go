package usecase

import (
	"context"
	"time"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

// AnalyticsUseCase agregados de escaneo a nivel de organización. Toda la
// agregación se delega a SQL; aquí solo se arma la respuesta.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// OrganizationAnalytics totales, días activos, desglose por tipo y serie
// diaria de los últimos 30 días para toda la organización.
func (uc *AnalyticsUseCase) OrganizationAnalytics(ctx context.Context, organizationID string) (*dto.OrganizationAnalyticsResponse, error) {
	stats, err := uc.analyticsRepo.GetOrganizationScanStats(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -analyticsWindowDays)
	daily, err := uc.analyticsRepo.GetOrganizationScansPerDay(ctx, organizationID, since)
	if err != nil {
		return nil, err
	}
	return &dto.OrganizationAnalyticsResponse{
		OrganizationID: organizationID,
		TotalScans:     stats.TotalScans,
		ActiveDays:     stats.ActiveDays,
		CountByType:    stats.CountByType,
		ScansPerDay:    toDailyScans(daily),
	}, nil
}
