package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/ports"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

// analyticsWindowDays ventana de la serie diaria en analítica de dispositivos.
const analyticsWindowDays = 30

// DeviceUseCase casos de uso de dispositivos NFC, siempre acotados a la
// organización del JWT. Un dispositivo de otra organización se comporta como
// inexistente.
type DeviceUseCase struct {
	deviceRepo    repository.DeviceRepository
	orgRepo       repository.OrganizationRepository
	scanRepo      repository.ScanRepository
	analyticsRepo repository.AnalyticsRepository
	reportGen     ports.DeviceReportGenerator
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(deviceRepo repository.DeviceRepository, orgRepo repository.OrganizationRepository, scanRepo repository.ScanRepository, analyticsRepo repository.AnalyticsRepository, reportGen ports.DeviceReportGenerator) *DeviceUseCase {
	return &DeviceUseCase{deviceRepo: deviceRepo, orgRepo: orgRepo, scanRepo: scanRepo, analyticsRepo: analyticsRepo, reportGen: reportGen}
}

// Register registra un dispositivo. Si el cliente no envía device_id (serial
// leído por Web NFC) el servidor genera un token ptt_<uuid>. Un device_id ya
// registrado devuelve ErrDuplicate.
func (uc *DeviceUseCase) Register(organizationID string, in dto.RegisterDeviceRequest) (*dto.DeviceResponse, error) {
	if !entity.ValidDeviceType(in.DeviceType) {
		return nil, domain.ErrInvalidInput
	}
	deviceID := in.DeviceID
	if deviceID == "" {
		deviceID = "ptt_" + uuid.New().String()
	}
	if existing, _ := uc.deviceRepo.GetByDeviceID(deviceID); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	device := &entity.NFCDevice{
		ID:             uuid.New().String(),
		DeviceID:       deviceID,
		OrganizationID: organizationID,
		DeviceType:     in.DeviceType,
		Status:         entity.DeviceActive,
		Metadata: entity.DeviceMetadata{
			Name:           in.Name,
			Description:    in.Description,
			AssignedTo:     in.AssignedTo,
			ContactEmail:   in.ContactEmail,
			ProgrammedDate: now.Format("2006-01-02"),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.deviceRepo.Create(device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// GetByID obtiene un dispositivo de la organización.
func (uc *DeviceUseCase) GetByID(organizationID, id string) (*dto.DeviceResponse, error) {
	device, err := uc.getOwned(organizationID, id)
	if err != nil || device == nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// List lista los dispositivos de la organización (paginado).
func (uc *DeviceUseCase) List(organizationID string, page dto.PageRequest) (*dto.DeviceListResponse, error) {
	page.DefaultPage()
	devices, err := uc.deviceRepo.ListByOrganization(organizationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeviceResponse, 0, len(devices))
	for _, d := range devices {
		items = append(items, *toDeviceResponse(d))
	}
	return &dto.DeviceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un dispositivo de la organización. Los escaneos históricos
// se conservan: el log de visitas es append-only.
func (uc *DeviceUseCase) Delete(organizationID, id string) error {
	device, err := uc.getOwned(organizationID, id)
	if err != nil {
		return err
	}
	if device == nil {
		return domain.ErrNotFound
	}
	return uc.deviceRepo.Delete(id, organizationID)
}

// Analytics agrega estadísticas de escaneo del dispositivo: totales, días
// activos, desglose por tipo y serie diaria de los últimos 30 días.
func (uc *DeviceUseCase) Analytics(ctx context.Context, organizationID, id string) (*dto.DeviceAnalyticsResponse, error) {
	device, err := uc.getOwned(organizationID, id)
	if err != nil || device == nil {
		return nil, err
	}
	stats, err := uc.analyticsRepo.GetDeviceScanStats(ctx, device.ID)
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -analyticsWindowDays)
	daily, err := uc.analyticsRepo.GetScansPerDay(ctx, device.ID, since)
	if err != nil {
		return nil, err
	}
	return &dto.DeviceAnalyticsResponse{
		DeviceID:    device.DeviceID,
		TotalScans:  stats.TotalScans,
		ActiveDays:  stats.ActiveDays,
		CountByType: stats.CountByType,
		ScansPerDay: toDailyScans(daily),
	}, nil
}

// Scans lista los escaneos recientes del dispositivo, más recientes primero.
func (uc *DeviceUseCase) Scans(ctx context.Context, organizationID, id string, page dto.PageRequest) (*dto.ScanListResponse, error) {
	device, err := uc.getOwned(organizationID, id)
	if err != nil || device == nil {
		return nil, err
	}
	page.DefaultPage()
	scans, err := uc.scanRepo.ListByDevice(ctx, device.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ScanEventResponse, 0, len(scans))
	for _, s := range scans {
		items = append(items, *toScanEventResponse(s))
	}
	return &dto.ScanListResponse{
		DeviceID: device.DeviceID,
		Items:    items,
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Report genera el reporte PDF de analítica del dispositivo.
func (uc *DeviceUseCase) Report(ctx context.Context, organizationID, id string) ([]byte, error) {
	device, err := uc.getOwned(organizationID, id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrNotFound
	}
	analytics, err := uc.Analytics(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	org, err := uc.orgRepo.GetByID(organizationID)
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerateDeviceReport(ctx, device, org, analytics)
}

// getOwned resuelve el dispositivo y verifica pertenencia a la organización.
// Un dispositivo ajeno se reporta como inexistente.
func (uc *DeviceUseCase) getOwned(organizationID, id string) (*entity.NFCDevice, error) {
	device, err := uc.deviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil || device.OrganizationID != organizationID {
		return nil, nil
	}
	return device, nil
}

func toDeviceResponse(d *entity.NFCDevice) *dto.DeviceResponse {
	if d == nil {
		return nil
	}
	return &dto.DeviceResponse{
		ID:           d.ID,
		DeviceID:     d.DeviceID,
		DeviceType:   d.DeviceType,
		Status:       d.Status,
		Name:         d.Metadata.Name,
		Description:  d.Metadata.Description,
		AssignedTo:   d.Metadata.AssignedTo,
		ContactEmail: d.Metadata.ContactEmail,
		ScanCount:    d.ScanCount,
		LastScan:     d.LastScan,
		CreatedAt:    d.CreatedAt,
	}
}

func toScanEventResponse(s *entity.NFCScan) *dto.ScanEventResponse {
	out := &dto.ScanEventResponse{
		ID:        s.ID,
		ScanType:  s.ScanType,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		Referrer:  s.Referrer,
		UTMSource: s.UTMParams.Source,
		CreatedAt: s.CreatedAt,
	}
	if s.Location != nil {
		out.City = s.Location.City
		out.Country = s.Location.Country
	}
	return out
}

func toDailyScans(daily []repository.DailyScanCount) []dto.DailyScansDTO {
	out := make([]dto.DailyScansDTO, 0, len(daily))
	for _, d := range daily {
		out = append(out, dto.DailyScansDTO{Day: d.Day.Format("2006-01-02"), Count: d.Count})
	}
	return out
}
