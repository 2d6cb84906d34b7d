package scan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/ports"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
	"github.com/cosmic-portals/portals-api/pkg/logger"
	"github.com/cosmic-portals/portals-api/pkg/metrics"
)

// Recorder registra visitas a dispositivos NFC. Es la ruta más caliente del
// sistema y su contrato es servir SIEMPRE el contenido de bienvenida: un fallo
// al persistir el escaneo se loguea y se cuenta, pero nunca rompe la visita.
type Recorder struct {
	deviceRepo repository.DeviceRepository
	scanRepo   repository.ScanRepository
	geoip      ports.GeoIPService
	log        *logger.Logger
}

// NewRecorder construye el recorder. geoip puede ser nil (enriquecimiento
// deshabilitado).
func NewRecorder(deviceRepo repository.DeviceRepository, scanRepo repository.ScanRepository, geoip ports.GeoIPService, log *logger.Logger) *Recorder {
	return &Recorder{deviceRepo: deviceRepo, scanRepo: scanRepo, geoip: geoip, log: log.Component("scan")}
}

// Record resuelve el dispositivo por su token público, registra el escaneo y
// devuelve el contenido de bienvenida. Dispositivo desconocido o inactivo
// se reporta como inexistente (nil, nil).
func (r *Recorder) Record(ctx context.Context, publicDeviceID string, meta dto.ScanVisitMetadata) (*dto.ScanWelcomeResponse, error) {
	device, err := r.deviceRepo.GetByDeviceID(publicDeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil || device.Status != entity.DeviceActive {
		return nil, nil
	}

	recorded := r.record(ctx, device, meta)

	return &dto.ScanWelcomeResponse{
		DeviceID:     device.DeviceID,
		DeviceType:   device.DeviceType,
		Status:       device.Status,
		Name:         device.Metadata.Name,
		Description:  device.Metadata.Description,
		AssignedTo:   device.Metadata.AssignedTo,
		ContactEmail: device.Metadata.ContactEmail,
		ScanRecorded: recorded,
	}, nil
}

func (r *Recorder) record(ctx context.Context, device *entity.NFCDevice, meta dto.ScanVisitMetadata) bool {
	scanType := meta.ScanType
	if scanType != entity.ScanQRScan {
		scanType = entity.ScanNFCTap
	}

	s := &entity.NFCScan{
		ID:             uuid.New().String(),
		OrganizationID: device.OrganizationID,
		DeviceID:       device.ID,
		ScanType:       scanType,
		IPAddress:      meta.IPAddress,
		UserAgent:      meta.UserAgent,
		Location:       r.buildLocation(ctx, meta),
		UTMParams: entity.UTMParams{
			Source:   meta.UTMSource,
			Medium:   meta.UTMMedium,
			Campaign: meta.UTMCampaign,
			Term:     meta.UTMTerm,
			Content:  meta.UTMContent,
		},
		Referrer:  meta.Referrer,
		CreatedAt: time.Now(),
	}

	if err := r.scanRepo.Create(ctx, s); err != nil {
		r.log.Error().Err(err).Str("device_id", device.DeviceID).Msg("no se pudo persistir el escaneo")
		metrics.ScanRecordFailures.Inc()
		return false
	}
	if err := r.deviceRepo.IncrementScanCount(ctx, device.ID); err != nil {
		r.log.Warn().Err(err).Str("device_id", device.DeviceID).Msg("no se pudo incrementar scan_count")
	}
	metrics.ScansRecorded.WithLabelValues(scanType).Inc()
	return true
}

// buildLocation arma la ubicación del escaneo: coordenadas del navegador si
// vinieron, más ciudad/país por GeoIP. Todo best-effort.
func (r *Recorder) buildLocation(ctx context.Context, meta dto.ScanVisitMetadata) *entity.Location {
	var loc *entity.Location
	if meta.Latitude != nil && meta.Longitude != nil {
		loc = &entity.Location{Latitude: *meta.Latitude, Longitude: *meta.Longitude}
		if meta.Accuracy != nil {
			loc.Accuracy = *meta.Accuracy
		}
	}
	if r.geoip == nil || meta.IPAddress == "" {
		return loc
	}
	geo, err := r.geoip.Lookup(ctx, meta.IPAddress)
	if err != nil || geo == nil {
		return loc
	}
	if loc == nil {
		loc = &entity.Location{}
	}
	loc.City = geo.City
	loc.Country = geo.Country
	return loc
}
