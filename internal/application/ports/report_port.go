package ports

import (
	"context"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

// DeviceReportGenerator puerto de salida para el reporte PDF de analítica de
// un dispositivo.
type DeviceReportGenerator interface {
	GenerateDeviceReport(ctx context.Context, device *entity.NFCDevice, org *entity.Organization, analytics *dto.DeviceAnalyticsResponse) ([]byte, error)
}
