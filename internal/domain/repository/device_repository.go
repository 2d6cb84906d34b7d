package repository

import (
	"context"

	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

// DeviceRepository puerto de persistencia para NFCDevice.
type DeviceRepository interface {
	Create(device *entity.NFCDevice) error
	GetByID(id string) (*entity.NFCDevice, error)
	// GetByDeviceID resuelve por el token público grabado en el hardware.
	GetByDeviceID(deviceID string) (*entity.NFCDevice, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.NFCDevice, error)
	Delete(id, organizationID string) error
	// IncrementScanCount incrementa scan_count y actualiza last_scan en una sola
	// sentencia UPDATE atómica; nunca read-modify-write.
	IncrementScanCount(ctx context.Context, id string) error
}
