package repository

import (
	"context"

	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

// ScanRepository puerto de persistencia para NFCScan (append-only).
type ScanRepository interface {
	Create(ctx context.Context, scan *entity.NFCScan) error
	ListByDevice(ctx context.Context, deviceID string, limit, offset int) ([]*entity.NFCScan, error)
}
