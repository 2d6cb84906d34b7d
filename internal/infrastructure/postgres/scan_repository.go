package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

var _ repository.ScanRepository = (*ScanRepo)(nil)

// ScanRepo implementación del puerto ScanRepository sobre PostgreSQL.
// La tabla nfc_scans es append-only: sin UPDATE ni DELETE.
type ScanRepo struct {
	pool *pgxpool.Pool
}

// NewScanRepository construye el adaptador de persistencia para escaneos.
func NewScanRepository(pool *pgxpool.Pool) *ScanRepo {
	return &ScanRepo{pool: pool}
}

// Create inserta un evento de escaneo. location y utm_params viajan como JSONB.
func (r *ScanRepo) Create(ctx context.Context, scan *entity.NFCScan) error {
	query := `
		INSERT INTO nfc_scans (id, organization_id, device_id, scan_type, ip_address, user_agent, location, utm_params, referrer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		scan.ID, scan.OrganizationID, scan.DeviceID, scan.ScanType,
		scan.IPAddress, scan.UserAgent, scan.Location, scan.UTMParams,
		scan.Referrer, scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

// ListByDevice devuelve los escaneos de un dispositivo, más recientes primero.
func (r *ScanRepo) ListByDevice(ctx context.Context, deviceID string, limit, offset int) ([]*entity.NFCScan, error) {
	query := `
		SELECT id, organization_id, device_id, scan_type, ip_address, user_agent, location, utm_params, referrer, created_at
		FROM nfc_scans WHERE device_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, deviceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var list []*entity.NFCScan
	for rows.Next() {
		var s entity.NFCScan
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.DeviceID, &s.ScanType, &s.IPAddress, &s.UserAgent, &s.Location, &s.UTMParams, &s.Referrer, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan nfc_scan: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
