package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo implementación del puerto DeviceRepository sobre PostgreSQL.
// El campo metadata se persiste como JSONB; pgx lo (de)serializa directamente
// contra entity.DeviceMetadata.
type DeviceRepo struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository construye el adaptador de persistencia para dispositivos NFC.
func NewDeviceRepository(pool *pgxpool.Pool) *DeviceRepo {
	return &DeviceRepo{pool: pool}
}

const deviceColumns = `id, device_id, organization_id, device_type, status, metadata, scan_count, last_scan, created_at, updated_at`

// Create persiste un nuevo dispositivo. Devuelve domain.ErrDuplicate si el
// device_id público ya está registrado.
func (r *DeviceRepo) Create(device *entity.NFCDevice) error {
	query := `
		INSERT INTO nfc_devices (id, device_id, organization_id, device_type, status, metadata, scan_count, last_scan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		device.ID, device.DeviceID, device.OrganizationID, device.DeviceType,
		device.Status, device.Metadata, device.ScanCount, device.LastScan,
		device.CreatedAt, device.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID obtiene un dispositivo por su ID interno.
func (r *DeviceRepo) GetByID(id string) (*entity.NFCDevice, error) {
	query := `SELECT ` + deviceColumns + ` FROM nfc_devices WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByDeviceID resuelve un dispositivo por su token público (ruta /scan/:deviceId).
func (r *DeviceRepo) GetByDeviceID(deviceID string) (*entity.NFCDevice, error) {
	query := `SELECT ` + deviceColumns + ` FROM nfc_devices WHERE device_id = $1`
	return r.scanOne(query, deviceID)
}

// ListByOrganization devuelve los dispositivos de una organización con paginación.
func (r *DeviceRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.NFCDevice, error) {
	query := `SELECT ` + deviceColumns + ` FROM nfc_devices WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	var list []*entity.NFCDevice
	for rows.Next() {
		var d entity.NFCDevice
		if err := rows.Scan(&d.ID, &d.DeviceID, &d.OrganizationID, &d.DeviceType, &d.Status, &d.Metadata, &d.ScanCount, &d.LastScan, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina un dispositivo, acotado por organización para impedir
// borrados cross-tenant.
func (r *DeviceRepo) Delete(id, organizationID string) error {
	cmd, err := r.pool.Exec(context.Background(),
		`DELETE FROM nfc_devices WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementScanCount incrementa el contador en una sola sentencia atómica.
// El UPDATE relativo (scan_count + 1) elimina la carrera de lost-update que
// tendría un read-modify-write con visitas concurrentes.
func (r *DeviceRepo) IncrementScanCount(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE nfc_devices SET scan_count = scan_count + 1, last_scan = now(), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment scan_count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DeviceRepo) scanOne(query string, arg any) (*entity.NFCDevice, error) {
	var d entity.NFCDevice
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&d.ID, &d.DeviceID, &d.OrganizationID, &d.DeviceType, &d.Status, &d.Metadata,
		&d.ScanCount, &d.LastScan, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}
