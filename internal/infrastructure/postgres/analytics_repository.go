package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación sobre nfc_scans y totales de plataforma.
// Cada métrica es un GROUP BY en SQL; nunca se cargan las filas de escaneo en
// memoria para contar en la aplicación.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDeviceScanStats agrega totales, días activos y conteo por tipo para un dispositivo.
func (r *AnalyticsRepo) GetDeviceScanStats(ctx context.Context, deviceID string) (*repository.ScanStatsResult, error) {
	return r.scanStats(ctx, `device_id`, deviceID)
}

// GetOrganizationScanStats agrega los mismos totales a nivel de organización.
func (r *AnalyticsRepo) GetOrganizationScanStats(ctx context.Context, organizationID string) (*repository.ScanStatsResult, error) {
	return r.scanStats(ctx, `organization_id`, organizationID)
}

// scanStats ejecuta las dos consultas de agregados. La columna de filtro viene
// de un conjunto fijo interno, nunca de entrada del usuario.
func (r *AnalyticsRepo) scanStats(ctx context.Context, column, value string) (*repository.ScanStatsResult, error) {
	stats := &repository.ScanStatsResult{CountByType: map[string]int64{}}

	totalsQuery := fmt.Sprintf(`
		SELECT count(*), count(DISTINCT date_trunc('day', created_at))
		FROM nfc_scans WHERE %s = $1`, column)
	if err := r.pool.QueryRow(ctx, totalsQuery, value).Scan(&stats.TotalScans, &stats.ActiveDays); err != nil {
		return nil, fmt.Errorf("scan stats totals: %w", err)
	}

	byTypeQuery := fmt.Sprintf(`
		SELECT scan_type, count(*)
		FROM nfc_scans WHERE %s = $1
		GROUP BY scan_type`, column)
	rows, err := r.pool.Query(ctx, byTypeQuery, value)
	if err != nil {
		return nil, fmt.Errorf("scan stats by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var scanType string
		var count int64
		if err := rows.Scan(&scanType, &count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats.CountByType[scanType] = count
	}
	return stats, rows.Err()
}

// GetScansPerDay serie diaria de escaneos de un dispositivo desde la fecha dada.
func (r *AnalyticsRepo) GetScansPerDay(ctx context.Context, deviceID string, since time.Time) ([]repository.DailyScanCount, error) {
	return r.scansPerDay(ctx, `device_id`, deviceID, since)
}

// GetOrganizationScansPerDay serie diaria a nivel de organización.
func (r *AnalyticsRepo) GetOrganizationScansPerDay(ctx context.Context, organizationID string, since time.Time) ([]repository.DailyScanCount, error) {
	return r.scansPerDay(ctx, `organization_id`, organizationID, since)
}

func (r *AnalyticsRepo) scansPerDay(ctx context.Context, column, value string, since time.Time) ([]repository.DailyScanCount, error) {
	query := fmt.Sprintf(`
		SELECT date_trunc('day', created_at) AS day, count(*)
		FROM nfc_scans
		WHERE %s = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day ASC`, column)
	rows, err := r.pool.Query(ctx, query, value, since)
	if err != nil {
		return nil, fmt.Errorf("scans per day: %w", err)
	}
	defer rows.Close()

	var buckets []repository.DailyScanCount
	for rows.Next() {
		var b repository.DailyScanCount
		if err := rows.Scan(&b.Day, &b.Count); err != nil {
			return nil, fmt.Errorf("scan day bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// GetOrganizationRollup conteos simples para la ficha de la organización.
func (r *AnalyticsRepo) GetOrganizationRollup(ctx context.Context, organizationID string) (devices, scans, pages, members int64, err error) {
	query := `
		SELECT
			(SELECT count(*) FROM nfc_devices   WHERE organization_id = $1),
			(SELECT count(*) FROM nfc_scans     WHERE organization_id = $1),
			(SELECT count(*) FROM landing_pages WHERE organization_id = $1),
			(SELECT count(*) FROM users         WHERE organization_id = $1)`
	if err = r.pool.QueryRow(ctx, query, organizationID).Scan(&devices, &scans, &pages, &members); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("organization rollup: %w", err)
	}
	return devices, scans, pages, members, nil
}

// GetPlatformStats totales globales del panel de administración.
func (r *AnalyticsRepo) GetPlatformStats(ctx context.Context) (*repository.PlatformStatsResult, error) {
	query := `
		SELECT
			(SELECT count(*) FROM organizations),
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM nfc_devices),
			(SELECT count(*) FROM nfc_scans),
			(SELECT count(*) FROM landing_pages)`
	var s repository.PlatformStatsResult
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Organizations, &s.Users, &s.Devices, &s.Scans, &s.LandingPages); err != nil {
		return nil, fmt.Errorf("platform stats: %w", err)
	}
	return &s, nil
}

// GetRecentActivity feed de eventos recientes mezclando altas de organizaciones,
// registros de dispositivos y escaneos, ordenado por fecha.
func (r *AnalyticsRepo) GetRecentActivity(ctx context.Context, limit int) ([]repository.ActivityEntry, error) {
	query := `
		SELECT kind, label, created_at FROM (
			SELECT 'organization_created' AS kind, name AS label, created_at FROM organizations
			UNION ALL
			SELECT 'device_registered', device_id, created_at FROM nfc_devices
			UNION ALL
			SELECT 'scan_recorded', scan_type, created_at FROM nfc_scans
			UNION ALL
			SELECT 'page_published', title, updated_at FROM landing_pages WHERE is_published = true
		) activity
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var entries []repository.ActivityEntry
	for rows.Next() {
		var e repository.ActivityEntry
		if err := rows.Scan(&e.Kind, &e.Label, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
