package repository

import (
	"context"
	"time"
)

// ScanStatsResult agregados de escaneo de un dispositivo u organización.
type ScanStatsResult struct {
	TotalScans  int64
	ActiveDays  int64            // días distintos con al menos un escaneo
	CountByType map[string]int64 // scan_type -> total
}

// DailyScanCount bucket de escaneos por día (para series de tiempo).
type DailyScanCount struct {
	Day   time.Time
	Count int64
}

// PlatformStatsResult totales globales para el panel de administración.
type PlatformStatsResult struct {
	Organizations int64
	Users         int64
	Devices       int64
	Scans         int64
	LandingPages  int64
}

// ActivityEntry evento reciente para el feed del panel de administración.
type ActivityEntry struct {
	Kind      string // organization_created, device_registered, scan_recorded, page_published
	Label     string
	CreatedAt time.Time
}

// AnalyticsRepository consultas de agregación sobre escaneos y totales de
// plataforma. Toda la agregación ocurre en SQL (GROUP BY), nunca cargando
// filas completas en memoria.
type AnalyticsRepository interface {
	GetDeviceScanStats(ctx context.Context, deviceID string) (*ScanStatsResult, error)
	GetOrganizationScanStats(ctx context.Context, organizationID string) (*ScanStatsResult, error)
	GetScansPerDay(ctx context.Context, deviceID string, since time.Time) ([]DailyScanCount, error)
	GetOrganizationScansPerDay(ctx context.Context, organizationID string, since time.Time) ([]DailyScanCount, error)
	GetOrganizationRollup(ctx context.Context, organizationID string) (devices, scans, pages, members int64, err error)
	GetPlatformStats(ctx context.Context) (*PlatformStatsResult, error)
	GetRecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error)
}
