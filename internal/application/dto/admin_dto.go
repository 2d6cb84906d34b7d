package dto

import "time"

// PlatformStatsDTO totales globales del panel de administración.
type PlatformStatsDTO struct {
	Organizations int64 `json:"organizations"`
	Users         int64 `json:"users"`
	Devices       int64 `json:"devices"`
	Scans         int64 `json:"scans"`
	LandingPages  int64 `json:"landing_pages"`
}

// ActivityEntryDTO evento del feed de actividad reciente.
type ActivityEntryDTO struct {
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminStatsResponse estadísticas + actividad reciente.
type AdminStatsResponse struct {
	Stats          PlatformStatsDTO   `json:"stats"`
	RecentActivity []ActivityEntryDTO `json:"recent_activity"`
}
