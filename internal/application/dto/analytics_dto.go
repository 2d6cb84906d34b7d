package dto

// DailyScansDTO bucket diario para series de tiempo (Day en formato 2006-01-02).
type DailyScansDTO struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// DeviceAnalyticsResponse agregados de escaneo de un dispositivo.
type DeviceAnalyticsResponse struct {
	DeviceID    string           `json:"device_id"`
	TotalScans  int64            `json:"total_scans"`
	ActiveDays  int64            `json:"active_days"`
	CountByType map[string]int64 `json:"count_by_type"`
	ScansPerDay []DailyScansDTO  `json:"scans_per_day"`
}

// OrganizationAnalyticsResponse agregados a nivel de organización.
type OrganizationAnalyticsResponse struct {
	OrganizationID string           `json:"organization_id"`
	TotalScans     int64            `json:"total_scans"`
	ActiveDays     int64            `json:"active_days"`
	CountByType    map[string]int64 `json:"count_by_type"`
	ScansPerDay    []DailyScansDTO  `json:"scans_per_day"`
}
