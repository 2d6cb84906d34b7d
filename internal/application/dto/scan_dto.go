package dto

import "time"

// ScanVisitMetadata metadatos best-effort capturados del visitante al resolver
// /scan/:deviceId. El handler los arma desde la petición HTTP (IP, user agent,
// referrer, query params utm_* y coordenadas si el navegador dio permiso).
type ScanVisitMetadata struct {
	ScanType    string
	IPAddress   string
	UserAgent   string
	Referrer    string
	Latitude    *float64
	Longitude   *float64
	Accuracy    *float64
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMTerm     string
	UTMContent  string
}

// ScanEventResponse un escaneo histórico del dispositivo, tal como se
// persistió. Las coordenadas y el enriquecimiento GeoIP pueden faltar.
type ScanEventResponse struct {
	ID        string    `json:"id"`
	ScanType  string    `json:"scan_type"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	UTMSource string    `json:"utm_source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ScanListResponse escaneos recientes de un dispositivo (paginado, más
// recientes primero).
type ScanListResponse struct {
	DeviceID string              `json:"device_id"`
	Items    []ScanEventResponse `json:"items"`
	Page     PageResponse        `json:"page"`
}

// ScanWelcomeResponse contenido de bienvenida servido al visitante que escaneó
// el dispositivo. ScanRecorded indica si el evento quedó persistido; el
// contenido se sirve igual aunque el registro haya fallado.
type ScanWelcomeResponse struct {
	DeviceID     string `json:"device_id"`
	DeviceType   string `json:"device_type"`
	Status       string `json:"status"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	AssignedTo   string `json:"assigned_to,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ScanRecorded bool   `json:"scan_recorded"`
}
