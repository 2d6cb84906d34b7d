package entity

import "time"

// Tipos de escaneo.
const (
	ScanNFCTap = "nfc_tap"
	ScanQRScan = "qr_scan"
)

// Location coordenadas reportadas por el navegador del visitante (opcionales).
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
	City      string  `json:"city,omitempty"`    // enriquecido vía GeoIP, best-effort
	Country   string  `json:"country,omitempty"` // enriquecido vía GeoIP, best-effort
}

// UTMParams parámetros de campaña tomados del query string de la visita.
type UTMParams struct {
	Source   string `json:"utm_source,omitempty"`
	Medium   string `json:"utm_medium,omitempty"`
	Campaign string `json:"utm_campaign,omitempty"`
	Term     string `json:"utm_term,omitempty"`
	Content  string `json:"utm_content,omitempty"`
}

// NFCScan evento de visita atribuido a un dispositivo. Append-only: nunca se
// muta ni se elimina.
type NFCScan struct {
	ID             string
	OrganizationID string
	DeviceID       string // FK al ID interno del dispositivo
	ScanType       string // nfc_tap, qr_scan
	IPAddress      string
	UserAgent      string
	Location       *Location // nil si el visitante no dio permiso de geolocalización
	UTMParams      UTMParams
	Referrer       string
	CreatedAt      time.Time
}
