package dto

import "time"

// RegisterDeviceRequest entrada para registrar un dispositivo NFC.
// DeviceID es opcional: si el navegador leyó el serial del hardware (Web NFC)
// se envía; si viene vacío el servidor genera un token ptt_<uuid>.
type RegisterDeviceRequest struct {
	DeviceID     string `json:"device_id"`
	DeviceType   string `json:"device_type" validate:"required,oneof=business_card signage event_badge table_tent keychain"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	AssignedTo   string `json:"assigned_to"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// DeviceResponse salida de un dispositivo.
type DeviceResponse struct {
	ID           string     `json:"id"`
	DeviceID     string     `json:"device_id"`
	DeviceType   string     `json:"device_type"`
	Status       string     `json:"status"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	ScanCount    int64      `json:"scan_count"`
	LastScan     *time.Time `json:"last_scan,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DeviceListResponse lista paginada de dispositivos.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
