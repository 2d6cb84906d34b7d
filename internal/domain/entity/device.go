package entity

import "time"

// Tipos de dispositivo NFC soportados.
const (
	DeviceBusinessCard = "business_card"
	DeviceSignage      = "signage"
	DeviceEventBadge   = "event_badge"
	DeviceTableTent    = "table_tent"
	DeviceKeychain     = "keychain"
)

// Estados de un dispositivo.
const (
	DeviceActive   = "active"
	DeviceInactive = "inactive"
)

// ValidDeviceType informa si el tipo pertenece al catálogo soportado.
func ValidDeviceType(t string) bool {
	switch t {
	case DeviceBusinessCard, DeviceSignage, DeviceEventBadge, DeviceTableTent, DeviceKeychain:
		return true
	}
	return false
}

// DeviceMetadata datos libres configurados al registrar el dispositivo.
// Se persiste como JSONB.
type DeviceMetadata struct {
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	AssignedTo     string `json:"assigned_to,omitempty"`
	ContactEmail   string `json:"contact_email,omitempty"`
	ProgrammedBy   string `json:"programmed_by,omitempty"`
	ProgrammedDate string `json:"programmed_date,omitempty"`
}

// NFCDevice representa una etiqueta/tarjeta física registrada por una organización.
// DeviceID es el token público que viaja grabado en el hardware (distinto del ID interno).
// ScanCount es un contador desnormalizado que SOLO se muta con incrementos atómicos
// en la capa de persistencia.
type NFCDevice struct {
	ID             string
	DeviceID       string // token público, único (serial de hardware o ptt_<uuid>)
	OrganizationID string
	DeviceType     string // ver constantes Device*
	Status         string // active, inactive
	Metadata       DeviceMetadata
	ScanCount      int64
	LastScan       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
