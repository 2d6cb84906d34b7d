package entity

import "time"

// Planes de suscripción disponibles.
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Estados de suscripción.
const (
	SubscriptionActive    = "active"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

// ValidPlan informa si el plan pertenece al catálogo soportado.
func ValidPlan(p string) bool {
	return p == PlanStarter || p == PlanProfessional || p == PlanEnterprise
}

// ValidSubscriptionStatus informa si el estado de suscripción es válido.
func ValidSubscriptionStatus(s string) bool {
	return s == SubscriptionActive || s == SubscriptionPastDue || s == SubscriptionCancelled
}

// Organization representa un tenant del sistema: agrupa usuarios, dispositivos
// NFC y landing pages. Nunca se elimina físicamente; se cancela la suscripción.
type Organization struct {
	ID                 string
	Name               string
	Slug               string // clave pública de ruteo, única
	PlanType           string // starter, professional, enterprise
	SubscriptionStatus string // active, past_due, cancelled
	OwnerID            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
