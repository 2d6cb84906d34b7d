package entity

import "time"

// InvitationTTL vigencia de una invitación de equipo.
const InvitationTTL = 7 * 24 * time.Hour

// TeamInvitation invitación pendiente para unirse a una organización.
type TeamInvitation struct {
	ID              string
	OrganizationID  string
	Email           string
	Role            string // rol que recibirá el usuario al aceptar
	InvitationToken string // token opaco de la URL de invitación, único
	InvitedBy       string // user ID del que invita
	ExpiresAt       time.Time
	AcceptedAt      *time.Time // nil mientras esté pendiente
	CreatedAt       time.Time
}

// IsExpired informa si la invitación ya venció.
func (i *TeamInvitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsPending informa si la invitación sigue vigente y sin aceptar.
func (i *TeamInvitation) IsPending(now time.Time) bool {
	return i.AcceptedAt == nil && !i.IsExpired(now)
}
