package dto

import "time"

// InviteMemberRequest entrada para invitar a un miembro al equipo.
type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=member editor admin"`
}

// UpdateMemberRoleRequest cambio de rol de un miembro.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member editor admin"`
}

// InvitationResponse salida de una invitación pendiente.
type InvitationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"invitation_token"`
	InvitedBy string    `json:"invited_by"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamResponse miembros actuales + invitaciones pendientes.
type TeamResponse struct {
	Members     []UserResponse       `json:"members"`
	Invitations []InvitationResponse `json:"invitations"`
}
