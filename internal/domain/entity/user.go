package entity

import "time"

// Roles válidos para User. Los cuatro primeros son roles de organización;
// superadmin es un rol de plataforma (panel de administración global).
const (
	RoleMember     = "member"
	RoleEditor     = "editor"
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
	RoleSuperAdmin = "superadmin"
)

// IsOrgAdmin informa si el rol permite administrar el equipo de la organización.
func IsOrgAdmin(role string) bool {
	return role == RoleAdmin || role == RoleOwner || role == RoleSuperAdmin
}

// ValidTeamRole informa si el rol puede asignarse vía gestión de equipo.
// owner se fija al crear la organización y superadmin es un rol de plataforma:
// ninguno de los dos es asignable por invitación ni por cambio de rol.
func ValidTeamRole(role string) bool {
	return role == RoleMember || role == RoleEditor || role == RoleAdmin
}

// User representa un usuario del sistema (pertenece a una Organization).
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Name           string
	Role           string // ver constantes Role*
	Status         string // active, inactive, suspended
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
