package repository

import "github.com/cosmic-portals/portals-api/internal/domain/entity"

// InvitationRepository puerto de persistencia para TeamInvitation.
type InvitationRepository interface {
	Create(inv *entity.TeamInvitation) error
	GetByToken(token string) (*entity.TeamInvitation, error)
	GetPendingByEmail(organizationID, email string) (*entity.TeamInvitation, error)
	ListPendingByOrganization(organizationID string) ([]*entity.TeamInvitation, error)
	MarkAccepted(id string) error
	Delete(id, organizationID string) error
}
