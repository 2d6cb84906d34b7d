package repository

import "github.com/cosmic-portals/portals-api/internal/domain/entity"

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByOrganization(organizationID string) ([]*entity.User, error)
	UpdateRole(id, role string) error
	UpdateOrganization(id, organizationID, role string) error
	Delete(id string) error
}
