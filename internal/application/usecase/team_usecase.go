package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cosmic-portals/portals-api/internal/application/auth"
	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

// TeamUseCase gestión del equipo de una organización: miembros, roles e
// invitaciones. Las operaciones de escritura exigen rol admin u owner; el
// handler valida el rol con el middleware y aquí se revalida la semántica
// (el owner no puede ser removido ni degradado por otro admin).
type TeamUseCase struct {
	userRepo repository.UserRepository
	invRepo  repository.InvitationRepository
	orgRepo  repository.OrganizationRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(userRepo repository.UserRepository, invRepo repository.InvitationRepository, orgRepo repository.OrganizationRepository) *TeamUseCase {
	return &TeamUseCase{userRepo: userRepo, invRepo: invRepo, orgRepo: orgRepo}
}

// Team devuelve miembros actuales e invitaciones pendientes.
func (uc *TeamUseCase) Team(organizationID string) (*dto.TeamResponse, error) {
	users, err := uc.userRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, err
	}
	invitations, err := uc.invRepo.ListPendingByOrganization(organizationID)
	if err != nil {
		return nil, err
	}
	members := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		members = append(members, *auth.ToUserResponse(u))
	}
	pending := make([]dto.InvitationResponse, 0, len(invitations))
	now := time.Now()
	for _, inv := range invitations {
		if !inv.IsPending(now) {
			continue
		}
		pending = append(pending, *toInvitationResponse(inv))
	}
	return &dto.TeamResponse{Members: members, Invitations: pending}, nil
}

// Invite crea una invitación con token opaco y vigencia de 7 días. Un email
// que ya es miembro o ya tiene invitación pendiente devuelve ErrDuplicate.
func (uc *TeamUseCase) Invite(organizationID, invitedBy string, in dto.InviteMemberRequest) (*dto.InvitationResponse, error) {
	if existing, _ := uc.userRepo.GetByEmail(in.Email); existing != nil && existing.OrganizationID == organizationID {
		return nil, domain.ErrDuplicate
	}
	if pending, _ := uc.invRepo.GetPendingByEmail(organizationID, in.Email); pending != nil && pending.IsPending(time.Now()) {
		return nil, domain.ErrDuplicate
	}
	role := in.Role
	if role == "" {
		role = entity.RoleMember
	}
	if !entity.ValidTeamRole(role) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	inv := &entity.TeamInvitation{
		ID:              uuid.New().String(),
		OrganizationID:  organizationID,
		Email:           in.Email,
		Role:            role,
		InvitationToken: uuid.New().String(),
		InvitedBy:       invitedBy,
		ExpiresAt:       now.Add(entity.InvitationTTL),
		CreatedAt:       now,
	}
	if err := uc.invRepo.Create(inv); err != nil {
		return nil, err
	}
	return toInvitationResponse(inv), nil
}

// Accept acepta una invitación por token: mueve (o da de alta lógica) al
// usuario a la organización con el rol invitado. Token vencido devuelve
// ErrExpired; ya aceptado, ErrConflict.
func (uc *TeamUseCase) Accept(token, userID string) (*dto.UserResponse, error) {
	inv, err := uc.invRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if inv.AcceptedAt != nil {
		return nil, domain.ErrConflict
	}
	if inv.IsExpired(now) {
		return nil, domain.ErrExpired
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	// La invitación es nominal: solo el email invitado puede aceptarla.
	if user.Email != inv.Email {
		return nil, domain.ErrForbidden
	}
	if err := uc.userRepo.UpdateOrganization(user.ID, inv.OrganizationID, inv.Role); err != nil {
		return nil, err
	}
	if err := uc.invRepo.MarkAccepted(inv.ID); err != nil {
		return nil, err
	}
	user.OrganizationID = inv.OrganizationID
	user.Role = inv.Role
	return auth.ToUserResponse(user), nil
}

// CancelInvitation elimina una invitación pendiente de la organización.
func (uc *TeamUseCase) CancelInvitation(organizationID, invitationID string) error {
	return uc.invRepo.Delete(invitationID, organizationID)
}

// UpdateMemberRole cambia el rol de un miembro. El owner no puede ser
// degradado por esta vía, y solo se aceptan roles de equipo: owner y
// superadmin no son asignables aquí.
func (uc *TeamUseCase) UpdateMemberRole(organizationID, memberID string, in dto.UpdateMemberRoleRequest) (*dto.UserResponse, error) {
	if !entity.ValidTeamRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.getMember(organizationID, memberID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if err := uc.userRepo.UpdateRole(user.ID, in.Role); err != nil {
		return nil, err
	}
	user.Role = in.Role
	return auth.ToUserResponse(user), nil
}

// RemoveMember saca a un miembro de la organización. El owner nunca se remueve.
func (uc *TeamUseCase) RemoveMember(organizationID, memberID string) error {
	user, err := uc.getMember(organizationID, memberID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Role == entity.RoleOwner {
		return domain.ErrForbidden
	}
	return uc.userRepo.Delete(user.ID)
}

func (uc *TeamUseCase) getMember(organizationID, memberID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, nil
	}
	return user, nil
}

func toInvitationResponse(i *entity.TeamInvitation) *dto.InvitationResponse {
	if i == nil {
		return nil
	}
	return &dto.InvitationResponse{
		ID:        i.ID,
		Email:     i.Email,
		Role:      i.Role,
		Token:     i.InvitationToken,
		InvitedBy: i.InvitedBy,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
	}
}
