package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
	"github.com/cosmic-portals/portals-api/pkg/jwt"
	"github.com/cosmic-portals/portals-api/pkg/slug"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, orgRepo: orgRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario. Si viene OrganizationName crea una organización
// nueva y el usuario queda como owner; si viene OrganizationSlug se une como
// member a una organización existente. Devuelve ErrEmailAlreadyExists si el
// email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}

	var orgID, role string
	switch {
	case in.OrganizationName != "":
		orgSlug := slug.Make(in.OrganizationName)
		if orgSlug == "" {
			return nil, domain.ErrInvalidInput
		}
		if dup, _ := uc.orgRepo.GetBySlug(orgSlug); dup != nil {
			return nil, domain.ErrDuplicate
		}
		org := &entity.Organization{
			ID:                 uuid.New().String(),
			Name:               in.OrganizationName,
			Slug:               orgSlug,
			PlanType:           entity.PlanStarter,
			SubscriptionStatus: entity.SubscriptionActive,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := uc.orgRepo.Create(org); err != nil {
			return nil, err
		}
		orgID = org.ID
		role = entity.RoleOwner
	case in.OrganizationSlug != "":
		org, err := uc.orgRepo.GetBySlug(in.OrganizationSlug)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, domain.ErrNotFound // organización no existe
		}
		orgID = org.ID
		role = entity.RoleMember
	default:
		return nil, domain.ErrInvalidInput
	}

	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Name:           name,
		Role:           role,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	// La organización recién creada queda apuntando a su owner.
	if role == entity.RoleOwner {
		org, _ := uc.orgRepo.GetByID(orgID)
		if org != nil {
			org.OwnerID = user.ID
			org.UpdatedAt = time.Now()
			_ = uc.orgRepo.Update(org)
		}
	}

	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.OrganizationID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse mapea la entidad a su DTO de salida (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
