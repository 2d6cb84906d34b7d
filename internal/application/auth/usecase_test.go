package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-portals/portals-api/internal/application/auth"
	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	pkgjwt "github.com/cosmic-portals/portals-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*entity.User{}} }

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) ListByOrganization(string) ([]*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) UpdateRole(string, string) error                   { return nil }
func (f *fakeUserRepo) UpdateOrganization(string, string, string) error   { return nil }
func (f *fakeUserRepo) Delete(string) error                               { return nil }

type fakeOrgRepo struct {
	orgs map[string]*entity.Organization
}

func newFakeOrgRepo() *fakeOrgRepo { return &fakeOrgRepo{orgs: map[string]*entity.Organization{}} }

func (f *fakeOrgRepo) Create(o *entity.Organization) error {
	cp := *o
	f.orgs[o.ID] = &cp
	return nil
}
func (f *fakeOrgRepo) GetByID(id string) (*entity.Organization, error) {
	if o, ok := f.orgs[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeOrgRepo) GetBySlug(slug string) (*entity.Organization, error) {
	for _, o := range f.orgs {
		if o.Slug == slug {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeOrgRepo) Update(o *entity.Organization) error {
	cp := *o
	f.orgs[o.ID] = &cp
	return nil
}
func (f *fakeOrgRepo) List(int, int) ([]*entity.Organization, error) { return nil, nil }

var testJWT = auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "cosmic-portals-test"}

func newAuthUC(users *fakeUserRepo, orgs *fakeOrgRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, orgs, testJWT)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests registro
// ──────────────────────────────────────────────────────────────────────────────

// Registro con organization_name: crea la organización (slug derivado del
// nombre) y el usuario queda como owner.
func TestRegister_CreaOrganizacionComoOwner(t *testing.T) {
	users := newFakeUserRepo()
	orgs := newFakeOrgRepo()
	uc := newAuthUC(users, orgs)

	out, err := uc.Register(dto.RegisterRequest{
		Email:            "fundadora@acme.co",
		Password:         "contraseña-larga",
		Name:             "Ana",
		OrganizationName: "Café Río",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleOwner, out.Role)
	org, err := orgs.GetBySlug("cafe-rio")
	require.NoError(t, err)
	require.NotNil(t, org, "el slug se deriva del nombre sin acentos")
	assert.Equal(t, out.OrganizationID, org.ID)
	assert.Equal(t, out.ID, org.OwnerID, "la organización apunta a su owner")
	assert.Equal(t, entity.PlanStarter, org.PlanType, "toda organización nueva arranca en starter")
}

// Registro con organization_slug: se une como member a la existente.
func TestRegister_SeUneComoMember(t *testing.T) {
	users := newFakeUserRepo()
	orgs := newFakeOrgRepo()
	require.NoError(t, orgs.Create(&entity.Organization{ID: "org-1", Name: "Acme", Slug: "acme"}))
	uc := newAuthUC(users, orgs)

	out, err := uc.Register(dto.RegisterRequest{
		Email:            "nueva@acme.co",
		Password:         "contraseña-larga",
		OrganizationSlug: "acme",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleMember, out.Role)
	assert.Equal(t, "org-1", out.OrganizationID)
}

func TestRegister_SlugInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), newFakeOrgRepo())

	_, err := uc.Register(dto.RegisterRequest{
		Email:            "x@x.co",
		Password:         "contraseña-larga",
		OrganizationSlug: "fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	users := newFakeUserRepo()
	orgs := newFakeOrgRepo()
	uc := newAuthUC(users, orgs)

	_, err := uc.Register(dto.RegisterRequest{
		Email: "x@x.co", Password: "contraseña-larga", OrganizationName: "Uno",
	})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{
		Email: "x@x.co", Password: "contraseña-larga", OrganizationName: "Dos",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_SinOrganizacion(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), newFakeOrgRepo())

	_, err := uc.Register(dto.RegisterRequest{Email: "x@x.co", Password: "contraseña-larga"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenLlevaOrgYRol(t *testing.T) {
	users := newFakeUserRepo()
	orgs := newFakeOrgRepo()
	uc := newAuthUC(users, orgs)

	reg, err := uc.Register(dto.RegisterRequest{
		Email: "owner@acme.co", Password: "contraseña-larga", OrganizationName: "Acme",
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "owner@acme.co", Password: "contraseña-larga"})
	require.NoError(t, err)

	userID, orgID, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, reg.OrganizationID, orgID)
	assert.Equal(t, entity.RoleOwner, role, "el rol viaja como claim del token")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), newFakeOrgRepo())

	_, err := uc.Register(dto.RegisterRequest{
		Email: "x@x.co", Password: "contraseña-larga", OrganizationName: "Acme",
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "x@x.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), newFakeOrgRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@x.co", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// La respuesta de usuario nunca expone el hash de la contraseña (el DTO ni
// siquiera tiene el campo), y el hash persistido no es la contraseña plana.
func TestRegister_PasswordSeHashea(t *testing.T) {
	users := newFakeUserRepo()
	uc := newAuthUC(users, newFakeOrgRepo())

	out, err := uc.Register(dto.RegisterRequest{
		Email: "x@x.co", Password: "contraseña-larga", OrganizationName: "Acme",
	})
	require.NoError(t, err)

	stored, err := users.GetByID(out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "contraseña-larga", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}
