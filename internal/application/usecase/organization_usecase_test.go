package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func seedOrg(repo *fakeOrgRepo, id, name, slug string) {
	_ = repo.Create(&entity.Organization{
		ID: id, Name: name, Slug: slug,
		PlanType:           entity.PlanStarter,
		SubscriptionStatus: entity.SubscriptionActive,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests organización propia
// ──────────────────────────────────────────────────────────────────────────────

func TestOrganization_Create_PlanInvalido(t *testing.T) {
	uc := usecase.NewOrganizationUseCase(newFakeOrgRepo(), &fakeAnalyticsRepo{})

	_, err := uc.Create("owner-1", dto.CreateOrganizationRequest{Name: "Acme", PlanType: "gratis-para-siempre"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el plan debe pertenecer al catálogo")
}

func TestOrganization_Update_CambiaNombre(t *testing.T) {
	orgs := newFakeOrgRepo()
	seedOrg(orgs, orgA, "Acme", "acme")
	uc := usecase.NewOrganizationUseCase(orgs, &fakeAnalyticsRepo{})

	out, err := uc.Update(orgA, orgA, dto.UpdateOrganizationRequest{Name: strPtr("Acme Portales")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Portales", out.Name)
}

// El plan y el estado de suscripción solo se cambian desde el panel de
// plataforma: un miembro no puede auto-mejorarse el plan de su organización.
func TestOrganization_Update_PlanYSuscripcionSoloPlataforma(t *testing.T) {
	orgs := newFakeOrgRepo()
	seedOrg(orgs, orgA, "Acme", "acme")
	uc := usecase.NewOrganizationUseCase(orgs, &fakeAnalyticsRepo{})

	_, err := uc.Update(orgA, orgA, dto.UpdateOrganizationRequest{PlanType: strPtr(entity.PlanEnterprise)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(orgA, orgA, dto.UpdateOrganizationRequest{SubscriptionStatus: strPtr(entity.SubscriptionCancelled)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	org, _ := orgs.GetByID(orgA)
	assert.Equal(t, entity.PlanStarter, org.PlanType, "el plan no debe cambiar")
	assert.Equal(t, entity.SubscriptionActive, org.SubscriptionStatus, "la suscripción no debe cambiar")
}

func TestOrganization_Update_OtraOrganizacion(t *testing.T) {
	orgs := newFakeOrgRepo()
	seedOrg(orgs, orgB, "Otra", "otra")
	uc := usecase.NewOrganizationUseCase(orgs, &fakeAnalyticsRepo{})

	_, err := uc.Update(orgA, orgB, dto.UpdateOrganizationRequest{Name: strPtr("hackeada")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests panel de plataforma
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_UpdateOrganization_CambiaPlanValido(t *testing.T) {
	orgs := newFakeOrgRepo()
	seedOrg(orgs, orgA, "Acme", "acme")
	uc := usecase.NewAdminUseCase(orgs, &fakeAnalyticsRepo{})

	out, err := uc.UpdateOrganization(orgA, dto.UpdateOrganizationRequest{
		PlanType:           strPtr(entity.PlanEnterprise),
		SubscriptionStatus: strPtr(entity.SubscriptionPastDue),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PlanEnterprise, out.PlanType)
	assert.Equal(t, entity.SubscriptionPastDue, out.SubscriptionStatus)
}

func TestAdmin_UpdateOrganization_PlanYEstadoSeValidan(t *testing.T) {
	orgs := newFakeOrgRepo()
	seedOrg(orgs, orgA, "Acme", "acme")
	uc := usecase.NewAdminUseCase(orgs, &fakeAnalyticsRepo{})

	_, err := uc.UpdateOrganization(orgA, dto.UpdateOrganizationRequest{PlanType: strPtr("oro")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateOrganization(orgA, dto.UpdateOrganizationRequest{SubscriptionStatus: strPtr("congelada")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	org, _ := orgs.GetByID(orgA)
	assert.Equal(t, entity.PlanStarter, org.PlanType)
}
