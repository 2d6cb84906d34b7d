package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	pool *pgxpool.Pool
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones.
func NewInvitationRepository(pool *pgxpool.Pool) *InvitationRepo {
	return &InvitationRepo{pool: pool}
}

const invitationColumns = `id, organization_id, email, role, invitation_token, invited_by, expires_at, accepted_at, created_at`

// Create persiste una invitación nueva.
func (r *InvitationRepo) Create(inv *entity.TeamInvitation) error {
	query := `
		INSERT INTO team_invitations (id, organization_id, email, role, invitation_token, invited_by, expires_at, accepted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		inv.ID, inv.OrganizationID, inv.Email, inv.Role, inv.InvitationToken,
		inv.InvitedBy, inv.ExpiresAt, inv.AcceptedAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken resuelve una invitación por su token de URL.
func (r *InvitationRepo) GetByToken(token string) (*entity.TeamInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM team_invitations WHERE invitation_token = $1`
	return r.scanOne(query, token)
}

// GetPendingByEmail busca una invitación sin aceptar y sin vencer para un email
// dentro de la organización (evita duplicar invitaciones).
func (r *InvitationRepo) GetPendingByEmail(organizationID, email string) (*entity.TeamInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM team_invitations
		WHERE organization_id = $1 AND email = $2 AND accepted_at IS NULL AND expires_at > now()`
	var inv entity.TeamInvitation
	err := r.pool.QueryRow(context.Background(), query, organizationID, email).Scan(
		&inv.ID, &inv.OrganizationID, &inv.Email, &inv.Role, &inv.InvitationToken,
		&inv.InvitedBy, &inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending invitation: %w", err)
	}
	return &inv, nil
}

// ListPendingByOrganization devuelve las invitaciones vigentes sin aceptar.
func (r *InvitationRepo) ListPendingByOrganization(organizationID string) ([]*entity.TeamInvitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM team_invitations
		WHERE organization_id = $1 AND accepted_at IS NULL AND expires_at > now()
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var list []*entity.TeamInvitation
	for rows.Next() {
		var inv entity.TeamInvitation
		if err := rows.Scan(&inv.ID, &inv.OrganizationID, &inv.Email, &inv.Role, &inv.InvitationToken, &inv.InvitedBy, &inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// MarkAccepted sella la invitación como aceptada.
func (r *InvitationRepo) MarkAccepted(id string) error {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE team_invitations SET accepted_at = now() WHERE id = $1 AND accepted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("mark invitation accepted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// Delete cancela una invitación pendiente, acotado por organización.
func (r *InvitationRepo) Delete(id, organizationID string) error {
	cmd, err := r.pool.Exec(context.Background(),
		`DELETE FROM team_invitations WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvitationRepo) scanOne(query string, arg any) (*entity.TeamInvitation, error) {
	var inv entity.TeamInvitation
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&inv.ID, &inv.OrganizationID, &inv.Email, &inv.Role, &inv.InvitationToken,
		&inv.InvitedBy, &inv.ExpiresAt, &inv.AcceptedAt, &inv.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}
