package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

// Asegura que OrganizationRepo implementa repository.OrganizationRepository.
var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepo {
	return &OrganizationRepo{pool: pool}
}

const orgColumns = `id, name, slug, plan_type, subscription_status, owner_id, created_at, updated_at`

// Create persiste una nueva organización. Devuelve domain.ErrDuplicate si el slug ya existe.
func (r *OrganizationRepo) Create(org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, slug, plan_type, subscription_status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		org.ID, org.Name, org.Slug, org.PlanType, org.SubscriptionStatus,
		org.OwnerID, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySlug obtiene una organización por slug.
func (r *OrganizationRepo) GetBySlug(slug string) (*entity.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE slug = $1`
	return r.scanOne(query, slug)
}

// Update actualiza nombre, plan y estado de suscripción.
func (r *OrganizationRepo) Update(org *entity.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, plan_type = $3, subscription_status = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query,
		org.ID, org.Name, org.PlanType, org.SubscriptionStatus, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve organizaciones con paginación (panel de administración).
func (r *OrganizationRepo) List(limit, offset int) ([]*entity.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Organization
	for rows.Next() {
		var o entity.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.PlanType, &o.SubscriptionStatus, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *OrganizationRepo) scanOne(query string, arg any) (*entity.Organization, error) {
	var o entity.Organization
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.Name, &o.Slug, &o.PlanType, &o.SubscriptionStatus, &o.OwnerID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}
