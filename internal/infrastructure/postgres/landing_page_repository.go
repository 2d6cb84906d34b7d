package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

var _ repository.LandingPageRepository = (*LandingPageRepo)(nil)

// LandingPageRepo implementación del puerto LandingPageRepository sobre PostgreSQL.
type LandingPageRepo struct {
	pool *pgxpool.Pool
}

// NewLandingPageRepository construye el adaptador de persistencia para landing pages.
func NewLandingPageRepository(pool *pgxpool.Pool) *LandingPageRepo {
	return &LandingPageRepo{pool: pool}
}

const landingColumns = `id, organization_id, title, slug, content, is_published, view_count, created_at, updated_at`

// Create persiste una nueva landing page. Devuelve domain.ErrDuplicate si el slug ya existe.
func (r *LandingPageRepo) Create(page *entity.LandingPage) error {
	query := `
		INSERT INTO landing_pages (id, organization_id, title, slug, content, is_published, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		page.ID, page.OrganizationID, page.Title, page.Slug, page.Content,
		page.IsPublished, page.ViewCount, page.CreatedAt, page.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert landing page: %w", err)
	}
	return nil
}

// GetByID obtiene una página por ID (publicada o no; uso administrativo).
func (r *LandingPageRepo) GetByID(id string) (*entity.LandingPage, error) {
	query := `SELECT ` + landingColumns + ` FROM landing_pages WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySlug obtiene una página por slug sin filtrar por publicación (uso administrativo).
func (r *LandingPageRepo) GetBySlug(slug string) (*entity.LandingPage, error) {
	query := `SELECT ` + landingColumns + ` FROM landing_pages WHERE slug = $1`
	return r.scanOne(query, slug)
}

// GetPublishedBySlug resuelve la ruta pública: solo páginas con is_published = true.
// Una página en borrador se comporta como inexistente para el visitante.
func (r *LandingPageRepo) GetPublishedBySlug(slug string) (*entity.LandingPage, error) {
	query := `SELECT ` + landingColumns + ` FROM landing_pages WHERE slug = $1 AND is_published = true`
	return r.scanOne(query, slug)
}

// ListByOrganization devuelve las páginas de una organización con paginación.
func (r *LandingPageRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.LandingPage, error) {
	query := `SELECT ` + landingColumns + ` FROM landing_pages WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list landing pages: %w", err)
	}
	defer rows.Close()

	var list []*entity.LandingPage
	for rows.Next() {
		var p entity.LandingPage
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Title, &p.Slug, &p.Content, &p.IsPublished, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan landing page: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza título, slug y contenido.
func (r *LandingPageRepo) Update(page *entity.LandingPage) error {
	query := `
		UPDATE landing_pages
		SET title = $3, slug = $4, content = $5, updated_at = $6
		WHERE id = $1 AND organization_id = $2`
	cmd, err := r.pool.Exec(context.Background(), query,
		page.ID, page.OrganizationID, page.Title, page.Slug, page.Content, page.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update landing page: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPublished alterna el estado draft <-> published.
func (r *LandingPageRepo) SetPublished(id, organizationID string, published bool) error {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE landing_pages SET is_published = $3, updated_at = now() WHERE id = $1 AND organization_id = $2`,
		id, organizationID, published)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una página, acotado por organización.
func (r *LandingPageRepo) Delete(id, organizationID string) error {
	cmd, err := r.pool.Exec(context.Background(),
		`DELETE FROM landing_pages WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete landing page: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViewCount incremento atómico del contador de vistas (misma técnica
// que DeviceRepo.IncrementScanCount).
func (r *LandingPageRepo) IncrementViewCount(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE landing_pages SET view_count = view_count + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view_count: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LandingPageRepo) scanOne(query string, arg any) (*entity.LandingPage, error) {
	var p entity.LandingPage
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.OrganizationID, &p.Title, &p.Slug, &p.Content, &p.IsPublished,
		&p.ViewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get landing page: %w", err)
	}
	return &p, nil
}
