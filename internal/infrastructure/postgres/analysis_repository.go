package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

var _ repository.AnalysisRepository = (*AnalysisRepo)(nil)

// AnalysisRepo implementación del puerto AnalysisRepository sobre PostgreSQL.
// key_points se persiste como JSONB.
type AnalysisRepo struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository construye el adaptador de persistencia para análisis de PDF.
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

const analysisColumns = `id, user_id, document_name, status, summary, key_points, word_count, error_message, created_at, updated_at`

// Create persiste un análisis recién encolado.
func (r *AnalysisRepo) Create(result *entity.AnalysisResult) error {
	query := `
		INSERT INTO analysis_results (id, user_id, document_name, status, summary, key_points, word_count, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		result.ID, result.UserID, result.DocumentName, result.Status,
		result.Summary, result.KeyPoints, result.WordCount, result.ErrorMessage,
		result.CreatedAt, result.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// GetByID obtiene un análisis por ID.
func (r *AnalysisRepo) GetByID(id string) (*entity.AnalysisResult, error) {
	query := `SELECT ` + analysisColumns + ` FROM analysis_results WHERE id = $1`
	var a entity.AnalysisResult
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.UserID, &a.DocumentName, &a.Status, &a.Summary, &a.KeyPoints,
		&a.WordCount, &a.ErrorMessage, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	return &a, nil
}

// ListByUser devuelve los análisis de un usuario, más recientes primero.
func (r *AnalysisRepo) ListByUser(userID string, limit, offset int) ([]*entity.AnalysisResult, error) {
	query := `SELECT ` + analysisColumns + ` FROM analysis_results WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var list []*entity.AnalysisResult
	for rows.Next() {
		var a entity.AnalysisResult
		if err := rows.Scan(&a.ID, &a.UserID, &a.DocumentName, &a.Status, &a.Summary, &a.KeyPoints, &a.WordCount, &a.ErrorMessage, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update persiste el desenlace del análisis.
func (r *AnalysisRepo) Update(result *entity.AnalysisResult) error {
	query := `
		UPDATE analysis_results
		SET status = $2, summary = $3, key_points = $4, word_count = $5, error_message = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query,
		result.ID, result.Status, result.Summary, result.KeyPoints,
		result.WordCount, result.ErrorMessage, result.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update analysis: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
