package repository

import "github.com/cosmic-portals/portals-api/internal/domain/entity"

// AnalysisRepository puerto de persistencia para AnalysisResult.
type AnalysisRepository interface {
	Create(result *entity.AnalysisResult) error
	GetByID(id string) (*entity.AnalysisResult, error)
	ListByUser(userID string, limit, offset int) ([]*entity.AnalysisResult, error)
	// Update persiste el desenlace del análisis (completed/failed con sus campos).
	Update(result *entity.AnalysisResult) error
}
