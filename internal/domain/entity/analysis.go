package entity

import "time"

// Estados de un análisis de documento.
const (
	AnalysisPending    = "pending"
	AnalysisProcessing = "processing"
	AnalysisCompleted  = "completed"
	AnalysisFailed     = "failed"
)

// AnalysisResult resultado (o progreso) del resumen de un PDF con IA.
// Pertenece al usuario que subió el documento.
type AnalysisResult struct {
	ID           string
	UserID       string
	DocumentName string
	Status       string // pending, processing, completed, failed
	Summary      string
	KeyPoints    []string
	WordCount    int
	ErrorMessage string // solo con Status == failed
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
