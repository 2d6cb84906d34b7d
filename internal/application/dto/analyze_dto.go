package dto

import "time"

// DocumentSummaryDTO salida estructurada del modelo de lenguaje.
type DocumentSummaryDTO struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	WordCount int      `json:"word_count"`
}

// AnalyzeAcceptedResponse respuesta inmediata al encolar un análisis (HTTP 202).
type AnalyzeAcceptedResponse struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// AnalysisResultResponse estado/resultado de un análisis.
type AnalysisResultResponse struct {
	ID           string    `json:"id"`
	DocumentName string    `json:"document_name"`
	Status       string    `json:"status"`
	Summary      string    `json:"summary,omitempty"`
	KeyPoints    []string  `json:"key_points,omitempty"`
	WordCount    int       `json:"word_count,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AnalysisListResponse lista de análisis del usuario.
type AnalysisListResponse struct {
	Items []AnalysisResultResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
