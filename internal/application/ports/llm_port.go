package ports

import (
	"context"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
)

// LLMService define el puerto de salida para el servicio de inteligencia artificial.
// Cualquier adaptador (Gemini, OpenAI, Ollama, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), el dominio/aplicación
// solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// SummarizeDocument analiza el texto extraído de un documento y devuelve
	// el resumen estructurado (summary, key_points, word_count).
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	SummarizeDocument(ctx context.Context, documentText string) (*dto.DocumentSummaryDTO, error)
}
