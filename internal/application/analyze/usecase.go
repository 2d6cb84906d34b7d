package analyze

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/ports"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
	"github.com/cosmic-portals/portals-api/pkg/logger"
	"github.com/cosmic-portals/portals-api/pkg/metrics"
)

// llmTimeout tiempo máximo de espera por el modelo de lenguaje.
const llmTimeout = 30 * time.Second

// UseCase resúmenes de PDF con IA. El flujo es asíncrono: la subida valida y
// devuelve 202 con un analysis_id; el procesamiento (extracción de texto +
// llamada al LLM) corre en una goroutine y el cliente consulta el resultado
// por polling.
type UseCase struct {
	analysisRepo  repository.AnalysisRepository
	extractor     ports.PDFTextExtractor
	llm           ports.LLMService
	maxFileSizeMB int
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(analysisRepo repository.AnalysisRepository, extractor ports.PDFTextExtractor, llm ports.LLMService, maxFileSizeMB int, log *logger.Logger) *UseCase {
	return &UseCase{
		analysisRepo:  analysisRepo,
		extractor:     extractor,
		llm:           llm,
		maxFileSizeMB: maxFileSizeMB,
		log:           log.Component("analyze"),
	}
}

// Submit valida el documento y encola el análisis. La validación (extensión,
// content type, tamaño, cuerpo no vacío) ocurre ANTES de tocar el servicio de
// IA: un archivo inválido jamás genera una llamada al modelo.
func (uc *UseCase) Submit(userID, filename, contentType string, data []byte) (*dto.AnalyzeAcceptedResponse, error) {
	if err := uc.validate(filename, contentType, data); err != nil {
		metrics.AnalyzeRequests.WithLabelValues("rejected").Inc()
		return nil, err
	}

	now := time.Now()
	result := &entity.AnalysisResult{
		ID:           uuid.New().String(),
		UserID:       userID,
		DocumentName: filename,
		Status:       entity.AnalysisProcessing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.analysisRepo.Create(result); err != nil {
		return nil, err
	}

	go uc.process(result.ID, filename, data)

	return &dto.AnalyzeAcceptedResponse{
		AnalysisID: result.ID,
		Status:     result.Status,
		Message:    "documento en análisis; consulte el resultado con el analysis_id",
	}, nil
}

// GetResult devuelve el estado/resultado de un análisis. Solo el dueño puede
// consultarlo.
func (uc *UseCase) GetResult(userID, analysisID string) (*dto.AnalysisResultResponse, error) {
	result, err := uc.analysisRepo.GetByID(analysisID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	if result.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toAnalysisResponse(result), nil
}

// List lista los análisis del usuario (paginado, más recientes primero).
func (uc *UseCase) List(userID string, page dto.PageRequest) (*dto.AnalysisListResponse, error) {
	page.DefaultPage()
	results, err := uc.analysisRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AnalysisResultResponse, 0, len(results))
	for _, r := range results {
		items = append(items, *toAnalysisResponse(r))
	}
	return &dto.AnalysisListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *UseCase) validate(filename, contentType string, data []byte) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return domain.ErrInvalidInput
	}
	if contentType != "" && contentType != "application/pdf" {
		return domain.ErrInvalidInput
	}
	if len(data) == 0 {
		return domain.ErrInvalidInput
	}
	if len(data) > uc.maxFileSizeMB*1024*1024 {
		return domain.ErrInvalidInput
	}
	return nil
}

// process corre en background: extrae el texto, llama al LLM con timeout y
// persiste el desenlace. Todo fallo termina en status failed con mensaje.
func (uc *UseCase) process(analysisID, filename string, data []byte) {
	text, err := uc.extractor.ExtractText(data)
	if err != nil {
		uc.fail(analysisID, "no se pudo extraer texto del PDF: "+err.Error())
		return
	}
	if strings.TrimSpace(text) == "" {
		uc.fail(analysisID, "el PDF no contiene texto extraíble")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
	defer cancel()

	summary, err := uc.llm.SummarizeDocument(ctx, text)
	if err != nil {
		uc.fail(analysisID, "el servicio de IA no pudo resumir el documento: "+err.Error())
		return
	}

	result, err := uc.analysisRepo.GetByID(analysisID)
	if err != nil || result == nil {
		uc.log.Error().Err(err).Str("analysis_id", analysisID).Msg("análisis no encontrado al persistir el resultado")
		return
	}
	result.Status = entity.AnalysisCompleted
	result.Summary = summary.Summary
	result.KeyPoints = summary.KeyPoints
	result.WordCount = summary.WordCount
	if result.WordCount <= 0 {
		// El modelo a veces omite word_count; contar sobre el texto extraído.
		result.WordCount = len(strings.Fields(text))
	}
	result.UpdatedAt = time.Now()
	if err := uc.analysisRepo.Update(result); err != nil {
		uc.log.Error().Err(err).Str("analysis_id", analysisID).Msg("no se pudo persistir el resultado del análisis")
		return
	}
	metrics.AnalyzeRequests.WithLabelValues("completed").Inc()
	uc.log.Info().Str("analysis_id", analysisID).Str("document", filename).Msg("análisis completado")
}

func (uc *UseCase) fail(analysisID, msg string) {
	metrics.AnalyzeRequests.WithLabelValues("failed").Inc()
	uc.log.Warn().Str("analysis_id", analysisID).Str("error", msg).Msg("análisis fallido")
	result, err := uc.analysisRepo.GetByID(analysisID)
	if err != nil || result == nil {
		return
	}
	result.Status = entity.AnalysisFailed
	result.ErrorMessage = msg
	result.UpdatedAt = time.Now()
	if err := uc.analysisRepo.Update(result); err != nil {
		uc.log.Error().Err(err).Str("analysis_id", analysisID).Msg("no se pudo persistir el fallo del análisis")
	}
}

func toAnalysisResponse(r *entity.AnalysisResult) *dto.AnalysisResultResponse {
	if r == nil {
		return nil
	}
	return &dto.AnalysisResultResponse{
		ID:           r.ID,
		DocumentName: r.DocumentName,
		Status:       r.Status,
		Summary:      r.Summary,
		KeyPoints:    r.KeyPoints,
		WordCount:    r.WordCount,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
	}
}
