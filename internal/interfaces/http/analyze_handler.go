package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/cosmic-portals/portals-api/internal/application/analyze"
	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
)

// AnalyzeHandler resumen de documentos PDF con IA (protegido). La subida es
// asíncrona: responde 202 y el cliente consulta el resultado por polling.
type AnalyzeHandler struct {
	uc *analyze.UseCase
}

// NewAnalyzeHandler construye el handler.
func NewAnalyzeHandler(uc *analyze.UseCase) *AnalyzeHandler {
	return &AnalyzeHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar PDF a resumir
// @Description  Sube un PDF (multipart, campo "document"). Valida extensión, tipo y tamaño antes de encolar; devuelve 202 con el analysis_id.
// @Tags         analyze
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "Documento PDF"
// @Success      202  {object}  dto.AnalyzeAcceptedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analyze/summarize [post]
func (h *AnalyzeHandler) Submit(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere el archivo en el campo document"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}

	out, err := h.uc.Submit(GetUserID(c), fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el archivo debe ser un PDF válido dentro del límite de tamaño"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// GetResult godoc
// @Summary      Consultar resultado de análisis
// @Tags         analyze
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del análisis"
// @Success      200  {object}  dto.AnalysisResultResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/analyze/results/{id} [get]
func (h *AnalyzeHandler) GetResult(c *fiber.Ctx) error {
	out, err := h.uc.GetResult(GetUserID(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el análisis pertenece a otro usuario"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "análisis no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar análisis del usuario
// @Tags         analyze
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AnalysisListResponse
// @Router       /api/analyze/results [get]
func (h *AnalyzeHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(GetUserID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
