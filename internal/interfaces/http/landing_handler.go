package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
	"github.com/cosmic-portals/portals-api/internal/domain"
)

// LandingHandler maneja el CRUD administrativo de landing pages (protegido).
type LandingHandler struct {
	uc *usecase.LandingUseCase
}

// NewLandingHandler construye el handler.
func NewLandingHandler(uc *usecase.LandingUseCase) *LandingHandler {
	return &LandingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear landing page
// @Description  Crea una landing page en estado borrador. El slug se deriva del título si viene vacío.
// @Tags         landing-pages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLandingPageRequest  true  "Datos de la página"
// @Success      201   {object}  dto.LandingPageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/landing-pages [post]
func (h *LandingHandler) Create(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	var in dto.CreateLandingPageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.Create(organizationID, in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slug inválido"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el slug ya está tomado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar landing pages
// @Tags         landing-pages
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LandingPageListResponse
// @Router       /api/landing-pages [get]
func (h *LandingHandler) List(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(organizationID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener landing page por ID
// @Tags         landing-pages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la página"
// @Success      200  {object}  dto.LandingPageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landing-pages/{id} [get]
func (h *LandingHandler) GetByID(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	out, err := h.uc.GetByID(organizationID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "landing page no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar landing page
// @Tags         landing-pages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la página"
// @Param        body  body  dto.UpdateLandingPageRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.LandingPageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/landing-pages/{id} [put]
func (h *LandingHandler) Update(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	var in dto.UpdateLandingPageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(organizationID, c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slug inválido"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el slug ya está tomado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "landing page no encontrada"})
	}
	return c.JSON(out)
}

// Publish godoc
// @Summary      Publicar landing page
// @Tags         landing-pages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la página"
// @Success      200  {object}  dto.LandingPageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landing-pages/{id}/publish [post]
func (h *LandingHandler) Publish(c *fiber.Ctx) error {
	return h.setPublished(c, true)
}

// Unpublish godoc
// @Summary      Despublicar landing page
// @Description  La página vuelve a borrador y deja de servirse por la ruta pública de inmediato.
// @Tags         landing-pages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la página"
// @Success      200  {object}  dto.LandingPageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landing-pages/{id}/unpublish [post]
func (h *LandingHandler) Unpublish(c *fiber.Ctx) error {
	return h.setPublished(c, false)
}

func (h *LandingHandler) setPublished(c *fiber.Ctx, published bool) error {
	organizationID := GetOrganizationID(c)
	out, err := h.uc.SetPublished(organizationID, c.Params("id"), published)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "landing page no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar landing page
// @Tags         landing-pages
// @Security     Bearer
// @Param        id   path  string  true  "ID de la página"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/landing-pages/{id} [delete]
func (h *LandingHandler) Delete(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if err := h.uc.Delete(organizationID, c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "landing page no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
