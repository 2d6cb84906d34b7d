package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
	"github.com/cosmic-portals/portals-api/internal/domain"
)

// DeviceHandler maneja las peticiones HTTP para dispositivos NFC (protegido).
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar dispositivo NFC
// @Description  Registra un dispositivo. Si no viene device_id el servidor genera un token ptt_<uuid>.
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDeviceRequest  true  "Datos del dispositivo"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	var in dto.RegisterDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(organizationID, in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "device_type inválido"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el device_id ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar dispositivos
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DeviceListResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(organizationID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener dispositivo por ID
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID interno del dispositivo"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	out, err := h.uc.GetByID(organizationID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar dispositivo
// @Description  Elimina el dispositivo. Los escaneos históricos se conservan.
// @Tags         devices
// @Security     Bearer
// @Param        id   path  string  true  "ID interno del dispositivo"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if err := h.uc.Delete(organizationID, c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Analytics godoc
// @Summary      Analítica del dispositivo
// @Description  Totales, días activos, desglose por tipo y serie diaria de los últimos 30 días.
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID interno del dispositivo"
// @Success      200  {object}  dto.DeviceAnalyticsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/analytics [get]
func (h *DeviceHandler) Analytics(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	out, err := h.uc.Analytics(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
	}
	return c.JSON(out)
}

// Scans godoc
// @Summary      Escaneos recientes del dispositivo
// @Description  Lista paginada de escaneos, más recientes primero.
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID interno del dispositivo"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ScanListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/scans [get]
func (h *DeviceHandler) Scans(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.Scans(c.Context(), organizationID, c.Params("id"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de analítica del dispositivo
// @Tags         devices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID interno del dispositivo"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/report.pdf [get]
func (h *DeviceHandler) Report(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	pdfBytes, err := h.uc.Report(c.Context(), organizationID, c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="device-report.pdf"`)
	return c.Send(pdfBytes)
}
