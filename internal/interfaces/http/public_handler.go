package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/scan"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
)

// PublicHandler rutas públicas sin autenticación: el endpoint de escaneo que
// abren los dispositivos NFC y la resolución de landing pages por slug.
type PublicHandler struct {
	recorder *scan.Recorder
	landing  *usecase.LandingUseCase
}

// NewPublicHandler construye el handler.
func NewPublicHandler(recorder *scan.Recorder, landing *usecase.LandingUseCase) *PublicHandler {
	return &PublicHandler{recorder: recorder, landing: landing}
}

// Scan godoc
// @Summary      Registrar escaneo de dispositivo
// @Description  Ruta que abre el teléfono al acercar un dispositivo NFC. Registra la visita y devuelve el contenido de bienvenida; el contenido se sirve aunque el registro falle.
// @Tags         public
// @Produce      json
// @Param        deviceId      path   string   true   "Token público del dispositivo"
// @Param        scan_type     query  string   false  "nfc_tap o qr_scan"  default(nfc_tap)
// @Param        lat           query  number   false  "Latitud del visitante"
// @Param        lng           query  number   false  "Longitud del visitante"
// @Param        utm_source    query  string   false  "Fuente de campaña"
// @Success      200  {object}  dto.ScanWelcomeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /scan/{deviceId} [get]
func (h *PublicHandler) Scan(c *fiber.Ctx) error {
	deviceID := c.Params("deviceId")
	meta := dto.ScanVisitMetadata{
		ScanType:    c.Query("scan_type"),
		IPAddress:   c.IP(),
		UserAgent:   c.Get(fiber.HeaderUserAgent),
		Referrer:    c.Get(fiber.HeaderReferer),
		Latitude:    queryFloat(c, "lat"),
		Longitude:   queryFloat(c, "lng"),
		Accuracy:    queryFloat(c, "accuracy"),
		UTMSource:   c.Query("utm_source"),
		UTMMedium:   c.Query("utm_medium"),
		UTMCampaign: c.Query("utm_campaign"),
		UTMTerm:     c.Query("utm_term"),
		UTMContent:  c.Query("utm_content"),
	}
	out, err := h.recorder.Record(c.Context(), deviceID, meta)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "dispositivo no encontrado"})
	}
	return c.JSON(out)
}

// Landing godoc
// @Summary      Resolver landing page pública
// @Description  Sirve el contenido de una landing page publicada. Las páginas en borrador no son visibles.
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug de la página"
// @Success      200   {object}  dto.PublicLandingResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /landing/{slug} [get]
func (h *PublicHandler) Landing(c *fiber.Ctx) error {
	out, err := h.landing.ResolvePublic(c.Context(), c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "página no encontrada"})
	}
	return c.JSON(out)
}

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
