package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
	"github.com/cosmic-portals/portals-api/internal/domain"
)

// TeamHandler maneja la gestión del equipo (protegido; las escrituras exigen
// rol admin u owner vía RequireRole en el router).
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Team godoc
// @Summary      Listar equipo
// @Description  Miembros actuales e invitaciones pendientes de la organización.
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TeamResponse
// @Router       /api/team [get]
func (h *TeamHandler) Team(c *fiber.Ctx) error {
	out, err := h.uc.Team(GetOrganizationID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Invite godoc
// @Summary      Invitar miembro
// @Description  Crea una invitación con vigencia de 7 días. Email ya miembro o con invitación pendiente devuelve 409.
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteMemberRequest  true  "Email y rol"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team/invitations [post]
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	out, err := h.uc.Invite(GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el email ya es miembro o tiene invitación pendiente"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido: solo member, editor o admin"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Accept godoc
// @Summary      Aceptar invitación
// @Description  El usuario autenticado acepta la invitación por token y pasa a la organización con el rol invitado.
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        token  path  string  true  "Token de la invitación"
// @Success      200    {object}  dto.UserResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Failure      410    {object}  dto.ErrorResponse
// @Router       /api/team/invitations/{token}/accept [post]
func (h *TeamHandler) Accept(c *fiber.Ctx) error {
	out, err := h.uc.Accept(c.Params("token"), GetUserID(c))
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
		case domain.ErrExpired:
			return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{Code: "EXPIRED", Message: "la invitación ya venció"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la invitación ya fue aceptada"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la invitación es para otro email"})
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CancelInvitation godoc
// @Summary      Cancelar invitación
// @Tags         team
// @Security     Bearer
// @Param        id   path  string  true  "ID de la invitación"
// @Success      204  "Sin contenido"
// @Router       /api/team/invitations/{id} [delete]
func (h *TeamHandler) CancelInvitation(c *fiber.Ctx) error {
	if err := h.uc.CancelInvitation(GetOrganizationID(c), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateMemberRole godoc
// @Summary      Cambiar rol de un miembro
// @Description  El owner no puede ser degradado por esta vía.
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del miembro"
// @Param        body  body  dto.UpdateMemberRoleRequest  true  "Nuevo rol"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/team/members/{id}/role [put]
func (h *TeamHandler) UpdateMemberRole(c *fiber.Ctx) error {
	var in dto.UpdateMemberRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role es requerido"})
	}
	out, err := h.uc.UpdateMemberRole(GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "miembro no encontrado"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no se puede cambiar el rol del owner"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido: solo member, editor o admin"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RemoveMember godoc
// @Summary      Remover miembro
// @Description  El owner nunca se remueve.
// @Tags         team
// @Security     Bearer
// @Param        id   path  string  true  "ID del miembro"
// @Success      204  "Sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/members/{id} [delete]
func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(GetOrganizationID(c), c.Params("id")); err != nil {
		switch err {
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "miembro no encontrado"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el owner no puede ser removido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
