package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/usecase"
	"github.com/teasoo/esg-platform-api/internal/domain"
)

// InvitationHandler maneja invitaciones con alcance de departamento.
type InvitationHandler struct {
	uc *usecase.InvitationUseCase
}

// NewInvitationHandler construye el handler de invitaciones.
func NewInvitationHandler(uc *usecase.InvitationUseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

// Create godoc
// @Summary      Invitar usuario a la empresa del caller
// @Tags         invitations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "email, role_id, department_id opcional"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/company/esg/invitations [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.RoleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y role_id son requeridos"})
	}
	inv, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya pertenece a un usuario registrado"})
		}
		if err == domain.ErrRoleNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ROLE_NOT_FOUND", Message: "el rol indicado no existe"})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario que invita no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByToken godoc
// @Summary      Consultar invitación por token
// @Tags         invitations
// @Produce      json
// @Param        token  path  string  true  "token de invitación"
// @Success      200    {object}  dto.InvitationResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/company/esg/invitations/{token} [get]
func (h *InvitationHandler) GetByToken(c *fiber.Ctx) error {
	inv, err := h.uc.GetByToken(c.Params("token"))
	if err != nil {
		if err == domain.ErrInvalidState {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INVITATION", Message: "invitación inválida o expirada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(inv)
}
