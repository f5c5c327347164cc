package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/esg"
	"github.com/teasoo/esg-platform-api/internal/domain"
)

// ESGHandler maneja el alta de empresas ESG y el alta por invitación.
type ESGHandler struct {
	uc *esg.UseCase
}

// NewESGHandler construye el handler de signup ESG.
func NewESGHandler(uc *esg.UseCase) *ESGHandler {
	return &ESGHandler{uc: uc}
}

// Signup godoc
// @Summary      Alta conjunta de empresa ESG y su admin
// @Tags         esg
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ESGSignupRequest  true  "datos del admin + datos de la empresa"
// @Success      201   {object}  dto.ESGSignupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/company/esg/signup [post]
func (h *ESGHandler) Signup(c *fiber.Ctx) error {
	var in dto.ESGSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password, first_name y last_name son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	if in.Name == "" || in.RegistrationNumber == "" || in.Industry == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, registration_number e industry son requeridos"})
	}
	out, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMPANY_EXISTS", Message: "la empresa ya está registrada (nombre o número de registro duplicado)"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ROLE_NOT_CONFIGURED", Message: "el rol company_esg_admin no está configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CompleteInvitationSignup godoc
// @Summary      Completar alta por invitación
// @Tags         esg
// @Accept       json
// @Produce      json
// @Param        token  path  string                           true  "token de invitación"
// @Param        body   body  dto.CompleteInviteSignupRequest  true  "perfil + password"
// @Success      201    {object}  dto.UserResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/company/esg/invitation/{token}/complete [post]
func (h *ESGHandler) CompleteInvitationSignup(c *fiber.Ctx) error {
	token := c.Params("token")
	var in dto.CompleteInviteSignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.FirstName == "" || in.LastName == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "first_name, last_name y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.uc.CompleteInvitationSignup(token, in)
	if err != nil {
		if err == domain.ErrInvalidState {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INVITATION", Message: "invitación inválida o expirada"})
		}
		if err == domain.ErrEmailAlreadyExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if err == domain.ErrRoleNotFound {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ROLE_NOT_FOUND", Message: "el rol de la invitación ya no está configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
