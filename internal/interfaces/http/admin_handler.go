package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/teasoo/esg-platform-api/internal/application/admin"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
)

// AdminHandler maneja el onboarding de usuarios de plataforma.
type AdminHandler struct {
	uc *admin.UseCase
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(uc *admin.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar admin de plataforma
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, first_name, last_name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/register [post]
func (h *AdminHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password, first_name y last_name son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.uc.RegisterAdmin(c.Context(), in)
	if err != nil {
		if err == domain.ErrEmailAlreadyExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if err == domain.ErrRoleNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ROLE_NOT_FOUND", Message: "el rol de plataforma no está configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// VerifyEmail godoc
// @Summary      Verificar email con OTP
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyEmailRequest  true  "email, otp"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/verify-email [post]
func (h *AdminHandler) VerifyEmail(c *fiber.Ctx) error {
	var in dto.VerifyEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y otp son requeridos"})
	}
	user, err := h.uc.VerifyEmail(in)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		}
		if errors.Is(err, domain.ErrOTPNotFound) || errors.Is(err, domain.ErrOTPExpired) || errors.Is(err, domain.ErrOTPInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OTP_REJECTED", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(user)
}

// InviteAdmin godoc
// @Summary      Invitar usuario de plataforma
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteAdminRequest  true  "email, role"
// @Success      201   {object}  dto.InviteAdminResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/invite-admin [post]
func (h *AdminHandler) InviteAdmin(c *fiber.Ctx) error {
	var in dto.InviteAdminRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y role son requeridos"})
	}
	out, err := h.uc.InviteAdmin(c.Context(), GetRole(c), in)
	if err != nil {
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no tiene permisos para invitar ese rol"})
		}
		if err == domain.ErrRoleNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ROLE_NOT_FOUND", Message: "el rol indicado no está configurado"})
		}
		if err == domain.ErrEmailAlreadyExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VerifyInviteToken godoc
// @Summary      Verificar token de invitación de admin
// @Tags         admin
// @Produce      json
// @Param        token  query  string  true  "token JWT de invitación"
// @Success      200    {object}  dto.UserResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/admin/verify-invite-token [get]
func (h *AdminHandler) VerifyInviteToken(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token es requerido"})
	}
	user, err := h.uc.VerifyInviteToken(token)
	if err != nil {
		return h.inviteTokenError(c, err)
	}
	return c.JSON(user)
}

// CompleteRegistration godoc
// @Summary      Completar registro de admin invitado
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteRegistrationRequest  true  "token, perfil, password"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/complete-registration [post]
func (h *AdminHandler) CompleteRegistration(c *fiber.Ctx) error {
	var in dto.CompleteRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Token == "" || in.FirstName == "" || in.LastName == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token, first_name, last_name y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.uc.CompleteRegistration(c.Context(), in)
	if err != nil {
		return h.inviteTokenError(c, err)
	}
	return c.JSON(user)
}

// ListUsers godoc
// @Summary      Listar usuarios de la plataforma
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        status  query  string  false  "pending, active, suspended"
// @Param        search  query  string  false  "busca en nombre, email y teléfono"
// @Success      200     {array}   dto.UserResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	filters := repository.UserFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	users, err := h.uc.ListUsers(GetRole(c), filters)
	if err != nil {
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no tiene permisos para listar usuarios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(users)
}

// inviteTokenError mapea los errores comunes del flujo de token de invitación.
func (h *AdminHandler) inviteTokenError(c *fiber.Ctx, err error) error {
	if err == domain.ErrUnauthorized {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token de invitación inválido o expirado"})
	}
	if err == domain.ErrUserNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario de la invitación ya no existe"})
	}
	if err == domain.ErrInvalidState {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la invitación ya fue utilizada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
