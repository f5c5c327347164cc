package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/otp"
	"github.com/teasoo/esg-platform-api/internal/domain"
)

// OTPHandler maneja emisión y verificación de códigos OTP del usuario autenticado.
type OTPHandler struct {
	uc *otp.UseCase
}

// NewOTPHandler construye el handler de OTP.
func NewOTPHandler(uc *otp.UseCase) *OTPHandler {
	return &OTPHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar código OTP al email del usuario
// @Tags         otp
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/otp/send [post]
func (h *OTPHandler) Send(c *fiber.Ctx) error {
	if _, err := h.uc.Send(c.Context(), GetUserID(c)); err != nil {
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "código OTP enviado"})
}

// Resend godoc
// @Summary      Reenviar código OTP (invalida el anterior)
// @Tags         otp
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/otp/resend [post]
func (h *OTPHandler) Resend(c *fiber.Ctx) error {
	return h.Send(c)
}

// Verify godoc
// @Summary      Verificar código OTP
// @Tags         otp
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyOTPRequest  true  "otp"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/otp/verify [post]
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "otp es requerido"})
	}
	if err := h.uc.Verify(GetUserID(c), in.OTP); err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) || errors.Is(err, domain.ErrOTPExpired) || errors.Is(err, domain.ErrOTPInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OTP_REJECTED", Message: err.Error()})
		}
		if err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "código OTP verificado"})
}
