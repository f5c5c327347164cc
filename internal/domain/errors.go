package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrRoleNotFound       = errors.New("rol no configurado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("estado inválido para la operación")
)

// Razones de falla del OTP. Se exponen como errores distinguibles
// (no un booleano) para que el handler arme el mensaje exacto.
var (
	ErrOTPNotFound = errors.New("OTP no encontrado")
	ErrOTPExpired  = errors.New("OTP expirado")
	ErrOTPInvalid  = errors.New("OTP inválido")
)
