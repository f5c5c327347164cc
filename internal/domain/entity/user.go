package entity

import "time"

// Estados válidos para User.
const (
	UserStatusPending   = "pending"
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa una identidad del sistema. CompanyID vacío = usuario de plataforma.
// El PasswordHash puede estar vacío mientras una invitación está pendiente de completar.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Phone        string
	Role         string // nombre de rol, ver constantes Role*
	CompanyID    string // vacío para roles de plataforma
	DepartmentID string // opcional
	Status       string // pending, active, suspended
	OTPHash      string // bcrypt hash del código vigente; vacío si no hay OTP
	OTPExpiresAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
