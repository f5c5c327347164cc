package dto

import "time"

// CreateInvitationRequest invitación con alcance de departamento. La company
// destino siempre es la del usuario que invita.
type CreateInvitationRequest struct {
	Email        string `json:"email" validate:"required,email"`
	RoleID       string `json:"role_id" validate:"required,uuid"`
	DepartmentID string `json:"department_id" validate:"omitempty,uuid"`
}

// InvitationResponse salida de una invitación.
type InvitationResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Status       string    `json:"status"`
	CompanyID    string    `json:"company_id"`
	DepartmentID string    `json:"department_id,omitempty"`
	RoleID       string    `json:"role_id"`
	InvitedBy    string    `json:"invited_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompleteInviteSignupRequest completa el alta de un invitado por token de invitación.
type CompleteInviteSignupRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"required,min=8"`
}

// VerifyOTPRequest entrada para verificar un código OTP.
type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required,len=4"`
}
