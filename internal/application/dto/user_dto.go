package dto

import "time"

// UserResponse salida de un usuario (sin password ni hash de OTP).
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	CompanyID    string    `json:"company_id,omitempty"`
	DepartmentID string    `json:"department_id,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateMeRequest actualización parcial del perfil propio. Campos nil = sin cambio.
type UpdateMeRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Role      *string `json:"role" validate:"omitempty"`
}
