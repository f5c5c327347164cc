package dto

import "time"

// CreateDepartmentRequest alta de departamento. Contacto y líder
// toman por defecto los datos del creador si vienen vacíos.
type CreateDepartmentRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"omitempty,max=500"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	LeadUserID   string `json:"lead_user_id" validate:"omitempty,uuid"`
}

// UpdateDepartmentRequest actualización parcial. La company dueña no se puede cambiar.
type UpdateDepartmentRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=200"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	LeadUserID   *string `json:"lead_user_id" validate:"omitempty,uuid"`
}

// DepartmentResponse salida de un departamento con resumen del líder.
type DepartmentResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	LeadUserID    string    `json:"lead_user_id,omitempty"`
	LeadFirstName string    `json:"lead_first_name,omitempty"`
	LeadLastName  string    `json:"lead_last_name,omitempty"`
	LeadEmail     string    `json:"lead_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
