package dto

import "time"

// ESGSignupRequest alta conjunta de empresa ESG + usuario company_esg_admin.
type ESGSignupRequest struct {
	// Datos del usuario admin
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`

	// Datos de la empresa
	Name               string `json:"name" validate:"required,max=200"`
	RegistrationNumber string `json:"registration_number" validate:"required,max=50"`
	SICSCode           string `json:"sics_code" validate:"omitempty,max=10"`
	Industry           string `json:"industry" validate:"required,max=100"`
	ISOCountryCode     string `json:"iso_country_code" validate:"omitempty,len=2"`
	Country            string `json:"country" validate:"omitempty,max=100"`
	Address            string `json:"address" validate:"omitempty,max=300"`
	Website            string `json:"website" validate:"omitempty,max=200"`
	ContactEmail       string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone       string `json:"contact_phone" validate:"omitempty,max=30"`
}

// ESGSignupResponse resultado del alta: mensaje de pendiente de aprobación + entidades creadas.
type ESGSignupResponse struct {
	Message string          `json:"message"`
	User    UserResponse    `json:"user"`
	Company CompanyResponse `json:"company"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	SICSCode           string    `json:"sics_code,omitempty"`
	Industry           string    `json:"industry"`
	ISOCountryCode     string    `json:"iso_country_code,omitempty"`
	Country            string    `json:"country,omitempty"`
	Address            string    `json:"address,omitempty"`
	Website            string    `json:"website,omitempty"`
	ContactEmail       string    `json:"contact_email,omitempty"`
	ContactPhone       string    `json:"contact_phone,omitempty"`
	Status             string    `json:"status"`
	CreatedBy          string    `json:"created_by,omitempty"`
	UpdatedBy          string    `json:"updated_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UpdateCompanyRequest actualización parcial de la empresa (excluye status).
type UpdateCompanyRequest struct {
	Industry     *string `json:"industry" validate:"omitempty,max=100"`
	Country      *string `json:"country" validate:"omitempty,max=100"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	Website      *string `json:"website" validate:"omitempty,max=200"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=30"`
}

// UpdateCompanyStatusRequest transición de estado de la empresa.
type UpdateCompanyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active suspended"`
}
