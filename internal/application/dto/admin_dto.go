package dto

// VerifyEmailRequest verificación del email de un admin recién registrado.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=4"`
}

// InviteAdminRequest invitación de un usuario de plataforma por un admin autenticado.
type InviteAdminRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role" validate:"required"` // nombre de rol destino, nunca super_admin
	FirstName    string `json:"first_name" validate:"omitempty,max=100"`
	DepartmentID string `json:"department_id" validate:"omitempty,uuid"`
}

// InviteAdminResponse resultado de la invitación: usuario shell + token de 24h.
type InviteAdminResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// CompleteRegistrationRequest completa el perfil de un usuario invitado (token de invitación).
type CompleteRegistrationRequest struct {
	Token     string `json:"token" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"required,min=8"`
}
