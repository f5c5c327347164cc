package dto

// RegisterRequest entrada para auto-registro de plataforma (password en texto, se hashea en use case).
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Role      string `json:"role" validate:"required"` // nombre de rol configurado
}

// LoginRequest entrada para login: email, password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de acceso + refresh token opaco + usuario.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// RefreshRequest entrada para renovar el token de acceso.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse token de acceso nuevo.
type RefreshResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
