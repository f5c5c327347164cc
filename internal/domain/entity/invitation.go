package entity

import "time"

// Estados válidos para Invitation.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusExpired  = "expired"
)

// Invitation token efímero de un solo uso que otorga a un email el derecho
// de crear una cuenta bajo una company/rol/departamento específicos.
// Invariante: a lo sumo una invitación pending por email; crear una nueva
// expira las anteriores.
type Invitation struct {
	ID           string
	Email        string
	Token        string // opaco, único
	ExpiresAt    time.Time
	Status       string // pending, accepted, expired
	CompanyID    string
	DepartmentID string // opcional
	RoleID       string
	InvitedBy    string // id del usuario que invita
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
