package repository

import "github.com/teasoo/esg-platform-api/internal/domain/entity"

// InvitationRepository define el puerto de persistencia para Invitation (DIP).
type InvitationRepository interface {
	Create(inv *entity.Invitation) error
	GetByToken(token string) (*entity.Invitation, error)
	Update(inv *entity.Invitation) error
	// ExpirePendingByEmail marca como expired toda invitación pending del email.
	// Devuelve cuántas expiró. Mantiene el invariante de una sola pending por email.
	ExpirePendingByEmail(email string) (int, error)
}
