package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

const invitationColumns = `id, email, token, expires_at, status, company_id, department_id, role_id, invited_by, created_at, updated_at`

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones. Pasar pool o tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

// Create persiste una nueva invitación.
func (r *InvitationRepo) Create(inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Email, inv.Token, inv.ExpiresAt, inv.Status,
		inv.CompanyID, inv.DepartmentID, inv.RoleID, inv.InvitedBy,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken obtiene una invitación por su token opaco.
func (r *InvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`
	var inv entity.Invitation
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&inv.ID, &inv.Email, &inv.Token, &inv.ExpiresAt, &inv.Status,
		&inv.CompanyID, &inv.DepartmentID, &inv.RoleID, &inv.InvitedBy,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation by token: %w", err)
	}
	return &inv, nil
}

// Update actualiza el estado de una invitación.
func (r *InvitationRepo) Update(inv *entity.Invitation) error {
	query := `UPDATE invitations SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, inv.ID, inv.Status, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	return nil
}

// ExpirePendingByEmail marca como expiradas todas las invitaciones pendientes
// del email y devuelve cuántas se expiraron.
func (r *InvitationRepo) ExpirePendingByEmail(email string) (int, error) {
	query := `UPDATE invitations SET status = $2, updated_at = $3 WHERE email = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query, email, entity.InvitationStatusExpired, time.Now(), entity.InvitationStatusPending)
	if err != nil {
		return 0, fmt.Errorf("expire pending invitations: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
