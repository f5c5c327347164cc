package postgres

import (
	"context"
	"fmt"

	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
)

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

const departmentColumns = `id, company_id, name, description, contact_email, lead_user_id, created_at, updated_at`

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de persistencia para departamentos. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste un nuevo departamento.
func (r *DepartmentRepo) Create(dept *entity.Department) error {
	query := `
		INSERT INTO departments (` + departmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		dept.ID, dept.CompanyID, dept.Name, dept.Description,
		dept.ContactEmail, dept.LeadUserID, dept.CreatedAt, dept.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(id string) (*entity.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = $1`
	var d entity.Department
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.Description,
		&d.ContactEmail, &d.LeadUserID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department by id: %w", err)
	}
	return &d, nil
}

// Update actualiza un departamento. La company dueña no se toca.
func (r *DepartmentRepo) Update(dept *entity.Department) error {
	query := `
		UPDATE departments SET name = $2, description = $3, contact_email = $4,
		       lead_user_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		dept.ID, dept.Name, dept.Description, dept.ContactEmail, dept.LeadUserID, dept.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

// Delete elimina un departamento por ID.
func (r *DepartmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}

// lead_user_id guarda el uuid como texto ('' = sin líder), por eso el join
// castea users.id a text; sin el cast Postgres no resuelve uuid = text (42883).
const listByCompanyQuery = `
		SELECT d.id, d.company_id, d.name, d.description, d.contact_email, d.lead_user_id,
		       d.created_at, d.updated_at,
		       COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(u.email, '')
		FROM departments d
		LEFT JOIN users u ON u.id::text = d.lead_user_id
		WHERE d.company_id = $1
		ORDER BY d.created_at DESC`

// ListByCompany lista los departamentos de una company con el resumen de su líder.
func (r *DepartmentRepo) ListByCompany(companyID string) ([]*entity.DepartmentWithLead, error) {
	rows, err := r.q.Query(context.Background(), listByCompanyQuery, companyID)
	if err != nil {
		return nil, fmt.Errorf("list departments by company: %w", err)
	}
	defer rows.Close()

	var list []*entity.DepartmentWithLead
	for rows.Next() {
		var d entity.DepartmentWithLead
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.Name, &d.Description, &d.ContactEmail, &d.LeadUserID,
			&d.CreatedAt, &d.UpdatedAt,
			&d.LeadFirstName, &d.LeadLastName, &d.LeadEmail,
		); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
