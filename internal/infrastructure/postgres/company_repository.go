package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, registration_number, sics_code, industry, iso_country_code, country, address, website, contact_email, contact_phone, status, created_by, updated_by, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para companies. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva company.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.RegistrationNumber, company.SICSCode, company.Industry,
		company.ISOCountryCode, company.Country, company.Address, company.Website,
		company.ContactEmail, company.ContactPhone, company.Status,
		company.CreatedBy, company.UpdatedBy, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una company por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get company by id")
}

// GetByName obtiene una company por nombre exacto.
func (r *CompanyRepo) GetByName(name string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE name = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name), "get company by name")
}

// GetByRegistrationNumber obtiene una company por número de registro.
func (r *CompanyRepo) GetByRegistrationNumber(regNumber string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE registration_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, regNumber), "get company by registration number")
}

// Update actualiza una company.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, registration_number = $3, sics_code = $4, industry = $5,
		       iso_country_code = $6, country = $7, address = $8, website = $9,
		       contact_email = $10, contact_phone = $11, status = $12,
		       created_by = $13, updated_by = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.RegistrationNumber, company.SICSCode, company.Industry,
		company.ISOCountryCode, company.Country, company.Address, company.Website,
		company.ContactEmail, company.ContactPhone, company.Status,
		company.CreatedBy, company.UpdatedBy, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List lista companies con paginación, más reciente primero.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.RegistrationNumber, &c.SICSCode, &c.Industry,
			&c.ISOCountryCode, &c.Country, &c.Address, &c.Website,
			&c.ContactEmail, &c.ContactPhone, &c.Status,
			&c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CompanyRepo) scanOne(row pgx.Row, op string) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.RegistrationNumber, &c.SICSCode, &c.Industry,
		&c.ISOCountryCode, &c.Country, &c.Address, &c.Website,
		&c.ContactEmail, &c.ContactPhone, &c.Status,
		&c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
