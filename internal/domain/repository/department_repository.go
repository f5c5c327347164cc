package repository

import "github.com/teasoo/esg-platform-api/internal/domain/entity"

// DepartmentRepository define el puerto de persistencia para Department (DIP).
type DepartmentRepository interface {
	Create(dept *entity.Department) error
	GetByID(id string) (*entity.Department, error)
	Update(dept *entity.Department) error
	Delete(id string) error
	// ListByCompany incluye el resumen del líder (nombre y email) por JOIN.
	ListByCompany(companyID string) ([]*entity.DepartmentWithLead, error)
}
