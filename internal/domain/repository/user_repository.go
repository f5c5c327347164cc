package repository

import "github.com/teasoo/esg-platform-api/internal/domain/entity"

// UserFilters filtros para el listado administrativo de usuarios.
type UserFilters struct {
	Status string // vacío = todos
	Search string // busca en nombre, apellido, email y teléfono (case-insensitive)
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las implementaciones devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByCompanyAndRole devuelve el primer usuario de la company con el rol dado
	// (usado para activar al company_esg_admin al aprobar la empresa).
	GetByCompanyAndRole(companyID, roleName string) (*entity.User, error)
	Update(user *entity.User) error
	List(filters UserFilters) ([]*entity.User, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
}
