package repository

import "github.com/teasoo/esg-platform-api/internal/domain/entity"

// RoleRepository define el puerto de lectura para Role. Los roles son datos
// de referencia sembrados por migración; no hay escritura desde la aplicación.
type RoleRepository interface {
	GetByID(id string) (*entity.Role, error)
	GetByName(name string) (*entity.Role, error)
	List() ([]*entity.Role, error)
}
