package entity

import "time"

// Nombres de roles válidos. El nombre del rol es la única unidad de
// autorización: viaja en el JWT y se compara contra allowlists por ruta.
const (
	RoleSuperAdmin          = "super_admin"
	RolePlatformSubadmin    = "platform_subadmin"
	RolePlatformDataOfficer = "platform_data_officer"
	RolePlatformViewer      = "platform_viewer"
	RoleCompanyESGAdmin     = "company_esg_admin"
	RoleCompanyESGSubadmin  = "company_esg_subadmin"
	RoleCompanyESGOfficer   = "company_esg_data_officer"
	RoleCompanyESGViewer    = "company_esg_viewer"
)

// Role dato de referencia sembrado una sola vez; cada User referencia exactamente uno.
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
