package entity

import "time"

// Department recurso con alcance de exactamente una Company.
// La company dueña es inmutable después de la creación.
type Department struct {
	ID           string
	CompanyID    string
	Name         string
	Description  string
	ContactEmail string // por defecto el email del creador
	LeadUserID   string // por defecto el creador
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DepartmentWithLead incluye el resumen del líder para listados.
type DepartmentWithLead struct {
	Department
	LeadFirstName string
	LeadLastName  string
	LeadEmail     string
}
