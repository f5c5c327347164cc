package entity

import "time"

// Estados válidos para Company.
const (
	CompanyStatusPending   = "pending"
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)

// Company representa una organización/tenant del sistema. Name y
// RegistrationNumber son únicos globalmente. CreatedBy/UpdatedBy quedan
// vacíos al crear y se rellenan con el id del admin en la misma transacción.
type Company struct {
	ID                 string
	Name               string
	RegistrationNumber string
	SICSCode           string
	Industry           string
	ISOCountryCode     string
	Country            string
	Address            string
	Website            string
	ContactEmail       string
	ContactPhone       string
	Status             string // pending, active, suspended
	CreatedBy          string // id del usuario creador ("" hasta el backfill)
	UpdatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
