package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
)

// DepartmentUseCase CRUD de departamentos con alcance de empresa.
// Update/Delete/Get buscan primero y autorizan contra la company dueña antes
// de mutar; la company de un departamento es inmutable.
type DepartmentUseCase struct {
	deptRepo repository.DepartmentRepository
	userRepo repository.UserRepository
}

// NewDepartmentUseCase construye el caso de uso de departamentos.
func NewDepartmentUseCase(deptRepo repository.DepartmentRepository, userRepo repository.UserRepository) *DepartmentUseCase {
	return &DepartmentUseCase{deptRepo: deptRepo, userRepo: userRepo}
}

// Create alta de departamento en la company del caller. El email de contacto
// y el líder toman por defecto los datos del creador.
func (uc *DepartmentUseCase) Create(companyID, creatorID string, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	creator, err := uc.userRepo.GetByID(creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, domain.ErrUserNotFound
	}
	contact := in.ContactEmail
	if contact == "" {
		contact = creator.Email
	}
	lead := in.LeadUserID
	if lead == "" {
		lead = creator.ID
	}
	now := time.Now()
	dept := &entity.Department{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		Description:  in.Description,
		ContactEmail: contact,
		LeadUserID:   lead,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.deptRepo.Create(dept); err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// List devuelve los departamentos de una company con resumen del líder.
func (uc *DepartmentUseCase) List(companyID string) ([]*dto.DepartmentResponse, error) {
	depts, err := uc.deptRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		r := toDepartmentResponse(&d.Department)
		r.LeadFirstName = d.LeadFirstName
		r.LeadLastName = d.LeadLastName
		r.LeadEmail = d.LeadEmail
		out = append(out, r)
	}
	return out, nil
}

// Get obtiene un departamento autorizando contra la company del caller.
func (uc *DepartmentUseCase) Get(id, callerCompanyID string) (*dto.DepartmentResponse, error) {
	dept, err := uc.authorize(id, callerCompanyID)
	if err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// Update actualización parcial, previa autorización de pertenencia.
func (uc *DepartmentUseCase) Update(id, callerCompanyID string, in dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := uc.authorize(id, callerCompanyID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		dept.Name = *in.Name
	}
	if in.Description != nil {
		dept.Description = *in.Description
	}
	if in.ContactEmail != nil {
		dept.ContactEmail = *in.ContactEmail
	}
	if in.LeadUserID != nil {
		dept.LeadUserID = *in.LeadUserID
	}
	dept.UpdatedAt = time.Now()
	if err := uc.deptRepo.Update(dept); err != nil {
		return nil, err
	}
	return toDepartmentResponse(dept), nil
}

// Delete elimina un departamento, previa autorización de pertenencia.
func (uc *DepartmentUseCase) Delete(id, callerCompanyID string) error {
	if _, err := uc.authorize(id, callerCompanyID); err != nil {
		return err
	}
	return uc.deptRepo.Delete(id)
}

// authorize busca el departamento y verifica que pertenezca a la company del
// caller. ErrForbidden se devuelve ANTES de cualquier mutación.
func (uc *DepartmentUseCase) authorize(id, callerCompanyID string) (*entity.Department, error) {
	dept, err := uc.deptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	if dept.CompanyID != callerCompanyID {
		return nil, domain.ErrForbidden
	}
	return dept, nil
}

func toDepartmentResponse(d *entity.Department) *dto.DepartmentResponse {
	if d == nil {
		return nil
	}
	return &dto.DepartmentResponse{
		ID:           d.ID,
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		Description:  d.Description,
		ContactEmail: d.ContactEmail,
		LeadUserID:   d.LeadUserID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
