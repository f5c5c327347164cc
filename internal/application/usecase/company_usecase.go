package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/ports"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
	"github.com/teasoo/esg-platform-api/pkg/logger"
)

// CompanyUseCase lecturas, actualización y ciclo de vida de empresas.
type CompanyUseCase struct {
	companyRepo  repository.CompanyRepository
	userRepo     repository.UserRepository
	mailer       ports.Mailer
	log          *logger.Logger
	approvalTmpl int
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	mailer ports.Mailer,
	log *logger.Logger,
	approvalTmpl int,
) *CompanyUseCase {
	return &CompanyUseCase{
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		log:          log,
		approvalTmpl: approvalTmpl,
	}
}

// List devuelve empresas con paginación.
func (uc *CompanyUseCase) List(limit, offset int) ([]*dto.CompanyResponse, error) {
	companies, err := uc.companyRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// GetByID obtiene una empresa; ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update actualización parcial (excluye status). updatedBy queda con el id del caller.
func (uc *CompanyUseCase) Update(id, updatedBy string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Industry != nil {
		company.Industry = *in.Industry
	}
	if in.Country != nil {
		company.Country = *in.Country
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Website != nil {
		company.Website = *in.Website
	}
	if in.ContactEmail != nil {
		company.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		company.ContactPhone = *in.ContactPhone
	}
	company.UpdatedBy = updatedBy
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// UpdateStatus transición de estado. Pasar al estado actual es un no-op: no
// muta la fila ni envía correo. Pasar a active además activa al usuario
// company_esg_admin de la empresa y le envía exactamente una notificación
// (falla de envío no es fatal).
func (uc *CompanyUseCase) UpdateStatus(ctx context.Context, id, status string) (string, *dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return "", nil, err
	}
	if company == nil {
		return "", nil, domain.ErrNotFound
	}
	if company.Status == status {
		return fmt.Sprintf("la empresa ya está %s", status), toCompanyResponse(company), nil
	}

	company.Status = status
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return "", nil, err
	}

	if status == entity.CompanyStatusActive {
		uc.activateCompanyAdmin(ctx, company)
	}

	return fmt.Sprintf("estado de la empresa actualizado a %s", status), toCompanyResponse(company), nil
}

// activateCompanyAdmin activa al company_esg_admin de la empresa recién
// aprobada y le notifica. Cualquier falla se registra sin revertir la
// transición de la empresa.
func (uc *CompanyUseCase) activateCompanyAdmin(ctx context.Context, company *entity.Company) {
	admin, err := uc.userRepo.GetByCompanyAndRole(company.ID, entity.RoleCompanyESGAdmin)
	if err != nil || admin == nil {
		uc.log.Warn().Err(err).Str("company_id", company.ID).Msg("empresa aprobada sin company_esg_admin que activar")
		return
	}
	admin.Status = entity.UserStatusActive
	admin.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(admin); err != nil {
		uc.log.Error().Err(err).Str("user_id", admin.ID).Msg("no se pudo activar al admin de la empresa")
		return
	}
	if err := uc.mailer.Send(ctx, admin.Email, uc.approvalTmpl, map[string]any{
		"first_name":   admin.FirstName,
		"company_name": company.Name,
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", admin.Email).Msg("no se pudo enviar el email de aprobación")
	}
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		RegistrationNumber: c.RegistrationNumber,
		SICSCode:           c.SICSCode,
		Industry:           c.Industry,
		ISOCountryCode:     c.ISOCountryCode,
		Country:            c.Country,
		Address:            c.Address,
		Website:            c.Website,
		ContactEmail:       c.ContactEmail,
		ContactPhone:       c.ContactPhone,
		Status:             c.Status,
		CreatedBy:          c.CreatedBy,
		UpdatedBy:          c.UpdatedBy,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
