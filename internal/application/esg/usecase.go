package esg

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/ports"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
	"github.com/teasoo/esg-platform-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción.
// La implementación vive en infrastructure/postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// UseCase alta de empresas ESG y completado de invitaciones de sub-usuarios.
type UseCase struct {
	tx             TxRunner
	userRepo       repository.UserRepository
	companyRepo    repository.CompanyRepository
	roleRepo       repository.RoleRepository
	invitationRepo repository.InvitationRepository
	mailer         ports.Mailer
	log            *logger.Logger
	pendingTmpl    int
}

// NewUseCase construye el caso de uso de alta ESG.
func NewUseCase(
	tx TxRunner,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	roleRepo repository.RoleRepository,
	invitationRepo repository.InvitationRepository,
	mailer ports.Mailer,
	log *logger.Logger,
	pendingTmpl int,
) *UseCase {
	return &UseCase{
		tx:             tx,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		roleRepo:       roleRepo,
		invitationRepo: invitationRepo,
		mailer:         mailer,
		log:            log,
		pendingTmpl:    pendingTmpl,
	}
}

// Signup alta conjunta de empresa ESG (pending) y su usuario
// company_esg_admin (pending). Los tres pasos (crear empresa, crear usuario y
// rellenar created_by/updated_by con el id del usuario) corren dentro de UNA
// transacción: una falla parcial no deja empresas huérfanas.
func (uc *UseCase) Signup(ctx context.Context, in dto.ESGSignupRequest) (*dto.ESGSignupResponse, error) {
	existingUser, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existingByReg, err := uc.companyRepo.GetByRegistrationNumber(in.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if existingByReg != nil {
		return nil, domain.ErrDuplicate
	}
	existingByName, err := uc.companyRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, domain.ErrDuplicate
	}
	adminRole, err := uc.roleRepo.GetByName(entity.RoleCompanyESGAdmin)
	if err != nil {
		return nil, err
	}
	if adminRole == nil {
		return nil, domain.ErrConflict // rol company_esg_admin sin configurar
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		RegistrationNumber: in.RegistrationNumber,
		SICSCode:           defaultStr(in.SICSCode, "010"),
		Industry:           in.Industry,
		ISOCountryCode:     defaultStr(in.ISOCountryCode, "NG"),
		Country:            defaultStr(in.Country, "Nigeria"),
		Address:            in.Address,
		Website:            in.Website,
		ContactEmail:       in.ContactEmail,
		ContactPhone:       in.ContactPhone,
		Status:             entity.CompanyStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         adminRole.Name,
		CompanyID:    company.ID,
		Status:       entity.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.Run(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(company); err != nil {
			return err
		}
		if err := userRepo.Create(user); err != nil {
			return err
		}
		company.CreatedBy = user.ID
		company.UpdatedBy = user.ID
		return companyRepo.Update(company)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.mailer.Send(ctx, in.Email, uc.pendingTmpl, map[string]any{
		"first_name":   in.FirstName,
		"company_name": in.Name,
		"message":      "Su empresa ESG está pendiente de aprobación por nuestros administradores.",
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", in.Email).Msg("no se pudo enviar el email de pendiente de aprobación")
	}

	return &dto.ESGSignupResponse{
		Message: "Registro exitoso. Su empresa ESG está pendiente de aprobación por un administrador.",
		User:    *toUserResponse(user),
		Company: *toCompanyResponse(company),
	}, nil
}

// CompleteInvitationSignup consume una invitación pending: crea el usuario
// activo con la company/departamento/rol de la invitación y la marca accepted.
// Token desconocido, no pending o vencido devuelve ErrInvalidState; el token
// consumido no es reutilizable.
func (uc *UseCase) CompleteInvitationSignup(token string, in dto.CompleteInviteSignupRequest) (*dto.UserResponse, error) {
	inv, err := uc.invitationRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.Status != entity.InvitationStatusPending || time.Now().After(inv.ExpiresAt) {
		return nil, domain.ErrInvalidState
	}
	existing, err := uc.userRepo.GetByEmail(inv.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByID(inv.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        inv.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         role.Name,
		CompanyID:    inv.CompanyID,
		DepartmentID: inv.DepartmentID,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	inv.Status = entity.InvitationStatusAccepted
	inv.UpdatedAt = now
	if err := uc.invitationRepo.Update(inv); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Role:         u.Role,
		CompanyID:    u.CompanyID,
		DepartmentID: u.DepartmentID,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
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
