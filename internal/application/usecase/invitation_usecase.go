package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/ports"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
	"github.com/teasoo/esg-platform-api/pkg/logger"
)

// InvitationTTL vigencia de una invitación con alcance de departamento.
const InvitationTTL = 72 * time.Hour

// InvitationUseCase invitaciones de sub-usuarios dentro de la empresa del
// que invita. Crear una invitación expira cualquier otra pending del mismo
// email (re-invitar es idempotente).
type InvitationUseCase struct {
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	mailer         ports.Mailer
	log            *logger.Logger
	frontendURL    string
	inviteTmpl     int
}

// NewInvitationUseCase construye el caso de uso de invitaciones.
func NewInvitationUseCase(
	invitationRepo repository.InvitationRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	mailer ports.Mailer,
	log *logger.Logger,
	frontendURL string,
	inviteTmpl int,
) *InvitationUseCase {
	return &InvitationUseCase{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		mailer:         mailer,
		log:            log,
		frontendURL:    frontendURL,
		inviteTmpl:     inviteTmpl,
	}
}

// Create emite una invitación ligada a la company del que invita, tras
// expirar cualquier pending previa del email. El link de alta viaja por
// email (falla de envío no es fatal).
func (uc *InvitationUseCase) Create(ctx context.Context, inviterID string, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	inviter, err := uc.userRepo.GetByID(inviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, domain.ErrUserNotFound
	}
	role, err := uc.roleRepo.GetByID(in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}

	// Invariante: a lo sumo una invitación pending por email.
	if _, err := uc.invitationRepo.ExpirePendingByEmail(in.Email); err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invitation{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Token:        uuid.New().String(),
		ExpiresAt:    now.Add(InvitationTTL),
		Status:       entity.InvitationStatusPending,
		CompanyID:    inviter.CompanyID,
		DepartmentID: in.DepartmentID,
		RoleID:       in.RoleID,
		InvitedBy:    inviterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.invitationRepo.Create(inv); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/esg/auth/signup?token=%s", uc.frontendURL, inv.Token)
	if err := uc.mailer.Send(ctx, in.Email, uc.inviteTmpl, map[string]any{
		"link": link,
		"role": role.Name,
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", in.Email).Msg("no se pudo enviar el email de invitación")
	}

	return toInvitationResponse(inv), nil
}

// GetByToken devuelve la invitación del token; ErrInvalidState si no existe.
func (uc *InvitationUseCase) GetByToken(token string) (*dto.InvitationResponse, error) {
	inv, err := uc.invitationRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvalidState
	}
	return toInvitationResponse(inv), nil
}

func toInvitationResponse(i *entity.Invitation) *dto.InvitationResponse {
	if i == nil {
		return nil
	}
	return &dto.InvitationResponse{
		ID:           i.ID,
		Email:        i.Email,
		Token:        i.Token,
		ExpiresAt:    i.ExpiresAt,
		Status:       i.Status,
		CompanyID:    i.CompanyID,
		DepartmentID: i.DepartmentID,
		RoleID:       i.RoleID,
		InvitedBy:    i.InvitedBy,
		CreatedAt:    i.CreatedAt,
	}
}
