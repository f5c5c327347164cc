package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/otp"
	"github.com/teasoo/esg-platform-api/internal/application/ports"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
	"github.com/teasoo/esg-platform-api/pkg/jwt"
	"github.com/teasoo/esg-platform-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// inviterRoles roles de plataforma con permiso para invitar a otros usuarios.
var inviterRoles = map[string]bool{
	entity.RoleSuperAdmin:       true,
	entity.RolePlatformSubadmin: true,
}

// viewerRoles roles de plataforma con acceso al listado global de usuarios.
var viewerRoles = map[string]bool{
	entity.RoleSuperAdmin:          true,
	entity.RolePlatformSubadmin:    true,
	entity.RolePlatformDataOfficer: true,
}

// Config parámetros del flujo de onboarding administrativo.
type Config struct {
	JWTSecret    string
	JWTIssuer    string
	FrontendURL  string
	WelcomeTmpl  int // registro con OTP
	InviteTmpl   int // link de invitación
	CompleteTmpl int // registro completado
}

// UseCase onboarding de administradores de plataforma: registro con
// verificación OTP, invitación por token firmado de 24h y listado de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	otpUC    *otp.UseCase
	mailer   ports.Mailer
	log      *logger.Logger
	cfg      Config
}

// NewUseCase construye el caso de uso administrativo.
func NewUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	otpUC *otp.UseCase,
	mailer ports.Mailer,
	log *logger.Logger,
	cfg Config,
) *UseCase {
	return &UseCase{userRepo: userRepo, roleRepo: roleRepo, otpUC: otpUC, mailer: mailer, log: log, cfg: cfg}
}

// RegisterAdmin registra un admin de plataforma con el rol platform_subadmin
// fijo. Queda en pending hasta verificar el email con el OTP enviado.
func (uc *UseCase) RegisterAdmin(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByName(entity.RolePlatformSubadmin)
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
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         role.Name,
		Status:       entity.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	code, err := uc.otpUC.Issue(user.ID)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo generar el OTP de verificación")
	} else if err := uc.mailer.Send(ctx, user.Email, uc.cfg.WelcomeTmpl, map[string]any{
		"first_name": user.FirstName,
		"otp":        code,
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo enviar el email de verificación")
	}

	return toUserResponse(user), nil
}

// VerifyEmail valida el OTP del usuario y lo activa. El error de OTP se
// propaga con su razón (no encontrado / expirado / inválido) para que el
// handler la incluya en la respuesta.
func (uc *UseCase) VerifyEmail(in dto.VerifyEmailRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.otpUC.Verify(user.ID, in.OTP); err != nil {
		return nil, err
	}
	user.Status = entity.UserStatusActive
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// InviteAdmin crea un usuario shell en pending y emite un token de invitación
// de 24h que viaja por email. Guardas:
//   - solo super_admin y platform_subadmin pueden invitar (ErrUnauthorized),
//   - nadie puede invitar a otro super_admin (ErrUnauthorized),
//   - el email no puede tener ya un usuario (ErrEmailAlreadyExists).
//
// Ningún fallo de guarda crea filas.
func (uc *UseCase) InviteAdmin(ctx context.Context, callerRole string, in dto.InviteAdminRequest) (*dto.InviteAdminResponse, error) {
	if !inviterRoles[callerRole] {
		return nil, domain.ErrUnauthorized
	}
	if in.Role == entity.RoleSuperAdmin {
		// Guarda de escalamiento: un admin no puede acuñar otro super admin.
		return nil, domain.ErrUnauthorized
	}
	role, err := uc.roleRepo.GetByName(in.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Role:         role.Name,
		DepartmentID: in.DepartmentID,
		Status:       entity.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateInvite(uc.cfg.JWTSecret, user.ID, user.Email, uc.cfg.JWTIssuer)
	if err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/admin/verify-invite-token?token=%s", uc.cfg.FrontendURL, token)
	if err := uc.mailer.Send(ctx, user.Email, uc.cfg.InviteTmpl, map[string]any{
		"first_name": in.FirstName,
		"role":       role.Name,
		"link":       link,
		"token":      token,
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo enviar el email de invitación")
	}

	return &dto.InviteAdminResponse{
		Status:  "success",
		Message: "usuario invitado correctamente",
		User:    *toUserResponse(user),
		Token:   token,
	}, nil
}

// VerifyInviteToken valida firma y vigencia del token de invitación y que el
// usuario referenciado siga en pending. Token ya consumido (usuario no pending)
// devuelve ErrInvalidState.
func (uc *UseCase) VerifyInviteToken(token string) (*dto.UserResponse, error) {
	claims, err := jwt.ParseInvite(uc.cfg.JWTSecret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status != entity.UserStatusPending {
		return nil, domain.ErrInvalidState
	}
	return toUserResponse(user), nil
}

// CompleteRegistration completa el perfil del invitado: hashea el password,
// rellena nombre y teléfono y activa la cuenta. El usuario queda sin modificar
// si el token no es válido o ya fue usado.
func (uc *UseCase) CompleteRegistration(ctx context.Context, in dto.CompleteRegistrationRequest) (*dto.UserResponse, error) {
	claims, err := jwt.ParseInvite(uc.cfg.JWTSecret, in.Token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status != entity.UserStatusPending {
		return nil, domain.ErrInvalidState
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Phone = in.Phone
	user.PasswordHash = string(hash)
	user.Status = entity.UserStatusActive
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	if err := uc.mailer.Send(ctx, user.Email, uc.cfg.CompleteTmpl, map[string]any{
		"first_name": user.FirstName,
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo enviar el email de bienvenida")
	}

	return toUserResponse(user), nil
}

// ListUsers listado global con filtros de estado y búsqueda. Solo roles de
// plataforma con visibilidad (super_admin, platform_subadmin,
// platform_data_officer).
func (uc *UseCase) ListUsers(callerRole string, filters repository.UserFilters) ([]*dto.UserResponse, error) {
	if !viewerRoles[callerRole] {
		return nil, domain.ErrUnauthorized
	}
	users, err := uc.userRepo.List(filters)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
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
