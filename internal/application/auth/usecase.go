package auth

import (
	"context"
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

// RefreshTTL vigencia del refresh token opaco.
const RefreshTTL = 7 * 24 * time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro de plataforma, login y refresh.
type UseCase struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	refreshRepo repository.RefreshTokenRepository
	otpUC       *otp.UseCase
	mailer      ports.Mailer
	log         *logger.Logger
	jwtCfg      JWTConfig
	welcomeTmpl int
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	refreshRepo repository.RefreshTokenRepository,
	otpUC *otp.UseCase,
	mailer ports.Mailer,
	log *logger.Logger,
	jwtCfg JWTConfig,
	welcomeTmpl int,
) *UseCase {
	return &UseCase{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		refreshRepo: refreshRepo,
		otpUC:       otpUC,
		mailer:      mailer,
		log:         log,
		jwtCfg:      jwtCfg,
		welcomeTmpl: welcomeTmpl,
	}
}

// Register auto-registro de plataforma: hashea el password, crea el usuario en
// pending y envía un OTP de verificación por email (falla de envío no es fatal).
// Devuelve ErrEmailAlreadyExists si el email ya existe y ErrRoleNotFound si el
// nombre de rol no está configurado; en ambos casos no se crea ninguna fila.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByName(in.Role)
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

	// Email de bienvenida con OTP: best-effort, el registro ya quedó.
	code, err := uc.otpUC.Issue(user.ID)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo generar el OTP de bienvenida")
	} else if err := uc.mailer.Send(ctx, user.Email, uc.welcomeTmpl, map[string]any{
		"first_name": user.FirstName,
		"otp":        code,
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo enviar el email de bienvenida")
	}

	return toUserResponse(user), nil
}

// Login verifica email/password, emite el JWT de acceso y persiste un refresh
// token opaco de 7 días. Usuario inexistente o password incorrecto devuelven
// el mismo ErrUnauthorized; cuenta no activa devuelve ErrForbidden.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh := &entity.RefreshToken{
		ID:        uuid.New().String(),
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(RefreshTTL),
		CreatedAt: time.Now(),
	}
	if err := uc.refreshRepo.Create(refresh); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		User:         *toUserResponse(user),
	}, nil
}

// Refresh emite un token de acceso nuevo contra un refresh token vigente.
func (uc *UseCase) Refresh(in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	stored, err := uc.refreshRepo.GetByToken(in.RefreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil || time.Now().After(stored.ExpiresAt) {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{
		AccessToken: access,
		User:        *toUserResponse(user),
	}, nil
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
