package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teasoo/esg-platform-api/internal/application/auth"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/otp"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/testutil"
	pkgjwt "github.com/teasoo/esg-platform-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "esg-platform-test"}

type fixture struct {
	uc          *auth.UseCase
	userRepo    *testutil.MemUserRepo
	refreshRepo *testutil.MemRefreshTokenRepo
	mail        *testutil.MemMailer
}

func newFixture() *fixture {
	userRepo := testutil.NewMemUserRepo()
	roleRepo := testutil.NewMemRoleRepo(entity.RolePlatformViewer, entity.RolePlatformSubadmin)
	refreshRepo := testutil.NewMemRefreshTokenRepo()
	mail := &testutil.MemMailer{}
	log := testutil.NewLogger()
	otpUC := otp.NewUseCase(userRepo, mail, log, 2)
	return &fixture{
		uc:          auth.NewUseCase(userRepo, roleRepo, refreshRepo, otpUC, mail, log, testJWT, 7),
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		mail:        mail,
	}
}

func (f *fixture) seedActiveUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:           "user-activo",
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RolePlatformViewer,
		Status:       entity.UserStatusActive,
	}
	f.userRepo.Users[user.ID] = user
	return user
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     "nuevo@example.com",
		Password:  "password123",
		FirstName: "Ana",
		LastName:  "Gómez",
		Role:      entity.RolePlatformViewer,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioPendingConOTP(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, entity.UserStatusPending, out.Status)
	assert.Equal(t, entity.RolePlatformViewer, out.Role)

	stored := f.userRepo.Users[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NotEmpty(t, stored.OTPHash, "el registro deja un OTP emitido")

	require.Len(t, f.mail.Sent, 1)
	assert.Equal(t, "nuevo@example.com", f.mail.Sent[0].To)
	assert.NotEmpty(t, f.mail.Sent[0].Params["otp"], "el email de bienvenida lleva el OTP en claro")
}

func TestRegister_EmailDuplicado_NoCreaFila(t *testing.T) {
	f := newFixture()
	f.seedActiveUser(t, "nuevo@example.com", "otro-pass")

	_, err := f.uc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, f.userRepo.Users, 1, "no debe crearse un segundo usuario")
}

func TestRegister_RolNoConfigurado_NoCreaFila(t *testing.T) {
	f := newFixture()
	in := registerReq()
	in.Role = "rol_que_no_existe"

	_, err := f.uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
	assert.Empty(t, f.userRepo.Users, "rol inexistente no deja usuario creado")
}

func TestRegister_FallaDeCorreoNoEsFatal(t *testing.T) {
	f := newFixture()
	f.mail.Fail = assert.AnError

	out, err := f.uc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.NotNil(t, f.userRepo.Users[out.ID])
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteAccessYRefresh(t *testing.T) {
	f := newFixture()
	user := f.seedActiveUser(t, "activo@example.com", "password123")

	out, err := f.uc.Login(dto.LoginRequest{Email: "activo@example.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testJWT.Secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)

	stored, err := f.refreshRepo.GetByToken(out.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, stored, "el refresh token queda persistido")
	assert.Equal(t, user.ID, stored.UserID)
	assert.WithinDuration(t, time.Now().Add(auth.RefreshTTL), stored.ExpiresAt, time.Minute)
}

func TestLogin_UsuarioInexistente_Unauthorized(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_PasswordIncorrecto_Unauthorized(t *testing.T) {
	f := newFixture()
	f.seedActiveUser(t, "activo@example.com", "password123")

	_, err := f.uc.Login(dto.LoginRequest{Email: "activo@example.com", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaPending_Forbidden(t *testing.T) {
	f := newFixture()
	user := f.seedActiveUser(t, "pendiente@example.com", "password123")
	user.Status = entity.UserStatusPending

	_, err := f.uc.Login(dto.LoginRequest{Email: "pendiente@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_TokenVigente_EmiteAccesoNuevo(t *testing.T) {
	f := newFixture()
	user := f.seedActiveUser(t, "activo@example.com", "password123")
	require.NoError(t, f.refreshRepo.Create(&entity.RefreshToken{
		ID: "rt-1", Token: "token-vigente", UserID: user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	out, err := f.uc.Refresh(dto.RefreshRequest{RefreshToken: "token-vigente"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testJWT.Secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefresh_TokenDesconocido_Unauthorized(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Refresh(dto.RefreshRequest{RefreshToken: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_TokenExpirado_Unauthorized(t *testing.T) {
	f := newFixture()
	user := f.seedActiveUser(t, "activo@example.com", "password123")
	require.NoError(t, f.refreshRepo.Create(&entity.RefreshToken{
		ID: "rt-2", Token: "token-viejo", UserID: user.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := f.uc.Refresh(dto.RefreshRequest{RefreshToken: "token-viejo"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
