package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teasoo/esg-platform-api/internal/application/admin"
	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/otp"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
	"github.com/teasoo/esg-platform-api/internal/testutil"
	pkgjwt "github.com/teasoo/esg-platform-api/pkg/jwt"
)

var testCfg = admin.Config{
	JWTSecret:    "test-secret",
	JWTIssuer:    "esg-platform-test",
	FrontendURL:  "https://app.example.com",
	WelcomeTmpl:  7,
	InviteTmpl:   8,
	CompleteTmpl: 9,
}

type fixture struct {
	uc       *admin.UseCase
	userRepo *testutil.MemUserRepo
	mail     *testutil.MemMailer
}

func newFixture() *fixture {
	userRepo := testutil.NewMemUserRepo()
	roleRepo := testutil.NewMemRoleRepo(
		entity.RoleSuperAdmin,
		entity.RolePlatformSubadmin,
		entity.RolePlatformDataOfficer,
		entity.RolePlatformViewer,
	)
	mail := &testutil.MemMailer{}
	log := testutil.NewLogger()
	otpUC := otp.NewUseCase(userRepo, mail, log, 2)
	return &fixture{
		uc:       admin.NewUseCase(userRepo, roleRepo, otpUC, mail, log, testCfg),
		userRepo: userRepo,
		mail:     mail,
	}
}

func repositoryFilters(status, search string) repository.UserFilters {
	return repository.UserFilters{Status: status, Search: search}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterAdmin + VerifyEmail
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAdmin_RolFijoSubadmin(t *testing.T) {
	f := newFixture()

	out, err := f.uc.RegisterAdmin(context.Background(), dto.RegisterRequest{
		Email:     "admin@example.com",
		Password:  "password123",
		FirstName: "Luisa",
		LastName:  "Pérez",
		Role:      entity.RoleSuperAdmin, // el rol pedido se ignora
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RolePlatformSubadmin, out.Role)
	assert.Equal(t, entity.UserStatusPending, out.Status)
	require.Len(t, f.mail.Sent, 1)
	assert.Equal(t, testCfg.WelcomeTmpl, f.mail.Sent[0].TemplateID)
}

func TestVerifyEmail_ActivaAlUsuario(t *testing.T) {
	f := newFixture()
	out, err := f.uc.RegisterAdmin(context.Background(), dto.RegisterRequest{
		Email: "admin@example.com", Password: "password123",
		FirstName: "Luisa", LastName: "Pérez",
	})
	require.NoError(t, err)

	code, ok := f.mail.Sent[0].Params["otp"].(string)
	require.True(t, ok, "el email de bienvenida incluye el OTP")

	verified, err := f.uc.VerifyEmail(dto.VerifyEmailRequest{Email: "admin@example.com", OTP: code})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, verified.Status)
	assert.Equal(t, entity.UserStatusActive, f.userRepo.Users[out.ID].Status)
}

func TestVerifyEmail_OTPIncorrecto_PropagaLaRazon(t *testing.T) {
	f := newFixture()
	_, err := f.uc.RegisterAdmin(context.Background(), dto.RegisterRequest{
		Email: "admin@example.com", Password: "password123",
		FirstName: "Luisa", LastName: "Pérez",
	})
	require.NoError(t, err)

	_, err = f.uc.VerifyEmail(dto.VerifyEmailRequest{Email: "admin@example.com", OTP: "0000"})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestVerifyEmail_UsuarioInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.VerifyEmail(dto.VerifyEmailRequest{Email: "nadie@example.com", OTP: "1234"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// InviteAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestInviteAdmin_CreaShellYToken(t *testing.T) {
	f := newFixture()

	out, err := f.uc.InviteAdmin(context.Background(), entity.RoleSuperAdmin, dto.InviteAdminRequest{
		Email: "invitado@example.com",
		Role:  entity.RolePlatformViewer,
	})
	require.NoError(t, err)

	assert.Equal(t, "success", out.Status)
	assert.Equal(t, entity.UserStatusPending, out.User.Status)
	assert.Empty(t, f.userRepo.Users[out.User.ID].PasswordHash, "el shell no tiene password")

	claims, err := pkgjwt.ParseInvite(testCfg.JWTSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, "invitado@example.com", claims.Email)

	require.Len(t, f.mail.Sent, 1)
	assert.Equal(t, testCfg.InviteTmpl, f.mail.Sent[0].TemplateID)
	assert.Contains(t, f.mail.Sent[0].Params["link"], "/admin/verify-invite-token?token=")
}

func TestInviteAdmin_RolSinPermiso_Unauthorized(t *testing.T) {
	f := newFixture()

	for _, caller := range []string{entity.RolePlatformViewer, entity.RolePlatformDataOfficer, entity.RoleCompanyESGAdmin} {
		_, err := f.uc.InviteAdmin(context.Background(), caller, dto.InviteAdminRequest{
			Email: "invitado@example.com",
			Role:  entity.RolePlatformViewer,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "caller %s no puede invitar", caller)
	}
	assert.Empty(t, f.userRepo.Users, "ninguna guarda fallida crea filas")
}

func TestInviteAdmin_NoPuedeAcunarSuperAdmin(t *testing.T) {
	f := newFixture()

	_, err := f.uc.InviteAdmin(context.Background(), entity.RoleSuperAdmin, dto.InviteAdminRequest{
		Email: "invitado@example.com",
		Role:  entity.RoleSuperAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, f.userRepo.Users)
}

func TestInviteAdmin_EmailExistente_Conflict(t *testing.T) {
	f := newFixture()
	f.userRepo.Users["u1"] = &entity.User{ID: "u1", Email: "invitado@example.com"}

	_, err := f.uc.InviteAdmin(context.Background(), entity.RolePlatformSubadmin, dto.InviteAdminRequest{
		Email: "invitado@example.com",
		Role:  entity.RolePlatformViewer,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, f.userRepo.Users, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyInviteToken + CompleteRegistration
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyInviteToken_TokenValido(t *testing.T) {
	f := newFixture()
	out, err := f.uc.InviteAdmin(context.Background(), entity.RoleSuperAdmin, dto.InviteAdminRequest{
		Email: "invitado@example.com", Role: entity.RolePlatformViewer,
	})
	require.NoError(t, err)

	user, err := f.uc.VerifyInviteToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, user.ID)
}

func TestVerifyInviteToken_FirmaInvalida_Unauthorized(t *testing.T) {
	f := newFixture()
	_, err := f.uc.VerifyInviteToken("token.invalido.aqui")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyInviteToken_YaConsumido_InvalidState(t *testing.T) {
	f := newFixture()
	out, err := f.uc.InviteAdmin(context.Background(), entity.RoleSuperAdmin, dto.InviteAdminRequest{
		Email: "invitado@example.com", Role: entity.RolePlatformViewer,
	})
	require.NoError(t, err)
	f.userRepo.Users[out.User.ID].Status = entity.UserStatusActive

	_, err = f.uc.VerifyInviteToken(out.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCompleteRegistration_RellenaPerfilYActiva(t *testing.T) {
	f := newFixture()
	out, err := f.uc.InviteAdmin(context.Background(), entity.RoleSuperAdmin, dto.InviteAdminRequest{
		Email: "invitado@example.com", Role: entity.RolePlatformViewer,
	})
	require.NoError(t, err)

	user, err := f.uc.CompleteRegistration(context.Background(), dto.CompleteRegistrationRequest{
		Token:     out.Token,
		FirstName: "Carlos",
		LastName:  "Ruiz",
		Phone:     "3001234567",
		Password:  "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.UserStatusActive, user.Status)
	assert.Equal(t, "Carlos", user.FirstName)
	stored := f.userRepo.Users[user.ID]
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

// Un token ya usado no vuelve a modificar al usuario.
func TestCompleteRegistration_TokenConsumido_NoModifica(t *testing.T) {
	f := newFixture()
	out, err := f.uc.InviteAdmin(context.Background(), entity.RoleSuperAdmin, dto.InviteAdminRequest{
		Email: "invitado@example.com", Role: entity.RolePlatformViewer,
	})
	require.NoError(t, err)

	_, err = f.uc.CompleteRegistration(context.Background(), dto.CompleteRegistrationRequest{
		Token: out.Token, FirstName: "Carlos", LastName: "Ruiz", Password: "password123",
	})
	require.NoError(t, err)

	_, err = f.uc.CompleteRegistration(context.Background(), dto.CompleteRegistrationRequest{
		Token: out.Token, FirstName: "Otro", LastName: "Nombre", Password: "otro-pass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, "Carlos", f.userRepo.Users[out.User.ID].FirstName, "el segundo intento no modifica nada")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListUsers
// ──────────────────────────────────────────────────────────────────────────────

func TestListUsers_FiltraPorEstadoYBusqueda(t *testing.T) {
	f := newFixture()
	f.userRepo.Users["u1"] = &entity.User{ID: "u1", Email: "ana@example.com", FirstName: "Ana", Status: entity.UserStatusActive}
	f.userRepo.Users["u2"] = &entity.User{ID: "u2", Email: "beto@example.com", FirstName: "Beto", Status: entity.UserStatusPending}

	out, err := f.uc.ListUsers(entity.RoleSuperAdmin, repositoryFilters("active", ""))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ana@example.com", out[0].Email)

	out, err = f.uc.ListUsers(entity.RolePlatformDataOfficer, repositoryFilters("", "beto"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "beto@example.com", out[0].Email)
}

func TestListUsers_RolSinVisibilidad_Unauthorized(t *testing.T) {
	f := newFixture()
	_, err := f.uc.ListUsers(entity.RolePlatformViewer, repositoryFilters("", ""))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
