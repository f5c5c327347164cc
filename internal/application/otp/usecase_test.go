package otp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teasoo/esg-platform-api/internal/application/otp"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/testutil"
)

const otpTemplateID = 2

func seedUser(repo *testutil.MemUserRepo) *entity.User {
	user := &entity.User{
		ID:     "user-1",
		Email:  "usuario@example.com",
		Status: entity.UserStatusPending,
	}
	repo.Users[user.ID] = user
	return user
}

func TestGenerateCode_CuatroDigitos(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := otp.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 4)
		assert.GreaterOrEqual(t, code, "1000", "el código nunca empieza en 0")
		assert.LessOrEqual(t, code, "9999")
	}
}

func TestIssueYVerify_Roundtrip(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	uc := otp.NewUseCase(userRepo, &testutil.MemMailer{}, testutil.NewLogger(), otpTemplateID)

	code, err := uc.Issue("user-1")
	require.NoError(t, err)

	// Solo el hash queda persistido
	stored := userRepo.Users["user-1"]
	assert.NotEqual(t, code, stored.OTPHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.OTPHash), []byte(code)))
	require.NotNil(t, stored.OTPExpiresAt)

	assert.NoError(t, uc.Verify("user-1", code))
}

func TestVerify_CodigoIncorrecto(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	uc := otp.NewUseCase(userRepo, &testutil.MemMailer{}, testutil.NewLogger(), otpTemplateID)

	_, err := uc.Issue("user-1")
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Verify("user-1", "0000"), domain.ErrOTPInvalid)
}

func TestVerify_SinOTPEmitido(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	uc := otp.NewUseCase(userRepo, &testutil.MemMailer{}, testutil.NewLogger(), otpTemplateID)

	assert.ErrorIs(t, uc.Verify("user-1", "1234"), domain.ErrOTPNotFound)
}

func TestVerify_UsuarioInexistente(t *testing.T) {
	uc := otp.NewUseCase(testutil.NewMemUserRepo(), &testutil.MemMailer{}, testutil.NewLogger(), otpTemplateID)

	assert.ErrorIs(t, uc.Verify("no-existe", "1234"), domain.ErrOTPNotFound)
}

// La expiración se revisa ANTES de comparar el hash: un código correcto pero
// expirado falla con ErrOTPExpired, no con ErrOTPInvalid.
func TestVerify_ExpiradoAntesDeComparar(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	uc := otp.NewUseCase(userRepo, &testutil.MemMailer{}, testutil.NewLogger(), otpTemplateID)

	code, err := uc.Issue("user-1")
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	userRepo.Users["user-1"].OTPExpiresAt = &past

	assert.ErrorIs(t, uc.Verify("user-1", code), domain.ErrOTPExpired)
}

// Re-emitir sobrescribe el código anterior: el viejo deja de servir.
func TestIssue_ReemisionInvalidaElAnterior(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	uc := otp.NewUseCase(userRepo, &testutil.MemMailer{}, testutil.NewLogger(), otpTemplateID)

	first, err := uc.Issue("user-1")
	require.NoError(t, err)
	second, err := uc.Issue("user-1")
	require.NoError(t, err)

	assert.NoError(t, uc.Verify("user-1", second))
	if first != second {
		assert.ErrorIs(t, uc.Verify("user-1", first), domain.ErrOTPInvalid)
	}
}

func TestSend_EnviaAlEmailDelUsuario(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	mail := &testutil.MemMailer{}
	uc := otp.NewUseCase(userRepo, mail, testutil.NewLogger(), otpTemplateID)

	email, err := uc.Send(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "usuario@example.com", email)

	require.Len(t, mail.Sent, 1)
	assert.Equal(t, "usuario@example.com", mail.Sent[0].To)
	assert.Equal(t, otpTemplateID, mail.Sent[0].TemplateID)
	assert.NotEmpty(t, mail.Sent[0].Params["otp"])
}

// Send carga el usuario una sola vez: la emisión reutiliza el usuario ya
// leído en lugar de volver a consultarlo por ID.
func TestSend_CargaElUsuarioUnaVez(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	uc := otp.NewUseCase(userRepo, &testutil.MemMailer{}, testutil.NewLogger(), otpTemplateID)

	_, err := uc.Send(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, userRepo.GetsByID)
}

// La falla del proveedor de correo no es fatal: el OTP queda almacenado.
func TestSend_FallaDeCorreoNoEsFatal(t *testing.T) {
	userRepo := testutil.NewMemUserRepo()
	seedUser(userRepo)
	mail := &testutil.MemMailer{Fail: assert.AnError}
	uc := otp.NewUseCase(userRepo, mail, testutil.NewLogger(), otpTemplateID)

	_, err := uc.Send(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, userRepo.Users["user-1"].OTPHash)
}
