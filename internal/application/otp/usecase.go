package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/teasoo/esg-platform-api/internal/application/ports"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
	"github.com/teasoo/esg-platform-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// TTL vigencia por defecto de un código OTP.
const TTL = 30 * time.Minute

// UseCase gestiona el ciclo de vida de códigos OTP de 4 dígitos ligados a un
// usuario. Solo se persiste el hash bcrypt del código y su expiración; el
// código en claro únicamente viaja por email.
type UseCase struct {
	userRepo   repository.UserRepository
	mailer     ports.Mailer
	log        *logger.Logger
	templateID int
}

// NewUseCase construye el gestor de OTP.
func NewUseCase(userRepo repository.UserRepository, mailer ports.Mailer, log *logger.Logger, templateID int) *UseCase {
	return &UseCase{userRepo: userRepo, mailer: mailer, log: log, templateID: templateID}
}

// GenerateCode genera un código de 4 dígitos (1000 a 9999) con sorteo uniforme.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generar OTP: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

// Issue genera un código nuevo y lo almacena (hash + expiración) sobre el
// usuario, sobrescribiendo el anterior. Devuelve el código en claro para que
// el llamador lo incluya en la plantilla de email que corresponda.
func (uc *UseCase) Issue(userID string) (string, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	return uc.issueFor(user)
}

// issueFor genera y almacena el código sobre un usuario ya cargado.
func (uc *UseCase) issueFor(user *entity.User) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(TTL)
	user.OTPHash = string(hash)
	user.OTPExpiresAt = &expires
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return "", err
	}
	return code, nil
}

// Send genera, almacena y envía un código al email del usuario.
// La falla de envío se registra pero no es fatal.
func (uc *UseCase) Send(ctx context.Context, userID string) (string, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	code, err := uc.issueFor(user)
	if err != nil {
		return "", err
	}
	if err := uc.mailer.Send(ctx, user.Email, uc.templateID, map[string]any{"otp": code}); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("no se pudo enviar el OTP")
	}
	return user.Email, nil
}

// Verify comprueba el código contra el hash almacenado. La expiración se
// revisa ANTES de comparar el hash: un código expirado falla con ErrOTPExpired
// aunque coincida. Las fallas se distinguen por razón, no por booleano.
func (uc *UseCase) Verify(userID, code string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || user.OTPHash == "" || user.OTPExpiresAt == nil {
		return domain.ErrOTPNotFound
	}
	if time.Now().After(*user.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.OTPHash), []byte(code)); err != nil {
		return domain.ErrOTPInvalid
	}
	return nil
}
