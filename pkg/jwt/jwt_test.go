package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/teasoo/esg-platform-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "usuario@example.com"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "esg-platform-test"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, testCompanyID, "company_esg_admin", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, "company_esg_admin", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, testCompanyID, "super_admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, testCompanyID, "super_admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testEmail, testCompanyID, "super_admin", testIssuer, 60)
	assert.Error(t, err)
}

func TestJWTInvite_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.GenerateInvite(testSecret, testUserID, testEmail, testIssuer)
	require.NoError(t, err)

	claims, err := pkgjwt.ParseInvite(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
}

func TestJWTInvite_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.GenerateInvite(testSecret, testUserID, testEmail, testIssuer)
	require.NoError(t, err)

	_, err = pkgjwt.ParseInvite("otro-secret", tok)
	assert.Error(t, err)
}

func TestJWTInvite_NoEsIntercambiable_ConAcceso(t *testing.T) {
	// El claim purpose separa los dos tipos de token: un token de invitación
	// nunca sirve como bearer de sesión, y un token de acceso nunca sirve
	// para completar una invitación.
	invite, err := pkgjwt.GenerateInvite(testSecret, testUserID, testEmail, testIssuer)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, invite)
	assert.Error(t, err, "un token de invitación no debe parsear como acceso")

	access, err := pkgjwt.Generate(testSecret, testUserID, testEmail, testCompanyID, "super_admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.ParseInvite(testSecret, access)
	assert.Error(t, err, "un token de acceso no debe parsear como invitación")
}
