package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/usecase"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/testutil"
)

func newUserFixture() (*usecase.UserUseCase, *testutil.MemUserRepo) {
	userRepo := testutil.NewMemUserRepo()
	roleRepo := testutil.NewMemRoleRepo(entity.RoleCompanyESGViewer, entity.RoleCompanyESGOfficer)
	userRepo.Users["user-1"] = &entity.User{
		ID: "user-1", Email: "yo@acme.com", FirstName: "Ada",
		Role: entity.RoleCompanyESGViewer, CompanyID: "company-1",
	}
	return usecase.NewUserUseCase(userRepo, roleRepo), userRepo
}

func TestMe_DevuelvePerfil(t *testing.T) {
	uc, _ := newUserFixture()

	out, err := uc.Me("user-1")
	require.NoError(t, err)
	assert.Equal(t, "yo@acme.com", out.Email)
	assert.Equal(t, "company-1", out.CompanyID)
}

func TestMe_Inexistente(t *testing.T) {
	uc, _ := newUserFixture()
	_, err := uc.Me("nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateMe_Parcial(t *testing.T) {
	uc, repo := newUserFixture()

	phone := "3009876543"
	out, err := uc.UpdateMe("user-1", dto.UpdateMeRequest{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "3009876543", out.Phone)
	assert.Equal(t, "Ada", out.FirstName, "los campos no enviados no cambian")
	assert.Equal(t, "3009876543", repo.Users["user-1"].Phone)
}

func TestUpdateMe_CambioDeRolPorNombre(t *testing.T) {
	uc, _ := newUserFixture()

	role := entity.RoleCompanyESGOfficer
	out, err := uc.UpdateMe("user-1", dto.UpdateMeRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompanyESGOfficer, out.Role)
}

func TestUpdateMe_RolNoConfigurado(t *testing.T) {
	uc, repo := newUserFixture()

	role := "rol_que_no_existe"
	_, err := uc.UpdateMe("user-1", dto.UpdateMeRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
	assert.Equal(t, entity.RoleCompanyESGViewer, repo.Users["user-1"].Role, "el rol no cambia")
}
