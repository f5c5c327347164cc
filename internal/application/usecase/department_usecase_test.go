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

type deptFixture struct {
	uc       *usecase.DepartmentUseCase
	deptRepo *testutil.MemDepartmentRepo
	userRepo *testutil.MemUserRepo
}

func newDeptFixture() *deptFixture {
	deptRepo := testutil.NewMemDepartmentRepo()
	userRepo := testutil.NewMemUserRepo()
	userRepo.Users["creator-1"] = &entity.User{
		ID: "creator-1", Email: "creador@acme.com", CompanyID: "company-1",
	}
	return &deptFixture{
		uc:       usecase.NewDepartmentUseCase(deptRepo, userRepo),
		deptRepo: deptRepo,
		userRepo: userRepo,
	}
}

func TestCreate_DefaultsDelCreador(t *testing.T) {
	f := newDeptFixture()

	out, err := f.uc.Create("company-1", "creator-1", dto.CreateDepartmentRequest{Name: "Sostenibilidad"})
	require.NoError(t, err)

	assert.Equal(t, "company-1", out.CompanyID)
	assert.Equal(t, "creador@acme.com", out.ContactEmail, "el contacto toma por defecto el email del creador")
	assert.Equal(t, "creator-1", out.LeadUserID, "el líder toma por defecto al creador")
}

func TestCreate_RespetaValoresExplicitos(t *testing.T) {
	f := newDeptFixture()

	out, err := f.uc.Create("company-1", "creator-1", dto.CreateDepartmentRequest{
		Name:         "Reportes",
		ContactEmail: "reportes@acme.com",
		LeadUserID:   "lead-7",
	})
	require.NoError(t, err)

	assert.Equal(t, "reportes@acme.com", out.ContactEmail)
	assert.Equal(t, "lead-7", out.LeadUserID)
}

func TestGet_DeOtraEmpresa_Forbidden(t *testing.T) {
	f := newDeptFixture()
	f.deptRepo.Departments["dept-1"] = &entity.Department{ID: "dept-1", CompanyID: "otra-company"}

	_, err := f.uc.Get("dept-1", "company-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGet_Inexistente_NotFound(t *testing.T) {
	f := newDeptFixture()
	_, err := f.uc.Get("no-existe", "company-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La autorización corre ANTES de mutar: el departamento ajeno queda intacto.
func TestUpdate_DeOtraEmpresa_ForbiddenSinMutar(t *testing.T) {
	f := newDeptFixture()
	f.deptRepo.Departments["dept-1"] = &entity.Department{
		ID: "dept-1", CompanyID: "otra-company", Name: "Original",
	}

	name := "Hackeado"
	_, err := f.uc.Update("dept-1", "company-1", dto.UpdateDepartmentRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "Original", f.deptRepo.Departments["dept-1"].Name)
}

func TestDelete_DeOtraEmpresa_ForbiddenSinBorrar(t *testing.T) {
	f := newDeptFixture()
	f.deptRepo.Departments["dept-1"] = &entity.Department{ID: "dept-1", CompanyID: "otra-company"}

	err := f.uc.Delete("dept-1", "company-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.NotNil(t, f.deptRepo.Departments["dept-1"], "el departamento ajeno sigue existiendo")
}

func TestUpdateYDelete_DeLaPropiaEmpresa(t *testing.T) {
	f := newDeptFixture()
	f.deptRepo.Departments["dept-1"] = &entity.Department{
		ID: "dept-1", CompanyID: "company-1", Name: "Original",
	}

	name := "Renombrado"
	out, err := f.uc.Update("dept-1", "company-1", dto.UpdateDepartmentRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", out.Name)

	require.NoError(t, f.uc.Delete("dept-1", "company-1"))
	assert.Nil(t, f.deptRepo.Departments["dept-1"])
}

func TestList_SoloDeLaEmpresa(t *testing.T) {
	f := newDeptFixture()
	f.deptRepo.Departments["d1"] = &entity.Department{ID: "d1", CompanyID: "company-1"}
	f.deptRepo.Departments["d2"] = &entity.Department{ID: "d2", CompanyID: "otra-company"}

	out, err := f.uc.List("company-1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "d1", out[0].ID)
}
