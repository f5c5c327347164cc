package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teasoo/esg-platform-api/internal/application/dto"
	"github.com/teasoo/esg-platform-api/internal/application/usecase"
	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/testutil"
)

const inviteTmpl = 8

type invFixture struct {
	uc       *usecase.InvitationUseCase
	invRepo  *testutil.MemInvitationRepo
	userRepo *testutil.MemUserRepo
	mail     *testutil.MemMailer
}

func newInvFixture() *invFixture {
	invRepo := testutil.NewMemInvitationRepo()
	userRepo := testutil.NewMemUserRepo()
	roleRepo := testutil.NewMemRoleRepo(entity.RoleCompanyESGViewer, entity.RoleCompanyESGOfficer)
	mail := &testutil.MemMailer{}
	userRepo.Users["inviter-1"] = &entity.User{
		ID: "inviter-1", Email: "admin@acme.com", CompanyID: "company-1",
		Role: entity.RoleCompanyESGAdmin,
	}
	return &invFixture{
		uc:       usecase.NewInvitationUseCase(invRepo, userRepo, roleRepo, mail, testutil.NewLogger(), "https://app.example.com", inviteTmpl),
		invRepo:  invRepo,
		userRepo: userRepo,
		mail:     mail,
	}
}

func createReq() dto.CreateInvitationRequest {
	return dto.CreateInvitationRequest{
		Email:        "nuevo@acme.com",
		RoleID:       "role-" + entity.RoleCompanyESGViewer,
		DepartmentID: "dept-1",
	}
}

func TestCreateInvitacion_LigadaALaEmpresaDelInvitador(t *testing.T) {
	f := newInvFixture()

	out, err := f.uc.Create(context.Background(), "inviter-1", createReq())
	require.NoError(t, err)

	assert.Equal(t, "company-1", out.CompanyID, "la company siempre es la del que invita")
	assert.Equal(t, entity.InvitationStatusPending, out.Status)
	assert.Equal(t, "inviter-1", out.InvitedBy)
	assert.NotEmpty(t, out.Token)
	assert.WithinDuration(t, time.Now().Add(usecase.InvitationTTL), out.ExpiresAt, time.Minute)

	require.Len(t, f.mail.Sent, 1)
	assert.Equal(t, "nuevo@acme.com", f.mail.Sent[0].To)
	assert.Contains(t, f.mail.Sent[0].Params["link"], "/esg/auth/signup?token=")
}

// Invariante: a lo sumo una invitación pending por email. Re-invitar expira
// las anteriores.
func TestCreateInvitacion_ExpiraPendingsAnteriores(t *testing.T) {
	f := newInvFixture()

	first, err := f.uc.Create(context.Background(), "inviter-1", createReq())
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), "inviter-1", createReq())
	require.NoError(t, err)

	assert.Equal(t, 1, f.invRepo.PendingCount("nuevo@acme.com"))

	old, err := f.uc.GetByToken(first.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationStatusExpired, old.Status)

	fresh, err := f.uc.GetByToken(second.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.InvitationStatusPending, fresh.Status)
}

func TestCreateInvitacion_EmailYaRegistrado_Conflict(t *testing.T) {
	f := newInvFixture()
	f.userRepo.Users["u1"] = &entity.User{ID: "u1", Email: "nuevo@acme.com"}

	_, err := f.uc.Create(context.Background(), "inviter-1", createReq())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, f.invRepo.Invitations, "el conflicto no deja invitación creada")
}

func TestCreateInvitacion_RolInexistente(t *testing.T) {
	f := newInvFixture()
	in := createReq()
	in.RoleID = "role-que-no-existe"

	_, err := f.uc.Create(context.Background(), "inviter-1", in)
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
}

func TestCreateInvitacion_InvitadorInexistente(t *testing.T) {
	f := newInvFixture()
	_, err := f.uc.Create(context.Background(), "nadie", createReq())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByToken_Desconocido_InvalidState(t *testing.T) {
	f := newInvFixture()
	_, err := f.uc.GetByToken("no-existe")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
