// Package testutil provee implementaciones en memoria de los puertos de
// persistencia y del mailer para los tests de los casos de uso.
package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/teasoo/esg-platform-api/internal/domain"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
	"github.com/teasoo/esg-platform-api/internal/domain/repository"
	"github.com/teasoo/esg-platform-api/pkg/logger"
)

// NewLogger logger silencioso para tests.
func NewLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Mailer
// ──────────────────────────────────────────────────────────────────────────────

// SentMail registro de un envío simulado.
type SentMail struct {
	To         string
	TemplateID int
	Params     map[string]any
}

// MemMailer mailer en memoria. Si Fail es no-nil, Send devuelve ese error
// (para probar que las fallas de correo no son fatales).
type MemMailer struct {
	Sent []SentMail
	Fail error
}

func (m *MemMailer) Send(_ context.Context, to string, templateID int, params map[string]any) error {
	if m.Fail != nil {
		return m.Fail
	}
	m.Sent = append(m.Sent, SentMail{To: to, TemplateID: templateID, Params: params})
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

// MemUserRepo UserRepository en memoria.
type MemUserRepo struct {
	Users    map[string]*entity.User // por ID
	GetsByID int                     // lecturas por ID, para verificar que no se relea de más
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{Users: make(map[string]*entity.User)}
}

func (r *MemUserRepo) Create(user *entity.User) error {
	for _, u := range r.Users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.Users[user.ID] = &cp
	return nil
}

func (r *MemUserRepo) GetByID(id string) (*entity.User, error) {
	r.GetsByID++
	u, ok := r.Users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *MemUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemUserRepo) GetByCompanyAndRole(companyID, roleName string) (*entity.User, error) {
	for _, u := range r.Users {
		if u.CompanyID == companyID && u.Role == roleName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemUserRepo) Update(user *entity.User) error {
	if _, ok := r.Users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.Users[user.ID] = &cp
	return nil
}

func (r *MemUserRepo) List(filters repository.UserFilters) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.Users {
		if filters.Status != "" && u.Status != filters.Status {
			continue
		}
		if filters.Search != "" {
			s := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(u.FirstName), s) &&
				!strings.Contains(strings.ToLower(u.LastName), s) &&
				!strings.Contains(strings.ToLower(u.Email), s) &&
				!strings.Contains(strings.ToLower(u.Phone), s) {
				continue
			}
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.Users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Roles
// ──────────────────────────────────────────────────────────────────────────────

// MemRoleRepo RoleRepository en memoria.
type MemRoleRepo struct {
	Roles []*entity.Role
}

// NewMemRoleRepo crea el repo con los nombres de rol dados (id = "role-<name>").
func NewMemRoleRepo(names ...string) *MemRoleRepo {
	r := &MemRoleRepo{}
	for _, n := range names {
		r.Roles = append(r.Roles, &entity.Role{ID: "role-" + n, Name: n})
	}
	return r
}

func (r *MemRoleRepo) GetByID(id string) (*entity.Role, error) {
	for _, role := range r.Roles {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, nil
}

func (r *MemRoleRepo) GetByName(name string) (*entity.Role, error) {
	for _, role := range r.Roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, nil
}

func (r *MemRoleRepo) List() ([]*entity.Role, error) {
	return r.Roles, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Companies
// ──────────────────────────────────────────────────────────────────────────────

// MemCompanyRepo CompanyRepository en memoria.
type MemCompanyRepo struct {
	Companies map[string]*entity.Company
}

func NewMemCompanyRepo() *MemCompanyRepo {
	return &MemCompanyRepo{Companies: make(map[string]*entity.Company)}
}

func (r *MemCompanyRepo) Create(company *entity.Company) error {
	for _, c := range r.Companies {
		if c.Name == company.Name || c.RegistrationNumber == company.RegistrationNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *company
	r.Companies[company.ID] = &cp
	return nil
}

func (r *MemCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.Companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemCompanyRepo) GetByName(name string) (*entity.Company, error) {
	for _, c := range r.Companies {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemCompanyRepo) GetByRegistrationNumber(regNumber string) (*entity.Company, error) {
	for _, c := range r.Companies {
		if c.RegistrationNumber == regNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemCompanyRepo) Update(company *entity.Company) error {
	if _, ok := r.Companies[company.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *company
	r.Companies[company.ID] = &cp
	return nil
}

func (r *MemCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.Companies {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Departments
// ──────────────────────────────────────────────────────────────────────────────

// MemDepartmentRepo DepartmentRepository en memoria.
type MemDepartmentRepo struct {
	Departments map[string]*entity.Department
}

func NewMemDepartmentRepo() *MemDepartmentRepo {
	return &MemDepartmentRepo{Departments: make(map[string]*entity.Department)}
}

func (r *MemDepartmentRepo) Create(dept *entity.Department) error {
	cp := *dept
	r.Departments[dept.ID] = &cp
	return nil
}

func (r *MemDepartmentRepo) GetByID(id string) (*entity.Department, error) {
	d, ok := r.Departments[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *MemDepartmentRepo) Update(dept *entity.Department) error {
	if _, ok := r.Departments[dept.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *dept
	r.Departments[dept.ID] = &cp
	return nil
}

func (r *MemDepartmentRepo) Delete(id string) error {
	delete(r.Departments, id)
	return nil
}

func (r *MemDepartmentRepo) ListByCompany(companyID string) ([]*entity.DepartmentWithLead, error) {
	var out []*entity.DepartmentWithLead
	for _, d := range r.Departments {
		if d.CompanyID == companyID {
			out = append(out, &entity.DepartmentWithLead{Department: *d})
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitations
// ──────────────────────────────────────────────────────────────────────────────

// MemInvitationRepo InvitationRepository en memoria.
type MemInvitationRepo struct {
	Invitations map[string]*entity.Invitation // por ID
}

func NewMemInvitationRepo() *MemInvitationRepo {
	return &MemInvitationRepo{Invitations: make(map[string]*entity.Invitation)}
}

func (r *MemInvitationRepo) Create(inv *entity.Invitation) error {
	cp := *inv
	r.Invitations[inv.ID] = &cp
	return nil
}

func (r *MemInvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	for _, inv := range r.Invitations {
		if inv.Token == token {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemInvitationRepo) Update(inv *entity.Invitation) error {
	if _, ok := r.Invitations[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.Invitations[inv.ID] = &cp
	return nil
}

func (r *MemInvitationRepo) ExpirePendingByEmail(email string) (int, error) {
	n := 0
	for _, inv := range r.Invitations {
		if inv.Email == email && inv.Status == entity.InvitationStatusPending {
			inv.Status = entity.InvitationStatusExpired
			n++
		}
	}
	return n, nil
}

// PendingCount cuántas invitaciones pending hay para el email.
func (r *MemInvitationRepo) PendingCount(email string) int {
	n := 0
	for _, inv := range r.Invitations {
		if inv.Email == email && inv.Status == entity.InvitationStatusPending {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh tokens
// ──────────────────────────────────────────────────────────────────────────────

// MemRefreshTokenRepo RefreshTokenRepository en memoria.
type MemRefreshTokenRepo struct {
	Tokens map[string]*entity.RefreshToken // por token
}

func NewMemRefreshTokenRepo() *MemRefreshTokenRepo {
	return &MemRefreshTokenRepo{Tokens: make(map[string]*entity.RefreshToken)}
}

func (r *MemRefreshTokenRepo) Create(token *entity.RefreshToken) error {
	cp := *token
	r.Tokens[token.Token] = &cp
	return nil
}

func (r *MemRefreshTokenRepo) GetByToken(token string) (*entity.RefreshToken, error) {
	t, ok := r.Tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// MemTxRunner ejecuta el callback directamente sobre los repos en memoria.
// No simula rollback; los tests de conflicto verifican los pre-checks.
type MemTxRunner struct {
	CompanyRepo repository.CompanyRepository
	UserRepo    repository.UserRepository
}

func (t *MemTxRunner) Run(_ context.Context, fn func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error) error {
	return fn(t.CompanyRepo, t.UserRepo)
}
