package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teasoo/esg-platform-api/internal/application/admin"
	"github.com/teasoo/esg-platform-api/internal/application/auth"
	"github.com/teasoo/esg-platform-api/internal/application/esg"
	"github.com/teasoo/esg-platform-api/internal/application/otp"
	"github.com/teasoo/esg-platform-api/internal/application/usecase"
	"github.com/teasoo/esg-platform-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	AdminUC      *admin.UseCase
	ESGUC        *esg.UseCase
	OTPUC        *otp.UseCase
	CompanyUC    *usecase.CompanyUseCase
	DepartmentUC *usecase.DepartmentUseCase
	InvitationUC *usecase.InvitationUseCase
	UserUC       *usecase.UserUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Onboarding de admins de plataforma
	adminGroup := api.Group("/admin")
	adminHandler := NewAdminHandler(deps.AdminUC)
	adminGroup.Post("/register", adminHandler.Register)
	adminGroup.Post("/verify-email", adminHandler.VerifyEmail)
	adminGroup.Get("/verify-invite-token", adminHandler.VerifyInviteToken)
	adminGroup.Post("/complete-registration", adminHandler.CompleteRegistration)
	adminGroup.Post("/invite-admin", authRequired, adminHandler.InviteAdmin)
	adminGroup.Get("/users", authRequired, adminHandler.ListUsers)

	// Empresas ESG: signup público, invitaciones y ciclo de vida
	esgGroup := api.Group("/company/esg")
	esgHandler := NewESGHandler(deps.ESGUC)
	esgGroup.Post("/signup", esgHandler.Signup)
	esgGroup.Post("/invitation/:token/complete", esgHandler.CompleteInvitationSignup)

	invitationHandler := NewInvitationHandler(deps.InvitationUC)
	esgGroup.Post("/invitations",
		authRequired,
		RequireRole(entity.RoleCompanyESGAdmin, entity.RoleCompanyESGSubadmin),
		invitationHandler.Create,
	)
	esgGroup.Get("/invitations/:token", invitationHandler.GetByToken)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	esgGroup.Get("/all", authRequired, RequireRole(entity.RoleSuperAdmin), companyHandler.List)
	esgGroup.Get("/me", authRequired, companyHandler.Me)
	esgGroup.Patch("/:id/status", authRequired, RequireRole(entity.RoleSuperAdmin), companyHandler.UpdateStatus)
	esgGroup.Get("/:id", authRequired, companyHandler.GetByID)
	esgGroup.Patch("/:id",
		authRequired,
		RequireRole(entity.RoleCompanyESGAdmin, entity.RoleCompanyESGSubadmin),
		companyHandler.Update,
	)

	// Departamentos (roles de empresa)
	departments := api.Group("/departments",
		authRequired,
		RequireRole(entity.RoleCompanyESGAdmin, entity.RoleCompanyESGSubadmin),
	)
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Post("/", departmentHandler.Create)
	departments.Get("/", departmentHandler.List)
	departments.Get("/:id", departmentHandler.Get)
	departments.Patch("/:id", departmentHandler.Update)
	departments.Delete("/:id", departmentHandler.Delete)

	// OTP del usuario autenticado
	otpGroup := api.Group("/otp", authRequired)
	otpHandler := NewOTPHandler(deps.OTPUC)
	otpGroup.Post("/send", otpHandler.Send)
	otpGroup.Post("/resend", otpHandler.Resend)
	otpGroup.Post("/verify", otpHandler.Verify)

	// Perfil propio
	users := api.Group("/users", authRequired)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Patch("/me", userHandler.UpdateMe)
}
