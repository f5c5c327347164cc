package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/teasoo/esg-platform-api/internal/application/admin"
	"github.com/teasoo/esg-platform-api/internal/application/auth"
	"github.com/teasoo/esg-platform-api/internal/application/esg"
	"github.com/teasoo/esg-platform-api/internal/application/otp"
	"github.com/teasoo/esg-platform-api/internal/application/usecase"
	"github.com/teasoo/esg-platform-api/internal/infrastructure/mailer"
	"github.com/teasoo/esg-platform-api/internal/infrastructure/postgres"
	httpRouter "github.com/teasoo/esg-platform-api/internal/interfaces/http"
	"github.com/teasoo/esg-platform-api/pkg/config"
	"github.com/teasoo/esg-platform-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	refreshRepo := postgres.NewRefreshTokenRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	brevo := mailer.NewBrevo(cfg.Mail.BrevoAPIKey, cfg.Mail.SenderEmail, log)

	otpUC := otp.NewUseCase(userRepo, brevo, log, cfg.Mail.TemplateOTP)
	authUC := auth.NewUseCase(userRepo, roleRepo, refreshRepo, otpUC, brevo, log, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Mail.TemplateWelcome)
	adminUC := admin.NewUseCase(userRepo, roleRepo, otpUC, brevo, log, admin.Config{
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		FrontendURL:  cfg.Mail.FrontendURL,
		WelcomeTmpl:  cfg.Mail.TemplateWelcome,
		InviteTmpl:   cfg.Mail.TemplateInvite,
		CompleteTmpl: cfg.Mail.TemplateCompleted,
	})
	esgUC := esg.NewUseCase(txRunner, userRepo, companyRepo, roleRepo, invitationRepo, brevo, log, cfg.Mail.TemplateWelcome)
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, brevo, log, cfg.Mail.TemplateCompleted)
	departmentUC := usecase.NewDepartmentUseCase(departmentRepo, userRepo)
	invitationUC := usecase.NewInvitationUseCase(invitationRepo, userRepo, roleRepo, brevo, log, cfg.Mail.FrontendURL, cfg.Mail.TemplateInvite)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ESG Platform API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		AdminUC:      adminUC,
		ESGUC:        esgUC,
		OTPUC:        otpUC,
		CompanyUC:    companyUC,
		DepartmentUC: departmentUC,
		InvitationUC: invitationUC,
		UserUC:       userUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
