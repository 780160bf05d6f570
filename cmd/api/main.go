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

	"github.com/jhoicas/businessos-api/internal/application/auth"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
	infraai "github.com/jhoicas/businessos-api/internal/infrastructure/ai"
	"github.com/jhoicas/businessos-api/internal/infrastructure/cache"
	"github.com/jhoicas/businessos-api/internal/infrastructure/functions"
	infrapdf "github.com/jhoicas/businessos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/businessos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/businessos-api/internal/interfaces/http"
	"github.com/jhoicas/businessos-api/pkg/config"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	coachingRepo := postgres.NewCoachingRepository(pool)
	formRepo := postgres.NewFormRepository(pool)
	financeRepo := postgres.NewFinanceRepository(pool)
	usageRepo := postgres.NewUsageRepository(pool)
	prefsRepo := postgres.NewPreferencesRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de consultas por (principal, empresa); se purga en switch/logout y mutaciones.
	queryCache := cache.New(cfg.Cache.Size, cfg.Cache.TTL, log)

	fnClient := functions.NewClient(cfg.Functions, log)
	metricsProvider := functions.NewFinanceMetrics(fnClient)
	aiGateway := infraai.NewGateway(fnClient)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	roleUC := usecase.NewRoleResolverUseCase(membershipRepo, coachingRepo, queryCache, log)
	moduleSvc := usecase.NewModuleService(companyRepo, roleUC, queryCache, log)
	limitUC := usecase.NewLimitUseCase(usageRepo, roleUC, usecase.DefaultUsageTimeout, log)
	companyUC := usecase.NewCompanyUseCase(companyRepo, membershipRepo, moduleSvc, roleUC, txRunner, queryCache)
	memberUC := usecase.NewMemberUseCase(userRepo, membershipRepo, roleUC, queryCache, log)
	formUC := usecase.NewFormUseCase(formRepo, roleUC, queryCache)
	financeUC := usecase.NewFinanceUseCase(companyRepo, financeRepo, metricsProvider, pdfGenerator, roleUC, queryCache, log)
	frameworkUC := usecase.NewFrameworkUseCase(financeRepo, roleUC)
	coachingUC := usecase.NewCoachingUseCase(coachingRepo, roleUC, queryCache)
	prefsUC := usecase.NewPreferencesUseCase(prefsRepo)
	aiUC := usecase.NewAIUseCase(aiGateway, log)

	authUC := auth.NewAuthUseCase(userRepo, membershipRepo, queryCache, auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		ExpMinutes:      cfg.JWT.Expiration,
		RefreshExpHours: cfg.JWT.RefreshExpiration,
		Issuer:          cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "BusinessOS API",
		}))
	} else {
		log.Info().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "cache_entries": queryCache.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		RoleUC:        roleUC,
		ModuleService: moduleSvc,
		LimitUC:       limitUC,
		CompanyUC:     companyUC,
		MemberUC:      memberUC,
		FormUC:        formUC,
		FinanceUC:     financeUC,
		FrameworkUC:   frameworkUC,
		CoachingUC:    coachingUC,
		PreferencesUC: prefsUC,
		AIUC:          aiUC,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
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
	queryCache.Purge()

	log.Info().Msg("aplicación detenida")
}
