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
	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/application/webhook"
	"github.com/jhoicas/Mercadeo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Mercadeo-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/Mercadeo-api/internal/interfaces/http"
	"github.com/jhoicas/Mercadeo-api/pkg/config"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
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

	contactRepo := postgres.NewContactRepository(pool)
	workflowRepo := postgres.NewWorkflowRepository(pool)
	keywordRepo := postgres.NewKeywordRepository(pool)
	activityRepo := postgres.NewKeywordActivityRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	numberRepo := postgres.NewPhoneNumberRepository(pool)
	suppressionRepo := postgres.NewSuppressionRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	landingRepo := postgres.NewLandingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	taskQueue, err := queue.Connect(cfg.Queue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}
	defer taskQueue.Close()

	triggerSvc := automation.NewTriggerService(
		contactRepo, workflowRepo, keywordRepo, activityRepo, groupRepo,
		taskQueue, log,
	)

	webhookSvc := webhook.NewService(
		numberRepo, contactRepo, messageRepo, suppressionRepo,
		txRunner, triggerSvc, nil, log,
	)
	// El pre-procesador STOP necesita el servicio ya construido para
	// registrar opt-outs, de ahí el cableado en dos pasos.
	webhookSvc.SetChannelProcessor(webhook.NewStopWordProcessor(webhookSvc, log))

	contactUC := usecase.NewContactUseCase(contactRepo)
	workflowUC := usecase.NewWorkflowUseCase(workflowRepo)
	keywordUC := usecase.NewKeywordUseCase(keywordRepo, activityRepo, groupRepo)
	groupUC := usecase.NewGroupUseCase(groupRepo, contactRepo)
	numberUC := usecase.NewPhoneNumberUseCase(numberRepo)
	campaignUC := usecase.NewCampaignUseCase(
		campaignRepo, groupRepo, contactRepo, messageRepo, suppressionRepo,
		taskQueue,
	)
	suppressionUC := usecase.NewSuppressionUseCase(suppressionRepo)
	landingUC := usecase.NewLandingUseCase(landingRepo)
	automationUC := usecase.NewAutomationUseCase(triggerSvc, contactRepo)

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
		Title:    "Mercadeo Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ContactUC:     contactUC,
		WorkflowUC:    workflowUC,
		KeywordUC:     keywordUC,
		GroupUC:       groupUC,
		PhoneNumberUC: numberUC,
		CampaignUC:    campaignUC,
		SuppressionUC: suppressionUC,
		LandingUC:     landingUC,
		AutomationUC:  automationUC,
		WebhookSvc:    webhookSvc,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Webhook.SigningSecret,
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
