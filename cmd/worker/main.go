package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/internal/infrastructure/dispatch"
	"github.com/jhoicas/Mercadeo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Mercadeo-api/internal/infrastructure/queue"
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
		Str("queue", cfg.Queue.Queue).
		Int("workers", cfg.Queue.Workers).
		Msg("iniciando worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
	messageRepo := postgres.NewMessageRepository(pool)

	taskQueue, err := queue.Connect(cfg.Queue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}

	// El worker también encola: un trigger-event consumido puede producir
	// ejecuciones de workflow nuevas.
	triggerSvc := automation.NewTriggerService(
		contactRepo, workflowRepo, keywordRepo, activityRepo, groupRepo,
		taskQueue, log,
	)
	invoker := dispatch.NewLogWorkflowInvoker(workflowRepo, contactRepo, log)
	sender := dispatch.NewMessageSender(messageRepo, log)
	dispatcher := dispatch.NewDispatcher(triggerSvc, invoker, sender, log)

	deliveries, err := taskQueue.Consume("mercadeo-worker")
	if err != nil {
		log.Fatal().Err(err).Msg("abrir consumo de la cola")
	}

	var wg sync.WaitGroup
	workerPool := make(chan struct{}, cfg.Queue.Workers)

	go func() {
		for msg := range deliveries {
			wg.Add(1)
			workerPool <- struct{}{}

			go func(msg amqp.Delivery) {
				defer wg.Done()
				defer func() { <-workerPool }()
				handleDelivery(ctx, dispatcher, log, msg)
			}(msg)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, drenando trabajos en curso...")
	cancel()
	if err := taskQueue.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar conexión a RabbitMQ")
	}
	wg.Wait()
	log.Info().Msg("worker detenido")
}

// handleDelivery decodifica y despacha una entrega con ack manual. Un
// payload indecodificable se descarta sin requeue (reintentarlo jamás lo
// arreglará); un error de ejecución hace Nack con requeue.
func handleDelivery(ctx context.Context, dispatcher *dispatch.Dispatcher, log *logger.Logger, msg amqp.Delivery) {
	var job automation.Job
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		log.Error().Err(err).Str("message_id", msg.MessageId).Msg("payload de trabajo inválido, se descarta")
		if err := msg.Nack(false, false); err != nil {
			log.Error().Err(err).Msg("nack de payload inválido")
		}
		return
	}

	if err := dispatcher.Handle(ctx, job); err != nil {
		log.Error().Err(err).
			Str("type", job.Type).
			Str("tenant_id", job.TenantID).
			Msg("procesar trabajo")
		if err := msg.Nack(false, !msg.Redelivered); err != nil {
			log.Error().Err(err).Msg("nack del trabajo")
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Error().Err(err).Str("type", job.Type).Msg("ack del trabajo")
	}
}
