package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Mercadeo-api/internal/application/automation"
	"github.com/jhoicas/Mercadeo-api/pkg/config"
	"github.com/jhoicas/Mercadeo-api/pkg/logger"
)

var _ automation.TaskQueue = (*RabbitMQ)(nil)

// RabbitMQ es la cola de trabajos del motor de automatización sobre
// RabbitMQ: un exchange direct durable con una cola ligada. Los trabajos se
// publican persistentes; la entrega es at-least-once y el consumidor debe
// tolerar duplicados.
type RabbitMQ struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	cfg  config.QueueConfig
	log  *logger.Logger
}

// Connect abre la conexión con reintentos (backoff exponencial) y declara
// exchange, cola y binding. RabbitMQ puede tardar en estar listo al arrancar
// el compose; no tiene sentido caerse antes.
func Connect(cfg config.QueueConfig, log *logger.Logger) (*RabbitMQ, error) {
	var conn *amqp.Connection
	var err error
	wait := time.Second
	for attempt := 1; attempt <= 5; attempt++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).
			Msg("no se pudo conectar a RabbitMQ, reintentando")
		time.Sleep(wait)
		wait *= 2
	}
	if err != nil {
		return nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declarar exchange %s: %w", cfg.Exchange, err)
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declarar cola %s: %w", cfg.Queue, err)
	}
	if err := ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ligar cola %s: %w", cfg.Queue, err)
	}

	log.Info().Str("exchange", cfg.Exchange).Str("queue", cfg.Queue).
		Msg("conexión a RabbitMQ establecida")
	return &RabbitMQ{conn: conn, ch: ch, cfg: cfg, log: log}, nil
}

// Enqueue publica un trabajo persistente en el exchange. Abre un canal por
// publicación: los canales amqp no son seguros para uso concurrente.
func (r *RabbitMQ) Enqueue(ctx context.Context, job automation.Job) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("abrir canal de publicación: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("serializar trabajo: %w", err)
	}
	err = ch.PublishWithContext(ctx, r.cfg.Exchange, r.cfg.RoutingKey, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar trabajo %s: %w", job.Type, err)
	}
	r.log.Debug().Str("type", job.Type).Str("tenant_id", job.TenantID).Msg("trabajo encolado")
	return nil
}

// Consume abre el stream de entregas de la cola con ack manual: el worker
// confirma cada trabajo al terminarlo (o lo reencola si falla).
func (r *RabbitMQ) Consume(consumer string) (<-chan amqp.Delivery, error) {
	if err := r.ch.Qos(r.cfg.Prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("configurar prefetch: %w", err)
	}
	msgs, err := r.ch.Consume(r.cfg.Queue, consumer, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consumir cola %s: %w", r.cfg.Queue, err)
	}
	return msgs, nil
}

// Close cierra canal y conexión.
func (r *RabbitMQ) Close() error {
	if r.ch != nil {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("cerrar canal: %w", err)
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("cerrar conexión: %w", err)
		}
	}
	return nil
}
