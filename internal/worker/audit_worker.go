package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Atharva2908/task-manager/internal/backend"
	"github.com/Atharva2908/task-manager/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditSink persists an audit record; in production this is the backend
// client writing to the audit-log endpoint with the service token.
type AuditSink interface {
	CreateAuditLog(ctx context.Context, token string, audit *entity.TaskAudit) error
}

// QueueConsumer is satisfied by the RabbitMQ client.
type QueueConsumer interface {
	Channel() *amqp.Channel
	QueueName() string
}

// AuditWorker drains the audit queue and forwards each mutation record to
// the backend. Transient sink failures are requeued; malformed messages
// and records the backend rejects outright are dropped.
type AuditWorker struct {
	queue        QueueConsumer
	sink         AuditSink
	serviceToken string
}

func NewAuditWorker(queue QueueConsumer, sink AuditSink, serviceToken string) *AuditWorker {
	return &AuditWorker{
		queue:        queue,
		sink:         sink,
		serviceToken: serviceToken,
	}
}

func (w *AuditWorker) Start(ctx context.Context) {
	msgs, err := w.queue.Channel().Consume(
		w.queue.QueueName(), // queue
		"audit_worker",      // consumer tag
		false,               // auto-ack
		false,               // exclusive
		false,               // no-local
		false,               // no-wait
		nil,                 // args
	)
	if err != nil {
		log.Printf("failed to start audit consumer: %v", err)
		return
	}

	log.Println("audit worker started, waiting for messages")

	for {
		select {
		case <-ctx.Done():
			log.Println("audit worker stopped")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("audit message channel closed")
				return
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *AuditWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var auditMsg entity.AuditMessage
	if err := json.Unmarshal(msg.Body, &auditMsg); err != nil {
		log.Printf("failed to parse audit message: %v", err)
		msg.Nack(false, false) // poison message, do not requeue
		return
	}

	audit, err := convertToTaskAudit(&auditMsg)
	if err != nil {
		log.Printf("failed to convert audit message: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := w.sink.CreateAuditLog(ctx, w.serviceToken, audit); err != nil {
		log.Printf("failed to forward audit record: %v", err)
		msg.Nack(false, requeueable(err))
		return
	}

	msg.Ack(false)
	log.Printf("audit record forwarded: %s task %s", audit.Action, audit.EntityID)
}

// requeueable reports whether a sink failure is worth redelivering. The
// backend rejecting the record (any 4xx, including an invalid service
// token) is permanent and would loop forever if requeued; network errors
// and 5xx responses are transient.
func requeueable(err error) bool {
	if errors.Is(err, entity.ErrUnauthorized) {
		return false
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}

func convertToTaskAudit(msg *entity.AuditMessage) (*entity.TaskAudit, error) {
	var oldValuesJSON, newValuesJSON, changesJSON *string

	if msg.OldValues != nil {
		data, err := json.Marshal(msg.OldValues)
		if err != nil {
			return nil, err
		}
		s := string(data)
		oldValuesJSON = &s
	}

	if msg.NewValues != nil {
		data, err := json.Marshal(msg.NewValues)
		if err != nil {
			return nil, err
		}
		s := string(data)
		newValuesJSON = &s
	}

	if msg.Changes != nil {
		data, err := json.Marshal(msg.Changes)
		if err != nil {
			return nil, err
		}
		s := string(data)
		changesJSON = &s
	}

	return &entity.TaskAudit{
		UserID:     msg.UserID,
		Action:     msg.Action,
		EntityType: "task",
		EntityID:   msg.EntityID,
		OldValues:  oldValuesJSON,
		NewValues:  newValuesJSON,
		Changes:    changesJSON,
		ChangedAt:  msg.Timestamp,
	}, nil
}
