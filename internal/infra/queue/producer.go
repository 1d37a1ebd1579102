package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)


const (
	EventLeadCreated   = "lead.created"
	EventLeadAssigned  = "lead.assigned"
	EventLeadsImported = "leads.imported"
)


// LeadEventPayload é a mensagem publicada a cada mutação relevante do CRM.
// Nem todo campo se aplica a todo evento: Count só existe em leads.imported,
// AssignedTo só em lead.assigned.
type LeadEventPayload struct {
	Event    string `json:"event"`
	LeadID   string `json:"lead_id,omitempty"`
	LeadName string `json:"lead_name,omitempty"`

	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email,omitempty"`

	AssignedTo string `json:"assigned_to,omitempty"`
	Count      int    `json:"count,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}


func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}


	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.crm
		RoutingKey,   // k.lead-event
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
