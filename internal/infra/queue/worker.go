package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier define o contrato de notificação por email (SMTP, etc)
type Notifier interface {
	SendImportSummary(to, name string, count int) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Mensagem recebida do RabbitMQ")

			var payload LeadEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Payload inválido, mandando pra DLQ: %v", err)
				d.Nack(false, false)
				continue
			}

			if err := w.handle(payload); err != nil {
				log.Printf("⚠️ [WORKER] Falha ao processar %s: %v", payload.Event, err)
				d.Nack(false, false)
				continue
			}

			d.Ack(false)
		}
	}()

	log.Printf("👷 Worker escutando a fila %s", queueName)
	<-forever
}

func (w *Worker) handle(payload LeadEventPayload) error {
	switch payload.Event {
	case EventLeadsImported:
		if w.Notifier == nil || payload.UserEmail == "" {
			return nil
		}
		return w.Notifier.SendImportSummary(payload.UserEmail, payload.UserID, payload.Count)
	default:
		// lead.created e lead.assigned hoje só alimentam métricas/auditoria.
		log.Printf("ℹ️ [WORKER] Evento %s registrado (lead %s)", payload.Event, payload.LeadID)
		return nil
	}
}
