package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============ TESTES DO PAYLOAD DE EVENTO ============

// TestLeadEventPayloadMarshalling - o payload serializa e volta inteiro
func TestLeadEventPayloadMarshalling(t *testing.T) {
	payload := LeadEventPayload{
		Event:      EventLeadCreated,
		LeadID:     "lead-123",
		LeadName:   "Maria Silva",
		UserID:     "user-1",
		UserEmail:  "ana@crm.com",
		OccurredAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.NotEmpty(t, body)

	var received LeadEventPayload
	err = json.Unmarshal(body, &received)
	assert.NoError(t, err)

	assert.Equal(t, EventLeadCreated, received.Event)
	assert.Equal(t, "lead-123", received.LeadID)
	assert.Equal(t, "Maria Silva", received.LeadName)
	assert.Equal(t, "user-1", received.UserID)
	assert.Equal(t, "ana@crm.com", received.UserEmail)
	assert.True(t, payload.OccurredAt.Equal(received.OccurredAt))
}

// TestLeadEventPayloadCamposOpcionais - campos que não se aplicam ao evento
// somem do JSON em vez de irem vazios
func TestLeadEventPayloadCamposOpcionais(t *testing.T) {
	payload := LeadEventPayload{
		Event:      EventLeadsImported,
		UserID:     "user-1",
		UserEmail:  "ana@crm.com",
		Count:      42,
		OccurredAt: time.Now(),
	}

	body, _ := json.Marshal(payload)

	var data map[string]interface{}
	json.Unmarshal(body, &data)

	assert.Equal(t, float64(42), data["count"])
	assert.NotContains(t, data, "lead_id")
	assert.NotContains(t, data, "assigned_to")
}

// TestLeadEventPayloadTodosOsEventos - cada tipo de evento sobrevive ao round-trip
func TestLeadEventPayloadTodosOsEventos(t *testing.T) {
	events := []string{EventLeadCreated, EventLeadAssigned, EventLeadsImported}

	for _, event := range events {
		payload := LeadEventPayload{
			Event:      event,
			UserID:     "user-1",
			OccurredAt: time.Now(),
		}

		body, err := json.Marshal(payload)
		assert.NoError(t, err)

		var received LeadEventPayload
		json.Unmarshal(body, &received)
		assert.Equal(t, event, received.Event)
	}
}
