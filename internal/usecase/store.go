package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// LeadStore é a fonte única de verdade do cliente sobre a coleção de leads.
// Toda mutação é delegada ao SyncAdapter e o estado local só é tocado com a
// resposta do servidor — nunca com o payload enviado. A janela de divergência
// se resume ao tempo de voo da chamada remota.
type LeadStore struct {
	mu      sync.RWMutex
	leads   []entity.Lead
	filters entity.LeadFilters

	adapter  SyncAdapter
	identity IdentityProvider
	events   QueueProducerInterface // opcional, nil desliga a publicação
}

func NewLeadStore(adapter SyncAdapter, identity IdentityProvider, events QueueProducerInterface) *LeadStore {
	s := &LeadStore{
		adapter:  adapter,
		identity: identity,
		events:   events,
	}

	// Única recarga automática do sistema: troca de sessão.
	// Login → busca tudo; logout → coleção vazia.
	identity.OnChange(func(user *entity.Identity) {
		if err := s.Load(context.Background()); err != nil {
			log.Printf("⚠️ falha ao recarregar leads após troca de sessão: %v", err)
		}
	})

	return s
}

// Load substitui a coleção inteira pelo estado remoto atual.
// Sem usuário logado, limpa para vazio e não toca na rede.
func (s *LeadStore) Load(ctx context.Context) error {
	if s.identity.Current() == nil {
		s.mu.Lock()
		s.leads = nil
		s.mu.Unlock()
		return nil
	}

	leads, err := s.adapter.FetchAll(ctx)
	if err != nil {
		return ErrSync(err)
	}

	s.mu.Lock()
	s.leads = leads
	s.mu.Unlock()
	return nil
}

// Add cria um lead no servidor e insere a resposta no TOPO da coleção
// (ordem mais-recente-primeiro). Sem sessão é no-op silencioso.
func (s *LeadStore) Add(ctx context.Context, input entity.NewLead) (*entity.Lead, error) {
	user := s.identity.Current()
	if user == nil {
		return nil, nil
	}

	if input.CreatedBy == "" {
		input.CreatedBy = user.ID
	}

	created, err := s.adapter.Create(ctx, input)
	if err != nil {
		return nil, ErrSync(err)
	}

	s.mu.Lock()
	s.leads = append([]entity.Lead{*created}, s.leads...)
	s.mu.Unlock()

	s.publish(ctx, queue.LeadEventPayload{
		Event:      queue.EventLeadCreated,
		LeadID:     created.ID,
		LeadName:   created.Name,
		UserID:     user.ID,
		UserEmail:  user.Email,
		OccurredAt: time.Now(),
	})

	return created, nil
}

// Update delega a atualização parcial e troca o registro local pelo que o
// servidor devolveu. Em caso de erro nada muda localmente.
func (s *LeadStore) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	updated, err := s.adapter.Update(ctx, id, patch)
	if err != nil {
		return nil, ErrSync(err)
	}

	s.mu.Lock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	if patch.AssignedTo != nil && *patch.AssignedTo != "" {
		var userID string
		if user := s.identity.Current(); user != nil {
			userID = user.ID
		}
		s.publish(ctx, queue.LeadEventPayload{
			Event:      queue.EventLeadAssigned,
			LeadID:     updated.ID,
			LeadName:   updated.Name,
			UserID:     userID,
			AssignedTo: *patch.AssignedTo,
			OccurredAt: time.Now(),
		})
	}

	return updated, nil
}

// Remove apaga no servidor e só então tira da coleção local.
func (s *LeadStore) Remove(ctx context.Context, id string) error {
	if err := s.adapter.Delete(ctx, id); err != nil {
		return ErrSync(err)
	}

	s.mu.Lock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// RecordInteraction registra a interação e recarrega a coleção INTEIRA.
// O lead pai (com a sequência de interações) é refeito pelo servidor;
// nunca fazemos merge incremental aqui. Sem sessão é no-op silencioso.
func (s *LeadStore) RecordInteraction(ctx context.Context, leadID, interactionType, description string) error {
	user := s.identity.Current()
	if user == nil {
		return nil
	}

	if err := s.adapter.CreateInteraction(ctx, leadID, user.ID, interactionType, description); err != nil {
		return ErrSync(err)
	}

	return s.Load(ctx)
}

// Get é leitura puramente local, sem rede e sem efeito colateral.
func (s *LeadStore) Get(id string) (*entity.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.leads {
		if s.leads[i].ID == id {
			l := s.leads[i]
			return &l, true
		}
	}
	return nil, false
}

// All devolve um snapshot da coleção completa na ordem corrente.
func (s *LeadStore) All() []entity.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Visible recalcula a visão filtrada a cada chamada — sem cache, para
// refletir sempre o último estado da coleção e do filtro. Nunca reordena.
func (s *LeadStore) Visible() []entity.Lead {
	s.mu.RLock()
	leads := make([]entity.Lead, len(s.leads))
	copy(leads, s.leads)
	filters := s.filters
	s.mu.RUnlock()

	return filters.Apply(leads)
}

func (s *LeadStore) SetFilters(f entity.LeadFilters) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

func (s *LeadStore) Filters() entity.LeadFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// publish é melhor-esforço: fila fora do ar não pode derrubar a operação
// que já foi confirmada pelo servidor.
func (s *LeadStore) publish(ctx context.Context, payload queue.LeadEventPayload) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLeadEvent(ctx, payload); err != nil {
		log.Printf("⚠️ evento %s não publicado: %v", payload.Event, err)
	}
}
