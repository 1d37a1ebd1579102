package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// SyncAdapter é a fronteira de persistência remota. Toda mutação do store
// passa por aqui; o estado local só muda com o que o adapter devolver.
type SyncAdapter interface {
	FetchAll(ctx context.Context) ([]entity.Lead, error)
	Create(ctx context.Context, input entity.NewLead) (*entity.Lead, error)
	Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error)
	Delete(ctx context.Context, id string) error
	CreateInteraction(ctx context.Context, leadID, userID, interactionType, description string) error
}

// IdentityProvider expõe o usuário logado (nil = deslogado) e notifica
// mudanças de sessão. O store se inscreve para recarregar/limpar a coleção.
type IdentityProvider interface {
	Current() *entity.Identity
	OnChange(fn func(*entity.Identity))
}

type QueueProducerInterface interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}
