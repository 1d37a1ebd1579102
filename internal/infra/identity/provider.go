package identity

import (
	"sync"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Provider guarda a sessão corrente (uma por processo, modelo de cliente
// único) e avisa os inscritos a cada troca. nil = deslogado.
type Provider struct {
	mu        sync.RWMutex
	current   *entity.Identity
	listeners []func(*entity.Identity)
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Current() *entity.Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current == nil {
		return nil
	}
	user := *p.current
	return &user
}

// OnChange registra um callback de troca de sessão. Os callbacks rodam
// sincronamente no SignIn/SignOut, na ordem de inscrição.
func (p *Provider) OnChange(fn func(*entity.Identity)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

func (p *Provider) SignIn(user entity.Identity) {
	p.mu.Lock()
	p.current = &user
	listeners := append([]func(*entity.Identity){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(&user)
	}
}

func (p *Provider) SignOut() {
	p.mu.Lock()
	p.current = nil
	listeners := append([]func(*entity.Identity){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}
