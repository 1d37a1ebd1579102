package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestProviderComecaDeslogado(t *testing.T) {
	p := NewProvider()
	assert.Nil(t, p.Current())
}

func TestSignInNotificaInscritos(t *testing.T) {
	p := NewProvider()

	var seen []*entity.Identity
	p.OnChange(func(user *entity.Identity) {
		seen = append(seen, user)
	})

	p.SignIn(entity.Identity{ID: "u1", Name: "Ana"})
	p.SignOut()

	assert.Len(t, seen, 2)
	assert.Equal(t, "u1", seen[0].ID)
	assert.Nil(t, seen[1])
	assert.Nil(t, p.Current())
}

// TestCurrentDevolveCopia - mexer no retorno não vaza para a sessão guardada
func TestCurrentDevolveCopia(t *testing.T) {
	p := NewProvider()
	p.SignIn(entity.Identity{ID: "u1", Name: "Ana"})

	got := p.Current()
	got.Name = "Hackeada"

	assert.Equal(t, "Ana", p.Current().Name)
}
