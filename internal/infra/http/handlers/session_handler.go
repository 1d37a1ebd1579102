package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/identity"
)

// SessionHandler materializa a fronteira de identidade: logar e deslogar
// trocam o usuário corrente, e o store reage via assinatura (login recarrega
// a coleção, logout limpa).
type SessionHandler struct {
	Provider *identity.Provider
}

func NewSessionHandler(provider *identity.Provider) *SessionHandler {
	return &SessionHandler{Provider: provider}
}

func (h *SessionHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var user entity.Identity
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error(), "")
		return
	}

	if user.ID == "" {
		writeError(w, http.StatusBadRequest, "id é obrigatório", "VALIDATION_ERROR")
		return
	}

	h.Provider.SignIn(user)
	writeJSON(w, http.StatusOK, user)
}

func (h *SessionHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	h.Provider.SignOut()
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	user := h.Provider.Current()
	if user == nil {
		writeError(w, http.StatusUnauthorized, "nenhuma sessão ativa", "")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
