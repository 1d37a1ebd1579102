package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)


type LeadHandler struct {
	Store *usecase.LeadStore
}


func NewLeadHandler(store *usecase.LeadStore) *LeadHandler {
	return &LeadHandler{Store: store}
}


type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}


// HandleList devolve a visão filtrada corrente, na ordem corrente.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Visible())
}


func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, ok := h.Store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "lead não encontrado", "")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}


func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input entity.NewLead
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error(), "")
		return
	}

	if errs := usecase.ValidateNewLead(input); len(errs) > 0 {
		msg := "validation failed: "
		for _, e := range errs {
			msg += e.Field + " (" + e.Message + "), "
		}
		writeError(w, http.StatusBadRequest, msg, "VALIDATION_ERROR")
		return
	}

	lead, err := h.Store.Add(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	// Sem sessão o Add é no-op silencioso por contrato; o HTTP traduz
	// isso em 401 para o front saber que precisa logar.
	if lead == nil {
		writeError(w, http.StatusUnauthorized, "usuário não autenticado", usecase.CodeAuthRequired)
		return
	}

	middleware.RecordLeadCreated(string(lead.Source))
	writeJSON(w, http.StatusCreated, lead)
}


func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch entity.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error(), "")
		return
	}

	lead, err := h.Store.Update(r.Context(), id, patch)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}


func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.Remove(r.Context(), id); err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordLeadDeleted()
	w.WriteHeader(http.StatusNoContent)
}


type CreateInteractionRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}


func (h *LeadHandler) HandleCreateInteraction(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var req CreateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error(), "")
		return
	}

	if req.Type == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "type e description são obrigatórios", "VALIDATION_ERROR")
		return
	}

	if err := h.Store.RecordInteraction(r.Context(), leadID, req.Type, req.Description); err != nil {
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordInteraction(req.Type)
	w.WriteHeader(http.StatusNoContent)
}


func (h *LeadHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Filters())
}


func (h *LeadHandler) HandleSetFilters(w http.ResponseWriter, r *http.Request) {
	var filters entity.LeadFilters
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido: "+err.Error(), "")
		return
	}

	h.Store.SetFilters(filters)
	writeJSON(w, http.StatusOK, h.Store.Filters())
}


func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}


func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}


// writeUsecaseError traduz os códigos do usecase em status HTTP.
func writeUsecaseError(w http.ResponseWriter, err error) {
	switch usecase.ErrorCode(err) {
	case usecase.CodeAuthRequired:
		writeError(w, http.StatusUnauthorized, err.Error(), usecase.CodeAuthRequired)
	case usecase.CodeParseError:
		writeError(w, http.StatusUnprocessableEntity, err.Error(), usecase.CodeParseError)
	case usecase.CodeSyncError:
		middleware.RecordSyncError()
		writeError(w, http.StatusBadGateway, err.Error(), usecase.CodeSyncError)
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), usecase.ErrorCode(err))
	}
}
