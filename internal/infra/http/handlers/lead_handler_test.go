package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/identity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// stubAdapter é um SyncAdapter em memória, suficiente para exercitar os
// handlers sem banco.
type stubAdapter struct {
	leads     []entity.Lead
	createErr error
	nextID    int
}

func (s *stubAdapter) FetchAll(ctx context.Context) ([]entity.Lead, error) {
	out := make([]entity.Lead, len(s.leads))
	copy(out, s.leads)
	return out, nil
}

func (s *stubAdapter) Create(ctx context.Context, input entity.NewLead) (*entity.Lead, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	lead := entity.Lead{
		ID:        fmt.Sprintf("lead-%d", s.nextID),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Status:    input.Status,
		Source:    input.Source,
		CreatedBy: input.CreatedBy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Tags:      input.Tags,
	}
	s.leads = append([]entity.Lead{lead}, s.leads...)
	return &lead, nil
}

func (s *stubAdapter) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	return nil, errors.New("não implementado no stub")
}

func (s *stubAdapter) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubAdapter) CreateInteraction(ctx context.Context, leadID, userID, interactionType, description string) error {
	return nil
}

func newTestStore(adapter *stubAdapter) (*usecase.LeadStore, *identity.Provider) {
	provider := identity.NewProvider()
	store := usecase.NewLeadStore(adapter, provider, nil)
	return store, provider
}

func TestHandleCreateSemSessaoDevolve401(t *testing.T) {
	store, _ := newTestStore(&stubAdapter{})
	handler := NewLeadHandler(store)

	body, _ := json.Marshal(entity.NewLead{Name: "Ana", Email: "a@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleCreateValidaEntrada(t *testing.T) {
	store, provider := newTestStore(&stubAdapter{})
	provider.SignIn(entity.Identity{ID: "u1"})
	handler := NewLeadHandler(store)

	// Sem email
	body, _ := json.Marshal(entity.NewLead{Name: "Ana"})
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
}

func TestHandleCreateESuaListagem(t *testing.T) {
	store, provider := newTestStore(&stubAdapter{})
	provider.SignIn(entity.Identity{ID: "u1"})
	handler := NewLeadHandler(store)

	body, _ := json.Marshal(entity.NewLead{
		Name: "Ana", Email: "a@x.com", Status: entity.StatusNovo, Source: entity.SourceSite,
	})
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/leads", nil)
	listRec := httptest.NewRecorder()
	handler.HandleList(listRec, listReq)

	var leads []entity.Lead
	json.Unmarshal(listRec.Body.Bytes(), &leads)
	assert.Len(t, leads, 1)
	assert.Equal(t, "Ana", leads[0].Name)
	assert.Equal(t, "u1", leads[0].CreatedBy)
}

func TestHandleCreateErroRemotoVira502(t *testing.T) {
	store, provider := newTestStore(&stubAdapter{createErr: errors.New("servidor fora")})
	provider.SignIn(entity.Identity{ID: "u1"})
	handler := NewLeadHandler(store)

	body, _ := json.Marshal(entity.NewLead{Name: "Ana", Email: "a@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "servidor fora", resp.Error)
}

func TestHandleSetFilters(t *testing.T) {
	store, _ := newTestStore(&stubAdapter{})
	handler := NewLeadHandler(store)

	body := `{"status":["fechado"],"search":"maria"}`
	req := httptest.NewRequest(http.MethodPut, "/filters", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleSetFilters(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	filters := store.Filters()
	assert.Equal(t, "maria", filters.Search)
	assert.Equal(t, []entity.LeadStatus{entity.StatusFechado}, filters.Status)
}

func TestHandleExportEntregaDownload(t *testing.T) {
	store, _ := newTestStore(&stubAdapter{})
	handler := NewImportExportHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/leads/export", nil)
	rec := httptest.NewRecorder()

	handler.HandleExport(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leads-")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHandleImportSemArquivoDevolve400(t *testing.T) {
	store, provider := newTestStore(&stubAdapter{})
	provider.SignIn(entity.Identity{ID: "u1"})
	handler := NewImportExportHandler(store)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("outro_campo", "x")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/leads/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	handler.HandleImport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionRoundTrip(t *testing.T) {
	provider := identity.NewProvider()
	handler := NewSessionHandler(provider)

	// login
	body := `{"id":"u1","name":"Ana","email":"ana@crm.com"}`
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleSignIn(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// sessão corrente
	rec = httptest.NewRecorder()
	handler.HandleCurrent(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// logout
	rec = httptest.NewRecorder()
	handler.HandleSignOut(rec, httptest.NewRequest(http.MethodDelete, "/session", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	handler.HandleCurrent(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
