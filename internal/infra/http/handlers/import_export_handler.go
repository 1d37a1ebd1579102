package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// 10 MB é mais que suficiente para planilhas de lead.
const maxImportSize = 10 << 20

type ImportExportHandler struct {
	Store       *usecase.LeadStore
	rateLimiter *RateLimiter
}

func NewImportExportHandler(store *usecase.LeadStore) *ImportExportHandler {
	return &ImportExportHandler{
		Store:       store,
		rateLimiter: NewRateLimiter(5, time.Minute), // 5 importações/min por IP
	}
}

type ImportResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// HandleImport recebe a planilha via multipart (campo "file") e dispara o
// pipeline de importação do store.
func (h *ImportExportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeError(w, http.StatusTooManyRequests, "Muitas importações seguidas. Aguarde um minuto.", "")
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "upload inválido: "+err.Error(), "")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "campo 'file' ausente: "+err.Error(), "")
		return
	}
	defer file.Close()

	count, err := h.Store.ImportFromFile(r.Context(), file)
	if err != nil {
		middleware.RecordImport("error")
		writeUsecaseError(w, err)
		return
	}

	middleware.RecordImport("success")
	writeJSON(w, http.StatusOK, ImportResponse{
		Imported: count,
		Message:  fmt.Sprintf("%d leads importados com sucesso", count),
	})
}

// HandleExport entrega a visão filtrada corrente como download .xlsx.
func (h *ImportExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.Store.ExportVisible()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func getClientIP(r *http.Request) string {

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
