package entity

import (
	"strings"
	"time"
)

// LeadFilters é a especificação de filtro da listagem. Todos os campos são
// opcionais e combinados com AND; campo vazio não restringe nada.
type LeadFilters struct {
	Search     string       `json:"search,omitempty"`
	Status     []LeadStatus `json:"status,omitempty"`
	Source     []LeadSource `json:"source,omitempty"`
	DateFrom   *time.Time   `json:"date_from,omitempty"`
	DateTo     *time.Time   `json:"date_to,omitempty"`
	AssignedTo string       `json:"assigned_to,omitempty"`
}

// Matches decide se o lead passa em TODOS os predicados ativos.
func (f LeadFilters) Matches(l *Lead) bool {
	if q := strings.ToLower(f.Search); q != "" {
		hit := strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Email), q) ||
			(l.Company != "" && strings.Contains(strings.ToLower(l.Company), q)) ||
			strings.Contains(l.Phone, f.Search) // telefone compara cru, sem lowercase
		if !hit {
			return false
		}
	}

	if len(f.Status) > 0 && !containsStatus(f.Status, l.Status) {
		return false
	}

	if len(f.Source) > 0 && !containsSource(f.Source, l.Source) {
		return false
	}

	// DateFrom não ganha ajuste de início de dia; DateTo é inclusivo até
	// 23:59:59.999. A assimetria é comportamento observado, não bug novo.
	if f.DateFrom != nil && l.CreatedAt.Before(*f.DateFrom) {
		return false
	}

	if f.DateTo != nil {
		end := endOfDay(*f.DateTo)
		if l.CreatedAt.After(end) {
			return false
		}
	}

	if f.AssignedTo != "" && l.AssignedTo != f.AssignedTo {
		return false
	}

	return true
}

// Apply reduz a coleção ao subconjunto que casa com o filtro,
// preservando a ordem de entrada. Função pura, nunca memoizada.
func (f LeadFilters) Apply(leads []Lead) []Lead {
	out := make([]Lead, 0, len(leads))
	for i := range leads {
		if f.Matches(&leads[i]) {
			out = append(out, leads[i])
		}
	}
	return out
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

func containsStatus(set []LeadStatus, s LeadStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsSource(set []LeadSource, s LeadSource) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
