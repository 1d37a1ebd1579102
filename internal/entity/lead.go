package entity

import (
	"time"
)

type LeadStatus string

const (
	StatusNovo        LeadStatus = "novo"
	StatusContatado   LeadStatus = "contatado"
	StatusQualificado LeadStatus = "qualificado"
	StatusProposta    LeadStatus = "proposta"
	StatusNegociacao  LeadStatus = "negociacao"
	StatusFechado     LeadStatus = "fechado"
	StatusPerdido     LeadStatus = "perdido"
)

type LeadSource string

const (
	SourceSite         LeadSource = "site"
	SourceIndicacao    LeadSource = "indicacao"
	SourceRedesSociais LeadSource = "redes_sociais"
	SourceEvento       LeadSource = "evento"
	SourceOutro        LeadSource = "outro"
)

// AllStatuses lista os status válidos de um lead, na ordem do funil.
func AllStatuses() []LeadStatus {
	return []LeadStatus{
		StatusNovo, StatusContatado, StatusQualificado,
		StatusProposta, StatusNegociacao, StatusFechado, StatusPerdido,
	}
}

func AllSources() []LeadSource {
	return []LeadSource{
		SourceSite, SourceIndicacao, SourceRedesSociais, SourceEvento, SourceOutro,
	}
}

func (s LeadStatus) Valid() bool {
	for _, v := range AllStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

func (s LeadSource) Valid() bool {
	for _, v := range AllSources() {
		if s == v {
			return true
		}
	}
	return false
}

// Interaction é um registro de contato preso ao lead pai.
// Não é endereçável fora do lead: o servidor devolve sempre o lead inteiro.
type Interaction struct {
	Type        string    `json:"type"` // ligacao, email, reuniao, nota
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedBy   string    `json:"created_by"`
}

type Lead struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Company      string        `json:"company,omitempty"`
	Position     string        `json:"position,omitempty"`
	Status       LeadStatus    `json:"status"`
	Source       LeadSource    `json:"source"`
	Value        *float64      `json:"value,omitempty"`
	Observations string        `json:"observations,omitempty"`
	Tags         []string      `json:"tags"`
	CreatedBy    string        `json:"created_by"`
	AssignedTo   string        `json:"assigned_to,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Interactions []Interaction `json:"interactions"`
}

// NewLead é o payload de criação. ID, timestamps e interações são
// atribuídos pelo servidor, nunca pelo cliente.
type NewLead struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company,omitempty"`
	Position     string     `json:"position,omitempty"`
	Status       LeadStatus `json:"status"`
	Source       LeadSource `json:"source"`
	Value        *float64   `json:"value,omitempty"`
	Observations string     `json:"observations,omitempty"`
	Tags         []string   `json:"tags"`
	CreatedBy    string     `json:"created_by"`
	AssignedTo   string     `json:"assigned_to,omitempty"`
}

// LeadPatch é uma atualização parcial: campo nil = não mexe.
type LeadPatch struct {
	Name         *string     `json:"name,omitempty"`
	Email        *string     `json:"email,omitempty"`
	Phone        *string     `json:"phone,omitempty"`
	Company      *string     `json:"company,omitempty"`
	Position     *string     `json:"position,omitempty"`
	Status       *LeadStatus `json:"status,omitempty"`
	Source       *LeadSource `json:"source,omitempty"`
	Value        *float64    `json:"value,omitempty"`
	Observations *string     `json:"observations,omitempty"`
	Tags         *[]string   `json:"tags,omitempty"`
	AssignedTo   *string     `json:"assigned_to,omitempty"`
}

// Identity é o usuário autenticado fornecido pelo provedor externo.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
