package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// SheetName é o nome da aba única gerada na exportação.
const SheetName = "Leads"

var ErrNoSheet = errors.New("planilha sem abas")

// Cabeçalhos fixos da exportação, sempre em português.
var exportHeaders = []interface{}{
	"Nome", "Email", "Telefone", "Empresa", "Cargo",
	"Status", "Origem", "Valor", "Data Criação", "Observações",
}

// Aliases aceitos na importação: cabeçalho localizado ou canônico,
// comparados em minúsculas.
var fieldAliases = map[string][]string{
	"name":         {"nome", "name"},
	"email":        {"email"},
	"phone":        {"telefone", "phone"},
	"company":      {"empresa", "company"},
	"position":     {"cargo", "position"},
	"status":       {"status"},
	"source":       {"origem", "source"},
	"value":        {"valor", "value"},
	"observations": {"observacoes", "observações", "observations"},
	"tags":         {"tags"},
}

// Decode lê um workbook binário e converte a PRIMEIRA aba em payloads de
// criação de lead, usando a linha 1 como cabeçalho. CreatedBy fica vazio;
// o orquestrador de importação preenche com o usuário logado.
func Decode(r io.Reader) ([]entity.NewLead, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var leads []entity.NewLead
	for _, row := range rows[1:] {
		cells := make(map[string]string, len(header))
		hasData := false
		for i, key := range header {
			if i >= len(row) || key == "" {
				continue
			}
			value := strings.TrimSpace(row[i])
			if value != "" {
				hasData = true
			}
			cells[key] = value
		}
		if !hasData {
			continue
		}
		leads = append(leads, rowToLead(cells))
	}

	return leads, nil
}

func rowToLead(cells map[string]string) entity.NewLead {
	lead := entity.NewLead{
		Name:         field(cells, "name"),
		Email:        field(cells, "email"),
		Phone:        field(cells, "phone"),
		Company:      field(cells, "company"),
		Position:     field(cells, "position"),
		Observations: field(cells, "observations"),
		Status:       entity.StatusNovo,
		Source:       entity.SourceOutro,
		Tags:         []string{},
	}

	if s := strings.ToLower(field(cells, "status")); s != "" {
		lead.Status = entity.LeadStatus(s)
	}
	if s := strings.ToLower(field(cells, "source")); s != "" {
		lead.Source = entity.LeadSource(s)
	}

	// Valor que não parseia vira ausente, nunca erro de importação.
	if raw := field(cells, "value"); raw != "" {
		if v, ok := parseValue(raw); ok {
			lead.Value = &v
		}
	}

	if raw := field(cells, "tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				lead.Tags = append(lead.Tags, tag)
			}
		}
	}

	return lead
}

func field(cells map[string]string, name string) string {
	for _, alias := range fieldAliases[name] {
		if v, ok := cells[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

// parseValue aceita ponto ou vírgula decimal (planilhas pt-BR usam vírgula).
func parseValue(raw string) (float64, bool) {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, true
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
		return v, true
	}
	return 0, false
}

// Encode serializa os leads numa aba única "Leads" com os cabeçalhos fixos
// em português. Valor ausente vira 0 e texto opcional vira vazio.
func Encode(leads []entity.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, l := range leads {
		var value float64
		if l.Value != nil {
			value = *l.Value
		}

		row := []interface{}{
			l.Name,
			l.Email,
			l.Phone,
			l.Company,
			l.Position,
			string(l.Status),
			string(l.Source),
			value,
			l.CreatedAt.Format("02/01/2006"),
			l.Observations,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFileName devolve leads-AAAA-MM-DD.xlsx com a data do momento da
// exportação.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("leads-%s.xlsx", now.Format("2006-01-02"))
}
