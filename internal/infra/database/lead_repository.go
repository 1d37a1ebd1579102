package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// LeadRepository é a implementação Postgres do SyncAdapter: o "remoto"
// autoritativo que o LeadStore espelha. IDs e timestamps nascem aqui,
// nunca no cliente.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, email, phone, company, position, status, source,
	value, observations, tags, created_by, assigned_to, created_at, updated_at
`

// FetchAll devolve a coleção inteira, mais-recente-primeiro, já com as
// interações de cada lead penduradas.
func (r *LeadRepository) FetchAll(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	index := map[string]int{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		index[lead.ID] = len(leads)
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(leads) == 0 {
		return leads, nil
	}

	interactions, err := r.DB.QueryContext(ctx, `
		SELECT lead_id, type, description, date, created_by
		FROM interactions
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer interactions.Close()

	for interactions.Next() {
		var leadID string
		var it entity.Interaction
		if err := interactions.Scan(&leadID, &it.Type, &it.Description, &it.Date, &it.CreatedBy); err != nil {
			return nil, err
		}
		if i, ok := index[leadID]; ok {
			leads[i].Interactions = append(leads[i].Interactions, it)
		}
	}

	return leads, interactions.Err()
}

func (r *LeadRepository) Create(ctx context.Context, input entity.NewLead) (*entity.Lead, error) {
	query := `
		INSERT INTO leads
			(id, name, email, phone, company, position, status, source,
			 value, observations, tags, created_by, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING ` + leadColumns

	id := uuid.New().String()

	row := r.DB.QueryRowContext(ctx, query,
		id,
		input.Name,
		input.Email,
		input.Phone,
		input.Company,
		input.Position,
		string(input.Status),
		string(input.Source),
		input.Value,
		input.Observations,
		pq.Array(input.Tags),
		input.CreatedBy,
		nullString(input.AssignedTo),
	)

	lead, err := scanLead(row)
	if err != nil {
		log.Printf("Erro crítico no banco: %v", err)
		return nil, err
	}
	return lead, nil
}

// Update monta o SET só com os campos presentes no patch. updated_at sempre
// avança, mantendo a monotonicidade dos timestamps.
func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Company != nil {
		add("company", *patch.Company)
	}
	if patch.Position != nil {
		add("position", *patch.Position)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Source != nil {
		add("source", string(*patch.Source))
	}
	if patch.Value != nil {
		add("value", *patch.Value)
	}
	if patch.Observations != nil {
		add("observations", *patch.Observations)
	}
	if patch.Tags != nil {
		add("tags", pq.Array(*patch.Tags))
	}
	if patch.AssignedTo != nil {
		add("assigned_to", nullString(*patch.AssignedTo))
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE leads SET %s WHERE id = $%d RETURNING `+leadColumns,
		strings.Join(sets, ", "), len(args),
	)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lead %s não encontrado", id)
	}
	if err != nil {
		return nil, err
	}

	// O registro devolvido é o autoritativo, então carrega as interações junto.
	if err := r.loadInteractions(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM interactions WHERE lead_id = $1`, id); err != nil {
		return err
	}

	result, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("lead %s não encontrado", id)
	}
	return nil
}

func (r *LeadRepository) CreateInteraction(ctx context.Context, leadID, userID, interactionType, description string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO interactions (lead_id, type, description, date, created_by)
		VALUES ($1, $2, $3, NOW(), $4)
	`, leadID, interactionType, description, userID)
	return err
}

func (r *LeadRepository) loadInteractions(ctx context.Context, lead *entity.Lead) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT type, description, date, created_by
		FROM interactions
		WHERE lead_id = $1
		ORDER BY date ASC
	`, lead.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.Interaction
		if err := rows.Scan(&it.Type, &it.Description, &it.Date, &it.CreatedBy); err != nil {
			return err
		}
		lead.Interactions = append(lead.Interactions, it)
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row scanner) (*entity.Lead, error) {
	var (
		lead       entity.Lead
		value      sql.NullFloat64
		assignedTo sql.NullString
		tags       []string
	)

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Position,
		&lead.Status,
		&lead.Source,
		&value,
		&lead.Observations,
		pq.Array(&tags),
		&lead.CreatedBy,
		&assignedTo,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if value.Valid {
		lead.Value = &value.Float64
	}
	lead.AssignedTo = assignedTo.String
	if tags == nil {
		tags = []string{}
	}
	lead.Tags = tags

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
