package usecase

import (
	"bytes"
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/spreadsheet"
)

// ImportFromFile importa uma planilha inteira: lê os bytes, decodifica as
// linhas e dispara UMA criação remota por linha, todas em paralelo, sem teto
// de concorrência e sem rollback. Se qualquer linha falhar o import retorna
// erro, mas as linhas que já criaram lead no servidor ficam criadas — ver
// DESIGN.md sobre a não-atomicidade. No sucesso, recarrega a coleção inteira.
func (s *LeadStore) ImportFromFile(ctx context.Context, file io.Reader) (int, error) {
	user := s.identity.Current()
	if user == nil {
		return 0, ErrAuthRequired()
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return 0, ErrRead(err)
	}

	rows, err := spreadsheet.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, ErrParse(err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, row := range rows {
		input := row
		input.CreatedBy = user.ID

		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.adapter.Create(ctx, input); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return 0, ErrSync(firstErr)
	}

	if err := s.Load(ctx); err != nil {
		return 0, err
	}

	log.Printf("📥 importação concluída: %d leads criados por %s", len(rows), user.ID)

	s.publish(ctx, queue.LeadEventPayload{
		Event:      queue.EventLeadsImported,
		UserID:     user.ID,
		UserEmail:  user.Email,
		Count:      len(rows),
		OccurredAt: time.Now(),
	})

	return len(rows), nil
}

// ExportVisible serializa exatamente a visão filtrada corrente, na ordem
// corrente. Devolve o nome do arquivo (leads-AAAA-MM-DD.xlsx) e os bytes;
// entregar como download é papel da camada HTTP.
func (s *LeadStore) ExportVisible() (string, []byte, error) {
	view := s.Visible()

	data, err := spreadsheet.Encode(view)
	if err != nil {
		return "", nil, err
	}

	return spreadsheet.ExportFileName(time.Now()), data, nil
}
