package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lelegrill/comanda/internal/domain"
)

type MensagemRepo struct{ db *Client }

func NewMensagemRepo(db *Client) *MensagemRepo { return &MensagemRepo{db: db} }

const tabelaMensagens = "mensagens"

func (r *MensagemRepo) ListSince(ctx context.Context, chatID string, since time.Time) ([]domain.Mensagem, error) {
	if chatID == "" {
		return nil, domain.ErrInvalidInput
	}
	var rows []domain.Mensagem
	err := r.db.From(tabelaMensagens).Select("*").
		Eq("chat_id", chatID).
		Gte("created_at", since.UTC().Format(time.RFC3339)).
		Order("created_at", true).
		ExecuteInto(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MensagemRepo) Insert(ctx context.Context, m *domain.Mensagem) (*domain.Mensagem, error) {
	body, err := r.db.From(tabelaMensagens).ExecuteInsert(ctx, m)
	if err != nil {
		return nil, err
	}
	var rows []domain.Mensagem
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decodificar mensagem inserida: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert de mensagem não devolveu linha")
	}
	return &rows[0], nil
}
