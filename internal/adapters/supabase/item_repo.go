package supabase

import (
	"context"
	"encoding/json"

	"github.com/lelegrill/comanda/internal/domain"
)

type ItemRepo struct{ db *Client }

func NewItemRepo(db *Client) *ItemRepo { return &ItemRepo{db: db} }

const tabelaItens = "itens"

func (r *ItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	var rows []domain.Item
	if err := r.db.From(tabelaItens).Select("*").ExecuteInto(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ItemRepo) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	var rows []domain.Item
	if err := r.db.From(tabelaItens).Select("*").Eq("ID", id).Limit(1).ExecuteInto(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *ItemRepo) FindByNome(ctx context.Context, nome string) (*domain.Item, error) {
	if nome == "" {
		return nil, domain.ErrInvalidInput
	}
	var rows []domain.Item
	if err := r.db.From(tabelaItens).Select("*").Eq("nome", nome).Limit(1).ExecuteInto(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *ItemRepo) Create(ctx context.Context, it *domain.Item) error {
	_, err := r.db.From(tabelaItens).ExecuteInsert(ctx, it)
	return err
}

func (r *ItemRepo) SetDisponivel(ctx context.Context, id string, disponivel bool) error {
	body, err := r.db.From(tabelaItens).Eq("ID", id).
		ExecuteUpdate(ctx, map[string]any{"disponivel": disponivel})
	if err != nil {
		return err
	}
	return errSeVazio(body)
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	body, err := r.db.From(tabelaItens).Eq("ID", id).ExecuteDelete(ctx)
	if err != nil {
		return err
	}
	return errSeVazio(body)
}

// errSeVazio traduz "nenhuma linha afetada" para ErrNotFound; o PostgREST
// responde 200 com array vazio quando o filtro não casa nada.
func errSeVazio(body []byte) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}
	return nil
}
