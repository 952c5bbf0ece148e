package supabase

import (
	"context"
	"strings"

	"github.com/lelegrill/comanda/internal/domain"
)

type ClienteRepo struct{ db *Client }

func NewClienteRepo(db *Client) *ClienteRepo { return &ClienteRepo{db: db} }

const tabelaClientes = "clientes"

func (r *ClienteRepo) FindByNomeLower(ctx context.Context, nomeLower string) (*domain.Cliente, error) {
	nomeLower = strings.ToLower(strings.TrimSpace(nomeLower))
	if nomeLower == "" {
		return nil, domain.ErrInvalidInput
	}
	var rows []domain.Cliente
	err := r.db.From(tabelaClientes).Select("*").Eq("nome_lower", nomeLower).Limit(1).ExecuteInto(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *ClienteRepo) FindByID(ctx context.Context, idCliente string) (*domain.Cliente, error) {
	if idCliente == "" {
		return nil, domain.ErrInvalidInput
	}
	var rows []domain.Cliente
	err := r.db.From(tabelaClientes).Select("*").Eq("id_cliente", idCliente).Limit(1).ExecuteInto(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *ClienteRepo) Create(ctx context.Context, c *domain.Cliente) error {
	_, err := r.db.From(tabelaClientes).ExecuteInsert(ctx, c)
	return err
}

func (r *ClienteRepo) UpdateAniversario(ctx context.Context, idCliente, aniversario string) error {
	_, err := r.db.From(tabelaClientes).Eq("id_cliente", idCliente).
		ExecuteUpdate(ctx, map[string]any{"aniversario": aniversario})
	return err
}

func (r *ClienteRepo) UpdateSenha(ctx context.Context, idCliente, senha string) error {
	_, err := r.db.From(tabelaClientes).Eq("id_cliente", idCliente).
		ExecuteUpdate(ctx, map[string]any{"senha": senha})
	return err
}
