package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lelegrill/comanda/internal/domain"
)

type PedidoRepo struct{ db *Client }

func NewPedidoRepo(db *Client) *PedidoRepo { return &PedidoRepo{db: db} }

const tabelaPedidos = "pedidos_finalizados"

func (r *PedidoRepo) Insert(ctx context.Context, p *domain.Pedido) (*domain.Pedido, error) {
	body, err := r.db.From(tabelaPedidos).ExecuteInsert(ctx, p)
	if err != nil {
		return nil, err
	}
	var rows []domain.Pedido
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decodificar pedido inserido: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert de pedido não devolveu linha")
	}
	return &rows[0], nil
}

func (r *PedidoRepo) List(ctx context.Context, f domain.PedidoFilter) ([]domain.Pedido, error) {
	q := r.db.From(tabelaPedidos).Select("*")
	if f.IDCliente != "" {
		q = q.Eq("id_cliente", f.IDCliente)
	}
	if f.Status != "" {
		q = q.Eq("status", f.Status)
	}
	if f.Nome != "" {
		q = q.ILike("nome", "%"+f.Nome+"%")
	}
	if f.DataInicio != "" {
		q = q.Gte("data_hora", f.DataInicio+" 00:00:00")
	}
	if f.DataFim != "" {
		q = q.Lte("data_hora", f.DataFim+" 23:59:59")
	}
	if f.DataHoraMin != "" {
		q = q.Gte("data_hora", f.DataHoraMin)
	}
	if f.OrderBy != "" {
		q = q.Order(f.OrderBy, !f.Desc)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var rows []domain.Pedido
	if err := q.ExecuteInto(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PedidoRepo) FindByNumero(ctx context.Context, numero int) (*domain.Pedido, error) {
	var rows []domain.Pedido
	err := r.db.From(tabelaPedidos).Select("*").Eq("pedido_numero", numero).Limit(1).ExecuteInto(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return &rows[0], nil
}

func (r *PedidoRepo) Update(ctx context.Context, numero int, fields map[string]any) error {
	body, err := r.db.From(tabelaPedidos).Eq("pedido_numero", numero).ExecuteUpdate(ctx, fields)
	if err != nil {
		return err
	}
	return errSeVazio(body)
}

func (r *PedidoRepo) UpdateByCliente(ctx context.Context, idCliente string, fields map[string]any) ([]domain.Pedido, error) {
	body, err := r.db.From(tabelaPedidos).Eq("id_cliente", idCliente).ExecuteUpdate(ctx, fields)
	if err != nil {
		return nil, err
	}
	var rows []domain.Pedido
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decodificar pedidos atualizados: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows, nil
}

func (r *PedidoRepo) Delete(ctx context.Context, numero int) error {
	body, err := r.db.From(tabelaPedidos).Eq("pedido_numero", numero).ExecuteDelete(ctx)
	if err != nil {
		return err
	}
	return errSeVazio(body)
}
