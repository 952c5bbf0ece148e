package supabase

import (
	"context"
	"sort"

	"github.com/lelegrill/comanda/internal/domain"
)

type VendaRepo struct{ db *Client }

func NewVendaRepo(db *Client) *VendaRepo { return &VendaRepo{db: db} }

const tabelaVendas = "vendas"

func (r *VendaRepo) Insert(ctx context.Context, v *domain.Venda) error {
	_, err := r.db.From(tabelaVendas).ExecuteInsert(ctx, v)
	return err
}

func (r *VendaRepo) List(ctx context.Context, f domain.VendaFilter) ([]domain.Venda, error) {
	q := r.db.From(tabelaVendas).Select("*")
	if f.Nome != "" {
		q = q.ILike("nome", "%"+f.Nome+"%")
	}
	if f.Categoria != "" {
		q = q.Eq("categoria", f.Categoria)
	}
	if f.DataInicio != "" {
		q = q.Gte("data_hora", f.DataInicio+" 00:00:00")
	}
	if f.DataFim != "" {
		q = q.Lte("data_hora", f.DataFim+" 23:59:59")
	}
	var rows []domain.Venda
	if err := q.Order("data_hora", false).ExecuteInto(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Categorias devolve o conjunto distinto de categorias presente na tabela,
// ordenado. O PostgREST não expõe DISTINCT, então a deduplicação é local.
func (r *VendaRepo) Categorias(ctx context.Context) ([]string, error) {
	var rows []struct {
		Categoria string `json:"categoria"`
	}
	if err := r.db.From(tabelaVendas).Select("categoria").ExecuteInto(ctx, &rows); err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var cats []string
	for _, row := range rows {
		if row.Categoria == "" {
			continue
		}
		if _, ok := seen[row.Categoria]; ok {
			continue
		}
		seen[row.Categoria] = struct{}{}
		cats = append(cats, row.Categoria)
	}
	sort.Strings(cats)
	return cats, nil
}
