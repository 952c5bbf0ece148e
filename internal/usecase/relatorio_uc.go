package usecase

import (
	"context"
	"time"

	"github.com/lelegrill/comanda/internal/domain"
)

type RelatorioUC struct {
	Pedidos domain.PedidoRepo
	Vendas  domain.VendaRepo
}

type FiltroFinanceiro struct {
	Nome       string
	Status     string
	DataInicio string
	DataFim    string
}

type RelatorioFinanceiro struct {
	Pedidos        []domain.Pedido
	TotalVendido   float64
	TotalPedidos   int
	PedidosPagos   int
	PedidosAbertos int
}

// Financeiro empurra os filtros para o banco e converte os timestamps
// armazenados (UTC/ISO) para o horário local formatado.
func (uc *RelatorioUC) Financeiro(ctx context.Context, f FiltroFinanceiro) (*RelatorioFinanceiro, error) {
	pedidos, err := uc.Pedidos.List(ctx, domain.PedidoFilter{
		Nome:       f.Nome,
		Status:     f.Status,
		DataInicio: f.DataInicio,
		DataFim:    f.DataFim,
		OrderBy:    "data_hora",
		Desc:       true,
	})
	if err != nil {
		return nil, err
	}

	rel := &RelatorioFinanceiro{Pedidos: pedidos, TotalPedidos: len(pedidos)}
	for i := range rel.Pedidos {
		rel.Pedidos[i].DataHora = FormatDataHoraLocal(rel.Pedidos[i].DataHora)
		rel.TotalVendido += rel.Pedidos[i].Total
		if rel.Pedidos[i].Status == domain.StatusPago {
			rel.PedidosPagos++
		}
	}
	rel.PedidosAbertos = rel.TotalPedidos - rel.PedidosPagos
	return rel, nil
}

// FormatDataHoraLocal converte um timestamp ISO para "dd/mm/aaaa hh:mm:ss"
// em horário de São Paulo. Valor que não parseia é devolvido como veio.
func FormatDataHoraLocal(iso string) string {
	if iso == "" {
		return iso
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.In(saoPaulo).Format("02/01/2006 15:04:05")
}

type FiltroVendas struct {
	Nome       string
	Categoria  string
	DataInicio string
	DataFim    string
}

// VendaAgregada unifica as linhas cruas de venda por nome de produto.
type VendaAgregada struct {
	Nome       string
	Categoria  string
	Preco      float64
	Quantidade int
	ValorTotal float64
}

type RelatorioVendas struct {
	Vendas       []VendaAgregada
	Categorias   []string
	TotalVendido float64
	TotalItens   int
}

func (uc *RelatorioUC) RelatorioVendas(ctx context.Context, f FiltroVendas) (*RelatorioVendas, error) {
	categorias, err := uc.Vendas.Categorias(ctx)
	if err != nil {
		return nil, err
	}
	vendas, err := uc.Vendas.List(ctx, domain.VendaFilter{
		Nome:       f.Nome,
		Categoria:  f.Categoria,
		DataInicio: f.DataInicio,
		DataFim:    f.DataFim,
	})
	if err != nil {
		return nil, err
	}

	idx := map[string]int{}
	rel := &RelatorioVendas{Categorias: categorias}
	for _, v := range vendas {
		i, ok := idx[v.Nome]
		if !ok {
			i = len(rel.Vendas)
			idx[v.Nome] = i
			categoria := v.Categoria
			if categoria == "" {
				categoria = categoriaNaoEspecificada
			}
			rel.Vendas = append(rel.Vendas, VendaAgregada{Nome: v.Nome, Categoria: categoria, Preco: v.Preco})
		}
		rel.Vendas[i].Quantidade++
		rel.Vendas[i].ValorTotal += v.Preco
	}
	for _, v := range rel.Vendas {
		rel.TotalVendido += v.ValorTotal
		rel.TotalItens += v.Quantidade
	}
	return rel, nil
}
