package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lelegrill/comanda/internal/domain"
)

func caixaUCDeTeste() (*CaixaUC, *fakePedidoRepo, *fakeVendaRepo) {
	itens := &fakeItemRepo{itens: []domain.Item{
		{ID: "Picanha", Nome: "Picanha", Preco: 55, Categoria: "Carnes"},
		{ID: "Coca", Nome: "Coca", Preco: 8, Categoria: "Bebidas"},
	}}
	pedidos := &fakePedidoRepo{}
	vendas := &fakeVendaRepo{}
	return &CaixaUC{Pedidos: pedidos, Itens: itens, Vendas: vendas}, pedidos, vendas
}

func TestRecebimentoAgrupaPorCliente(t *testing.T) {
	uc, pedidos, _ := caixaUCDeTeste()
	ctx := context.Background()

	pedidos.pedidos = []domain.Pedido{
		{PedidoNumero: 1, IDCliente: "ana", Total: 50, Status: domain.StatusEntregue},
		{PedidoNumero: 2, IDCliente: "bia", Total: 30, Status: domain.StatusRealizado},
		{PedidoNumero: 3, IDCliente: "ana", Total: 20, Desconto: 5, Dividir1: 10, Status: domain.StatusEmPreparo},
		{PedidoNumero: 4, IDCliente: "ana", Total: 99, Status: domain.StatusPago},
	}
	pedidos.seq = 4

	grupos, err := uc.Recebimento(ctx)
	require.NoError(t, err)
	require.Len(t, grupos, 2)

	assert.Equal(t, "ana", grupos[0].IDCliente)
	assert.Len(t, grupos[0].Pedidos, 2) // o pago fica de fora
	assert.InDelta(t, 55.0, grupos[0].Total, 0.001)

	assert.Equal(t, "bia", grupos[1].IDCliente)
	assert.InDelta(t, 30.0, grupos[1].Total, 0.001)
}

func TestAplicarDesconto(t *testing.T) {
	uc, pedidos, _ := caixaUCDeTeste()
	ctx := context.Background()
	pedidos.pedidos = []domain.Pedido{{PedidoNumero: 1, Total: 50}}

	require.NoError(t, uc.AplicarDesconto(ctx, 1, 5))
	assert.InDelta(t, 5.0, pedidos.pedidos[0].Desconto, 0.001)

	assert.ErrorIs(t, uc.AplicarDesconto(ctx, 1, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.AplicarDesconto(ctx, 1, -3), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.AplicarDesconto(ctx, 0, 5), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.AplicarDesconto(ctx, 99, 5), domain.ErrNotFound)
}

func TestPagarParcial(t *testing.T) {
	uc, pedidos, _ := caixaUCDeTeste()
	ctx := context.Background()
	pedidos.pedidos = []domain.Pedido{{PedidoNumero: 1, Total: 100}}

	require.NoError(t, uc.PagarParcial(ctx, 1, 40))
	require.NoError(t, uc.PagarParcial(ctx, 1, 30))
	assert.InDelta(t, 40.0, pedidos.pedidos[0].Dividir1, 0.001)
	assert.InDelta(t, 30.0, pedidos.pedidos[0].Dividir2, 0.001)

	assert.ErrorIs(t, uc.PagarParcial(ctx, 1, 10), domain.ErrLimitReached)
	assert.ErrorIs(t, uc.PagarParcial(ctx, 1, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.PagarParcial(ctx, 42, 10), domain.ErrNotFound)
}

func TestPagarComanda(t *testing.T) {
	uc, pedidos, vendas := caixaUCDeTeste()
	ctx := context.Background()

	pedidos.pedidos = []domain.Pedido{
		{PedidoNumero: 1, IDCliente: "ana", Status: domain.StatusEntregue, DataHora: "2026-08-30T20:00:00-03:00",
			Produto: domain.ProdutoList{"Picanha - R$ 55.0", "Coca - R$ 8.0"}},
		{PedidoNumero: 2, IDCliente: "ana", Status: domain.StatusRealizado, DataHora: "2026-08-30T20:30:00-03:00",
			Produto: domain.ProdutoList{"Caldo da casa - R$ 12,5", "linha ilegível"}},
	}

	inseridas, err := uc.PagarComanda(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, 3, inseridas) // a linha ilegível é pulada

	for _, p := range pedidos.pedidos {
		assert.Equal(t, domain.StatusPago, p.Status)
	}

	require.Len(t, vendas.vendas, 3)
	assert.Equal(t, "Picanha", vendas.vendas[0].Nome)
	assert.Equal(t, "Carnes", vendas.vendas[0].Categoria)
	assert.InDelta(t, 55.0, vendas.vendas[0].Preco, 0.001)
	assert.Equal(t, "2026-08-30T20:00:00-03:00", vendas.vendas[0].DataHora)

	// produto fora da tabela de itens cai na categoria padrão
	assert.Equal(t, "Caldo da casa", vendas.vendas[2].Nome)
	assert.Equal(t, "Não especificada", vendas.vendas[2].Categoria)
	assert.InDelta(t, 12.5, vendas.vendas[2].Preco, 0.001)
}

func TestPagarComandaSemPedidos(t *testing.T) {
	uc, _, _ := caixaUCDeTeste()
	ctx := context.Background()

	_, err := uc.PagarComanda(ctx, "ninguem")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.PagarComanda(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseLinhaVenda(t *testing.T) {
	nome, preco, ok := ParseLinhaVenda("Picanha - R$ 55.0")
	require.True(t, ok)
	assert.Equal(t, "Picanha", nome)
	assert.InDelta(t, 55.0, preco, 0.001)

	nome, preco, ok = ParseLinhaVenda("Coca (gelada) - R$ 8,5")
	require.True(t, ok)
	assert.Equal(t, "Coca (gelada)", nome)
	assert.InDelta(t, 8.5, preco, 0.001)

	_, _, ok = ParseLinhaVenda("sem separador")
	assert.False(t, ok)

	_, _, ok = ParseLinhaVenda("Coisa - R$ abc")
	assert.False(t, ok)
}
