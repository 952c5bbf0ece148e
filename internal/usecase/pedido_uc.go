package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lelegrill/comanda/internal/domain"
)

type PedidoUC struct {
	Pedidos  domain.PedidoRepo
	Itens    domain.ItemRepo
	Clientes domain.ClienteRepo

	// TrustClientTotal aceita o total enviado pelo cliente quando não for
	// zero. Desligado por padrão: o total sai sempre da tabela de itens.
	TrustClientTotal bool
}

type LinhaPedido struct {
	ID         string `json:"id"`
	Quantidade int    `json:"quantidade"`
	Sabor      string `json:"sabor,omitempty"`
}

// Enviar monta e grava um pedido. Preço e nome vêm sempre da tabela de
// itens, nunca do payload; item inexistente derruba a submissão inteira.
func (uc *PedidoUC) Enviar(ctx context.Context, idCliente, mesa, contato, observacoes string, linhas []LinhaPedido, totalCliente float64) (*domain.Pedido, error) {
	if mesa == "" || contato == "" || len(linhas) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var produtos domain.ProdutoList
	var totalServidor float64
	for _, linha := range linhas {
		item, err := uc.Itens.FindByID(ctx, linha.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("item %s: %w", linha.ID, domain.ErrNotFound)
			}
			return nil, err
		}
		qtd := linha.Quantidade
		if qtd < 1 {
			qtd = 1
		}
		produtos = append(produtos, formatLinhaProduto(item.Nome, linha.Sabor, item.Preco))
		totalServidor += item.Preco * float64(qtd)
	}

	total := totalServidor
	if uc.TrustClientTotal && totalCliente != 0 {
		total = totalCliente
	}

	nomeCliente := "Cliente Desconhecido"
	if cliente, err := uc.Clientes.FindByID(ctx, idCliente); err == nil {
		nomeCliente = cliente.Nome
	}

	pedido := &domain.Pedido{
		Mesa:      mesa,
		Nome:      nomeCliente,
		Contato:   contato,
		Produto:   produtos,
		Total:     total,
		Status:    domain.StatusRealizado,
		Descricao: observacoes,
		DataHora:  agoraBrasil().Format(time.RFC3339),
		IDCliente: idCliente,
	}
	return uc.Pedidos.Insert(ctx, pedido)
}

// formatLinhaProduto segue o formato "nome (sabor) - R$ preco" que o
// fechamento de comanda reparseia depois.
func formatLinhaProduto(nome, sabor string, preco float64) string {
	if sabor != "" {
		return fmt.Sprintf("%s (%s) - R$ %s", nome, sabor, FormatPreco(preco))
	}
	return fmt.Sprintf("%s - R$ %s", nome, FormatPreco(preco))
}

// FormatPreco imprime o preço com ao menos uma casa decimal: 10 -> "10.0",
// 10.5 -> "10.5", 10.55 -> "10.55".
func FormatPreco(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (uc *PedidoUC) Listar(ctx context.Context) ([]domain.Pedido, error) {
	return uc.Pedidos.List(ctx, domain.PedidoFilter{OrderBy: "pedido_numero", Desc: true})
}

func (uc *PedidoUC) MeusPedidos(ctx context.Context, idCliente string) ([]domain.Pedido, error) {
	return uc.Pedidos.List(ctx, domain.PedidoFilter{IDCliente: idCliente})
}

// MinhaComanda devolve os pedidos do cliente com total gasto e contagem.
func (uc *PedidoUC) MinhaComanda(ctx context.Context, idCliente string) ([]domain.Pedido, float64, int, error) {
	pedidos, err := uc.Pedidos.List(ctx, domain.PedidoFilter{IDCliente: idCliente, OrderBy: "data_hora", Desc: true})
	if err != nil {
		return nil, 0, 0, err
	}
	var totalGasto float64
	for _, p := range pedidos {
		totalGasto += p.Total
	}
	return pedidos, totalGasto, len(pedidos), nil
}

func (uc *PedidoUC) AtualizarStatus(ctx context.Context, numero int, status string) error {
	if !domain.StatusPermitido(status) {
		return domain.ErrInvalidInput
	}
	return uc.Pedidos.Update(ctx, numero, map[string]any{"status": status})
}

func (uc *PedidoUC) Excluir(ctx context.Context, numero int) error {
	return uc.Pedidos.Delete(ctx, numero)
}

// AddObservacao preenche o primeiro slot livre entre obs2, obs3 e obs4.
func (uc *PedidoUC) AddObservacao(ctx context.Context, numero int, obs string) error {
	if obs == "" {
		return domain.ErrInvalidInput
	}
	pedido, err := uc.Pedidos.FindByNumero(ctx, numero)
	if err != nil {
		return err
	}
	var campo string
	switch {
	case pedido.Obs2 == "":
		campo = "obs2"
	case pedido.Obs3 == "":
		campo = "obs3"
	case pedido.Obs4 == "":
		campo = "obs4"
	default:
		return domain.ErrLimitReached
	}
	return uc.Pedidos.Update(ctx, numero, map[string]any{campo: obs})
}
