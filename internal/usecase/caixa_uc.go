package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lelegrill/comanda/internal/domain"
)

const categoriaNaoEspecificada = "Não especificada"

type CaixaUC struct {
	Pedidos domain.PedidoRepo
	Itens   domain.ItemRepo
	Vendas  domain.VendaRepo
}

// GrupoComanda agrupa os pedidos em aberto de um cliente com o saldo
// devido (total menos desconto e pagamentos parciais).
type GrupoComanda struct {
	IDCliente string
	Pedidos   []domain.Pedido
	Total     float64
}

// Recebimento lista as comandas em aberto agrupadas por cliente, na ordem
// de primeira aparição dos pedidos mais recentes.
func (uc *CaixaUC) Recebimento(ctx context.Context) ([]GrupoComanda, error) {
	pedidos, err := uc.Pedidos.List(ctx, domain.PedidoFilter{OrderBy: "data_hora", Desc: true})
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	var grupos []GrupoComanda
	for _, p := range pedidos {
		if p.Status == domain.StatusPago {
			continue
		}
		i, ok := idx[p.IDCliente]
		if !ok {
			i = len(grupos)
			idx[p.IDCliente] = i
			grupos = append(grupos, GrupoComanda{IDCliente: p.IDCliente})
		}
		grupos[i].Pedidos = append(grupos[i].Pedidos, p)
		grupos[i].Total += p.Saldo()
	}
	return grupos, nil
}

func (uc *CaixaUC) AplicarDesconto(ctx context.Context, numero int, desconto float64) error {
	if numero <= 0 || desconto <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.Pedidos.Update(ctx, numero, map[string]any{"desconto": desconto})
}

// PagarParcial registra o valor no primeiro slot livre entre dividir1 e
// dividir2; o terceiro pagamento parcial é rejeitado.
func (uc *CaixaUC) PagarParcial(ctx context.Context, numero int, valor float64) error {
	if numero <= 0 || valor <= 0 {
		return domain.ErrInvalidInput
	}
	pedido, err := uc.Pedidos.FindByNumero(ctx, numero)
	if err != nil {
		return err
	}
	var campo string
	switch {
	case pedido.Dividir1 == 0:
		campo = "dividir1"
	case pedido.Dividir2 == 0:
		campo = "dividir2"
	default:
		return domain.ErrLimitReached
	}
	return uc.Pedidos.Update(ctx, numero, map[string]any{campo: valor})
}

// PagarComanda marca todos os pedidos do cliente como pagos e derrama as
// linhas de produto na tabela de vendas, uma linha por produto. Linha que
// não parseia é registrada no log e pulada; o laço segue. Não há transação
// envolvendo o conjunto: falha no meio deixa vendas parciais gravadas com
// os pedidos já pagos.
func (uc *CaixaUC) PagarComanda(ctx context.Context, idCliente string) (int, error) {
	if idCliente == "" {
		return 0, domain.ErrInvalidInput
	}
	if _, err := uc.Pedidos.UpdateByCliente(ctx, idCliente, map[string]any{"status": domain.StatusPago}); err != nil {
		return 0, err
	}
	pagos, err := uc.Pedidos.List(ctx, domain.PedidoFilter{IDCliente: idCliente, Status: domain.StatusPago})
	if err != nil {
		return 0, err
	}

	inseridas := 0
	for _, pedido := range pagos {
		for _, linha := range pedido.Produto {
			nome, preco, ok := ParseLinhaVenda(linha)
			if !ok {
				log.Error().Int("pedido", pedido.PedidoNumero).Str("linha", linha).Msg("linha de produto ilegível, pulando")
				continue
			}
			categoria := categoriaNaoEspecificada
			if item, err := uc.Itens.FindByNome(ctx, nome); err == nil {
				categoria = item.Categoria
			} else if !errors.Is(err, domain.ErrNotFound) {
				log.Error().Err(err).Str("nome", nome).Msg("busca de categoria falhou")
			}
			venda := &domain.Venda{Nome: nome, Categoria: categoria, Preco: preco, DataHora: pedido.DataHora}
			if err := uc.Vendas.Insert(ctx, venda); err != nil {
				log.Warn().Err(err).Str("nome", nome).Msg("falha ao inserir venda")
				continue
			}
			inseridas++
		}
	}
	return inseridas, nil
}

// ParseLinhaVenda desmonta "nome - R$ preco"; vírgula decimal é aceita.
func ParseLinhaVenda(linha string) (nome string, preco float64, ok bool) {
	parts := strings.Split(linha, " - R$ ")
	if len(parts) != 2 {
		return "", 0, false
	}
	preco, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(parts[1]), ",", "."), 64)
	if err != nil {
		return "", 0, false
	}
	return parts[0], preco, true
}
