package domain

import (
	"context"
	"encoding/json"
	"strings"
)

const (
	StatusRealizado = "Pedido Realizado"
	StatusEmPreparo = "Em Preparo"
	StatusPreparado = "Preparado"
	StatusEntregue  = "Entregue"
	StatusPago      = "Pago"
)

// StatusPermitido valida as transições aceitas pelo painel de pedidos.
// "Pago" só é atingido pelo fechamento de comanda, nunca por aqui.
func StatusPermitido(s string) bool {
	switch s {
	case StatusEmPreparo, StatusPreparado, StatusEntregue:
		return true
	}
	return false
}

// ProdutoList é a lista de linhas "nome (sabor) - R$ preco" de um pedido.
// O campo chega do banco ora como array JSON, ora como string JSON
// serializada com aspas simples; o unmarshal tolera as duas formas.
type ProdutoList []string

func (p *ProdutoList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*p = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*p = nil
		return nil
	}
	s = strings.ReplaceAll(s, "'", `"`)
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return err
	}
	*p = list
	return nil
}

type Pedido struct {
	PedidoNumero int         `json:"pedido_numero,omitempty"`
	Mesa         string      `json:"mesa"`
	Nome         string      `json:"nome"`
	Contato      string      `json:"contato"`
	Produto      ProdutoList `json:"produto"`
	Total        float64     `json:"total"`
	Status       string      `json:"status"`
	Descricao    string      `json:"descricao,omitempty"`
	Obs2         string      `json:"obs2,omitempty"`
	Obs3         string      `json:"obs3,omitempty"`
	Obs4         string      `json:"obs4,omitempty"`
	Desconto     float64     `json:"desconto,omitempty"`
	Dividir1     float64     `json:"dividir1,omitempty"`
	Dividir2     float64     `json:"dividir2,omitempty"`
	DataHora     string      `json:"data_hora,omitempty"`
	IDCliente    string      `json:"id_cliente"`
}

// Saldo é o valor em aberto do pedido após desconto e pagamentos parciais.
func (p *Pedido) Saldo() float64 {
	return p.Total - p.Desconto - p.Dividir1 - p.Dividir2
}

type PedidoFilter struct {
	IDCliente   string
	Status      string
	Nome        string // substring, case-insensitive
	DataInicio  string // "YYYY-MM-DD", expandido para 00:00:00
	DataFim     string // "YYYY-MM-DD", expandido para 23:59:59
	DataHoraMin string // limite inferior bruto (janela de presença/chat)
	OrderBy     string
	Desc        bool
	Limit       int
}

type PedidoRepo interface {
	Insert(ctx context.Context, p *Pedido) (*Pedido, error)
	List(ctx context.Context, f PedidoFilter) ([]Pedido, error)
	FindByNumero(ctx context.Context, numero int) (*Pedido, error)
	// Update aplica um PATCH parcial; campos ausentes não são tocados.
	Update(ctx context.Context, numero int, fields map[string]any) error
	// UpdateByCliente atualiza todos os pedidos do cliente e devolve as
	// linhas afetadas.
	UpdateByCliente(ctx context.Context, idCliente string, fields map[string]any) ([]Pedido, error)
	Delete(ctx context.Context, numero int) error
}
