package domain

import "context"

// Venda é o registro desnormalizado gerado no fechamento da comanda,
// uma linha por produto do pedido pago.
type Venda struct {
	Nome      string  `json:"nome"`
	Categoria string  `json:"categoria"`
	Preco     float64 `json:"preco"`
	DataHora  string  `json:"data_hora,omitempty"`
}

type VendaFilter struct {
	Nome       string
	Categoria  string
	DataInicio string
	DataFim    string
}

type VendaRepo interface {
	Insert(ctx context.Context, v *Venda) error
	List(ctx context.Context, f VendaFilter) ([]Venda, error)
	Categorias(ctx context.Context) ([]string, error)
}
