package domain

import "context"

// Item do cardápio. O ID é derivado do nome sem espaços no cadastro.
type Item struct {
	ID         string  `json:"ID"`
	Nome       string  `json:"nome"`
	Descricao  string  `json:"descricao"`
	Preco      float64 `json:"preco"`
	Categoria  string  `json:"categoria"`
	Disponivel bool    `json:"disponivel"`
	ImagemURL  string  `json:"imagem_url,omitempty"`
}

type ItemRepo interface {
	List(ctx context.Context) ([]Item, error)
	FindByID(ctx context.Context, id string) (*Item, error)
	FindByNome(ctx context.Context, nome string) (*Item, error)
	Create(ctx context.Context, it *Item) error
	SetDisponivel(ctx context.Context, id string, disponivel bool) error
	Delete(ctx context.Context, id string) error
}
