package domain

import "context"

// Cliente é identificado pelo id_cliente derivado de nome_lower + senha no
// primeiro login. nome_lower é a chave de unicidade.
type Cliente struct {
	IDCliente   string `json:"id_cliente"`
	Nome        string `json:"nome"`
	NomeLower   string `json:"nome_lower"`
	Senha       string `json:"senha"`
	Aniversario string `json:"aniversario,omitempty"`
}

type ClienteRepo interface {
	FindByNomeLower(ctx context.Context, nomeLower string) (*Cliente, error)
	FindByID(ctx context.Context, idCliente string) (*Cliente, error)
	Create(ctx context.Context, c *Cliente) error
	UpdateAniversario(ctx context.Context, idCliente, aniversario string) error
	UpdateSenha(ctx context.Context, idCliente, senha string) error
}
