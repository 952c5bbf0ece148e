package domain

import (
	"context"
	"time"
)

type Mensagem struct {
	ID        string `json:"id,omitempty"`
	ChatID    string `json:"chat_id"`
	IDCliente string `json:"id_cliente"`
	Nome      string `json:"nome"`
	Mesa      string `json:"mesa,omitempty"`
	Mensagem  string `json:"mensagem"`
	CreatedAt string `json:"created_at,omitempty"`
}

type MensagemRepo interface {
	ListSince(ctx context.Context, chatID string, since time.Time) ([]Mensagem, error)
	Insert(ctx context.Context, m *Mensagem) (*Mensagem, error)
}
