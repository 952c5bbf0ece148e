package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lelegrill/comanda/internal/domain"
)

const (
	janelaMensagens = 5 * time.Hour
	janelaPresenca  = 12 * time.Hour
	nomeAnonimo     = "Anônimo"
)

type ChatUC struct {
	Mensagens domain.MensagemRepo
	Pedidos   domain.PedidoRepo
}

// Listar devolve o histórico recente do chat em ordem ascendente.
func (uc *ChatUC) Listar(ctx context.Context, chatID string) ([]domain.Mensagem, error) {
	if chatID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.Mensagens.ListSince(ctx, chatID, time.Now().UTC().Add(-janelaMensagens))
}

// Enviar grava uma mensagem; sem nome utilizável, resolve pelo pedido mais
// recente do cliente, senão assina como anônimo.
func (uc *ChatUC) Enviar(ctx context.Context, m domain.Mensagem) (*domain.Mensagem, error) {
	if m.ChatID == "" || m.Mensagem == "" {
		return nil, domain.ErrInvalidInput
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.IDCliente == "" {
		m.IDCliente = "anon"
	}
	if m.Nome == "" || m.Nome == nomeAnonimo || m.Nome == "anon" {
		m.Nome = nomeAnonimo
		pedidos, err := uc.Pedidos.List(ctx, domain.PedidoFilter{
			IDCliente: m.IDCliente,
			OrderBy:   "data_hora",
			Desc:      true,
			Limit:     1,
		})
		if err == nil && len(pedidos) > 0 && pedidos[0].Nome != "" {
			m.Nome = pedidos[0].Nome
		}
	}
	return uc.Mensagens.Insert(ctx, &m)
}

// UsuarioOnline é presença aproximada: quem pediu na janela recente.
type UsuarioOnline struct {
	IDCliente string `json:"id_cliente"`
	Nome      string `json:"nome"`
	Mesa      string `json:"mesa"`
}

// UsuariosOnline deduplica por cliente; a última linha do cliente na
// janela vence, preservando a ordem de primeira aparição.
func (uc *ChatUC) UsuariosOnline(ctx context.Context) ([]UsuarioOnline, error) {
	limite := time.Now().UTC().Add(-janelaPresenca).Format(time.RFC3339)
	pedidos, err := uc.Pedidos.List(ctx, domain.PedidoFilter{DataHoraMin: limite})
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	var usuarios []UsuarioOnline
	for _, p := range pedidos {
		i, ok := idx[p.IDCliente]
		if !ok {
			i = len(usuarios)
			idx[p.IDCliente] = i
			usuarios = append(usuarios, UsuarioOnline{})
		}
		usuarios[i] = UsuarioOnline{IDCliente: p.IDCliente, Nome: p.Nome, Mesa: p.Mesa}
	}
	return usuarios, nil
}
