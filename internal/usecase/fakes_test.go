package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/lelegrill/comanda/internal/domain"
)

// Repositórios em memória para os testes dos casos de uso.

type fakeClienteRepo struct {
	clientes map[string]*domain.Cliente // por nome_lower
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: map[string]*domain.Cliente{}}
}

func (r *fakeClienteRepo) FindByNomeLower(_ context.Context, nomeLower string) (*domain.Cliente, error) {
	if c, ok := r.clientes[nomeLower]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeClienteRepo) FindByID(_ context.Context, idCliente string) (*domain.Cliente, error) {
	for _, c := range r.clientes {
		if c.IDCliente == idCliente {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeClienteRepo) Create(_ context.Context, c *domain.Cliente) error {
	if _, ok := r.clientes[c.NomeLower]; ok {
		return domain.ErrDuplicate
	}
	cp := *c
	r.clientes[c.NomeLower] = &cp
	return nil
}

func (r *fakeClienteRepo) UpdateAniversario(_ context.Context, idCliente, aniversario string) error {
	for _, c := range r.clientes {
		if c.IDCliente == idCliente {
			c.Aniversario = aniversario
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeClienteRepo) UpdateSenha(_ context.Context, idCliente, senha string) error {
	for _, c := range r.clientes {
		if c.IDCliente == idCliente {
			c.Senha = senha
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeItemRepo struct {
	itens []domain.Item
}

func (r *fakeItemRepo) List(_ context.Context) ([]domain.Item, error) {
	return append([]domain.Item(nil), r.itens...), nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id string) (*domain.Item, error) {
	for _, it := range r.itens {
		if it.ID == id {
			cp := it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeItemRepo) FindByNome(_ context.Context, nome string) (*domain.Item, error) {
	for _, it := range r.itens {
		if it.Nome == nome {
			cp := it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeItemRepo) Create(_ context.Context, it *domain.Item) error {
	r.itens = append(r.itens, *it)
	return nil
}

func (r *fakeItemRepo) SetDisponivel(_ context.Context, id string, disponivel bool) error {
	for i := range r.itens {
		if r.itens[i].ID == id {
			r.itens[i].Disponivel = disponivel
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	for i := range r.itens {
		if r.itens[i].ID == id {
			r.itens = append(r.itens[:i], r.itens[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakePedidoRepo struct {
	pedidos []domain.Pedido
	seq     int
}

func (r *fakePedidoRepo) Insert(_ context.Context, p *domain.Pedido) (*domain.Pedido, error) {
	r.seq++
	cp := *p
	cp.PedidoNumero = r.seq
	r.pedidos = append(r.pedidos, cp)
	out := cp
	return &out, nil
}

func (r *fakePedidoRepo) List(_ context.Context, f domain.PedidoFilter) ([]domain.Pedido, error) {
	var out []domain.Pedido
	for _, p := range r.pedidos {
		if f.IDCliente != "" && p.IDCliente != f.IDCliente {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Nome != "" && !strings.Contains(strings.ToLower(p.Nome), strings.ToLower(f.Nome)) {
			continue
		}
		if f.DataHoraMin != "" && p.DataHora < f.DataHoraMin {
			continue
		}
		out = append(out, p)
	}
	if f.OrderBy == "pedido_numero" && f.Desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if f.OrderBy == "data_hora" && f.Desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakePedidoRepo) FindByNumero(_ context.Context, numero int) (*domain.Pedido, error) {
	for _, p := range r.pedidos {
		if p.PedidoNumero == numero {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePedidoRepo) Update(_ context.Context, numero int, fields map[string]any) error {
	for i := range r.pedidos {
		if r.pedidos[i].PedidoNumero == numero {
			aplicarCampos(&r.pedidos[i], fields)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakePedidoRepo) UpdateByCliente(_ context.Context, idCliente string, fields map[string]any) ([]domain.Pedido, error) {
	var out []domain.Pedido
	for i := range r.pedidos {
		if r.pedidos[i].IDCliente == idCliente {
			aplicarCampos(&r.pedidos[i], fields)
			out = append(out, r.pedidos[i])
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

func (r *fakePedidoRepo) Delete(_ context.Context, numero int) error {
	for i := range r.pedidos {
		if r.pedidos[i].PedidoNumero == numero {
			r.pedidos = append(r.pedidos[:i], r.pedidos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func aplicarCampos(p *domain.Pedido, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "status":
			p.Status = v.(string)
		case "desconto":
			p.Desconto = v.(float64)
		case "dividir1":
			p.Dividir1 = v.(float64)
		case "dividir2":
			p.Dividir2 = v.(float64)
		case "obs2":
			p.Obs2 = v.(string)
		case "obs3":
			p.Obs3 = v.(string)
		case "obs4":
			p.Obs4 = v.(string)
		}
	}
}

type fakeVendaRepo struct {
	vendas []domain.Venda
}

func (r *fakeVendaRepo) Insert(_ context.Context, v *domain.Venda) error {
	r.vendas = append(r.vendas, *v)
	return nil
}

func (r *fakeVendaRepo) List(_ context.Context, f domain.VendaFilter) ([]domain.Venda, error) {
	var out []domain.Venda
	for _, v := range r.vendas {
		if f.Nome != "" && !strings.Contains(strings.ToLower(v.Nome), strings.ToLower(f.Nome)) {
			continue
		}
		if f.Categoria != "" && v.Categoria != f.Categoria {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVendaRepo) Categorias(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var cats []string
	for _, v := range r.vendas {
		if !seen[v.Categoria] {
			seen[v.Categoria] = true
			cats = append(cats, v.Categoria)
		}
	}
	return cats, nil
}

type fakeMensagemRepo struct {
	mensagens []domain.Mensagem
	seq       int
}

func (r *fakeMensagemRepo) ListSince(_ context.Context, chatID string, since time.Time) ([]domain.Mensagem, error) {
	limite := since.UTC().Format(time.RFC3339)
	var out []domain.Mensagem
	for _, m := range r.mensagens {
		if m.ChatID == chatID && m.CreatedAt >= limite {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMensagemRepo) Insert(_ context.Context, m *domain.Mensagem) (*domain.Mensagem, error) {
	r.seq++
	cp := *m
	if cp.CreatedAt == "" {
		cp.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	r.mensagens = append(r.mensagens, cp)
	out := cp
	return &out, nil
}
