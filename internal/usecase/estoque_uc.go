package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/lelegrill/comanda/internal/domain"
)

const imagemPadrao = "/static/produtos/default.png"

type EstoqueUC struct {
	Itens domain.ItemRepo
}

// CategoriaItens mantém a ordem de primeira aparição das categorias,
// a mesma que o cardápio exibe.
type CategoriaItens struct {
	Categoria string
	Itens     []domain.Item
}

// Cardapio agrupa os itens por categoria e aplica a imagem padrão aos
// itens sem foto.
func (uc *EstoqueUC) Cardapio(ctx context.Context) ([]CategoriaItens, error) {
	itens, err := uc.Itens.List(ctx)
	if err != nil {
		return nil, err
	}
	return agruparPorCategoria(itens), nil
}

// Listar devolve o agrupamento do estoque mais o conjunto ordenado de
// categorias para popular o formulário de cadastro.
func (uc *EstoqueUC) Listar(ctx context.Context) ([]CategoriaItens, []string, error) {
	itens, err := uc.Itens.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	grupos := agruparPorCategoria(itens)
	seen := map[string]struct{}{}
	var categorias []string
	for _, it := range itens {
		if it.Categoria == "" {
			continue
		}
		if _, ok := seen[it.Categoria]; ok {
			continue
		}
		seen[it.Categoria] = struct{}{}
		categorias = append(categorias, it.Categoria)
	}
	sort.Strings(categorias)
	return grupos, categorias, nil
}

func agruparPorCategoria(itens []domain.Item) []CategoriaItens {
	idx := map[string]int{}
	var grupos []CategoriaItens
	for _, it := range itens {
		cat := it.Categoria
		if cat == "" {
			cat = "Sem Categoria"
		}
		if it.ImagemURL == "" {
			it.ImagemURL = imagemPadrao
		}
		i, ok := idx[cat]
		if !ok {
			i = len(grupos)
			idx[cat] = i
			grupos = append(grupos, CategoriaItens{Categoria: cat})
		}
		grupos[i].Itens = append(grupos[i].Itens, it)
	}
	return grupos
}

// Adicionar cadastra um item novo; o ID é o nome sem espaços e precisa ser
// inédito.
func (uc *EstoqueUC) Adicionar(ctx context.Context, it domain.Item) (*domain.Item, error) {
	if it.Nome == "" || it.Descricao == "" || it.Preco <= 0 || it.Categoria == "" {
		return nil, domain.ErrInvalidInput
	}
	it.ID = strings.ReplaceAll(it.Nome, " ", "")
	_, err := uc.Itens.FindByID(ctx, it.ID)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicate
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	if err := uc.Itens.Create(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (uc *EstoqueUC) AtualizarDisponibilidade(ctx context.Context, id string, disponivel bool) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.Itens.SetDisponivel(ctx, id, disponivel)
}

// Excluir remove o item do cardápio. Pedidos antigos guardam o nome em
// texto, então não há verificação referencial aqui.
func (uc *EstoqueUC) Excluir(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.Itens.Delete(ctx, id)
}
