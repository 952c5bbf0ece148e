package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/lelegrill/comanda/internal/domain"
)

const senhaMinima = 6

type AuthUC struct {
	Clientes domain.ClienteRepo
}

type LoginResult struct {
	Cliente *domain.Cliente
	// Criado indica cadastro novo feito neste login.
	Criado bool
	// PedirAniversario pede a data antes de seguir para o cardápio.
	PedirAniversario bool
}

// Login autentica por nome_lower + comparação exata de senha. Nome ainda
// não cadastrado vira cadastro novo com id nome_lower_senha.
func (uc *AuthUC) Login(ctx context.Context, nome, senha string) (*LoginResult, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(senha) < senhaMinima {
		return nil, domain.ErrSenhaCurta
	}
	nomeLower := strings.ToLower(nome)

	existente, err := uc.Clientes.FindByNomeLower(ctx, nomeLower)
	switch {
	case err == nil:
		if existente.Senha != senha {
			return nil, domain.ErrSenhaIncorreta
		}
		return &LoginResult{Cliente: existente, PedirAniversario: existente.Aniversario == ""}, nil
	case errors.Is(err, domain.ErrNotFound):
		novo := &domain.Cliente{
			IDCliente: nomeLower + "_" + senha,
			Nome:      nome,
			NomeLower: nomeLower,
			Senha:     senha,
		}
		if err := uc.Clientes.Create(ctx, novo); err != nil {
			return nil, err
		}
		return &LoginResult{Cliente: novo, Criado: true, PedirAniversario: true}, nil
	default:
		return nil, err
	}
}

func (uc *AuthUC) AtualizarAniversario(ctx context.Context, idCliente, aniversario string) error {
	if idCliente == "" || aniversario == "" {
		return domain.ErrInvalidInput
	}
	return uc.Clientes.UpdateAniversario(ctx, idCliente, aniversario)
}

// RedefinirSenha valida nome + aniversário. Com novaSenha vazia apenas
// confere os dados (primeira fase do fluxo de recuperação); com novaSenha
// preenchida grava a senha nova.
func (uc *AuthUC) RedefinirSenha(ctx context.Context, nome, aniversario, novaSenha string) error {
	nome = strings.ToLower(strings.TrimSpace(nome))
	if nome == "" || aniversario == "" {
		return domain.ErrInvalidInput
	}
	cliente, err := uc.Clientes.FindByNomeLower(ctx, nome)
	if err != nil {
		return err
	}
	if cliente.Aniversario != aniversario {
		return domain.ErrAniversarioIncorreto
	}
	if novaSenha == "" {
		return nil
	}
	if len(novaSenha) < senhaMinima {
		return domain.ErrSenhaCurta
	}
	return uc.Clientes.UpdateSenha(ctx, cliente.IDCliente, novaSenha)
}
