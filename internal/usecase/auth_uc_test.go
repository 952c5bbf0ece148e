package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lelegrill/comanda/internal/domain"
)

func TestLoginCadastroNovo(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := &AuthUC{Clientes: repo}

	result, err := uc.Login(context.Background(), "Ana", "senha12")
	require.NoError(t, err)

	assert.True(t, result.Criado)
	assert.True(t, result.PedirAniversario)
	assert.Equal(t, "ana_senha12", result.Cliente.IDCliente)
	assert.Equal(t, "Ana", result.Cliente.Nome)
	assert.Equal(t, "ana", result.Cliente.NomeLower)
}

func TestLoginExistente(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := &AuthUC{Clientes: repo}
	ctx := context.Background()

	_, err := uc.Login(ctx, "Ana", "senha12")
	require.NoError(t, err)

	t.Run("senha certa entra", func(t *testing.T) {
		result, err := uc.Login(ctx, "ana", "senha12")
		require.NoError(t, err)
		assert.False(t, result.Criado)
		assert.Equal(t, "ana_senha12", result.Cliente.IDCliente)
	})

	t.Run("senha errada é rejeitada", func(t *testing.T) {
		_, err := uc.Login(ctx, "Ana", "outra-senha")
		assert.ErrorIs(t, err, domain.ErrSenhaIncorreta)
	})

	t.Run("aniversário preenchido não é pedido de novo", func(t *testing.T) {
		require.NoError(t, repo.UpdateAniversario(ctx, "ana_senha12", "1990-05-01"))
		result, err := uc.Login(ctx, "Ana", "senha12")
		require.NoError(t, err)
		assert.False(t, result.PedirAniversario)
	})
}

func TestLoginValidacao(t *testing.T) {
	uc := &AuthUC{Clientes: newFakeClienteRepo()}
	ctx := context.Background()

	_, err := uc.Login(ctx, "  ", "senha12")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Login(ctx, "Ana", "curta")
	assert.ErrorIs(t, err, domain.ErrSenhaCurta)
}

func TestRedefinirSenha(t *testing.T) {
	repo := newFakeClienteRepo()
	uc := &AuthUC{Clientes: repo}
	ctx := context.Background()

	_, err := uc.Login(ctx, "Bruno", "segredo1")
	require.NoError(t, err)
	require.NoError(t, repo.UpdateAniversario(ctx, "bruno_segredo1", "2000-01-15"))

	t.Run("fase de verificação não troca a senha", func(t *testing.T) {
		require.NoError(t, uc.RedefinirSenha(ctx, "Bruno", "2000-01-15", ""))
		result, err := uc.Login(ctx, "Bruno", "segredo1")
		require.NoError(t, err)
		assert.Equal(t, "bruno_segredo1", result.Cliente.IDCliente)
	})

	t.Run("aniversário errado", func(t *testing.T) {
		err := uc.RedefinirSenha(ctx, "Bruno", "1999-12-31", "novasenha")
		assert.ErrorIs(t, err, domain.ErrAniversarioIncorreto)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		err := uc.RedefinirSenha(ctx, "ninguem", "2000-01-15", "novasenha")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("senha nova curta", func(t *testing.T) {
		err := uc.RedefinirSenha(ctx, "Bruno", "2000-01-15", "abc")
		assert.ErrorIs(t, err, domain.ErrSenhaCurta)
	})

	t.Run("troca efetiva", func(t *testing.T) {
		require.NoError(t, uc.RedefinirSenha(ctx, "Bruno", "2000-01-15", "novasenha"))
		_, err := uc.Login(ctx, "Bruno", "segredo1")
		assert.ErrorIs(t, err, domain.ErrSenhaIncorreta)
		result, err := uc.Login(ctx, "Bruno", "novasenha")
		require.NoError(t, err)
		assert.Equal(t, "bruno_segredo1", result.Cliente.IDCliente)
	})
}
