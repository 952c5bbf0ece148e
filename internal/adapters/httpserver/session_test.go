package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cookieDeSessao assina os claims do mesmo jeito que o servidor e devolve
// o valor do Set-Cookie para anexar a uma request de teste.
func cookieDeSessao(t *testing.T, claims *sessionClaims) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	writeSession(rec, claims)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSessionRoundtrip(t *testing.T) {
	t.Setenv("SESSION_KEY", "chave-teste")

	cookie := cookieDeSessao(t, &sessionClaims{Cliente: true, IDCliente: "ana_senha12"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	claims := readSession(req)
	require.NotNil(t, claims)
	assert.True(t, claims.Cliente)
	assert.False(t, claims.Funcionario)
	assert.Equal(t, "ana_senha12", claims.IDCliente)
	assert.NotZero(t, claims.LastAccess)
}

func TestSessionAssinaturaInvalida(t *testing.T) {
	t.Setenv("SESSION_KEY", "chave-teste")

	cookie := cookieDeSessao(t, &sessionClaims{Cliente: true, IDCliente: "ana"})

	t.Run("payload adulterado", func(t *testing.T) {
		parts := strings.SplitN(cookie.Value, ".", 2)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sess", Value: parts[0] + ".YWR1bHRlcmFkbw"})
		assert.Nil(t, readSession(req))
	})

	t.Run("chave diferente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		t.Setenv("SESSION_KEY", "outra-chave")
		assert.Nil(t, readSession(req))
	})

	t.Run("valor sem separador", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sess", Value: "lixo"})
		assert.Nil(t, readSession(req))
	})

	t.Run("sem cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Nil(t, readSession(req))
	})
}

func TestSessaoClienteAtiva(t *testing.T) {
	t.Setenv("SESSION_KEY", "chave-teste")

	t.Run("sessão válida re-estampa o cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookieDeSessao(t, &sessionClaims{Cliente: true, IDCliente: "ana"}))
		rec := httptest.NewRecorder()

		claims := sessaoClienteAtiva(rec, req)
		require.NotNil(t, claims)
		assert.Equal(t, "ana", claims.IDCliente)
		assert.NotEmpty(t, rec.Result().Cookies())
	})

	t.Run("flag de funcionário não vale como cliente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookieDeSessao(t, &sessionClaims{Funcionario: true}))
		assert.Nil(t, sessaoClienteAtiva(httptest.NewRecorder(), req))
	})

	t.Run("cliente sem id é rejeitado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookieDeSessao(t, &sessionClaims{Cliente: true}))
		assert.Nil(t, sessaoClienteAtiva(httptest.NewRecorder(), req))
	})
}

func TestExpiracao(t *testing.T) {
	agora := time.Now().Unix()

	assert.False(t, expirada(&sessionClaims{LastAccess: agora}, sessaoCliente))
	assert.True(t, expirada(&sessionClaims{LastAccess: 0}, sessaoCliente))

	antigo := time.Now().Add(-4 * time.Hour).Unix()
	assert.True(t, expirada(&sessionClaims{LastAccess: antigo}, sessaoCliente))
	// a janela do painel é mais longa
	assert.False(t, expirada(&sessionClaims{LastAccess: antigo}, sessaoLele))
}
