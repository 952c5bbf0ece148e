package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	sessaoCliente     = 180 * time.Minute
	sessaoFuncionario = 180 * time.Minute
	sessaoLele        = 600 * time.Minute
)

// sessionClaims viaja num cookie assinado; não há estado de sessão no
// servidor além da validação feita a cada request.
type sessionClaims struct {
	Cliente     bool   `json:"cliente,omitempty"`
	Funcionario bool   `json:"funcionario,omitempty"`
	Lele        bool   `json:"lele,omitempty"`
	IDCliente   string `json:"id_cliente,omitempty"`
	LastAccess  int64  `json:"last_access"`
}

func secretKey() []byte {
	k := os.Getenv("SESSION_KEY")
	if k == "" {
		k = "dev-insecure"
	}
	return []byte(k)
}

func writeSession(w http.ResponseWriter, c *sessionClaims) {
	if c == nil {
		http.SetCookie(w, &http.Cookie{Name: "sess", Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
		return
	}
	c.LastAccess = time.Now().Unix()
	b, _ := json.Marshal(c)
	h := hmac.New(sha256.New, secretKey())
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: "sess", Value: val, Path: "/", MaxAge: int(sessaoLele.Seconds()), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

func readSession(r *http.Request) *sessionClaims {
	if r == nil {
		return nil
	}
	c, err := r.Cookie("sess")
	if err != nil || c.Value == "" {
		return nil
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return nil
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, secretKey())
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil
	}
	var claims sessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil
	}
	return &claims
}

func expirada(c *sessionClaims, ttl time.Duration) bool {
	return c.LastAccess == 0 || time.Since(time.Unix(c.LastAccess, 0)) > ttl
}

// sessaoClienteAtiva valida a sessão de cliente com expiração deslizante:
// cada página autenticada re-estampa o last_access.
func sessaoClienteAtiva(w http.ResponseWriter, r *http.Request) *sessionClaims {
	claims := readSession(r)
	if claims == nil || !claims.Cliente || claims.IDCliente == "" {
		return nil
	}
	if expirada(claims, sessaoCliente) {
		writeSession(w, nil)
		return nil
	}
	writeSession(w, claims)
	return claims
}

func sessaoFuncionarioAtiva(r *http.Request) bool {
	claims := readSession(r)
	return claims != nil && claims.Funcionario && !expirada(claims, sessaoFuncionario)
}

func sessaoLeleAtiva(r *http.Request) bool {
	claims := readSession(r)
	return claims != nil && claims.Lele && !expirada(claims, sessaoLele)
}
