package app

import (
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/lelegrill/comanda/internal/adapters/httpserver"
	"github.com/lelegrill/comanda/internal/adapters/supabase"
	"github.com/lelegrill/comanda/internal/usecase"
	"github.com/lelegrill/comanda/internal/views"
)

type App struct {
	Tmpl        *template.Template
	AuthUC      *usecase.AuthUC
	PedidoUC    *usecase.PedidoUC
	CaixaUC     *usecase.CaixaUC
	EstoqueUC   *usecase.EstoqueUC
	RelatorioUC *usecase.RelatorioUC
	ChatUC      *usecase.ChatUC
	StaffKey    string
}

func NewApp(db *supabase.Client) (*App, error) {
	clienteRepo := supabase.NewClienteRepo(db)
	itemRepo := supabase.NewItemRepo(db)
	pedidoRepo := supabase.NewPedidoRepo(db)
	vendaRepo := supabase.NewVendaRepo(db)
	mensagemRepo := supabase.NewMensagemRepo(db)

	staffKey := os.Getenv("STAFF_KEY")
	if staffKey == "" {
		staffKey = "caixa-dev"
	}

	trustTotal := os.Getenv("TRUST_CLIENT_TOTAL") == "true"

	app := &App{StaffKey: staffKey}
	app.AuthUC = &usecase.AuthUC{Clientes: clienteRepo}
	app.PedidoUC = &usecase.PedidoUC{Pedidos: pedidoRepo, Itens: itemRepo, Clientes: clienteRepo, TrustClientTotal: trustTotal}
	app.CaixaUC = &usecase.CaixaUC{Pedidos: pedidoRepo, Itens: itemRepo, Vendas: vendaRepo}
	app.EstoqueUC = &usecase.EstoqueUC{Itens: itemRepo}
	app.RelatorioUC = &usecase.RelatorioUC{Pedidos: pedidoRepo, Vendas: vendaRepo}
	app.ChatUC = &usecase.ChatUC{Mensagens: mensagemRepo, Pedidos: pedidoRepo}

	funcMap := template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"preco": usecase.FormatPreco,
	}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	isDev := appEnv == "" || appEnv == "development" || appEnv == "dev"

	var tmpl *template.Template
	var err error
	if isDev {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseGlob("internal/views/*.html")
	} else {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseFS(views.FS, "*.html")
	}
	if err != nil {
		return nil, err
	}
	app.Tmpl = tmpl

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.AuthUC, a.PedidoUC, a.CaixaUC, a.EstoqueUC, a.RelatorioUC, a.ChatUC, a.StaffKey)
}
