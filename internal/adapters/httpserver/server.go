package httpserver

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/lelegrill/comanda/internal/domain"
	"github.com/lelegrill/comanda/internal/usecase"
)

// Server concentra as rotas HTTP da comanda. Cada handler delega a regra
// de negócio ao caso de uso correspondente e cuida só de sessão, parsing
// e renderização.
type Server struct {
	mux        *http.ServeMux
	tmpl       *template.Template
	auth       *usecase.AuthUC
	pedidos    *usecase.PedidoUC
	caixa      *usecase.CaixaUC
	estoque    *usecase.EstoqueUC
	relatorios *usecase.RelatorioUC
	chat       *usecase.ChatUC
	staffKey   string
}

func New(t *template.Template, auth *usecase.AuthUC, pedidos *usecase.PedidoUC, caixa *usecase.CaixaUC, estoque *usecase.EstoqueUC, relatorios *usecase.RelatorioUC, chat *usecase.ChatUC, staffKey string) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		tmpl:       t,
		auth:       auth,
		pedidos:    pedidos,
		caixa:      caixa,
		estoque:    estoque,
		relatorios: relatorios,
		chat:       chat,
		staffKey:   staffKey,
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(60),
		SecurityHeaders,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	s.mux.HandleFunc("/google8bc94c408f29159d.html", s.handleGoogleVerify)

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/index", s.handleIndex)
	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/atualizar_aniversario", s.handleAtualizarAniversario)
	s.mux.HandleFunc("/esqueci_senha", s.handleEsqueciSenha)

	s.mux.HandleFunc("/cardapio", s.handleCardapio)
	s.mux.HandleFunc("/enviar_pedido", s.handleEnviarPedido)
	s.mux.HandleFunc("/pedidos", s.handlePedidos)
	s.mux.HandleFunc("/pedidos/meuspedidos", s.handleMeusPedidos)
	s.mux.HandleFunc("/informacoes", s.handleInformacoes)

	s.mux.HandleFunc("/caixa", s.handleCaixa)
	s.mux.HandleFunc("/caixa/minhacomanda", s.handleMinhaComanda)
	s.mux.HandleFunc("/caixa/funcionario", s.handleFuncionario)
	s.mux.HandleFunc("/caixa/funcionario/recebimento", s.handleRecebimento)
	s.mux.HandleFunc("/caixa/funcionario/aplicar_desconto", s.handleAplicarDesconto)
	s.mux.HandleFunc("/caixa/funcionario/pagar_parcial", s.handlePagarParcial)
	s.mux.HandleFunc("/caixa/funcionario/pagar_comanda", s.handlePagarComanda)

	s.mux.HandleFunc("/caixa/funcionario/estoque", s.handleEstoque)
	s.mux.HandleFunc("/estoque/update", s.handleEstoqueUpdate)
	s.mux.HandleFunc("/estoque/adicionar", s.handleEstoqueAdicionar)
	s.mux.HandleFunc("/estoque/excluir", s.handleEstoqueExcluir)

	s.mux.HandleFunc("/caixa/funcionario/relatoriofinanceiro", s.handleRelatorioFinanceiro)
	s.mux.HandleFunc("/caixa/funcionario/relatoriofinanceiro/export", s.handleRelatorioFinanceiroExport)
	s.mux.HandleFunc("/caixa/funcionario/relatoriodevendas", s.handleRelatorioVendas)
	s.mux.HandleFunc("/caixa/funcionario/relatoriodevendas/export", s.handleRelatorioVendasExport)

	s.mux.HandleFunc("/pedidos/lele", s.handleLele)
	s.mux.HandleFunc("/pedidos/lele_data", s.handleLeleData)
	s.mux.HandleFunc("/update_status/", s.handleUpdateStatus)
	s.mux.HandleFunc("/delete_pedido/", s.handleDeletePedido)
	s.mux.HandleFunc("/add_observacao/", s.handleAddObservacao)

	s.mux.HandleFunc("/social", s.handleSocial)
	s.mux.HandleFunc("/api/mensagens", s.handleMensagens)
	s.mux.HandleFunc("/api/usuarios_online", s.handleUsuariosOnline)
}

func (s *Server) render(w http.ResponseWriter, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func numeroDoPath(path, prefix string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(path, prefix))
}

func (s *Server) handleGoogleVerify(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/google8bc94c408f29159d.html")
}

// ---------------------------------------------------------------------------
// Sessão e identidade do cliente

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if sessaoClienteAtiva(w, r) != nil {
		http.Redirect(w, r, "/index", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if sessaoClienteAtiva(w, r) == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	s.render(w, "index.html", nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.render(w, "login.html", map[string]any{"ShowTutorial": true, "Msg": r.URL.Query().Get("msg")})
		return
	}
	nome := strings.TrimSpace(r.FormValue("nome"))
	senha := r.FormValue("senha")

	result, err := s.auth.Login(r.Context(), nome, senha)
	if err != nil {
		msg := "Erro interno no servidor"
		switch {
		case errors.Is(err, domain.ErrSenhaCurta):
			msg = "Senha deve ter pelo menos 6 dígitos"
		case errors.Is(err, domain.ErrSenhaIncorreta):
			msg = "Senha incorreta. O nome já está cadastrado, tente outra senha ou nome."
		case errors.Is(err, domain.ErrInvalidInput):
			msg = "Preencha todos os campos"
		default:
			log.Error().Err(err).Msg("login")
		}
		s.render(w, "login.html", map[string]any{"Erro": msg})
		return
	}

	// preserva os outros níveis já presentes no cookie
	claims := readSession(r)
	if claims == nil {
		claims = &sessionClaims{}
	}
	claims.Cliente = true
	claims.IDCliente = result.Cliente.IDCliente
	writeSession(w, claims)

	if result.PedirAniversario {
		s.render(w, "login.html", map[string]any{"SolicitarAniversario": true})
		return
	}
	http.Redirect(w, r, "/index", http.StatusFound)
}

func (s *Server) handleAtualizarAniversario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	claims := readSession(r)
	if claims == nil || claims.IDCliente == "" {
		jsonError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}
	aniversario := r.FormValue("aniversario")
	if aniversario == "" {
		jsonError(w, http.StatusBadRequest, "Data de aniversário é obrigatória")
		return
	}
	if err := s.auth.AtualizarAniversario(r.Context(), claims.IDCliente, aniversario); err != nil {
		log.Error().Err(err).Msg("atualizar aniversário")
		jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
		return
	}
	http.Redirect(w, r, "/index", http.StatusFound)
}

func (s *Server) handleEsqueciSenha(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	nome := strings.ToLower(strings.TrimSpace(r.FormValue("nome")))
	aniversario := r.FormValue("aniversario")
	novaSenha := r.FormValue("nova_senha")

	if err := s.auth.RedefinirSenha(r.Context(), nome, aniversario, novaSenha); err != nil {
		msg := "Erro interno no servidor"
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			msg = "Preencha todos os campos"
		case errors.Is(err, domain.ErrNotFound):
			msg = "Usuário não encontrado"
		case errors.Is(err, domain.ErrAniversarioIncorreto):
			msg = "Data de aniversário incorreta"
		case errors.Is(err, domain.ErrSenhaCurta):
			msg = "Senha deve ter pelo menos 6 dígitos"
		default:
			log.Error().Err(err).Msg("redefinir senha")
		}
		s.render(w, "login.html", map[string]any{"Erro": msg})
		return
	}
	if novaSenha == "" {
		// dados conferem; segunda fase pede a senha nova
		s.render(w, "login.html", map[string]any{"ResetSenha": true, "Nome": nome, "Aniversario": aniversario})
		return
	}
	http.Redirect(w, r, "/login?msg=Senha+redefinida+com+sucesso", http.StatusFound)
}

// ---------------------------------------------------------------------------
// Cardápio e pedidos

func (s *Server) handleCardapio(w http.ResponseWriter, r *http.Request) {
	mesa := r.URL.Query().Get("mesa")
	if mesa == "" {
		mesa = "1"
	}
	categorias, err := s.estoque.Cardapio(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("carregar cardápio")
		http.Error(w, "erro ao carregar cardápio", http.StatusInternalServerError)
		return
	}
	s.render(w, "cardapio.html", map[string]any{"Categorias": categorias, "Mesa": mesa})
}

func (s *Server) handleEnviarPedido(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	claims := sessaoClienteAtiva(w, r)
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "Usuário não logado, faça login primeiro")
		return
	}

	var req struct {
		Mesa        string                `json:"mesa"`
		Contato     string                `json:"contato"`
		Observacoes string                `json:"observacoes"`
		Produto     []usecase.LinhaPedido `json:"produto"`
		Total       float64               `json:"total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	pedido, err := s.pedidos.Enviar(r.Context(), claims.IDCliente, req.Mesa, req.Contato, req.Observacoes, req.Produto, req.Total)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			jsonError(w, http.StatusBadRequest, "Mesa, contato e itens são obrigatórios")
		case errors.Is(err, domain.ErrNotFound):
			jsonError(w, http.StatusNotFound, err.Error())
		default:
			log.Error().Err(err).Msg("enviar pedido")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Falha ao inserir pedido", "detalhe": err.Error()})
		}
		return
	}
	log.Info().Int("pedido", pedido.PedidoNumero).Str("mesa", pedido.Mesa).Msg("pedido criado")
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Pedido enviado com sucesso", "pedido_id": pedido.PedidoNumero})
}

func (s *Server) handlePedidos(w http.ResponseWriter, r *http.Request) {
	pedidos, err := s.pedidos.Listar(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("carregar pedidos")
		pedidos = nil
	}
	s.render(w, "pedidos.html", map[string]any{"Pedidos": pedidos})
}

func (s *Server) handleMeusPedidos(w http.ResponseWriter, r *http.Request) {
	claims := sessaoClienteAtiva(w, r)
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	pedidos, err := s.pedidos.MeusPedidos(r.Context(), claims.IDCliente)
	if err != nil {
		log.Error().Err(err).Msg("meus pedidos")
		pedidos = nil
	}
	s.render(w, "meuspedidos.html", map[string]any{"Pedidos": pedidos})
}

func (s *Server) handleInformacoes(w http.ResponseWriter, r *http.Request) {
	s.render(w, "informacoes.html", nil)
}

// ---------------------------------------------------------------------------
// Caixa

func (s *Server) handleCaixa(w http.ResponseWriter, r *http.Request) {
	s.render(w, "caixa.html", nil)
}

func (s *Server) handleMinhaComanda(w http.ResponseWriter, r *http.Request) {
	claims := sessaoClienteAtiva(w, r)
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	pedidos, totalGasto, numPedidos, err := s.pedidos.MinhaComanda(r.Context(), claims.IDCliente)
	if err != nil {
		log.Error().Err(err).Msg("minha comanda")
	}
	s.render(w, "minhacomanda.html", map[string]any{
		"Pedidos":    pedidos,
		"TotalGasto": totalGasto,
		"NumPedidos": numPedidos,
	})
}

func (s *Server) handleFuncionario(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if r.FormValue("senha") == s.staffKey {
			claims := readSession(r)
			if claims == nil {
				claims = &sessionClaims{}
			}
			claims.Funcionario = true
			writeSession(w, claims)
			http.Redirect(w, r, "/caixa/funcionario", http.StatusFound)
			return
		}
		s.render(w, "funcionario.html", map[string]any{"Erro": "Senha incorreta", "Autenticado": false})
		return
	}
	s.render(w, "funcionario.html", map[string]any{"Autenticado": sessaoFuncionarioAtiva(r)})
}

func (s *Server) handleRecebimento(w http.ResponseWriter, r *http.Request) {
	if !sessaoFuncionarioAtiva(r) {
		http.Redirect(w, r, "/caixa/funcionario", http.StatusFound)
		return
	}
	grupos, err := s.caixa.Recebimento(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("recebimento")
		grupos = nil
	}
	s.render(w, "recebimento.html", map[string]any{"Grupos": grupos})
}

func (s *Server) handleAplicarDesconto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if !sessaoFuncionarioAtiva(r) {
		jsonError(w, http.StatusUnauthorized, "Funcionário não autenticado")
		return
	}
	var req struct {
		PedidoNumero int     `json:"pedido_numero"`
		Desconto     float64 `json:"desconto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	err := s.caixa.AplicarDesconto(r.Context(), req.PedidoNumero, req.Desconto)
	switch {
	case err == nil:
		log.Info().Int("pedido", req.PedidoNumero).Float64("desconto", req.Desconto).Msg("desconto aplicado")
		writeJSON(w, http.StatusOK, map[string]any{"message": "Desconto aplicado com sucesso"})
	case errors.Is(err, domain.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, "Número do pedido e desconto válido são obrigatórios")
	case errors.Is(err, domain.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Pedido não encontrado")
	default:
		log.Error().Err(err).Msg("aplicar desconto")
		jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
	}
}

func (s *Server) handlePagarParcial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if !sessaoFuncionarioAtiva(r) {
		jsonError(w, http.StatusUnauthorized, "Funcionário não autenticado")
		return
	}
	var req struct {
		PedidoNumero int     `json:"pedido_numero"`
		Valor        float64 `json:"valor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	err := s.caixa.PagarParcial(r.Context(), req.PedidoNumero, req.Valor)
	switch {
	case err == nil:
		log.Info().Int("pedido", req.PedidoNumero).Float64("valor", req.Valor).Msg("pagamento parcial registrado")
		writeJSON(w, http.StatusOK, map[string]any{"message": "Pagamento parcial registrado com sucesso"})
	case errors.Is(err, domain.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, "Número do pedido e valor válido são obrigatórios")
	case errors.Is(err, domain.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Pedido não encontrado")
	case errors.Is(err, domain.ErrLimitReached):
		jsonError(w, http.StatusBadRequest, "Limite de pagamentos parciais atingido (2)")
	default:
		log.Error().Err(err).Msg("pagar parcial")
		jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
	}
}

func (s *Server) handlePagarComanda(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if !sessaoFuncionarioAtiva(r) {
		jsonError(w, http.StatusUnauthorized, "Funcionário não autenticado")
		return
	}
	var req struct {
		IDCliente string `json:"id_cliente"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	vendas, err := s.caixa.PagarComanda(r.Context(), req.IDCliente)
	switch {
	case err == nil:
		log.Info().Str("id_cliente", req.IDCliente).Int("vendas", vendas).Msg("comanda paga")
		writeJSON(w, http.StatusOK, map[string]any{"message": "Comanda paga com sucesso"})
	case errors.Is(err, domain.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, "ID do cliente é obrigatório")
	case errors.Is(err, domain.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Nenhum pedido encontrado para atualizar")
	default:
		log.Error().Err(err).Msg("pagar comanda")
		jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
	}
}

// ---------------------------------------------------------------------------
// Estoque

func (s *Server) handleEstoque(w http.ResponseWriter, r *http.Request) {
	if !sessaoFuncionarioAtiva(r) {
		http.Redirect(w, r, "/caixa/funcionario", http.StatusFound)
		return
	}
	grupos, categorias, err := s.estoque.Listar(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("carregar estoque")
	}
	s.render(w, "estoque.html", map[string]any{"Grupos": grupos, "Categorias": categorias})
}

func (s *Server) handleEstoqueUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if !sessaoFuncionarioAtiva(r) {
		jsonError(w, http.StatusUnauthorized, "Funcionário não autenticado")
		return
	}
	var req struct {
		ID         string `json:"id"`
		Disponivel bool   `json:"disponivel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if req.ID == "" {
		jsonError(w, http.StatusBadRequest, "ID do item é obrigatório")
		return
	}
	err := s.estoque.AtualizarDisponibilidade(r.Context(), req.ID, req.Disponivel)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Disponibilidade atualizada"})
	case errors.Is(err, domain.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Item não encontrado")
	default:
		log.Error().Err(err).Msg("atualizar disponibilidade")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Erro interno no servidor", "detalhe": err.Error()})
	}
}

func (s *Server) handleEstoqueAdicionar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if !sessaoFuncionarioAtiva(r) {
		jsonError(w, http.StatusUnauthorized, "Funcionário não autenticado")
		return
	}
	var req struct {
		Nome       string  `json:"nome"`
		Descricao  string  `json:"descricao"`
		Preco      float64 `json:"preco"`
		Disponivel bool    `json:"disponivel"`
		Categoria  string  `json:"categoria"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	item, err := s.estoque.Adicionar(r.Context(), domain.Item{
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		Preco:      req.Preco,
		Disponivel: req.Disponivel,
		Categoria:  req.Categoria,
	})
	switch {
	case err == nil:
		log.Info().Str("id", item.ID).Str("nome", item.Nome).Msg("produto adicionado")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case errors.Is(err, domain.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, "Todos os campos são obrigatórios")
	case errors.Is(err, domain.ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "ID já existe"})
	default:
		log.Error().Err(err).Msg("adicionar produto")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Erro interno no servidor", "detalhe": err.Error()})
	}
}

func (s *Server) handleEstoqueExcluir(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if !sessaoFuncionarioAtiva(r) {
		jsonError(w, http.StatusUnauthorized, "Funcionário não autenticado")
		return
	}
	var req struct {
		ID    string `json:"id"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if req.ID == "" {
		jsonError(w, http.StatusBadRequest, "ID do item é obrigatório")
		return
	}
	// excluir pede a senha do caixa de novo, além da sessão ativa
	if req.Senha != s.staffKey {
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "error": "Senha incorreta"})
		return
	}
	err := s.estoque.Excluir(r.Context(), req.ID)
	switch {
	case err == nil:
		log.Info().Str("id", req.ID).Msg("item excluído")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Item não encontrado"})
	default:
		log.Error().Err(err).Msg("excluir produto")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Erro interno no servidor", "detalhe": err.Error()})
	}
}

// ---------------------------------------------------------------------------
// Relatórios

func filtroFinanceiro(r *http.Request) usecase.FiltroFinanceiro {
	q := r.URL.Query()
	return usecase.FiltroFinanceiro{
		Nome:       strings.TrimSpace(q.Get("nome")),
		Status:     strings.TrimSpace(q.Get("status")),
		DataInicio: q.Get("data_inicio"),
		DataFim:    q.Get("data_fim"),
	}
}

func (s *Server) handleRelatorioFinanceiro(w http.ResponseWriter, r *http.Request) {
	if !sessaoFuncionarioAtiva(r) {
		http.Redirect(w, r, "/caixa/funcionario", http.StatusFound)
		return
	}
	f := filtroFinanceiro(r)
	rel, err := s.relatorios.Financeiro(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("relatório financeiro")
		rel = &usecase.RelatorioFinanceiro{}
	}
	s.render(w, "relatoriofinanceiro.html", map[string]any{
		"Pedidos":        rel.Pedidos,
		"TotalVendido":   rel.TotalVendido,
		"TotalPedidos":   rel.TotalPedidos,
		"PedidosPagos":   rel.PedidosPagos,
		"PedidosAbertos": rel.PedidosAbertos,
		"NomeFiltro":     f.Nome,
		"StatusFiltro":   f.Status,
		"DataInicio":     f.DataInicio,
		"DataFim":        f.DataFim,
	})
}

func (s *Server) handleRelatorioFinanceiroExport(w http.ResponseWriter, r *http.Request) {
	if !sessaoFuncionarioAtiva(r) {
		http.Redirect(w, r, "/caixa/funcionario", http.StatusFound)
		return
	}
	rel, err := s.relatorios.Financeiro(r.Context(), filtroFinanceiro(r))
	if err != nil {
		log.Error().Err(err).Msg("exportar relatório financeiro")
		http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	headers := []string{"Pedido", "Mesa", "Nome", "Total", "Desconto", "Status", "Data"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range rel.Pedidos {
		values := []any{p.PedidoNumero, p.Mesa, p.Nome, p.Total, p.Desconto, p.Status, p.DataHora}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	totalRow := len(rel.Pedidos) + 3
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	_ = f.SetCellValue(sheet, cell, "Total vendido")
	cell, _ = excelize.CoordinatesToCellName(2, totalRow)
	_ = f.SetCellValue(sheet, cell, rel.TotalVendido)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="relatorio_financeiro.xlsx"`)
	if _, err := f.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("escrever xlsx")
	}
}

func filtroVendas(r *http.Request) usecase.FiltroVendas {
	q := r.URL.Query()
	return usecase.FiltroVendas{
		Nome:       strings.TrimSpace(q.Get("nome")),
		Categoria:  q.Get("categoria"),
		DataInicio: q.Get("data_inicio"),
		DataFim:    q.Get("data_fim"),
	}
}

func (s *Server) handleRelatorioVendas(w http.ResponseWriter, r *http.Request) {
	if !sessaoFuncionarioAtiva(r) {
		http.Redirect(w, r, "/caixa/funcionario", http.StatusFound)
		return
	}
	f := filtroVendas(r)
	rel, err := s.relatorios.RelatorioVendas(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("relatório de vendas")
		rel = &usecase.RelatorioVendas{}
	}
	s.render(w, "relatoriodevendas.html", map[string]any{
		"Vendas":          rel.Vendas,
		"Categorias":      rel.Categorias,
		"TotalVendido":    rel.TotalVendido,
		"TotalItens":      rel.TotalItens,
		"NomeFiltro":      f.Nome,
		"CategoriaFiltro": f.Categoria,
		"DataInicio":      f.DataInicio,
		"DataFim":         f.DataFim,
	})
}

func (s *Server) handleRelatorioVendasExport(w http.ResponseWriter, r *http.Request) {
	if !sessaoFuncionarioAtiva(r) {
		http.Redirect(w, r, "/caixa/funcionario", http.StatusFound)
		return
	}
	rel, err := s.relatorios.RelatorioVendas(r.Context(), filtroVendas(r))
	if err != nil {
		log.Error().Err(err).Msg("exportar relatório de vendas")
		http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	headers := []string{"Produto", "Categoria", "Preço", "Quantidade", "Valor Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, v := range rel.Vendas {
		values := []any{v.Nome, v.Categoria, v.Preco, v.Quantidade, v.ValorTotal}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, val)
		}
	}
	totalRow := len(rel.Vendas) + 3
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	_ = f.SetCellValue(sheet, cell, "Total vendido")
	cell, _ = excelize.CoordinatesToCellName(2, totalRow)
	_ = f.SetCellValue(sheet, cell, rel.TotalVendido)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="relatorio_vendas.xlsx"`)
	if _, err := f.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("escrever xlsx")
	}
}

// ---------------------------------------------------------------------------
// Painel interno de pedidos

func (s *Server) handleLele(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		if r.FormValue("senha") == s.staffKey {
			claims := readSession(r)
			if claims == nil {
				claims = &sessionClaims{}
			}
			claims.Lele = true
			writeSession(w, claims)
			http.Redirect(w, r, "/pedidos/lele", http.StatusFound)
			return
		}
		s.render(w, "lele.html", map[string]any{"Erro": "Senha incorreta", "Autenticado": false})
		return
	}
	if !sessaoLeleAtiva(r) {
		s.render(w, "lele.html", map[string]any{"Autenticado": false})
		return
	}
	pedidos, err := s.pedidos.Listar(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("carregar painel")
		pedidos = nil
	}
	s.render(w, "lele.html", map[string]any{"Pedidos": pedidos, "Autenticado": true})
}

func (s *Server) handleLeleData(w http.ResponseWriter, r *http.Request) {
	pedidos, err := s.pedidos.Listar(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("lele_data")
		jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
		return
	}
	if pedidos == nil {
		pedidos = []domain.Pedido{}
	}
	writeJSON(w, http.StatusOK, pedidos)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	numero, err := numeroDoPath(r.URL.Path, "/update_status/")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := s.pedidos.AtualizarStatus(r.Context(), numero, req.Status); err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			log.Error().Err(err).Int("pedido", numero).Msg("atualizar status")
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	log.Info().Int("pedido", numero).Str("status", req.Status).Msg("status atualizado")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeletePedido(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	numero, err := numeroDoPath(r.URL.Path, "/delete_pedido/")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Número de pedido inválido")
		return
	}
	if err := s.pedidos.Excluir(r.Context(), numero); err != nil {
		log.Error().Err(err).Int("pedido", numero).Msg("excluir pedido")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Falha ao excluir pedido", "detalhe": err.Error()})
		return
	}
	log.Info().Int("pedido", numero).Msg("pedido excluído")
	writeJSON(w, http.StatusOK, map[string]any{"message": "Pedido excluído com sucesso"})
}

func (s *Server) handleAddObservacao(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	numero, err := numeroDoPath(r.URL.Path, "/add_observacao/")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "Número de pedido inválido")
		return
	}
	var req struct {
		Observacao string `json:"observacao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	err = s.pedidos.AddObservacao(r.Context(), numero, req.Observacao)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"message": "Observação adicionada com sucesso"})
	case errors.Is(err, domain.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, "Observação é obrigatória")
	case errors.Is(err, domain.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Pedido não encontrado")
	case errors.Is(err, domain.ErrLimitReached):
		jsonError(w, http.StatusBadRequest, "Limite de observações adicionais atingido")
	default:
		log.Error().Err(err).Int("pedido", numero).Msg("adicionar observação")
		jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
	}
}

// ---------------------------------------------------------------------------
// Chat e presença

func (s *Server) handleSocial(w http.ResponseWriter, r *http.Request) {
	if sessaoClienteAtiva(w, r) == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	s.render(w, "social.html", nil)
}

func (s *Server) handleMensagens(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		chatID := r.URL.Query().Get("chat_id")
		if chatID == "" {
			jsonError(w, http.StatusBadRequest, "chat_id é obrigatório")
			return
		}
		msgs, err := s.chat.Listar(r.Context(), chatID)
		if err != nil {
			log.Error().Err(err).Msg("listar mensagens")
			jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
			return
		}
		if msgs == nil {
			msgs = []domain.Mensagem{}
		}
		writeJSON(w, http.StatusOK, msgs)
	case http.MethodPost:
		var req domain.Mensagem
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, "JSON inválido")
			return
		}
		if claims := readSession(r); claims != nil && req.IDCliente == "" {
			req.IDCliente = claims.IDCliente
		}
		msg, err := s.chat.Enviar(r.Context(), req)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, msg)
		case errors.Is(err, domain.ErrInvalidInput):
			jsonError(w, http.StatusBadRequest, "chat_id e mensagem são obrigatórios")
		default:
			log.Error().Err(err).Msg("enviar mensagem")
			jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
		}
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleUsuariosOnline(w http.ResponseWriter, r *http.Request) {
	usuarios, err := s.chat.UsuariosOnline(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("usuários online")
		jsonError(w, http.StatusInternalServerError, "Erro interno no servidor")
		return
	}
	if usuarios == nil {
		usuarios = []usecase.UsuarioOnline{}
	}
	writeJSON(w, http.StatusOK, usuarios)
}
