// Package http exposes the JSON API. Callers identify themselves with the
// X-User-ID header; every resource is scoped to that owner.
package http

import (
	"context"
	"net/http"
	"time"

	applog "finbud/internal/log"
	"finbud/internal/realtime"
	"finbud/internal/services"
)

type Server struct {
	httpServer *http.Server

	budgets      *services.BudgetService
	transactions *services.TransactionService
	assets       *services.AssetService
	debts        *services.DebtService
	quiz         *services.QuizService
	categories   services.CategoryStore
	hub          *realtime.Hub
	logger       *applog.Logger
}

// Deps carries the server's collaborators. Hub may be nil when the realtime
// channel is disabled.
type Deps struct {
	Budgets      *services.BudgetService
	Transactions *services.TransactionService
	Assets       *services.AssetService
	Debts        *services.DebtService
	Quiz         *services.QuizService
	Categories   services.CategoryStore
	Hub          *realtime.Hub
	Logger       *applog.Logger
}

func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		budgets:      deps.Budgets,
		transactions: deps.Transactions,
		assets:       deps.Assets,
		debts:        deps.Debts,
		quiz:         deps.Quiz,
		categories:   deps.Categories,
		hub:          deps.Hub,
		logger:       deps.Logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /categories", s.handleListCategories)

	mux.HandleFunc("POST /budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /budgets", s.handleListBudgets)
	mux.HandleFunc("GET /budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("PUT /budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("GET /transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /assets", s.handleCreateAsset)
	mux.HandleFunc("GET /assets", s.handleListAssets)
	mux.HandleFunc("GET /assets/{id}", s.handleGetAsset)
	mux.HandleFunc("PUT /assets/{id}", s.handleUpdateAsset)
	mux.HandleFunc("DELETE /assets/{id}", s.handleDeleteAsset)

	mux.HandleFunc("POST /debts", s.handleCreateDebt)
	mux.HandleFunc("GET /debts", s.handleListDebts)
	mux.HandleFunc("GET /debts/{id}", s.handleGetDebt)
	mux.HandleFunc("PUT /debts/{id}", s.handleUpdateDebt)
	mux.HandleFunc("DELETE /debts/{id}", s.handleDeleteDebt)

	mux.HandleFunc("GET /quiz/questions", s.handleQuizQuestions)
	mux.HandleFunc("POST /quiz/score", s.handleQuizScore)

	mux.HandleFunc("GET /projections/compound", s.handleCompoundProjection)
	mux.HandleFunc("GET /projections/retirement", s.handleRetirementProjection)

	if s.hub != nil {
		mux.HandleFunc("GET /ws", s.handleWebsocket)
	}

	handler := applog.Middleware(deps.Logger)(mux)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// handleWebsocket upgrades the connection and registers it for the calling
// owner's events.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.hub.HandleConnect(w, r, owner)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Type:  string(c.Type),
			Group: c.Group,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Group string `json:"group,omitempty"`
}
