// Package server exposes the accumulate-time endpoint and the dashboard's
// read API over HTTP, preserving the original dashboard's routes and wire
// format.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dcoutinho/tempora/internal/constants"
	"github.com/dcoutinho/tempora/internal/engine"
	"github.com/dcoutinho/tempora/internal/logger"
	"github.com/dcoutinho/tempora/internal/report"
	"github.com/dcoutinho/tempora/internal/storage"
)

// Server serves the time-accounting HTTP surface. Mutations are serialized
// with a mutex; the store assumes a single writer.
type Server struct {
	store     storage.Provider
	eng       *engine.Engine
	staticDir string
	now       func() time.Time

	mu sync.Mutex
}

func New(store storage.Provider, staticDir string) *Server {
	return &Server{
		store:     store,
		eng:       engine.New(store),
		staticDir: staticDir,
		now:       time.Now,
	}
}

// WithClock overrides the server's notion of "now" for report reference
// dates. Test hook.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	s.eng.WithClock(now)
	return s
}

// Handler builds the route table wrapped in request-ID and logging
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/salvar-tempo", s.handleSaveTime)
	mux.HandleFunc("/api/relatorio", s.handleReport)
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
	return s.withRequestLog(mux)
}

type saveTimeRequest struct {
	Usuario  string `json:"usuario"`
	Tarefa   string `json:"tarefa"`
	Segundos *int   `json:"segundos"`
}

func (s *Server) handleSaveTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Método não permitido.")
		return
	}

	var req saveTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}
	if req.Usuario == "" || req.Tarefa == "" || req.Segundos == nil {
		writeError(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load()
	if err != nil {
		logger.Error("Failed to load document", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor.")
		return
	}

	err = s.eng.Accumulate(doc, req.Usuario, req.Tarefa, *req.Segundos)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Tempo registrado com sucesso!"})
	case errors.Is(err, engine.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "Usuário não encontrado.")
	case errors.Is(err, engine.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Tarefa não encontrada.")
	case errors.Is(err, engine.ErrValidation):
		writeError(w, http.StatusBadRequest, "Dados inválidos.")
	default:
		logger.Error("Failed to accumulate time", "user", req.Usuario, "task", req.Tarefa, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor.")
	}
}

// periodFromQuery accepts both the English period names and the Portuguese
// ones the original dashboard used. Defaults to weekly like the dashboard's
// initial render.
func periodFromQuery(raw string) (constants.Period, bool) {
	switch raw {
	case "":
		return constants.PeriodWeekly, true
	case "diario":
		return constants.PeriodDaily, true
	case "semanal":
		return constants.PeriodWeekly, true
	case "mensal":
		return constants.PeriodMonthly, true
	}
	p := constants.Period(raw)
	return p, p.Valid()
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Método não permitido.")
		return
	}

	q := r.URL.Query()
	userName := q.Get("usuario")
	taskName := q.Get("tarefa")
	if userName == "" || taskName == "" {
		writeError(w, http.StatusBadRequest, "Dados inválidos.")
		return
	}
	period, ok := periodFromQuery(q.Get("periodo"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Período inválido.")
		return
	}

	doc, err := s.store.Load()
	if err != nil {
		logger.Error("Failed to load document", "error", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor.")
		return
	}

	user := doc.FindUser(userName)
	if user == nil {
		writeError(w, http.StatusNotFound, "Usuário não encontrado.")
		return
	}
	task := user.FindTask(taskName)
	if task == nil {
		writeError(w, http.StatusNotFound, "Tarefa não encontrada.")
		return
	}

	writeJSON(w, http.StatusOK, report.Aggregate(user, task, period, s.now()))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
