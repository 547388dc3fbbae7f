package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dcoutinho/tempora/internal/models"
	"github.com/dcoutinho/tempora/internal/storage"
)

func seedDocument() *models.Document {
	return &models.Document{
		Users: []models.User{
			{
				Name:  "Daniel",
				Goals: &models.Goals{Daily: "02:00:00"},
				Tasks: []models.Task{
					{
						Name: "Design",
						Records: []models.TimeRecord{
							{Date: "2026-08-31", Time: "00:30:00"},
						},
					},
				},
			},
		},
	}
}

func setupServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if err := store.Init(seedDocument()); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	srv := New(store, "").WithClock(func() time.Time {
		return time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	})
	return srv, store
}

func postSaveTime(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/salvar-tempo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSaveTime(t *testing.T) {
	srv, store := setupServer(t)
	handler := srv.Handler()

	rec := postSaveTime(t, handler, `{"usuario":"Daniel","tarefa":"Design","segundos":900}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, http.StatusOK, rec.Body)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["message"] == "" {
		t.Error("response has no message field")
	}

	doc, err := store.Load()
	if err != nil {
		t.Fatalf("failed to reload document: %v", err)
	}
	got := doc.FindUser("Daniel").FindTask("Design").RecordFor("2026-08-31")
	if got == nil || got.Time != "00:45:00" {
		t.Errorf("record after save = %+v, want 00:45:00", got)
	}
}

func TestSaveTimeValidation(t *testing.T) {
	srv, _ := setupServer(t)
	handler := srv.Handler()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing user", `{"tarefa":"Design","segundos":60}`, http.StatusBadRequest},
		{"missing task", `{"usuario":"Daniel","segundos":60}`, http.StatusBadRequest},
		{"missing seconds", `{"usuario":"Daniel","tarefa":"Design"}`, http.StatusBadRequest},
		{"seconds not a number", `{"usuario":"Daniel","tarefa":"Design","segundos":"abc"}`, http.StatusBadRequest},
		{"negative seconds", `{"usuario":"Daniel","tarefa":"Design","segundos":-5}`, http.StatusBadRequest},
		{"malformed json", `{"usuario":`, http.StatusBadRequest},
		{"unknown user", `{"usuario":"Alice","tarefa":"Design","segundos":60}`, http.StatusNotFound},
		{"unknown task", `{"usuario":"Daniel","tarefa":"Nope","segundos":60}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postSaveTime(t, handler, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body = %s", rec.Code, tt.want, rec.Body)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if resp["error"] == "" {
				t.Error("error response has no error field")
			}
		})
	}
}

func TestSaveTimeRejectsGet(t *testing.T) {
	srv, _ := setupServer(t)
	req := httptest.NewRequest(http.MethodGet, "/salvar-tempo", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestSaveTimeStoreFailure(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(dataPath, []byte("not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt data file: %v", err)
	}
	srv := New(storage.NewJSONStore(dataPath), "")

	rec := postSaveTime(t, srv.Handler(), `{"usuario":"Daniel","tarefa":"Design","segundos":60}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestReport(t *testing.T) {
	srv, _ := setupServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet,
		"/api/relatorio?usuario=Daniel&tarefa=Design&periodo=diario", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, http.StatusOK, rec.Body)
	}

	var resp struct {
		Period       string `json:"periodo"`
		TotalSeconds int    `json:"total_segundos"`
		Formatted    string `json:"tempo_rastreado"`
		Productivity int    `json:"produtividade"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Period != "daily" {
		t.Errorf("periodo = %q, want %q", resp.Period, "daily")
	}
	if resp.TotalSeconds != 1800 {
		t.Errorf("total_segundos = %d, want 1800", resp.TotalSeconds)
	}
	if resp.Formatted != "00:30:00" {
		t.Errorf("tempo_rastreado = %q, want %q", resp.Formatted, "00:30:00")
	}
	if resp.Productivity != 25 {
		t.Errorf("produtividade = %d, want 25", resp.Productivity)
	}
}

func TestReportValidation(t *testing.T) {
	srv, _ := setupServer(t)
	handler := srv.Handler()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing user", "tarefa=Design", http.StatusBadRequest},
		{"missing task", "usuario=Daniel", http.StatusBadRequest},
		{"bad period", "usuario=Daniel&tarefa=Design&periodo=anual", http.StatusBadRequest},
		{"unknown user", "usuario=Alice&tarefa=Design", http.StatusNotFound},
		{"unknown task", "usuario=Daniel&tarefa=Nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/relatorio?"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body = %s", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := setupServer(t)
	req := httptest.NewRequest(http.MethodGet,
		"/api/relatorio?usuario=Daniel&tarefa=Design", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("response missing X-Request-Id header")
	}
}
