package network

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/leengari/relalg/internal/domain/data"
	"github.com/leengari/relalg/internal/domain/errors"
	"github.com/leengari/relalg/internal/domain/schema"
	"github.com/leengari/relalg/internal/engine"
)

// TableInfo describes a table without its rows
type TableInfo struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	Domains    []string `json:"domains"`
	Key        []string `json:"key"`
	Rows       int      `json:"rows"`
}

// TableDump is a table with its rows in key order
type TableDump struct {
	TableInfo
	Tuples []data.Tuple `json:"tuples"`
}

// Error is the body of every failed request
type Error struct {
	Message string `json:"error"`
}

type handler struct {
	eng *engine.Engine
}

// NewRouter exposes the catalog read-only:
//
//	GET /tables                          list tables
//	GET /tables/{name}                   dump a table
//	GET /tables/{name}/select?where=...  select over a table
//	GET /tables/{name}/project?attrs=... project a table
//
// Query results are computed on demand and not kept in the catalog.
func NewRouter(eng *engine.Engine) *mux.Router {
	h := &handler{eng: eng}

	r := mux.NewRouter()
	r.HandleFunc("/tables", h.listTables).Methods(http.MethodGet)
	r.HandleFunc("/tables/{name}", h.getTable).Methods(http.MethodGet)
	r.HandleFunc("/tables/{name}/select", h.selectTable).Methods(http.MethodGet)
	r.HandleFunc("/tables/{name}/project", h.projectTable).Methods(http.MethodGet)
	r.Use(logRequests)
	return r
}

// Start serves the catalog on addr until the server fails
func Start(addr string, eng *engine.Engine) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(eng),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("Serving catalog", "addr", addr)
	return srv.ListenAndServe()
}

func (h *handler) listTables(w http.ResponseWriter, r *http.Request) {
	names := h.eng.ListTables()
	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		if t, ok := h.eng.Table(name); ok {
			tables = append(tables, info(t))
		}
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *handler) getTable(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	t, ok := h.eng.Table(name)
	if !ok {
		writeError(w, &engine.TableNotFoundError{Name: name})
		return
	}
	writeJSON(w, http.StatusOK, dump(t))
}

func (h *handler) selectTable(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	h.query(w, func() (*schema.Table, error) {
		return h.eng.Select(name, r.URL.Query().Get("where"))
	})
}

func (h *handler) projectTable(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	h.query(w, func() (*schema.Table, error) {
		return h.eng.Project(name, r.URL.Query().Get("attrs"))
	})
}

// query runs an operator, writes its result and drops it from the catalog
func (h *handler) query(w http.ResponseWriter, run func() (*schema.Table, error)) {
	result, err := run()
	if err != nil {
		writeError(w, err)
		return
	}
	defer func() {
		if err := h.eng.Drop(result.Name); err != nil {
			slog.Warn("failed to drop query result", "table", result.Name, "error", err)
		}
	}()
	writeJSON(w, http.StatusOK, dump(result))
}

func info(t *schema.Table) TableInfo {
	domains := make([]string, len(t.Schema.Domains))
	for i, d := range t.Schema.Domains {
		domains[i] = d.String()
	}
	return TableInfo{
		Name:       t.Name,
		Attributes: t.Schema.Attributes,
		Domains:    domains,
		Key:        t.Schema.Key,
		Rows:       t.IndexLen(),
	}
}

func dump(t *schema.Table) TableDump {
	rows := t.Rows()
	if rows == nil {
		rows = []data.Tuple{}
	}
	return TableDump{TableInfo: info(t), Tuples: rows}
}

// statusOf maps engine errors onto HTTP status codes
func statusOf(err error) int {
	var (
		notFound  *engine.TableNotFoundError
		condErr   *errors.ConditionError
		columnErr *errors.ColumnNotFoundError
	)
	switch {
	case stderrors.As(err, &notFound):
		return http.StatusNotFound
	case stderrors.As(err, &condErr), stderrors.As(err, &columnErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), Error{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode error", "error", err)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
