package inbound_api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/BearBump/LoadBox/internal/platform/logger"
	"github.com/BearBump/LoadBox/internal/services/inbound"
	"github.com/go-chi/chi/v5"
)

type InboundAPI struct {
	svc *inbound.Service
	log *logger.Logger
}

func New(svc *inbound.Service, log *logger.Logger) *InboundAPI {
	if log == nil {
		log = logger.Nop()
	}
	return &InboundAPI{svc: svc, log: log}
}

// Register mounts the inbound routes on r.
func (a *InboundAPI) Register(r chi.Router) {
	r.Route("/inbound-loads", func(r chi.Router) {
		r.Get("/queue", a.Queue)
		r.Post("/process", a.Process)
	})
}

type queueResponse struct {
	OK    bool                   `json:"ok"`
	Count int                    `json:"count"`
	Rows  []inbound.ReviewRecord `json:"rows"`
}

type processRequest struct {
	ImportID int64 `json:"import_id"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Queue handles GET /inbound-loads/queue?limit=&only=&q=&match=.
func (a *InboundAPI) Queue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := inbound.DefaultQueueLimit
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	only := strings.ToLower(strings.TrimSpace(q.Get("only")))
	if only == "" {
		only = inbound.OnlyUnprocessed
	}

	rows, err := a.svc.BuildQueue(r.Context(), inbound.QueueParams{
		Limit: inbound.ClampLimit(limit),
		Only:  only,
		Query: q.Get("q"),
		Match: strings.ToUpper(strings.TrimSpace(q.Get("match"))),
	})
	if err != nil {
		a.log.Error("build queue failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, queueResponse{OK: true, Count: len(rows), Rows: rows})
}

// Process handles POST /inbound-loads/process {"import_id": N}.
func (a *InboundAPI) Process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImportID <= 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "import_id is required"})
		return
	}

	out, err := a.svc.ProcessImport(r.Context(), req.ImportID)
	if err != nil {
		a.log.Error("process import failed", "import_id", req.ImportID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	status := http.StatusOK
	if !out.OK {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
