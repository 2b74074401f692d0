package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
	"svw.info/maxrun/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/inspect", h.handleInspect)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

// decodeSample reads a sample body, fills in defaults and rejects grids
// with unusable dimensions.
func decodeSample(r *http.Request, s *domain.Sample) error {
	if err := json.NewDecoder(r.Body).Decode(s); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	s.Topology = s.Topology.Normalize()
	if err := s.Topology.Validate(); err != nil {
		return err
	}
	if len(s.Cells) == 0 {
		s.Cells = make([]domain.Tile, s.Topology.Cells())
	}
	return nil
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != method {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// ---- Generate / Solve ----

type generateReq struct {
	Seed     int64         `json:"seed,omitempty"`
	Template domain.Sample `json:"template"`
}

type sampleResp struct {
	Sample     *domain.Sample `json:"sample,omitempty"`
	Seed       int64          `json:"seed,omitempty"`
	DurationMs int64          `json:"durationMs,omitempty"`
	Nodes      int            `json:"nodes,omitempty"`
	Checks     int            `json:"checks,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func statsResp(s *domain.Sample, seed int64, st ports.Stats) sampleResp {
	return sampleResp{
		Sample:     s,
		Seed:       seed,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
		Checks:     st.Checks,
	}
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sampleResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	out, st, err := h.UC.Generate(r.Context(), seed, &req.Template)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		resp := statsResp(nil, seed, st)
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	_ = json.NewEncoder(w).Encode(statsResp(out, seed, st))
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var in domain.Sample
	if err := decodeSample(r, &in); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sampleResp{Error: err.Error()})
		return
	}
	out, st, err := h.UC.Solve(r.Context(), &in, in.Seed)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		resp := statsResp(nil, in.Seed, st)
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	_ = json.NewEncoder(w).Encode(statsResp(out, in.Seed, st))
}

// ---- Validate ----

type validateResp struct {
	OK        bool           `json:"ok"`
	Conflicts []domain.Point `json:"conflicts,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var in domain.Sample
	if err := decodeSample(r, &in); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(validateResp{Error: err.Error()})
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), &in)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(validateResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Inspect ----

type inspectResp struct {
	ports.Report
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleInspect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var in domain.Sample
	if err := decodeSample(r, &in); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(inspectResp{Error: err.Error()})
		return
	}
	rep, err := h.UC.Inspect(r.Context(), &in)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(inspectResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(inspectResp{Report: rep})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var s domain.Sample
	if err := decodeSample(r, &s); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(saveResp{Error: err.Error()})
		return
	}
	if err := h.UC.Save(r.Context(), &s); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(saveResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(saveResp{ID: s.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Sample *domain.Sample `json:"sample,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(loadResp{Error: "invalid JSON or missing id"})
		return
	}
	s, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(loadResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(loadResp{Sample: s})
}

type listResp struct {
	Samples []domain.SampleMeta `json:"samples"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ss, err := h.UC.List(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(listResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(listResp{Samples: ss})
}
