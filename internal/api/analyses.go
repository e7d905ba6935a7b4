package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Ranker/internal/analysis"
	"github.com/MikeSquared-Agency/Ranker/internal/report"
	"github.com/MikeSquared-Agency/Ranker/internal/scoring"
	"github.com/MikeSquared-Agency/Ranker/internal/sheet"
	"github.com/MikeSquared-Agency/Ranker/internal/simulation"
	"github.com/MikeSquared-Agency/Ranker/internal/store"
)

type AnalysesHandler struct {
	service   *analysis.Service
	store     store.Store
	defaults  simulation.Params
	sheet     string
	maxUpload int64
	logger    *slog.Logger
}

// NewAnalysesHandler builds the handler. maxUpload bounds both JSON bodies
// and multipart uploads.
func NewAnalysesHandler(svc *analysis.Service, s store.Store, defaults simulation.Params, sheetName string, maxUpload int64, logger *slog.Logger) *AnalysesHandler {
	return &AnalysesHandler{service: svc, store: s, defaults: defaults, sheet: sheetName, maxUpload: maxUpload, logger: logger}
}

// ParamsOverride replaces individual simulation defaults; nil fields keep them.
type ParamsOverride struct {
	Replicates         *int     `json:"replicates,omitempty"`
	ScoreNoise         *float64 `json:"score_noise,omitempty"`
	WeightPerturbation *float64 `json:"weight_perturbation,omitempty"`
	ScoreSeed          *int64   `json:"score_seed,omitempty"`
	WeightSeed         *int64   `json:"weight_seed,omitempty"`
}

func (o *ParamsOverride) apply(p simulation.Params) simulation.Params {
	if o == nil {
		return p
	}
	if o.Replicates != nil {
		p.Replicates = *o.Replicates
	}
	if o.ScoreNoise != nil {
		p.ScoreNoise = *o.ScoreNoise
	}
	if o.WeightPerturbation != nil {
		p.WeightPerturbation = *o.WeightPerturbation
	}
	if o.ScoreSeed != nil {
		p.ScoreSeed = *o.ScoreSeed
	}
	if o.WeightSeed != nil {
		p.WeightSeed = *o.WeightSeed
	}
	return p
}

type CreateAnalysisRequest struct {
	Name     string          `json:"name"`
	IDColumn string          `json:"id_column,omitempty"`
	Table    *sheet.Table    `json:"table"`
	Params   *ParamsOverride `json:"params,omitempty"`
}

func (h *AnalysesHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	var req CreateAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Table == nil || len(req.Table.Headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "table with headers required"})
		return
	}

	params := req.Params.apply(h.defaults)
	h.run(w, r, analysis.Request{
		RequestID: requestID(r),
		Name:      req.Name,
		IDColumn:  req.IDColumn,
		Table:     req.Table,
		Params:    &params,
	})
}

// Upload accepts a multipart form with a "file" part (.xlsx or .csv) and
// optional name, id_column, sheet, replicates, noise, wpert, seed_scores
// and seed_weights fields.
func (h *AnalysesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()

	sheetName := r.FormValue("sheet")
	if sheetName == "" {
		sheetName = h.sheet
	}
	table, err := sheet.Read(file, sheet.FormatFromName(header.Filename), sheetName)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	params, err := formParams(r, h.defaults)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}
	h.run(w, r, analysis.Request{
		RequestID: requestID(r),
		Name:      name,
		IDColumn:  r.FormValue("id_column"),
		Table:     table,
		Params:    &params,
	})
}

func formParams(r *http.Request, p simulation.Params) (simulation.Params, error) {
	if v := r.FormValue("replicates"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("invalid replicates")
		}
		p.Replicates = n
	}
	floats := []struct {
		field string
		dst   *float64
	}{
		{"noise", &p.ScoreNoise},
		{"wpert", &p.WeightPerturbation},
	}
	for _, f := range floats {
		if v := r.FormValue(f.field); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, fmt.Errorf("invalid %s", f.field)
			}
			*f.dst = x
		}
	}
	seeds := []struct {
		field string
		dst   *int64
	}{
		{"seed_scores", &p.ScoreSeed},
		{"seed_weights", &p.WeightSeed},
	}
	for _, s := range seeds {
		if v := r.FormValue(s.field); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return p, fmt.Errorf("invalid %s", s.field)
			}
			*s.dst = n
		}
	}
	return p, nil
}

func (h *AnalysesHandler) run(w http.ResponseWriter, r *http.Request, req analysis.Request) {
	a, err := h.service.Run(r.Context(), req)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	if !analysis.IsInputError(err) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analysis failed"})
		return
	}
	body := map[string]interface{}{"error": err.Error()}
	var nonNumeric *scoring.NonNumericDomainValuesError
	if errors.As(err, &nonNumeric) {
		body["columns"] = nonNumeric.Columns
	}
	var invalid *simulation.InvalidParameterError
	if errors.As(err, &invalid) {
		body["parameter"] = invalid.Name
	}
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

func (h *AnalysesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.AnalysisFilter{Name: r.URL.Query().Get("name")}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	list, err := h.store.ListAnalyses(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AnalysesHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AnalysesHandler) IntervalsCSV(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "text/csv", report.IntervalsFile, report.WriteIntervalsCSV)
}

func (h *AnalysesHandler) RobustnessCSV(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "text/csv", report.RobustnessFile, report.WriteRobustnessCSV)
}

func (h *AnalysesHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		report.WorkbookFile, report.WriteWorkbook)
}

func (h *AnalysesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid analysis id"})
		return
	}
	if err := h.store.DeleteAnalysis(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AnalysesHandler) load(w http.ResponseWriter, r *http.Request) (*store.Analysis, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid analysis id"})
		return nil, false
	}
	a, err := h.store.GetAnalysis(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if a == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
		return nil, false
	}
	return a, true
}

func (h *AnalysesHandler) download(w http.ResponseWriter, r *http.Request, contentType, filename string, write func(io.Writer, *store.Analysis) error) {
	a, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if err := write(w, a); err != nil {
		h.logger.Error("write download failed",
			"analysis_id", a.ID,
			"file", filename,
			"request_id", requestID(r),
			"error", err,
		)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
