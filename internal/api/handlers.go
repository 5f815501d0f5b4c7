package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/logging"
)

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, err error) {
	logging.Warn().Int("status", status).Err(err).Msg("API error")
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// respondResult maps a core error to 400 for caller mistakes and 502 for upstream failures.
func respondResult(w http.ResponseWriter, result any, err error) {
	switch {
	case errors.Is(err, core.ErrNoCategories):
		respondError(w, http.StatusBadRequest, err)
	case err != nil:
		respondError(w, http.StatusBadGateway, err)
	default:
		respondJSON(w, http.StatusOK, dataResponse{Data: result})
	}
}

// requestConfig clones the base config and applies the query parameters.
func (h *Handler) requestConfig(r *http.Request) (*contract.Config, error) {
	q := r.URL.Query()
	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.New("limit must be an integer")
		}
		limit = n
	}

	cfg := h.baseCfg.Clone()
	err := contract.RevalidateRequest(cfg, contract.RequestParams{
		Preset:     q.Get("preset"),
		Start:      q.Get("start"),
		End:        q.Get("end"),
		Category:   q.Get("category"),
		Categories: q.Get("categories"),
		Platform:   q.Get("platform"),
		Filter:     q.Get("filter"),
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, dataResponse{Data: map[string]string{"status": "ok"}})
}

// Trend serves GET /api/trend.
func (h *Handler) Trend(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetTrendResults(r.Context(), cfg, h.src)
	respondResult(w, result, err)
}

// Compare serves GET /api/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetCompareResults(r.Context(), cfg, h.src)
	respondResult(w, result, err)
}

// Volatility serves GET /api/volatility with labeled entries.
func (h *Handler) Volatility(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetVolatilityResults(r.Context(), cfg, h.src)
	if err != nil {
		respondResult(w, nil, err)
		return
	}
	respondResult(w, contract.LabelRanked(result.Views, cfg.Platforms, cfg.Labels), nil)
}

// Live serves GET /api/live.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetLiveResults(r.Context(), cfg, h.src)
	respondResult(w, result, err)
}

// Events serves GET /api/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetEventsResults(r.Context(), cfg, h.src)
	respondResult(w, result, err)
}

// Insights serves GET /api/insights.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	result, err := core.GetInsightsResults(r.Context(), cfg, h.src)
	respondResult(w, result, err)
}

// Resolve serves GET /api/resolve. It never calls upstream.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.requestConfig(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondResult(w, core.GetResolveResult(cfg), nil)
}
