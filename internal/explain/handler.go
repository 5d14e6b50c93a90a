package explain

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// defaultMaxCodeChars bounds the snippet length accepted by the API.
const defaultMaxCodeChars = 65536

// Config wires dependencies for the explain API handler.
type Config struct {
	Provider     Provider
	MaxCodeChars int
	Logger       *slog.Logger
}

// NewHandler builds the HTTP handler for the explain API.
func NewHandler(cfg Config) http.Handler {
	h := &handler{
		provider:     cfg.Provider,
		maxCodeChars: cfg.MaxCodeChars,
		logger:       cfg.Logger,
	}
	if h.maxCodeChars <= 0 {
		h.maxCodeChars = defaultMaxCodeChars
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/explain", h.handleExplain)
	return mux
}

type handler struct {
	provider     Provider
	maxCodeChars int
	logger       *slog.Logger
}

type explainRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type explainResponse struct {
	ID          string `json:"id"`
	Explanation string `json:"explanation"`
	Model       string `json:"model"`
	Usage       Usage  `json:"usage"`
}

func (h *handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.provider == nil {
		writeError(w, http.StatusInternalServerError, "provider_unavailable")
		return
	}
	var req explainRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code_required")
		return
	}
	if len(req.Code) > h.maxCodeChars {
		writeError(w, http.StatusBadRequest, "code_too_long")
		return
	}

	result, err := h.provider.Explain(r.Context(), req.Code, req.Language)
	if err != nil {
		h.logger.Error("explanation failed", "error", err)
		writeError(w, http.StatusBadGateway, "explanation_failed")
		return
	}
	writeExplainResponse(w, http.StatusOK, explainResponse{
		ID:          uuid.NewString(),
		Explanation: result.Explanation,
		Model:       result.Model,
		Usage:       result.Usage,
	})
}
