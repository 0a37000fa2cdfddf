package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"investment-calculator/domain"
	"investment-calculator/service"
)

type ProjectionHandler struct {
	service   *service.ProjectionService
	formatter *service.Formatter
	logger    *zap.Logger
}

func NewProjectionHandler(
	service *service.ProjectionService,
	formatter *service.Formatter,
	logger *zap.Logger,
) *ProjectionHandler {
	return &ProjectionHandler{service: service, formatter: formatter, logger: logger}
}

type tableResponse struct {
	Config domain.InvestmentConfig `json:"config"`
	Rows   []domain.TableRow       `json:"rows"`
}

// CalculateProjection handles a JSON InvestmentConfig body.
func (h *ProjectionHandler) CalculateProjection(w http.ResponseWriter, r *http.Request) {
	var input domain.InvestmentConfig
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

// ProjectFromQuery starts from the default form values and overrides one
// field per query parameter. format=table returns formatted table rows.
func (h *ProjectionHandler) ProjectFromQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	config := domain.DefaultInvestmentConfig()

	for name, values := range query {
		if name == "format" || len(values) == 0 {
			continue
		}
		field, err := domain.ParseField(name)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		config, err = config.WithText(field, values[len(values)-1])
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	result, err := h.service.Calculate(r.Context(), config)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if query.Get("format") == "table" {
		writeJSON(w, h.logger, http.StatusOK, tableResponse{
			Config: result.Config,
			Rows:   service.BuildTable(result.Snapshots, h.formatter),
		})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *ProjectionHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, records)
}
