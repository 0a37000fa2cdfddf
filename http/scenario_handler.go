package http

import (
	"net/http"

	"go.uber.org/zap"

	"investment-calculator/domain"
	"investment-calculator/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
	logger  *zap.Logger
}

func NewScenarioHandler(service *service.ScenarioService, logger *zap.Logger) *ScenarioHandler {
	return &ScenarioHandler{service: service, logger: logger}
}

func (h *ScenarioHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	results, err := h.service.Compare(r.Context(), input.Scenarios)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, results)
}
