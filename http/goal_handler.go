package http

import (
	"net/http"

	"go.uber.org/zap"

	"investment-calculator/domain"
	"investment-calculator/service"
)

type GoalHandler struct {
	service *service.GoalService
	logger  *zap.Logger
}

func NewGoalHandler(service *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{service: service, logger: logger}
}

func (h *GoalHandler) Reach(w http.ResponseWriter, r *http.Request) {
	var input domain.GoalInput
	if !decodeJSON(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.Reach(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
