package handler

import (
	"net/http"

	"vnechat/sms_dispatch/api/response"
	"vnechat/sms_dispatch/internal/pkg/httputils"
)

// @Summary Health
// @Description Liveness, demo flag and dispatch counters
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *SMSHandler) health(w http.ResponseWriter, r *http.Request) {
	httputils.ResponseJSON(w, http.StatusOK, response.HealthResponse{
		Status: "ok",
		Demo:   h.smsService.DemoMode(),
		Stats:  h.smsService.Stats(),
	})
}
