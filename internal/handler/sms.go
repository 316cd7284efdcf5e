package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"vnechat/sms_dispatch/internal/model"
	"vnechat/sms_dispatch/internal/pkg/httputils"
	"vnechat/sms_dispatch/internal/service"
)

const maxBodySize = 64 * 1024

type SMSHandler struct {
	smsService service.DispatchService
}

func NewSMSHandler(smsService service.DispatchService) *SMSHandler {
	return &SMSHandler{smsService: smsService}
}

func (h *SMSHandler) RegisterRoutes(router *mux.Router) {
	// every method reaches sendSMS; it answers OPTIONS and 405 itself
	router.HandleFunc("/send-sms", h.sendSMS)
	router.HandleFunc("/health", h.health).Methods("GET")
}

// @Summary Send verification code
// @Description Generate a 6-digit code and deliver it by SMS. Without a provider key the code is returned in demo mode.
// @ID send-sms
// @Accept json
// @Produce json
// @Param sendData body SendSMSRequest true "Recipient"
// @Success 200 {object} response.SendSMSResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 405 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.SendSMSResponse
// @Failure 502 {object} response.SendSMSResponse
// @Failure 504 {object} response.SendSMSResponse
// @Router /send-sms [post]
func (h *SMSHandler) sendSMS(w http.ResponseWriter, r *http.Request) {
	req := model.InboundRequest{Method: r.Method}

	// только POST несёт тело; OPTIONS и прочие методы отвечают без чтения
	if r.Method == http.MethodPost && r.Body != nil {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		r.Body.Close()
		if err != nil {
			log.Printf("Failed to read request body: %v", err)
			httputils.ResponseError(w, http.StatusBadRequest, "Invalid request format")
			return
		}
		if len(data) > 0 {
			body := string(data)
			req.Body = &body
		}
	}

	httputils.Write(w, h.smsService.Handle(r.Context(), req))
}

type SendSMSRequest struct {
	Phone string `json:"phone" example:"+7 999 123 45 67"`
}
