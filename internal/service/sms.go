package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vnechat/sms_dispatch/api/response"
	"vnechat/sms_dispatch/internal/config"
	"vnechat/sms_dispatch/internal/model"
	"vnechat/sms_dispatch/internal/pkg/httputils"
	"vnechat/sms_dispatch/internal/pkg/sms"
	"vnechat/sms_dispatch/internal/repository"
)

const (
	messageTemplate = "Ваш код подтверждения VneChat: %s"

	demoMessage     = "Demo mode: API key not configured"
	fallbackFailure = "SMS sending failed"

	journalTimeout = 2 * time.Second
)

type Option func(*SMSService)

// WithThrottle enables the per-phone send cooldown.
func WithThrottle(t repository.ThrottleRepository) Option {
	return func(s *SMSService) { s.throttle = t }
}

// WithJournal records every demo and provider outcome.
func WithJournal(j repository.DispatchRepository) Option {
	return func(s *SMSService) { s.journal = j }
}

func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *SMSService) { s.newCode = gen }
}

// SMSService turns one inbound request into one complete response.
// It holds only read-only collaborators and is safe for concurrent use.
type SMSService struct {
	provider    sms.SMSProvider
	apiKey      string
	strictPhone bool
	cooldown    time.Duration

	throttle repository.ThrottleRepository
	journal  repository.DispatchRepository
	newCode  func() (string, error)

	stats *Stats
}

func NewSMSService(provider sms.SMSProvider, cfg *config.Config, opts ...Option) *SMSService {
	s := &SMSService{
		provider:    provider,
		apiKey:      cfg.SMSRuAPIKey,
		strictPhone: cfg.StrictPhoneValidation,
		cooldown:    cfg.Cooldown(),
		newCode:     sms.GenerateVerificationCode,
		stats:       &Stats{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SMSService) DemoMode() bool {
	return s.apiKey == ""
}

func (s *SMSService) Stats() map[string]int64 {
	return s.stats.Snapshot()
}

func (s *SMSService) Handle(ctx context.Context, req model.InboundRequest) model.OutboundResponse {
	switch req.Method {
	case http.MethodOptions:
		return httputils.Preflight()
	case http.MethodPost:
	default:
		return httputils.Error(http.StatusMethodNotAllowed, "Method not allowed")
	}

	phone, err := phoneFromBody(req.Body)
	if err != nil {
		s.stats.Invalid.Inc()
		return httputils.Error(http.StatusBadRequest, "Invalid request format")
	}
	if phone == "" {
		s.stats.Invalid.Inc()
		return httputils.Error(http.StatusBadRequest, "Phone number required")
	}

	normal := sms.NormalizePhone(phone)
	if s.strictPhone && !sms.IsValidPhone(normal) {
		s.stats.Invalid.Inc()
		return httputils.Error(http.StatusBadRequest, "Invalid phone number")
	}

	if !s.allow(ctx, normal) {
		s.stats.Throttled.Inc()
		return httputils.Error(http.StatusTooManyRequests, "Too many requests")
	}

	code, err := s.newCode()
	if err != nil {
		log.Printf("sms: %v", err)
		s.release(ctx, normal)
		return httputils.JSON(http.StatusInternalServerError, response.SendSMSResponse{
			Error: "Failed to generate code",
		})
	}

	attempt := model.VerificationAttempt{
		RequestID: uuid.NewString(),
		Phone:     phone,
		Normal:    normal,
		Code:      code,
	}

	if s.DemoMode() {
		return s.demo(ctx, attempt)
	}
	return s.deliver(ctx, attempt)
}

// phoneFromBody treats an absent or empty body as {}. A phone that is not
// a JSON string counts as missing.
func phoneFromBody(body *string) (string, error) {
	raw := "{}"
	if body != nil && *body != "" {
		raw = *body
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return "", fmt.Errorf("failed to parse request body: %w", err)
	}

	var phone string
	if v, ok := fields["phone"]; ok {
		if err := json.Unmarshal(v, &phone); err != nil {
			return "", nil
		}
	}
	return phone, nil
}

// allow fails open when the limiter is unavailable.
func (s *SMSService) allow(ctx context.Context, phone string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Acquire(ctx, phone, s.cooldown)
	if err != nil {
		log.Printf("sms: throttle unavailable: %v", err)
		return true
	}
	return ok
}

// release gives the cooldown slot back when nothing was delivered,
// so an immediate retry is not answered with 429.
func (s *SMSService) release(ctx context.Context, phone string) {
	if s.throttle == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	if err := s.throttle.Release(ctx, phone); err != nil {
		log.Printf("sms: %v", err)
	}
}

func (s *SMSService) demo(ctx context.Context, a model.VerificationAttempt) model.OutboundResponse {
	s.stats.Demo.Inc()
	log.Printf("sms: [%s] demo mode, code for %s not sent", a.RequestID, sms.MaskPhone(a.Normal))
	s.record(ctx, a, model.OutcomeDemo, "", "", 0)

	return httputils.JSON(http.StatusOK, response.SendSMSResponse{
		Success: true,
		Demo:    true,
		Code:    a.Code,
		Message: demoMessage,
	})
}

func (s *SMSService) deliver(ctx context.Context, a model.VerificationAttempt) model.OutboundResponse {
	start := time.Now()
	res, err := s.provider.SendSMS(ctx, s.apiKey, a.Normal, fmt.Sprintf(messageTemplate, a.Code))
	elapsed := time.Since(start)

	if err != nil {
		s.stats.Failed.Inc()
		s.record(ctx, a, model.OutcomeTransport, "", err.Error(), elapsed)
		s.release(ctx, a.Normal)

		var terr *sms.TransportError
		if errors.As(err, &terr) && terr.Timeout() {
			log.Printf("sms: [%s] provider timed out after %v: %v", a.RequestID, elapsed, err)
			return httputils.JSON(http.StatusGatewayTimeout, response.SendSMSResponse{
				Error: "SMS provider timeout",
			})
		}
		log.Printf("sms: [%s] provider unavailable: %v", a.RequestID, err)
		return httputils.JSON(http.StatusBadGateway, response.SendSMSResponse{
			Error: "SMS provider unavailable",
		})
	}

	if res.OK {
		s.stats.Sent.Inc()
		log.Printf("sms: [%s] sent to %s in %v", a.RequestID, sms.MaskPhone(a.Normal), elapsed)
		s.record(ctx, a, model.OutcomeSent, res.Status, res.StatusText, elapsed)

		return httputils.JSON(http.StatusOK, response.SendSMSResponse{
			Success: true,
			Code:    a.Code,
		})
	}

	reason := res.StatusText
	if reason == "" {
		reason = fallbackFailure
	}

	s.stats.Rejected.Inc()
	log.Printf("sms: [%s] provider rejected %s: %s %s", a.RequestID, sms.MaskPhone(a.Normal), res.Status, reason)
	s.record(ctx, a, model.OutcomeRejected, res.Status, reason, elapsed)

	return httputils.JSON(http.StatusInternalServerError, response.SendSMSResponse{
		Error: reason,
	})
}

// record never affects the response; failures are only logged.
func (s *SMSService) record(ctx context.Context, a model.VerificationAttempt, outcome, status, text string, elapsed time.Duration) {
	if s.journal == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	err := s.journal.Create(ctx, &model.Dispatch{
		RequestID:      a.RequestID,
		Phone:          sms.MaskPhone(a.Normal),
		Outcome:        outcome,
		ProviderStatus: status,
		StatusText:     text,
		DurationMs:     elapsed.Milliseconds(),
	})
	if err != nil {
		log.Printf("sms: [%s] failed to journal dispatch: %v", a.RequestID, err)
	}
}
