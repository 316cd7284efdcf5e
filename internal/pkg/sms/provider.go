package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL = "https://sms.ru/sms/send"
	defaultTimeout = 10 * time.Second
	maxReplySize   = 64 * 1024

	statusOK = "OK"
)

type SMSProvider interface {
	SendSMS(ctx context.Context, apiID, phone, message string) (*Result, error)
}

// Result is the provider's verdict. A non-OK verdict is not an error.
type Result struct {
	OK         bool
	Status     string
	StatusText string
	StatusCode int
	Balance    float64
}

// TransportError means the provider could not be asked or its reply could
// not be read. It is distinct from a provider-reported failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sms: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request ran out of time.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

type SMSRuOptions struct {
	BaseURL string
	From    string // sender name, must be approved by sms.ru
	Test    bool   // ask sms.ru to validate without delivering
	Timeout time.Duration
}

// SMSRuClient sends messages through the sms.ru HTTP API.
type SMSRuClient struct {
	BaseURL    string
	From       string
	Test       bool
	HTTPClient *http.Client
}

func NewSMSRuClient(opts SMSRuOptions) *SMSRuClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &SMSRuClient{
		BaseURL:    opts.BaseURL,
		From:       opts.From,
		Test:       opts.Test,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	}
}

type smsRuReply struct {
	Status     string   `json:"status"`
	StatusCode int      `json:"status_code"`
	StatusText string   `json:"status_text"`
	Balance    *float64 `json:"balance"`
}

// SendSMS performs one GET against the send endpoint. No retries.
func (c *SMSRuClient) SendSMS(ctx context.Context, apiID, phone, message string) (*Result, error) {
	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, &TransportError{Op: "parse endpoint", Err: err}
	}

	q := endpoint.Query()
	q.Set("api_id", apiID)
	q.Set("to", phone)
	q.Set("msg", message)
	q.Set("json", "1")
	if c.From != "" {
		q.Set("from", c.From)
	}
	if c.Test {
		q.Set("test", "1")
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, &TransportError{Op: "read reply", Err: err}
	}

	var reply smsRuReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, &TransportError{
			Op:  "decode reply",
			Err: fmt.Errorf("http status %d: %w", resp.StatusCode, err),
		}
	}

	result := &Result{
		OK:         reply.Status == statusOK,
		Status:     reply.Status,
		StatusText: reply.StatusText,
		StatusCode: reply.StatusCode,
	}
	if reply.Balance != nil {
		result.Balance = *reply.Balance
	}

	return result, nil
}
