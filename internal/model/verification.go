package model

import "gorm.io/gorm"

// VerificationAttempt lives for a single dispatch and is never stored.
type VerificationAttempt struct {
	RequestID string
	Phone     string // as the caller sent it
	Normal    string // digits handed to the provider
	Code      string
}

// Dispatch outcomes recorded in the journal.
const (
	OutcomeSent      = "sent"
	OutcomeDemo      = "demo"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_failure"
)

// Dispatch is a journal row. The code itself is never persisted.
type Dispatch struct {
	gorm.Model
	RequestID      string `gorm:"uniqueIndex;size:36" json:"request_id"`
	Phone          string `gorm:"size:32" json:"phone"` // masked, e.g. *******1111
	Outcome        string `gorm:"size:32;index" json:"outcome"`
	ProviderStatus string `gorm:"size:32" json:"provider_status"`
	StatusText     string `json:"status_text"`
	DurationMs     int64  `json:"duration_ms"`
}
