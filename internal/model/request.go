package model

// InboundRequest is the framework-agnostic view of one HTTP call.
// Tags match the cloud-function event shape so it can be decoded directly.
type InboundRequest struct {
	Method string  `json:"httpMethod"`
	Body   *string `json:"body,omitempty"`
}

// OutboundResponse is what a dispatch produces; it is always complete.
type OutboundResponse struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}
