package response

type ErrorResponse struct {
	Error string `json:"error"`
}

// SendSMSResponse covers the demo, success and provider-failure bodies.
type SendSMSResponse struct {
	Success bool   `json:"success"`
	Demo    bool   `json:"demo,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string           `json:"status"`
	Demo   bool             `json:"demo"`
	Stats  map[string]int64 `json:"stats"`
}
