package httputils

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"vnechat/sms_dispatch/api/response"
	"vnechat/sms_dispatch/internal/model"
)

const (
	ContentTypeJSON = "application/json"

	fallbackBody = `{"error":"Internal Server Error"}`
)

// Preflight acknowledges a CORS preflight. The body is empty.
func Preflight() model.OutboundResponse {
	return model.OutboundResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": "POST, OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Max-Age":       "86400",
		},
		Body: "",
	}
}

func Error(statusCode int, errorMessage string) model.OutboundResponse {
	return JSON(statusCode, response.ErrorResponse{Error: errorMessage})
}

// JSON encodes data compactly, without HTML escaping or a trailing newline.
func JSON(statusCode int, data any) model.OutboundResponse {
	body, err := encode(data)
	if err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
		statusCode = http.StatusInternalServerError
		body = fallbackBody
	}

	return model.OutboundResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                ContentTypeJSON,
			"Access-Control-Allow-Origin": "*",
		},
		Body: body,
	}
}

func encode(data any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Write copies resp onto w.
func Write(w http.ResponseWriter, resp model.OutboundResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)

	if resp.Body == "" {
		return
	}
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func ResponseError(w http.ResponseWriter, errorCode int, errorMessage string) {
	Write(w, Error(errorCode, errorMessage))
}

func ResponseJSON(w http.ResponseWriter, statusCode int, data any) {
	Write(w, JSON(statusCode, data))
}
