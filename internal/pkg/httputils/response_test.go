package httputils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_CompactNoHTMLEscape(t *testing.T) {
	resp := JSON(http.StatusInternalServerError, map[string]any{"error": "a<b>&c"})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, `{"error":"a<b>&c"}`, resp.Body)
	assert.Equal(t, ContentTypeJSON, resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.False(t, resp.IsBase64Encoded)
}

func TestJSON_EncodeFailure(t *testing.T) {
	resp := JSON(http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, fallbackBody, resp.Body)
}

func TestPreflight(t *testing.T) {
	resp := Preflight()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "POST, OPTIONS", resp.Headers["Access-Control-Allow-Methods"])
	assert.Equal(t, "86400", resp.Headers["Access-Control-Max-Age"])
	assert.NotContains(t, resp.Headers, "Content-Type")
}

func TestWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, Error(http.StatusBadRequest, "Phone number required"))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"Phone number required"}`, rr.Body.String())
	assert.Equal(t, ContentTypeJSON, rr.Header().Get("Content-Type"))
}
