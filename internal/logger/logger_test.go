package logger

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerLeavesBodyReadable(t *testing.T) {
	var gotDigits string

	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotDigits = r.FormValue("Digits")
		w.WriteHeader(http.StatusOK)
	}))

	body := strings.NewReader("Digits=5551234567&From=%2B15550001111")
	r := httptest.NewRequest(http.MethodPost, "/voice/hcn?hcn=123", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5551234567", gotDigits)
}

func TestRequestLoggerPassesResponseThrough(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<Response></Response>"))
	}))

	r := httptest.NewRequest(http.MethodPost, "/voice", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "<Response></Response>", w.Body.String())
}

func TestInitializeRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Initialize("shouting"))
	assert.NoError(t, Initialize("debug"))
}
