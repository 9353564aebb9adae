package dialogue

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/sotavant/clinic-ivr/internal/registry"
)

func newDialogueRouter(cfg Config) chi.Router {
	r := chi.NewRouter()
	New(registry.Static{}, cfg).Routes(r)
	return r
}

func TestWelcomeUsesForwardedHeadersInActionURL(t *testing.T) {
	router := newDialogueRouter(Config{Voice: "Polly.Joanna", Flow: FlowIntake})

	r := httptest.NewRequest(http.MethodPost, "http://internal:8080/voice", nil)
	r.Header.Set("X-Forwarded-Host", "ivr.example.org")
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `action="https://ivr.example.org/voice/hcn"`)
	assert.Contains(t, body, "https://ivr.example.org/voice</Redirect>")
	assert.NotContains(t, body, "internal:8080")
}

func TestWelcomeUsesConfiguredPublicURL(t *testing.T) {
	router := newDialogueRouter(Config{
		Voice:     "Polly.Joanna",
		Flow:      FlowIntake,
		PublicURL: "https://public.example.org/",
	})

	r := httptest.NewRequest(http.MethodPost, "http://internal:8080/voice", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="https://public.example.org/voice/hcn"`)
}

func TestValidStubNumberMovesToDateOfBirth(t *testing.T) {
	router := newDialogueRouter(Config{Voice: "Polly.Joanna", Flow: FlowIntake})

	form := strings.NewReader("Digits=555-123-4567%23&From=%2B15550001111")
	r := httptest.NewRequest(http.MethodPost, "http://ivr.example.org/voice/hcn", form)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "hcn=5551234567")
	assert.Contains(t, body, `numDigits="8"`)
}

func TestEveryStepAnswersXMLWithStatusOK(t *testing.T) {
	router := newDialogueRouter(Config{Voice: "Polly.Joanna", Flow: FlowIntake})

	for _, route := range []string{RouteWelcome, RouteHCN, RouteDOB, RouteName, RouteRecording} {
		t.Run(route, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "http://ivr.example.org"+route, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), "<Response>")
		})
	}
}
