package twiml

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGatherWithNestedSay(t *testing.T) {
	resp := (&Response{}).Add(Gather{
		Input:       "dtmf",
		Action:      "https://ivr.example.org/voice/hcn",
		Method:      http.MethodPost,
		Timeout:     10,
		NumDigits:   10,
		FinishOnKey: "#",
		Verbs: []any{
			Say{Voice: "Polly.Joanna", Text: "Enter your number."},
		},
	})

	body, err := resp.Render()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "<?xml version="))
	assert.Contains(t, body, `<Gather input="dtmf" action="https://ivr.example.org/voice/hcn" method="POST" timeout="10" numDigits="10" finishOnKey="#">`)
	assert.Contains(t, body, `<Say voice="Polly.Joanna">Enter your number.</Say>`)
	assert.Contains(t, body, "</Gather>")
}

func TestRenderEscapesQuerySeparators(t *testing.T) {
	resp := (&Response{}).Add(
		Gather{
			Input:  "speech",
			Action: "https://ivr.example.org/voice/name?dob=1985-06-01T00%3A00%3A00Z&hcn=5551234567",
		},
		Redirect{Method: http.MethodPost, URL: "https://ivr.example.org/voice?a=1&b=2"},
	)

	body, err := resp.Render()
	require.NoError(t, err)

	assert.Contains(t, body, "dob=1985-06-01T00%3A00%3A00Z&amp;hcn=5551234567")
	assert.Contains(t, body, "a=1&amp;b=2")
	assert.NotContains(t, body, "a=1&b=2")
}

func TestRenderVerbOrderPreserved(t *testing.T) {
	resp := (&Response{}).Add(
		Say{Text: "first"},
		Record{Action: "/voice/recording", Method: http.MethodPost, MaxLength: 120},
		Say{Text: "second"},
		Hangup{},
	)

	body, err := resp.Render()
	require.NoError(t, err)

	sayFirst := strings.Index(body, ">first<")
	record := strings.Index(body, "<Record")
	saySecond := strings.Index(body, ">second<")
	hangup := strings.Index(body, "<Hangup></Hangup>")

	require.NotEqual(t, -1, sayFirst)
	require.NotEqual(t, -1, record)
	require.NotEqual(t, -1, saySecond)
	require.NotEqual(t, -1, hangup)
	assert.True(t, sayFirst < record && record < saySecond && saySecond < hangup)
}

func TestWriteSetsContentTypeAndStatus(t *testing.T) {
	w := httptest.NewRecorder()

	err := (&Response{}).Add(Say{Text: "hello"}, Hangup{}).Write(w)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<Response>")
}
