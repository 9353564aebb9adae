// Package dialogue implements the scripted phone conversation: each handler
// is one webhook step, and everything collected so far travels to the next
// step through query parameters on the action URL the platform is given.
package dialogue

import (
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/clinic-ivr/internal/logger"
	"bitbucket.org/sotavant/clinic-ivr/internal/registry"
	"bitbucket.org/sotavant/clinic-ivr/internal/twiml"
)

// Flow selects which variant of the step graph runs after the health card
// number is validated.
type Flow string

const (
	// FlowIntake asks for date of birth and spoken name.
	FlowIntake Flow = "intake"
	// FlowVoicemail skips straight to recording a message.
	FlowVoicemail Flow = "voicemail"
)

// Webhook step routes, relative to the public base URL.
const (
	RouteWelcome   = "/voice"
	RouteHCN       = "/voice/hcn"
	RouteDOB       = "/voice/dob"
	RouteName      = "/voice/name"
	RouteRecording = "/voice/recording"
)

type Config struct {
	// Voice is the text-to-speech profile for every Say verb.
	Voice string
	// Flow picks the dialogue variant.
	Flow Flow
	// PublicURL, when set, overrides forwarded-header resolution of the
	// externally reachable base URL.
	PublicURL string
}

// Handler holds the dialogue dependencies.
type Handler struct {
	validator registry.Validator
	cfg       Config
}

func New(v registry.Validator, cfg Config) *Handler {
	return &Handler{validator: v, cfg: cfg}
}

// Routes registers the webhook steps. The platform POSTs form-encoded data
// to each of them.
func (h *Handler) Routes(r chi.Router) {
	r.Post(RouteWelcome, h.step(h.welcome))
	r.Post(RouteHCN, h.step(h.validateHCN))
	r.Post(RouteDOB, h.step(h.validateDOB))
	r.Post(RouteName, h.step(h.collectName))
	r.Post(RouteRecording, h.step(h.recordingDone))
}

// stepFunc produces the voice document for one dialogue step. A non-nil
// error means an unexpected internal failure, not caller input trouble.
type stepFunc func(r *http.Request) (*twiml.Response, error)

// step is the error boundary around every dialogue step. Any error return or
// panic becomes a spoken apology followed by Hangup, with HTTP 200: an
// internal fault must never reach the platform as raw text or a non-2xx
// status.
func (h *Handler) step(fn stepFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.Error("panic in dialogue step",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.String("stack", string(debug.Stack())),
				)
				h.apologize(w)
			}
		}()

		resp, err := fn(r)
		if err != nil {
			logger.Log.Error("dialogue step failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			h.apologize(w)
			return
		}

		if err := resp.Write(w); err != nil {
			logger.Log.Error("cannot write voice response", zap.Error(err))
		}
	}
}

func (h *Handler) apologize(w http.ResponseWriter) {
	resp := (&twiml.Response{}).Add(
		h.say("We are sorry, something went wrong on our end. Please call back later. Goodbye."),
		twiml.Hangup{},
	)
	if err := resp.Write(w); err != nil {
		logger.Log.Error("cannot write apology response", zap.Error(err))
	}
}

func (h *Handler) say(text string) twiml.Say {
	return twiml.Say{Voice: h.cfg.Voice, Text: text}
}

// action builds the absolute callback URL for a step route.
func (h *Handler) action(r *http.Request, path string) string {
	return publicURL(r, h.cfg.PublicURL, path)
}
