package dialogue

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bitbucket.org/sotavant/clinic-ivr/internal/logger"
	"bitbucket.org/sotavant/clinic-ivr/internal/models"
	"bitbucket.org/sotavant/clinic-ivr/internal/twiml"
)

const (
	digitTimeoutSec   = 10
	speechTimeoutSec  = 5
	hcnDigits         = 10
	dobDigits         = 8
	recordMaxLenSec   = 120
	gatherFinishKey   = "#"
	noInputPrompt     = "We did not receive any input."
	sessionLostPrompt = "Something went wrong with your session."
)

// welcome greets the caller and gathers the ten digit health card number.
func (h *Handler) welcome(r *http.Request) (*twiml.Response, error) {
	resp := &twiml.Response{}
	resp.Add(
		twiml.Gather{
			Input:       "dtmf",
			Action:      h.action(r, RouteHCN),
			Method:      http.MethodPost,
			Timeout:     digitTimeoutSec,
			NumDigits:   hcnDigits,
			FinishOnKey: gatherFinishKey,
			Verbs: []any{
				h.say("Welcome to the clinic line. Please enter your ten digit health card number, followed by the pound key."),
			},
		},
		h.say(noInputPrompt),
		twiml.Redirect{Method: http.MethodPost, URL: h.action(r, RouteWelcome)},
	)
	return resp, nil
}

// validateHCN cleans the keypad capture, checks it against the registry and
// either re-prompts from the start or moves the call to the next step of the
// configured flow.
func (h *Handler) validateHCN(r *http.Request) (*twiml.Response, error) {
	raw := r.FormValue(models.FieldDigits)
	caller := r.FormValue(models.FieldFrom)
	hcn := CleanDigits(raw)

	if len(hcn) != hcnDigits {
		logger.Log.Warn("health card number has wrong length",
			zap.String("digits", raw),
			zap.String("caller", caller),
		)
		return h.retryFromWelcome(r, "The number you entered does not have ten digits."), nil
	}

	valid, err := h.validator.Validate(r.Context(), hcn)
	if err != nil {
		// Registry trouble reads the same as "no record" to the caller.
		logger.Log.Warn("registry lookup failed", zap.String("hcn", hcn), zap.Error(err))
		valid = false
	}
	if !valid {
		logger.Log.Warn("health card number not found",
			zap.String("hcn", hcn),
			zap.String("caller", caller),
		)
		return h.retryFromWelcome(r, "We could not find a record matching that health card number."), nil
	}

	logger.Log.Info("health card number validated",
		zap.String("hcn", hcn),
		zap.String("caller", caller),
	)

	if h.cfg.Flow == FlowVoicemail {
		resp := &twiml.Response{}
		resp.Add(
			h.say("Please leave your message after the beep. Press the pound key when you are done."),
			twiml.Record{
				Action:    h.action(r, RouteRecording),
				Method:    http.MethodPost,
				MaxLength: recordMaxLenSec,
			},
		)
		return resp, nil
	}

	next := h.action(r, RouteDOB) + "?" + url.Values{models.ParamHCN: {hcn}}.Encode()
	resp := &twiml.Response{}
	resp.Add(
		twiml.Gather{
			Input:       "dtmf",
			Action:      next,
			Method:      http.MethodPost,
			Timeout:     digitTimeoutSec,
			NumDigits:   dobDigits,
			FinishOnKey: gatherFinishKey,
			Verbs: []any{
				h.say("Thank you. Now enter your date of birth as eight digits, year, month, day, followed by the pound key."),
			},
		},
		h.say(noInputPrompt),
		twiml.Redirect{Method: http.MethodPost, URL: h.replayHCN(r, hcn)},
	)
	return resp, nil
}

// validateDOB parses the eight digit date of birth and, on success, gathers
// the spoken name with both collected values carried in the action URL.
func (h *Handler) validateDOB(r *http.Request) (*twiml.Response, error) {
	hcn := r.URL.Query().Get(models.ParamHCN)
	if hcn == "" {
		// Stale or replayed callback; restart rather than guess.
		logger.Log.Warn("date of birth callback is missing the health card number")
		return h.retryFromWelcome(r, sessionLostPrompt), nil
	}

	raw := r.FormValue(models.FieldDigits)
	dob, err := ParseDOB(CleanDigits(raw))
	if err != nil {
		logger.Log.Warn("invalid date of birth",
			zap.String("digits", raw),
			zap.Error(err),
		)
		resp := &twiml.Response{}
		resp.Add(
			h.say("That does not look like a valid date of birth. Let's try that again."),
			twiml.Redirect{Method: http.MethodPost, URL: h.replayHCN(r, hcn)},
		)
		return resp, nil
	}

	state := url.Values{
		models.ParamHCN: {hcn},
		models.ParamDOB: {dob.Format(time.RFC3339)},
	}
	next := h.action(r, RouteName) + "?" + state.Encode()

	// Re-entry target if the caller stays silent: replay the already
	// validated inputs through the date step so only the name is asked again.
	replay := url.Values{
		models.ParamHCN:    {hcn},
		models.FieldDigits: {dob.Format("20060102")},
	}

	resp := &twiml.Response{}
	resp.Add(
		twiml.Gather{
			Input:         "speech",
			Action:        next,
			Method:        http.MethodPost,
			Timeout:       speechTimeoutSec,
			SpeechTimeout: "auto",
			Verbs: []any{
				h.say("Thank you. Now please say your first and last name."),
			},
		},
		h.say(noInputPrompt),
		twiml.Redirect{Method: http.MethodPost, URL: h.action(r, RouteDOB) + "?" + replay.Encode()},
	)
	return resp, nil
}

// collectName finalizes the intake: split the transcription, log the
// assembled record and close the call.
func (h *Handler) collectName(r *http.Request) (*twiml.Response, error) {
	q := r.URL.Query()
	hcn := q.Get(models.ParamHCN)
	dobRaw := q.Get(models.ParamDOB)
	if hcn == "" || dobRaw == "" {
		logger.Log.Warn("finalization callback is missing carried state",
			zap.String("query", r.URL.RawQuery),
		)
		return h.retryFromWelcome(r, sessionLostPrompt), nil
	}

	dob, err := time.Parse(time.RFC3339, dobRaw)
	if err != nil {
		return nil, fmt.Errorf("parse carried date of birth %q: %w", dobRaw, err)
	}

	transcript := r.FormValue(models.FieldSpeechResult)
	first, last := SplitName(transcript)

	rec := models.IntakeRecord{
		ID:          uuid.New().String(),
		HCN:         hcn,
		DateOfBirth: dob,
		FirstName:   first,
		LastName:    last,
		Transcript:  transcript,
		Caller:      r.FormValue(models.FieldFrom),
	}
	logger.Log.Info("intake complete",
		zap.String("id", rec.ID),
		zap.String("hcn", rec.HCN),
		zap.Time("dob", rec.DateOfBirth),
		zap.String("first_name", rec.FirstName),
		zap.String("last_name", rec.LastName),
		zap.String("transcript", rec.Transcript),
		zap.String("caller", rec.Caller),
	)

	closing := "Thank you. Your information has been recorded. Goodbye."
	if first != "" {
		closing = "Thank you, " + first + ". Your information has been recorded. Goodbye."
	}

	return (&twiml.Response{}).Add(h.say(closing), twiml.Hangup{}), nil
}

// recordingDone logs where the platform stored the voice message and closes
// the call. The audio is not downloaded.
func (h *Handler) recordingDone(r *http.Request) (*twiml.Response, error) {
	vm := models.Voicemail{
		ID:           uuid.New().String(),
		Caller:       r.FormValue(models.FieldFrom),
		RecordingURL: r.FormValue(models.FieldRecordingURL),
	}
	logger.Log.Info("voice message recorded",
		zap.String("id", vm.ID),
		zap.String("caller", vm.Caller),
		zap.String("recording_url", vm.RecordingURL),
	)

	return (&twiml.Response{}).Add(
		h.say("Thank you for your message. Goodbye."),
		twiml.Hangup{},
	), nil
}

// retryFromWelcome speaks the reason and sends the call back to the start.
func (h *Handler) retryFromWelcome(r *http.Request, reason string) *twiml.Response {
	return (&twiml.Response{}).Add(
		h.say(reason+" Let's try again."),
		twiml.Redirect{Method: http.MethodPost, URL: h.action(r, RouteWelcome)},
	)
}

// replayHCN builds a redirect target that re-enters the dialogue at the
// health card step with the already validated number replayed through the
// query string, so the caller resumes at the date of birth prompt.
func (h *Handler) replayHCN(r *http.Request, hcn string) string {
	return h.action(r, RouteHCN) + "?" + url.Values{models.FieldDigits: {hcn}}.Encode()
}
