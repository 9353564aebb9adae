package models

import "time"

// Form fields posted by the telephony platform on webhook callbacks.
const (
	FieldDigits       = "Digits"
	FieldSpeechResult = "SpeechResult"
	FieldFrom         = "From"
	FieldRecordingURL = "RecordingUrl"
)

// Query parameters carrying dialogue state between steps. A key placed in an
// action URL must be read back under the same name on the next step.
const (
	ParamHCN = "hcn"
	ParamDOB = "dob"
)

// IntakeRecord is the assembled result of a completed intake dialogue.
// It is logged, never persisted.
type IntakeRecord struct {
	ID          string
	HCN         string
	DateOfBirth time.Time
	FirstName   string
	LastName    string
	Transcript  string
	Caller      string
}

// Voicemail references a message recorded in the voicemail flow. The audio
// stays hosted by the platform.
type Voicemail struct {
	ID           string
	Caller       string
	RecordingURL string
}
