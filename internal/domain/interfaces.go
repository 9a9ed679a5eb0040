package domain

import (
	"context"
	"io"
	"time"
)

// PredictionModel is the opaque predictive scoring model. The core consumes
// its output shape and never validates model correctness.
type PredictionModel interface {
	Predict(ctx context.Context, state *PatientState) (*Prediction, error)
}

// SymptomClassifier maps free-text descriptions onto discrete category ids.
// The contract is text in, ordered unique ids out; the matching algorithm is
// an implementation detail.
type SymptomClassifier interface {
	ClassifySymptoms(text string) []string
	ClassifyPMH(text string) []string
}

// Transcript is one completed session as stored by the persistence
// collaborator.
type Transcript struct {
	ID               int64            `json:"id"`
	SessionID        string           `json:"session_id"`
	Timestamp        time.Time        `json:"timestamp"`
	PatientName      string           `json:"patient_name"`
	Age              int              `json:"age"`
	Sex              Sex              `json:"sex"`
	ZipCode          string           `json:"zip_code"`
	AnsweringFor     AnsweringFor     `json:"answering_for"`
	SymptomText      string           `json:"symptom_text"`
	PMHText          string           `json:"pmh_text"`
	SelectedSymptoms []string         `json:"selected_symptoms"`
	PMH              []string         `json:"pmh"`
	InterviewHistory []AnswerEntry    `json:"interview_history"`
	PredictionLevel  UrgencyLevel     `json:"prediction_level"`
	PredictionLabel  string           `json:"prediction_label"`
	RiskPcts         RiskPercentages  `json:"risk_pcts"`
	Specialist       *Specialist      `json:"specialist,omitempty"`
	Reassurance      string           `json:"reassurance"`
	Escalation       []EscalationItem `json:"escalation"`
	TriageSummary    []string         `json:"triage_summary"`
	RedFlag          *RedFlag         `json:"red_flag,omitempty"`
	RiskFactors      []string         `json:"risk_factors,omitempty"`
}

// TranscriptStore persists completed sessions. It is a best-effort side
// channel: a store failure must never prevent results from being returned.
type TranscriptStore interface {
	Save(ctx context.Context, t *Transcript) error
	Get(ctx context.Context, id int64) (*Transcript, error)
	List(ctx context.Context, limit, offset int) ([]*Transcript, error)
	Count(ctx context.Context) (int64, error)
	ExportJSON(ctx context.Context, w io.Writer) error
	ExportCSV(ctx context.Context, w io.Writer) error
	Close() error
}

// SessionStore holds active interview sessions keyed by session id.
type SessionStore interface {
	Create(ctx context.Context, id string, state *PatientState) error
	Get(ctx context.Context, id string) (*PatientState, error)
	Update(ctx context.Context, id string, state *PatientState) error
	Delete(ctx context.Context, id string) error
}

// ConfigManager exposes runtime configuration to the wiring layer.
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetDatabaseConfig() *DatabaseConfig
	GetInterviewConfig() *InterviewConfig
	Validate() error
	IsProduction() bool
}
