// Package domain contains the core business entities and types for the
// self-service clinical triage advisor: the adaptive interview, the red-flag
// safety overrides, and the evidence synthesis that turns a model prediction
// plus published reference statistics into a plain-language explanation.
//
// No individual-level dataset records are ever exposed; all population
// figures come from published reference rates (CDC NHAMCS and literature).
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// UrgencyLevel is the ordinal care-urgency tier produced by the prediction
// model. Level 1 is the most urgent; level 5 is self-care.
type UrgencyLevel int

const (
	LevelEmergency   UrgencyLevel = 1
	LevelUrgentCare  UrgencyLevel = 2
	LevelPrimaryCare UrgencyLevel = 3
	LevelSpecialist  UrgencyLevel = 4
	LevelSelfCare    UrgencyLevel = 5
)

// IsValid validates the urgency level. Critical for patient safety: an
// out-of-range level must never silently enter the synthesis pipeline.
func (l UrgencyLevel) IsValid() bool {
	return l >= LevelEmergency && l <= LevelSelfCare
}

// String returns a human-readable label for logging and audit trails.
func (l UrgencyLevel) String() string {
	switch l {
	case LevelEmergency:
		return "Emergency Department"
	case LevelUrgentCare:
		return "Urgent Care"
	case LevelPrimaryCare:
		return "Primary Care"
	case LevelSpecialist:
		return "Specialist"
	case LevelSelfCare:
		return "Self-Care"
	default:
		return fmt.Sprintf("UrgencyLevel(%d)", int(l))
	}
}

// Sex is the patient's reported sex.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// IsValid validates the sex value.
func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	default:
		return false
	}
}

func (s Sex) String() string { return string(s) }

// Phase is the interview state-machine phase. RedFlagged and Complete are
// terminal: no further questions are issued once either is reached.
type Phase string

const (
	PhaseWelcome    Phase = "welcome"
	PhaseBaseline   Phase = "baseline"
	PhaseFollowUp   Phase = "followup"
	PhaseComplete   Phase = "complete"
	PhaseRedFlagged Phase = "red_flagged"
)

// IsValid validates the phase value.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseWelcome, PhaseBaseline, PhaseFollowUp, PhaseComplete, PhaseRedFlagged:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the interview can issue further questions.
func (p Phase) IsTerminal() bool {
	return p == PhaseComplete || p == PhaseRedFlagged
}

func (p Phase) String() string { return string(p) }

// QuestionType describes how a question is answered.
type QuestionType string

const (
	SingleChoice QuestionType = "single_choice"
	MultiChoice  QuestionType = "multi_choice"
	FreeText     QuestionType = "free_text"
	Numeric      QuestionType = "numeric"
)

// IsValid validates the question type.
func (qt QuestionType) IsValid() bool {
	switch qt {
	case SingleChoice, MultiChoice, FreeText, Numeric:
		return true
	default:
		return false
	}
}

// BaselineKind is the typed enumeration of fixed baseline questions, in
// interview order. It replaces dispatch on raw question-id strings.
type BaselineKind string

const (
	BaselineName               BaselineKind = "name"
	BaselineAnsweringFor       BaselineKind = "answering_for"
	BaselineAnsweringForReason BaselineKind = "answering_for_reason"
	BaselineAge                BaselineKind = "age"
	BaselineSex                BaselineKind = "sex"
	BaselineSymptoms           BaselineKind = "symptoms"
	BaselinePMH                BaselineKind = "pmh"
	BaselineZipCode            BaselineKind = "zip_code"
)

// AnsweringFor captures who the respondent is answering for, including the
// branch reasons when answering for someone else.
type AnsweringFor string

const (
	AnsweringSelf  AnsweringFor = "self"
	AnsweringOther AnsweringFor = "other"
	// ReasonConfused means the person being helped is confused or otherwise
	// acutely unable to answer. This is itself a red flag.
	ReasonConfused AnsweringFor = "confused"
	// ReasonChronicUnable means a pre-existing condition prevents the person
	// from answering (nonverbal, paralyzed). NOT an emergency by itself; the
	// interview continues normally.
	ReasonChronicUnable AnsweringFor = "chronic_unable"
	ReasonTooYoung      AnsweringFor = "too_young"
	ReasonOther         AnsweringFor = "other_reason"
)

// Likelihood is the qualitative five-step ordinal scale used by the
// differential-diagnosis catalogue.
type Likelihood string

const (
	Rare       Likelihood = "Rare"
	Uncommon   Likelihood = "Uncommon"
	LessCommon Likelihood = "Less common"
	Common     Likelihood = "Common"
	VeryCommon Likelihood = "Very common"
)

// likelihoodScale is ordered from least to most likely.
var likelihoodScale = []Likelihood{Rare, Uncommon, LessCommon, Common, VeryCommon}

// IsValid validates the likelihood value.
func (l Likelihood) IsValid() bool {
	return l.rank() >= 0
}

// rank returns the index on the ordinal scale, or -1 for unknown values.
func (l Likelihood) rank() int {
	for i, v := range likelihoodScale {
		if v == l {
			return i
		}
	}
	return -1
}

// Order returns the sort weight used in differential ranking: 1 for the most
// likely tier, 5 for the least. Unknown values sort mid-scale.
func (l Likelihood) Order() int {
	r := l.rank()
	if r < 0 {
		return 3
	}
	return len(likelihoodScale) - r
}

// Promote moves the likelihood one step toward Very common, clamped at the
// top of the scale.
func (l Likelihood) Promote() Likelihood {
	r := l.rank()
	if r < 0 {
		r = 2
	}
	if r < len(likelihoodScale)-1 {
		r++
	}
	return likelihoodScale[r]
}

// Demote moves the likelihood one step toward Rare, clamped at the bottom of
// the scale.
func (l Likelihood) Demote() Likelihood {
	r := l.rank()
	if r < 0 {
		r = 2
	}
	if r > 0 {
		r--
	}
	return likelihoodScale[r]
}

func (l Likelihood) String() string { return string(l) }

// FollowUpSeparator splits a namespaced follow-up question id into its
// (symptom, attribute) pair.
const FollowUpSeparator = "__"

// FollowUpID builds the namespaced id for a symptom's follow-up question.
func FollowUpID(symptom, attribute string) string {
	return symptom + FollowUpSeparator + attribute
}

// ParseFollowUpID splits a question id into its (symptom, attribute) pair.
// ok is false for baseline (non-namespaced) ids.
func ParseFollowUpID(qid string) (symptom, attribute string, ok bool) {
	i := strings.Index(qid, FollowUpSeparator)
	if i <= 0 || i+len(FollowUpSeparator) >= len(qid) {
		return "", "", false
	}
	return qid[:i], qid[i+len(FollowUpSeparator):], true
}

// IsFollowUpID reports whether the question id is a namespaced follow-up.
func IsFollowUpID(qid string) bool {
	_, _, ok := ParseFollowUpID(qid)
	return ok
}

// Validation errors for interview and synthesis data integrity.
var (
	ErrNotFound            = errors.New("not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidUrgencyLevel = errors.New("invalid urgency level")
	ErrInvalidSex          = errors.New("invalid sex")
	ErrInvalidPhase        = errors.New("invalid interview phase")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInterviewTerminal   = errors.New("interview is in a terminal phase")
	ErrUnknownQuestion     = errors.New("unknown question id")
)
