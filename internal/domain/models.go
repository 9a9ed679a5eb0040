package domain

import (
	"fmt"
)

// AnswerEntry is one question/answer pair in the interview transcript.
// Immutable once appended to the history.
type AnswerEntry struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	// Answer holds the raw answer: a single code for scalar questions, or
	// the ordered selections for multi-choice questions.
	Answer        []string `json:"answer"`
	AnswerDisplay string   `json:"answer_display"`
}

// RawValue returns the scalar answer value, or the empty string for
// multi-select answers with no selections.
func (e AnswerEntry) RawValue() string {
	if len(e.Answer) == 0 {
		return ""
	}
	return e.Answer[0]
}

// Choice is a selectable option on a single- or multi-choice question.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is produced on demand by the interview engine and never
// persisted. Follow-up questions carry namespaced `<symptom>__<attribute>`
// ids; baseline questions carry flat ids.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Choices []Choice     `json:"choices,omitempty"`
}

// Validate ensures a question is well-formed before it is issued.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question validation: id is required")
	}
	if q.Text == "" {
		return fmt.Errorf("question validation: text is required")
	}
	if !q.Type.IsValid() {
		return fmt.Errorf("question validation: %w", ErrInvalidQuestionType)
	}
	if (q.Type == SingleChoice || q.Type == MultiChoice) && len(q.Choices) == 0 {
		return fmt.Errorf("question validation: choice question %s has no choices", q.ID)
	}
	return nil
}

// RedFlag is a terminal, safety-critical override. Once set on a session it
// always forces the maximum urgency level and halts further questioning.
type RedFlag struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	// OverrideLevel is always LevelEmergency. Kept explicit so the record is
	// self-describing in transcripts and exports.
	OverrideLevel UrgencyLevel `json:"override_level"`
}

// Specialist is the optional routing attached to a prediction.
type Specialist struct {
	Specialist string `json:"specialist"`
	Secondary  string `json:"secondary,omitempty"`
	PCPFirst   bool   `json:"pcp_first"`
}

// Prediction is the structured output of the (external) prediction model.
// The core validates shape, never model correctness.
type Prediction struct {
	Level UrgencyLevel `json:"level"`
	Label string       `json:"label"`
	// Probabilities maps urgency level to probability in [0,1]. The map need
	// not sum to 1; levels 1 and 2, when present, drive all derived
	// percentages.
	Probabilities map[UrgencyLevel]float64 `json:"probabilities"`
	Specialist    *Specialist              `json:"specialist,omitempty"`
	RedFlag       *RedFlag                 `json:"red_flag,omitempty"`
	RiskFactors   []string                 `json:"risk_factors,omitempty"`
}

// Validate checks the prediction's shape.
func (p *Prediction) Validate() error {
	if !p.Level.IsValid() {
		return fmt.Errorf("prediction validation: %w: %d", ErrInvalidUrgencyLevel, p.Level)
	}
	for level, prob := range p.Probabilities {
		if !level.IsValid() {
			return fmt.Errorf("prediction validation: %w: probability key %d", ErrInvalidUrgencyLevel, level)
		}
		if prob < 0 || prob > 1 {
			return fmt.Errorf("prediction validation: probability for level %d out of [0,1]: %g", level, prob)
		}
	}
	return nil
}

// P returns the probability assigned to a level, or 0 when absent.
func (p *Prediction) P(level UrgencyLevel) float64 {
	if p.Probabilities == nil {
		return 0
	}
	return p.Probabilities[level]
}

// PatientState accumulates one interview session's answers. It is created at
// session start, mutated exclusively through the interview engine's
// answer-application step, and discarded at session end.
type PatientState struct {
	Name         string       `json:"name"`
	Age          int          `json:"age"`
	Sex          Sex          `json:"sex"`
	ZipCode      string       `json:"zip_code"`
	AnsweringFor AnsweringFor `json:"answering_for"`
	SymptomText  string       `json:"symptom_text"`
	PMHText      string       `json:"pmh_text"`

	// SelectedSymptoms is the ordered, duplicate-free list of symptom
	// category ids derived from the free-text description.
	SelectedSymptoms []string `json:"selected_symptoms"`
	// PMH is the set of structured past-medical-history condition labels.
	PMH []string `json:"pmh"`

	// InterviewHistory is append-only and is the single source of truth for
	// what has been asked.
	InterviewHistory []AnswerEntry `json:"interview_history"`
	// InterviewAnswers is a derived latest-write-wins index over the
	// history. It must always agree with the last history entry per id.
	InterviewAnswers map[string][]string `json:"interview_answers"`
	// FollowUpCursor tracks, per symptom, which follow-up attributes have
	// been answered. Maintained alongside the history so question selection
	// never re-scans it.
	FollowUpCursor map[string]map[string]bool `json:"followup_cursor"`

	RedFlag *RedFlag `json:"red_flag,omitempty"`
	Phase   Phase    `json:"phase"`
}

// NewPatientState returns an empty session state in the welcome phase.
func NewPatientState() *PatientState {
	return &PatientState{
		Sex:              SexUnknown,
		InterviewAnswers: map[string][]string{},
		FollowUpCursor:   map[string]map[string]bool{},
		Phase:            PhaseWelcome,
	}
}

// RecordAnswer appends an entry to the history and keeps the derived answer
// index and follow-up cursor in sync. It is the only mutation path for the
// transcript.
func (ps *PatientState) RecordAnswer(entry AnswerEntry) {
	ps.InterviewHistory = append(ps.InterviewHistory, entry)
	if ps.InterviewAnswers == nil {
		ps.InterviewAnswers = map[string][]string{}
	}
	ps.InterviewAnswers[entry.QuestionID] = entry.Answer

	if symptom, attribute, ok := ParseFollowUpID(entry.QuestionID); ok {
		if ps.FollowUpCursor == nil {
			ps.FollowUpCursor = map[string]map[string]bool{}
		}
		if ps.FollowUpCursor[symptom] == nil {
			ps.FollowUpCursor[symptom] = map[string]bool{}
		}
		ps.FollowUpCursor[symptom][attribute] = true
	}
}

// Answered reports whether a question id has been answered.
func (ps *PatientState) Answered(qid string) bool {
	_, ok := ps.InterviewAnswers[qid]
	return ok
}

// AnsweredFollowUps returns how many follow-up attributes have been answered
// for a symptom.
func (ps *PatientState) AnsweredFollowUps(symptom string) int {
	return len(ps.FollowUpCursor[symptom])
}

// AddSymptom appends a symptom category id, preserving order and uniqueness.
func (ps *PatientState) AddSymptom(id string) {
	for _, existing := range ps.SelectedSymptoms {
		if existing == id {
			return
		}
	}
	ps.SelectedSymptoms = append(ps.SelectedSymptoms, id)
}

// HasCondition reports whether a structured PMH label is present.
func (ps *PatientState) HasCondition(label string) bool {
	for _, c := range ps.PMH {
		if c == label {
			return true
		}
	}
	return false
}

// Validate checks cross-field invariants. Used by tests and at the
// persistence boundary; the engine maintains these by construction.
func (ps *PatientState) Validate() error {
	if !ps.Phase.IsValid() {
		return fmt.Errorf("patient state validation: %w: %q", ErrInvalidPhase, ps.Phase)
	}
	if !ps.Sex.IsValid() {
		return fmt.Errorf("patient state validation: %w: %q", ErrInvalidSex, ps.Sex)
	}
	seen := map[string]bool{}
	for _, s := range ps.SelectedSymptoms {
		if seen[s] {
			return fmt.Errorf("patient state validation: duplicate symptom %q", s)
		}
		seen[s] = true
	}
	// The answer index must agree with the last history entry per id.
	last := map[string][]string{}
	for _, e := range ps.InterviewHistory {
		last[e.QuestionID] = e.Answer
	}
	for qid, raw := range ps.InterviewAnswers {
		h, ok := last[qid]
		if !ok {
			return fmt.Errorf("patient state validation: answer index has %q with no history entry", qid)
		}
		if len(h) != len(raw) {
			return fmt.Errorf("patient state validation: answer index for %q disagrees with history", qid)
		}
		for i := range h {
			if h[i] != raw[i] {
				return fmt.Errorf("patient state validation: answer index for %q disagrees with history", qid)
			}
		}
	}
	return nil
}

// RiskPercentages are the derived population-and-model risk figures shown on
// the results view. All values are percentages in [0,100], one decimal.
type RiskPercentages struct {
	ImmediateAttention float64 `json:"immediate_attention"`
	Hospitalization    float64 `json:"hospitalization"`
	Death              float64 `json:"death"`
	// PSerious is the probability of needing same-day care, P(1)+P(2),
	// capped below certainty.
	PSerious float64 `json:"p_serious"`
}

// SymptomStat carries the published reference rates for one matched symptom.
type SymptomStat struct {
	Label         string  `json:"label"`
	AdmissionRate float64 `json:"admission_rate"`
	MortalityRate float64 `json:"mortality_rate"`
}

// EscalationItem is one "if this happens, do that" instruction.
type EscalationItem struct {
	IfSign     string `json:"if_sign"`
	ThenAction string `json:"then_action"`
	Severity   string `json:"severity"`
}

// HomeRemedy is one self-care suggestion, shown only at the lowest-urgency
// tier.
type HomeRemedy struct {
	Remedy string `json:"remedy"`
	Detail string `json:"detail"`
}

// DifferentialDx is one ranked candidate diagnosis.
type DifferentialDx struct {
	Diagnosis     string     `json:"diagnosis"`
	Likelihood    Likelihood `json:"likelihood"`
	Notes         string     `json:"notes"`
	SourceSymptom string     `json:"source_symptom"`
}

// Evidence is the synthesized, evidence-grounded explanation for a triage
// recommendation. Recomputed fresh on every results view, never cached.
type Evidence struct {
	Summary       string           `json:"summary"`
	SymptomStats  []SymptomStat    `json:"symptom_stats"`
	Sources       []string         `json:"sources,omitempty"`
	RiskPcts      RiskPercentages  `json:"risk_pcts"`
	Reassurance   string           `json:"reassurance"`
	WatchFor      []string         `json:"watch_for"`
	Escalation    []EscalationItem `json:"escalation"`
	HomeRemedies  []HomeRemedy     `json:"home_remedies"`
	TriageSummary []string         `json:"triage_summary"`
	Differential  []DifferentialDx `json:"differential"`
}
