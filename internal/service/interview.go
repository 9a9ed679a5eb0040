package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/domain"
)

// Engine drives the adaptive interview: it decides which question comes
// next, applies answers to the patient state, and runs the red-flag rules
// at every mandated point. All methods are pure in-memory transformations;
// the engine itself holds no per-session state.
type Engine struct {
	cfg        domain.InterviewConfig
	classifier domain.SymptomClassifier
	logger     *logrus.Logger
}

// NewEngine creates an interview engine.
func NewEngine(cfg domain.InterviewConfig, classifier domain.SymptomClassifier, logger *logrus.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		classifier: classifier,
		logger:     logger,
	}
}

// NextQuestion returns the next question to ask, or nil when the interview
// has reached a terminal phase. Red-flag evaluation has already happened in
// ApplyAnswer before this is called, so a terminal phase here is final.
func (e *Engine) NextQuestion(state *domain.PatientState) (*domain.Question, error) {
	if state.Phase.IsTerminal() {
		return nil, nil
	}
	if state.Phase == domain.PhaseWelcome {
		state.Phase = domain.PhaseBaseline
	}
	if e.cfg.MaxQuestions > 0 && len(state.InterviewHistory) >= e.cfg.MaxQuestions {
		e.logger.WithFields(logrus.Fields{
			"asked": len(state.InterviewHistory),
			"cap":   e.cfg.MaxQuestions,
		}).Warn("Question cap reached, completing interview")
		state.Phase = domain.PhaseComplete
		return nil, nil
	}

	if state.Phase == domain.PhaseBaseline {
		if q := e.nextBaseline(state); q != nil {
			return q, nil
		}
		state.Phase = domain.PhaseFollowUp
	}

	if q := e.nextFollowUp(state); q != nil {
		return q, nil
	}
	state.Phase = domain.PhaseComplete
	return nil, nil
}

func (e *Engine) nextBaseline(state *domain.PatientState) *domain.Question {
	for _, bq := range baselineCatalogue {
		if bq.Kind == domain.BaselineAnsweringForReason && !answeringForOther(state) {
			continue
		}
		if state.Answered(bq.Question.ID) {
			continue
		}
		q := bq.Question
		return &q
	}
	return nil
}

func (e *Engine) nextFollowUp(state *domain.PatientState) *domain.Question {
	for _, symptom := range state.SelectedSymptoms {
		for _, fu := range followUpsFor(symptom) {
			if state.FollowUpCursor[symptom][fu.Attribute] {
				continue
			}
			return &domain.Question{
				ID:      domain.FollowUpID(symptom, fu.Attribute),
				Text:    fu.Text,
				Type:    fu.Type,
				Choices: fu.Choices,
			}
		}
	}
	return nil
}

// EstimateTotal returns an approximate total question count for progress
// display. It is advisory only and never gates the interview flow.
func (e *Engine) EstimateTotal(state *domain.PatientState) int {
	total := len(baselineCatalogue)
	if !answeringForOther(state) {
		total--
	}
	for _, symptom := range state.SelectedSymptoms {
		total += len(followUpsFor(symptom))
	}
	if e.cfg.MaxQuestions > 0 && total > e.cfg.MaxQuestions {
		total = e.cfg.MaxQuestions
	}
	return total
}

// ApplyAnswer records an answer, applies its state mutation, and runs the
// red-flag check at the points where the flow requires it. It returns the
// red flag when one fires.
func (e *Engine) ApplyAnswer(state *domain.PatientState, questionID string, answer []string) (*domain.RedFlag, error) {
	if state.Phase.IsTerminal() {
		return nil, fmt.Errorf("apply answer %q: %w", questionID, domain.ErrInterviewTerminal)
	}
	if state.Phase == domain.PhaseWelcome {
		state.Phase = domain.PhaseBaseline
	}

	q, err := e.lookupQuestion(state, questionID)
	if err != nil {
		return nil, err
	}

	entry := domain.AnswerEntry{
		QuestionID:    questionID,
		QuestionText:  q.Text,
		Answer:        answer,
		AnswerDisplay: displayText(q, answer),
	}
	state.RecordAnswer(entry)

	if kind, ok := baselineKindOf(questionID); ok {
		e.applyBaseline(state, kind, answer)
	}

	if flag := e.checkNow(state, questionID); flag != nil {
		state.RedFlag = flag
		state.Phase = domain.PhaseRedFlagged
		e.logger.WithFields(logrus.Fields{
			"rule_id":  flag.ID,
			"question": questionID,
		}).Warn("Red flag triggered, interview halted")
		return flag, nil
	}

	if state.Phase == domain.PhaseBaseline && e.baselineComplete(state) {
		state.Phase = domain.PhaseFollowUp
	}
	return nil, nil
}

// checkNow decides whether this answer is one of the mandated red-flag
// check points: the reason-for-answering baseline question, every
// namespaced follow-up, and the moment baseline completes.
func (e *Engine) checkNow(state *domain.PatientState, questionID string) *domain.RedFlag {
	switch {
	case questionID == string(domain.BaselineAnsweringForReason):
		return CheckRedFlags(state)
	case domain.IsFollowUpID(questionID):
		return CheckRedFlags(state)
	case state.Phase == domain.PhaseBaseline && e.baselineComplete(state):
		return CheckRedFlags(state)
	}
	return nil
}

func (e *Engine) baselineComplete(state *domain.PatientState) bool {
	for _, bq := range baselineCatalogue {
		if bq.Kind == domain.BaselineAnsweringForReason && !answeringForOther(state) {
			continue
		}
		if !state.Answered(bq.Question.ID) {
			return false
		}
	}
	return true
}

func (e *Engine) lookupQuestion(state *domain.PatientState, questionID string) (*domain.Question, error) {
	for _, bq := range baselineCatalogue {
		if bq.Question.ID == questionID {
			q := bq.Question
			return &q, nil
		}
	}
	if symptom, attribute, ok := domain.ParseFollowUpID(questionID); ok {
		for _, fu := range followUpsFor(symptom) {
			if fu.Attribute == attribute {
				return &domain.Question{
					ID:      questionID,
					Text:    fu.Text,
					Type:    fu.Type,
					Choices: fu.Choices,
				}, nil
			}
		}
	}
	return nil, fmt.Errorf("apply answer: %w: %q", domain.ErrUnknownQuestion, questionID)
}

// applyBaseline performs the typed state mutation for a baseline answer.
func (e *Engine) applyBaseline(state *domain.PatientState, kind domain.BaselineKind, answer []string) {
	raw := ""
	if len(answer) > 0 {
		raw = strings.TrimSpace(answer[0])
	}
	switch kind {
	case domain.BaselineName:
		state.Name = raw
	case domain.BaselineAnsweringFor:
		state.AnsweringFor = domain.AnsweringFor(raw)
	case domain.BaselineAnsweringForReason:
		// Recorded in the answer index; the red-flag check reads it there.
	case domain.BaselineAge:
		state.Age = e.parseAge(raw)
	case domain.BaselineSex:
		sex := domain.Sex(raw)
		if !sex.IsValid() {
			sex = domain.SexUnknown
		}
		state.Sex = sex
	case domain.BaselineSymptoms:
		state.SymptomText = raw
		for _, id := range e.classifier.ClassifySymptoms(raw) {
			state.AddSymptom(id)
		}
	case domain.BaselinePMH:
		state.PMHText = raw
		state.PMH = e.classifier.ClassifyPMH(raw)
	case domain.BaselineZipCode:
		state.ZipCode = raw
	}
}

// parseAge falls back to the configured default rather than rejecting the
// answer, so a malformed age never stalls the interview.
func (e *Engine) parseAge(raw string) int {
	age, err := strconv.Atoi(raw)
	if err != nil || age < e.cfg.MinAge || age > e.cfg.MaxAge {
		e.logger.WithFields(logrus.Fields{
			"input":   raw,
			"default": e.cfg.DefaultAge,
		}).Warn("Unusable age answer, applying default")
		return e.cfg.DefaultAge
	}
	return age
}

func answeringForOther(state *domain.PatientState) bool {
	raw, ok := state.InterviewAnswers[string(domain.BaselineAnsweringFor)]
	return ok && len(raw) > 0 && raw[0] == string(domain.AnsweringOther)
}

func baselineKindOf(questionID string) (domain.BaselineKind, bool) {
	for _, bq := range baselineCatalogue {
		if bq.Question.ID == questionID {
			return bq.Kind, true
		}
	}
	return "", false
}

// displayText renders the human-readable answer: choice labels when the
// question has choices, the raw text otherwise.
func displayText(q *domain.Question, answer []string) string {
	if len(q.Choices) == 0 {
		return strings.Join(answer, ", ")
	}
	labels := make([]string, 0, len(answer))
	for _, v := range answer {
		label := v
		for _, c := range q.Choices {
			if c.Value == v {
				label = c.Label
				break
			}
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}
