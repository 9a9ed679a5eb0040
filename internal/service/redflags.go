package service

import (
	"github.com/triage-advisor-server/internal/domain"
)

// redFlagRule maps a set of concerning answer codes to a terminal override.
// Matching is value-based: any namespaced follow-up answer whose raw value is
// in Values fires the rule, regardless of which symptom asked the question.
type redFlagRule struct {
	ID      string
	Name    string
	Message string
	Values  []string
}

// redFlagOverrideLevel is the urgency tier every fired rule forces.
const redFlagOverrideLevel = domain.LevelEmergency

// concerningRules is scanned in declaration order; the first value match
// across the answer set wins.
var concerningRules = []redFlagRule{
	{
		ID:      "severe_pain",
		Name:    "Severe or worst-ever pain",
		Message: "Pain described as severe, the worst ever, or thunderclap in onset needs emergency evaluation now.",
		Values:  []string{"severe", "worst", "thunderclap"},
	},
	{
		ID:      "sudden_onset",
		Name:    "Sudden onset",
		Message: "Symptoms that begin abruptly within seconds to minutes can signal a vascular emergency.",
		Values:  []string{"sudden"},
	},
	{
		ID:      "cardiac_radiation",
		Name:    "Pain radiating to arm, jaw, or neck",
		Message: "Pain spreading to the left arm, jaw, or neck is a classic warning sign of a heart attack.",
		Values:  []string{"left_arm", "jaw_neck"},
	},
	{
		ID:      "cardiac_character",
		Name:    "Pressure, tightness, or tearing pain",
		Message: "Crushing pressure, tightness, or a tearing sensation requires immediate emergency care.",
		Values:  []string{"pressure", "tightness", "tearing"},
	},
	{
		ID:      "pain_at_rest",
		Name:    "Symptoms at rest",
		Message: "Cardiac-type symptoms that occur even at rest are treated as an emergency.",
		Values:  []string{"at_rest"},
	},
	{
		ID:      "cardiac_history",
		Name:    "Known heart disease with new symptoms",
		Message: "New symptoms in someone with a prior heart attack, heart disease, or cardiac procedure need emergency review.",
		Values:  []string{"heart_attack", "heart_disease", "stent_surgery"},
	},
	{
		ID:      "neuro_deficit",
		Name:    "New neurological deficit",
		Message: "One-sided weakness or facial droop, vision loss, or double vision can indicate a stroke. Call emergency services.",
		Values:  []string{"one_side_face", "one_side_body", "loss", "double"},
	},
	{
		ID:      "rapid_pulse",
		Name:    "Racing heartbeat",
		Message: "A racing or pounding heartbeat alongside other symptoms needs urgent assessment.",
		Values:  []string{"rapid"},
	},
	{
		ID:      "active_bleeding",
		Name:    "Recent bleeding or collapse",
		Message: "Recent bleeding, fainting, or passing out requires emergency evaluation.",
		Values:  []string{"yes_today", "yes_recently"},
	},
	{
		ID:      "forceful_vomiting",
		Name:    "Vomiting with severe symptoms",
		Message: "Vomiting, especially sudden forceful vomiting with a headache, can signal raised pressure in the skull.",
		Values:  []string{"vomiting", "projectile"},
	},
	{
		ID:      "critical_sign",
		Name:    "Critical warning sign reported",
		Message: "You reported a warning sign that needs immediate medical evaluation. Go to the nearest emergency department or call emergency services.",
		Values:  []string{"yes"},
	},
	{
		ID:      "multiple_injuries",
		Name:    "Injuries to multiple body areas",
		Message: "Injury involving more than one body region should be assessed in an emergency department.",
		Values:  []string{"multiple"},
	},
}

// confusionFlag is issued when someone reports answering for a person who is
// acutely confused or unable to respond. A long-standing inability to answer
// does not qualify.
var confusionFlag = domain.RedFlag{
	ID:            "mental_status_confused",
	Name:          "Confusion or altered mental status",
	Message:       "New confusion or inability to respond is a medical emergency. Call emergency services or go to the nearest emergency department now.",
	OverrideLevel: redFlagOverrideLevel,
}

// valueToRule is a derived lookup; concerningValues is the closed vocabulary
// shared with the triage-summary builder.
var (
	valueToRule      map[string]*redFlagRule
	concerningValues map[string]struct{}
)

func init() {
	valueToRule = make(map[string]*redFlagRule)
	concerningValues = make(map[string]struct{})
	for i := range concerningRules {
		r := &concerningRules[i]
		for _, v := range r.Values {
			if _, dup := valueToRule[v]; !dup {
				valueToRule[v] = r
			}
			concerningValues[v] = struct{}{}
		}
	}
}

// isConcerningValue reports whether a raw answer code belongs to the
// concerning vocabulary.
func isConcerningValue(v string) bool {
	_, ok := concerningValues[v]
	return ok
}

// CheckRedFlags scans the accumulated answers for the first concerning
// follow-up value and returns the matching flag, or nil. The caller also
// invokes it right after the reason-for-answering baseline question, where
// the acute-confusion short circuit applies before any follow-ups exist.
func CheckRedFlags(state *domain.PatientState) *domain.RedFlag {
	if raw, ok := state.InterviewAnswers[string(domain.BaselineAnsweringForReason)]; ok {
		if len(raw) > 0 && raw[0] == string(domain.ReasonConfused) {
			f := confusionFlag
			return &f
		}
	}
	for _, entry := range state.InterviewHistory {
		if !domain.IsFollowUpID(entry.QuestionID) {
			continue
		}
		for _, v := range entry.Answer {
			if rule, ok := valueToRule[v]; ok {
				return &domain.RedFlag{
					ID:            rule.ID,
					Name:          rule.Name,
					Message:       rule.Message,
					OverrideLevel: redFlagOverrideLevel,
				}
			}
		}
	}
	return nil
}
