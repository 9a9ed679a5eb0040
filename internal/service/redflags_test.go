package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-advisor-server/internal/domain"
)

func stateWithFollowUpAnswer(symptom, attribute, value string) *domain.PatientState {
	state := domain.NewPatientState()
	state.Phase = domain.PhaseFollowUp
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: domain.FollowUpID(symptom, attribute),
		Answer:     []string{value},
	})
	return state
}

func TestCheckRedFlagsThunderclap(t *testing.T) {
	state := stateWithFollowUpAnswer("headache", "severity", "thunderclap")

	flag := CheckRedFlags(state)
	require.NotNil(t, flag)
	assert.Equal(t, "severe_pain", flag.ID)
	assert.Equal(t, domain.LevelEmergency, flag.OverrideLevel)
	assert.NotEmpty(t, flag.Message)
}

func TestCheckRedFlagsMatchesByValueNotSymptom(t *testing.T) {
	// "sudden" fires no matter which symptom's follow-up carried it.
	for _, symptom := range []string{"headache", "abdominal_pain", "back_pain"} {
		state := stateWithFollowUpAnswer(symptom, "onset", "sudden")
		flag := CheckRedFlags(state)
		require.NotNil(t, flag, "symptom %s", symptom)
		assert.Equal(t, "sudden_onset", flag.ID)
	}
}

func TestCheckRedFlagsBenignAnswers(t *testing.T) {
	state := domain.NewPatientState()
	state.Phase = domain.PhaseFollowUp
	for _, e := range []domain.AnswerEntry{
		{QuestionID: domain.FollowUpID("chest_pain", "character"), Answer: []string{"sharp"}},
		{QuestionID: domain.FollowUpID("chest_pain", "radiation"), Answer: []string{"no"}},
		{QuestionID: domain.FollowUpID("chest_pain", "trigger"), Answer: []string{"exertion"}},
		{QuestionID: domain.FollowUpID("chest_pain", "pulse"), Answer: []string{"normal"}},
	} {
		state.RecordAnswer(e)
	}

	assert.Nil(t, CheckRedFlags(state))
}

func TestCheckRedFlagsIgnoresBaselineAnswers(t *testing.T) {
	// Concerning vocabulary in a baseline free-text answer must not fire;
	// only namespaced follow-up values count.
	state := domain.NewPatientState()
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: string(domain.BaselineSymptoms),
		Answer:     []string{"sudden severe headache"},
	})

	assert.Nil(t, CheckRedFlags(state))
}

func TestCheckRedFlagsFirstMatchWins(t *testing.T) {
	state := domain.NewPatientState()
	state.Phase = domain.PhaseFollowUp
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: domain.FollowUpID("chest_pain", "character"),
		Answer:     []string{"pressure"},
	})
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: domain.FollowUpID("chest_pain", "radiation"),
		Answer:     []string{"left_arm"},
	})

	flag := CheckRedFlags(state)
	require.NotNil(t, flag)
	// History order decides: the pressure answer came first.
	assert.Equal(t, "cardiac_character", flag.ID)
}

func TestCheckRedFlagsConfusedReason(t *testing.T) {
	state := domain.NewPatientState()
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: string(domain.BaselineAnsweringForReason),
		Answer:     []string{string(domain.ReasonConfused)},
	})

	flag := CheckRedFlags(state)
	require.NotNil(t, flag)
	assert.Equal(t, "mental_status_confused", flag.ID)
	assert.Equal(t, domain.LevelEmergency, flag.OverrideLevel)
}

func TestCheckRedFlagsChronicUnableReason(t *testing.T) {
	state := domain.NewPatientState()
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: string(domain.BaselineAnsweringForReason),
		Answer:     []string{string(domain.ReasonChronicUnable)},
	})

	assert.Nil(t, CheckRedFlags(state))
}

func TestCheckRedFlagsMultiValueAnswer(t *testing.T) {
	state := domain.NewPatientState()
	state.Phase = domain.PhaseFollowUp
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: domain.FollowUpID("headache", "neuro"),
		Answer:     []string{"none", "double"},
	})

	flag := CheckRedFlags(state)
	require.NotNil(t, flag)
	assert.Equal(t, "neuro_deficit", flag.ID)
}

func TestCheckRedFlagsCriticalYes(t *testing.T) {
	state := stateWithFollowUpAnswer("back_pain", "bladder_bowel", "yes")

	flag := CheckRedFlags(state)
	require.NotNil(t, flag)
	assert.Equal(t, "critical_sign", flag.ID)
}

func TestConcerningVocabulary(t *testing.T) {
	for _, v := range []string{"thunderclap", "sudden", "left_arm", "tearing", "yes", "projectile"} {
		assert.True(t, isConcerningValue(v), v)
	}
	for _, v := range []string{"no", "mild", "gradual", "sharp", "full", ""} {
		assert.False(t, isConcerningValue(v), v)
	}
}

func TestEveryRuleValueResolvesToItsRule(t *testing.T) {
	for i := range concerningRules {
		r := &concerningRules[i]
		for _, v := range r.Values {
			got, ok := valueToRule[v]
			require.True(t, ok, v)
			assert.Equal(t, r.ID, got.ID, "value %q", v)
		}
	}
}
