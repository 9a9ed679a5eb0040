package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUrgencyLevelValidity(t *testing.T) {
	for _, l := range []UrgencyLevel{LevelEmergency, LevelUrgentCare, LevelPrimaryCare, LevelSpecialist, LevelSelfCare} {
		assert.True(t, l.IsValid(), l)
	}
	assert.False(t, UrgencyLevel(0).IsValid())
	assert.False(t, UrgencyLevel(6).IsValid())
	assert.Equal(t, "Emergency Department", LevelEmergency.String())
	assert.Equal(t, "Self-Care", LevelSelfCare.String())
}

func TestPhaseTerminality(t *testing.T) {
	assert.False(t, PhaseWelcome.IsTerminal())
	assert.False(t, PhaseBaseline.IsTerminal())
	assert.False(t, PhaseFollowUp.IsTerminal())
	assert.True(t, PhaseComplete.IsTerminal())
	assert.True(t, PhaseRedFlagged.IsTerminal())
	assert.False(t, Phase("other").IsValid())
}

func TestFollowUpIDRoundTrip(t *testing.T) {
	id := FollowUpID("chest_pain", "radiation")
	assert.Equal(t, "chest_pain__radiation", id)

	symptom, attribute, ok := ParseFollowUpID(id)
	require.True(t, ok)
	assert.Equal(t, "chest_pain", symptom)
	assert.Equal(t, "radiation", attribute)
}

func TestParseFollowUpIDRejectsBaselineIDs(t *testing.T) {
	for _, qid := range []string{"age", "answering_for_reason", "zip_code", "", "__", "__attr", "symptom__"} {
		_, _, ok := ParseFollowUpID(qid)
		assert.False(t, ok, qid)
	}
	// The attribute keeps any further separator intact.
	symptom, attribute, ok := ParseFollowUpID("back_pain__bladder__bowel")
	require.True(t, ok)
	assert.Equal(t, "back_pain", symptom)
	assert.Equal(t, "bladder__bowel", attribute)
}

func TestLikelihoodOrdering(t *testing.T) {
	assert.Equal(t, 1, VeryCommon.Order())
	assert.Equal(t, 2, Common.Order())
	assert.Equal(t, 3, LessCommon.Order())
	assert.Equal(t, 4, Uncommon.Order())
	assert.Equal(t, 5, Rare.Order())
	assert.Equal(t, 3, Likelihood("Unheard of").Order())
}

func TestLikelihoodPromoteDemoteClamp(t *testing.T) {
	assert.Equal(t, Common, LessCommon.Promote())
	assert.Equal(t, VeryCommon, VeryCommon.Promote())
	assert.Equal(t, Uncommon, LessCommon.Demote())
	assert.Equal(t, Rare, Rare.Demote())
}

func TestRecordAnswerKeepsIndexAndCursor(t *testing.T) {
	ps := NewPatientState()
	ps.RecordAnswer(AnswerEntry{QuestionID: "age", Answer: []string{"44"}})
	ps.RecordAnswer(AnswerEntry{QuestionID: FollowUpID("headache", "onset"), Answer: []string{"gradual"}})

	assert.True(t, ps.Answered("age"))
	assert.False(t, ps.Answered("sex"))
	assert.Equal(t, 1, ps.AnsweredFollowUps("headache"))
	assert.Equal(t, 0, ps.AnsweredFollowUps("chest_pain"))

	// Latest write wins in the index; history keeps both entries.
	ps.RecordAnswer(AnswerEntry{QuestionID: "age", Answer: []string{"45"}})
	assert.Equal(t, []string{"45"}, ps.InterviewAnswers["age"])
	assert.Len(t, ps.InterviewHistory, 3)

	require.NoError(t, ps.Validate())
}

func TestAddSymptomDeduplicates(t *testing.T) {
	ps := NewPatientState()
	ps.AddSymptom("headache")
	ps.AddSymptom("chest_pain")
	ps.AddSymptom("headache")

	assert.Equal(t, []string{"headache", "chest_pain"}, ps.SelectedSymptoms)
}

func TestPatientStateValidateCatchesCorruption(t *testing.T) {
	ps := NewPatientState()
	ps.InterviewAnswers["ghost"] = []string{"x"}

	err := ps.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history entry")
}

func TestPredictionValidate(t *testing.T) {
	p := &Prediction{
		Level: LevelUrgentCare,
		Label: LevelUrgentCare.String(),
		Probabilities: map[UrgencyLevel]float64{
			LevelEmergency:  0.2,
			LevelUrgentCare: 0.6,
		},
	}
	require.NoError(t, p.Validate())

	p.Level = UrgencyLevel(9)
	assert.ErrorIs(t, p.Validate(), ErrInvalidUrgencyLevel)

	p.Level = LevelUrgentCare
	p.Probabilities[LevelEmergency] = 1.5
	assert.Error(t, p.Validate())
}

func TestPredictionP(t *testing.T) {
	p := &Prediction{Probabilities: map[UrgencyLevel]float64{LevelEmergency: 0.8}}
	assert.InDelta(t, 0.8, p.P(LevelEmergency), 1e-9)
	assert.Zero(t, p.P(LevelSelfCare))

	empty := &Prediction{}
	assert.Zero(t, empty.P(LevelEmergency))
}

func TestAnswerEntryRawValue(t *testing.T) {
	assert.Equal(t, "sudden", AnswerEntry{Answer: []string{"sudden"}}.RawValue())
	assert.Equal(t, "", AnswerEntry{}.RawValue())
}
