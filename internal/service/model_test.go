package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-advisor-server/internal/domain"
)

func TestHeuristicPredictRedFlagForcesEmergency(t *testing.T) {
	m := NewHeuristicModel(testLogger())
	state := domain.NewPatientState()
	state.SelectedSymptoms = []string{"sore_throat"}
	state.RedFlag = &domain.RedFlag{ID: "severe_pain", OverrideLevel: 1}

	pred, err := m.Predict(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelEmergency, pred.Level)
	assert.Same(t, state.RedFlag, pred.RedFlag)
	assert.InDelta(t, 0.97, pred.P(domain.LevelEmergency), 1e-9)
	require.NoError(t, pred.Validate())
}

func TestHeuristicPredictBaseLevels(t *testing.T) {
	m := NewHeuristicModel(testLogger())

	cases := map[string]domain.UrgencyLevel{
		"chest_pain":  domain.LevelUrgentCare,
		"headache":    domain.LevelPrimaryCare,
		"back_pain":   domain.LevelSpecialist,
		"sore_throat": domain.LevelSelfCare,
	}
	for symptom, want := range cases {
		state := domain.NewPatientState()
		state.Age = 30
		state.SelectedSymptoms = []string{symptom}

		pred, err := m.Predict(context.Background(), state)
		require.NoError(t, err)
		assert.Equal(t, want, pred.Level, symptom)
		require.NoError(t, pred.Validate())
	}
}

func TestHeuristicPredictMostUrgentSymptomWins(t *testing.T) {
	m := NewHeuristicModel(testLogger())
	state := domain.NewPatientState()
	state.Age = 30
	state.SelectedSymptoms = []string{"sore_throat", "chest_pain", "rash"}

	pred, err := m.Predict(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelUrgentCare, pred.Level)
}

func TestHeuristicPredictAgeBump(t *testing.T) {
	m := NewHeuristicModel(testLogger())
	state := domain.NewPatientState()
	state.Age = 72
	state.SelectedSymptoms = []string{"headache"}

	pred, err := m.Predict(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelUrgentCare, pred.Level)
	assert.Contains(t, pred.RiskFactors, "Age 65 or older")
}

func TestHeuristicPredictNeverEmergencyWithoutFlag(t *testing.T) {
	m := NewHeuristicModel(testLogger())
	state := domain.NewPatientState()
	state.Age = 80
	state.SelectedSymptoms = []string{"chest_pain"}
	state.PMH = []string{"diabetes", "heart disease"}

	pred, err := m.Predict(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelUrgentCare, pred.Level)
}

func TestHeuristicPredictUnknownSymptomDefaultsToPrimaryCare(t *testing.T) {
	m := NewHeuristicModel(testLogger())
	state := domain.NewPatientState()
	state.Age = 30
	state.SelectedSymptoms = []string{"other"}

	pred, err := m.Predict(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, domain.LevelPrimaryCare, pred.Level)
}

func TestHeuristicSpecialistRouting(t *testing.T) {
	m := NewHeuristicModel(testLogger())
	state := domain.NewPatientState()
	state.Age = 30
	state.SelectedSymptoms = []string{"headache"}

	pred, err := m.Predict(context.Background(), state)
	require.NoError(t, err)
	require.NotNil(t, pred.Specialist)
	assert.Equal(t, "neurologist", pred.Specialist.Specialist)
	assert.True(t, pred.Specialist.PCPFirst)
}

func TestHeuristicRiskFactorsIncludeConcerningAnswers(t *testing.T) {
	m := NewHeuristicModel(testLogger())
	state := domain.NewPatientState()
	state.Age = 50
	state.SelectedSymptoms = []string{"chest_pain"}
	state.PMH = []string{"hypertension"}
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID:    domain.FollowUpID("chest_pain", "radiation"),
		Answer:        []string{"left_arm"},
		AnswerDisplay: "Yes, to my left arm or shoulder",
	})
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID:    domain.FollowUpID("chest_pain", "character"),
		Answer:        []string{"sharp"},
		AnswerDisplay: "Sharp or stabbing",
	})

	pred, err := m.Predict(context.Background(), state)
	require.NoError(t, err)
	assert.Contains(t, pred.RiskFactors, "History of hypertension")
	assert.Contains(t, pred.RiskFactors, "Yes, to my left arm or shoulder")
	assert.NotContains(t, pred.RiskFactors, "Sharp or stabbing")
}

func TestSpreadProbabilitiesSumsToOne(t *testing.T) {
	for _, level := range []domain.UrgencyLevel{
		domain.LevelEmergency, domain.LevelUrgentCare, domain.LevelPrimaryCare,
		domain.LevelSpecialist, domain.LevelSelfCare,
	} {
		probs := spreadProbabilities(level, 0.6)
		sum := 0.0
		for _, p := range probs {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "level %d", level)
		assert.InDelta(t, 0.6, probs[level], 1e-9)
	}
}

type stubModel struct {
	pred  *domain.Prediction
	err   error
	calls int
}

func (s *stubModel) Predict(context.Context, *domain.PatientState) (*domain.Prediction, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.pred, nil
}

func TestResilientModelUsesPrimary(t *testing.T) {
	want := &domain.Prediction{Level: domain.LevelPrimaryCare, Label: domain.LevelPrimaryCare.String()}
	primary := &stubModel{pred: want}
	fallback := &stubModel{pred: &domain.Prediction{Level: domain.LevelSelfCare}}
	m := NewResilientModel(primary, fallback, testLogger())

	got, err := m.Predict(context.Background(), domain.NewPatientState())
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Zero(t, fallback.calls)
}

func TestResilientModelFallsBackOnError(t *testing.T) {
	primary := &stubModel{err: errors.New("connection refused")}
	want := &domain.Prediction{Level: domain.LevelUrgentCare, Label: domain.LevelUrgentCare.String()}
	fallback := &stubModel{pred: want}
	m := NewResilientModel(primary, fallback, testLogger())

	got, err := m.Predict(context.Background(), domain.NewPatientState())
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestResilientModelBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	primary := &stubModel{err: errors.New("connection refused")}
	fallback := &stubModel{pred: &domain.Prediction{Level: domain.LevelUrgentCare}}
	m := NewResilientModel(primary, fallback, testLogger())

	state := domain.NewPatientState()
	for i := 0; i < 8; i++ {
		_, err := m.Predict(context.Background(), state)
		require.NoError(t, err)
	}

	// After five consecutive failures the breaker stops calling the primary.
	assert.Equal(t, 5, primary.calls)
	assert.Equal(t, 8, fallback.calls)
}

func TestResilientModelErrorsWhenBothFail(t *testing.T) {
	primary := &stubModel{err: errors.New("primary down")}
	fallback := &stubModel{err: errors.New("fallback down")}
	m := NewResilientModel(primary, fallback, testLogger())

	_, err := m.Predict(context.Background(), domain.NewPatientState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallback down")
}
