package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/triage-advisor-server/internal/domain"
)

// symptomBaseLevel is the deterministic starting urgency per symptom
// category. The most urgent symptom wins when several are present.
var symptomBaseLevel = map[string]domain.UrgencyLevel{
	"chest_pain":          domain.LevelUrgentCare,
	"shortness_of_breath": domain.LevelUrgentCare,
	"gi_bleed":            domain.LevelUrgentCare,
	"allergic_reaction":   domain.LevelUrgentCare,
	"headache":            domain.LevelPrimaryCare,
	"abdominal_pain":      domain.LevelPrimaryCare,
	"dizziness":           domain.LevelPrimaryCare,
	"weakness":            domain.LevelPrimaryCare,
	"fever":               domain.LevelPrimaryCare,
	"nausea_vomiting":     domain.LevelPrimaryCare,
	"injury_fall":         domain.LevelPrimaryCare,
	"urinary":             domain.LevelPrimaryCare,
	"back_pain":           domain.LevelSpecialist,
	"rash":                domain.LevelSpecialist,
	"cough":               domain.LevelSelfCare,
	"sore_throat":         domain.LevelSelfCare,
}

// specialistRouting maps a primary symptom to its most common discharge
// specialty.
var specialistRouting = map[string]domain.Specialist{
	"chest_pain":          {Specialist: "cardiologist", Secondary: "gastroenterologist", PCPFirst: false},
	"shortness_of_breath": {Specialist: "pulmonologist", Secondary: "cardiologist", PCPFirst: false},
	"headache":            {Specialist: "neurologist", PCPFirst: true},
	"dizziness":           {Specialist: "neurologist", Secondary: "ENT specialist", PCPFirst: true},
	"abdominal_pain":      {Specialist: "gastroenterologist", PCPFirst: true},
	"back_pain":           {Specialist: "orthopedist", Secondary: "physical therapist", PCPFirst: true},
	"injury_fall":         {Specialist: "orthopedist", PCPFirst: false},
	"rash":                {Specialist: "dermatologist", PCPFirst: true},
	"urinary":             {Specialist: "urologist", PCPFirst: true},
	"weakness":            {Specialist: "neurologist", PCPFirst: true},
}

// HeuristicModel is the built-in prediction model: a deterministic scorer
// over the patient state. It stands in wherever no remote model endpoint is
// configured and serves as the fallback when the remote model is down.
type HeuristicModel struct {
	logger *logrus.Logger
}

// NewHeuristicModel creates the built-in prediction model.
func NewHeuristicModel(logger *logrus.Logger) *HeuristicModel {
	return &HeuristicModel{logger: logger}
}

// Predict derives an urgency level and probability spread from the patient
// state. A triggered red flag always forces the emergency tier.
func (m *HeuristicModel) Predict(_ context.Context, state *domain.PatientState) (*domain.Prediction, error) {
	if state.RedFlag != nil {
		return &domain.Prediction{
			Level:         domain.LevelEmergency,
			Label:         domain.LevelEmergency.String(),
			Probabilities: spreadProbabilities(domain.LevelEmergency, 0.97),
			RedFlag:       state.RedFlag,
			Specialist:    m.specialistFor(state),
			RiskFactors:   m.riskFactors(state),
		}, nil
	}

	level := domain.LevelSelfCare
	for _, symID := range state.SelectedSymptoms {
		base, ok := symptomBaseLevel[symID]
		if !ok {
			base = domain.LevelPrimaryCare
		}
		if base < level {
			level = base
		}
	}

	// Demographic and history adjustments pull toward more urgent care.
	bump := 0
	if state.Age >= 65 {
		bump++
	}
	if state.HasCondition("heart disease") || state.HasCondition("immunocompromised") {
		bump++
	}
	if state.HasCondition("diabetes") && containsSymptom(state.SelectedSymptoms, "chest_pain") {
		bump++
	}
	level -= domain.UrgencyLevel(bump)
	if level < domain.LevelUrgentCare {
		// The heuristic never recommends the ER on its own; only a red flag
		// does that.
		level = domain.LevelUrgentCare
	}
	if level > domain.LevelSelfCare {
		level = domain.LevelSelfCare
	}

	pred := &domain.Prediction{
		Level:         level,
		Label:         level.String(),
		Probabilities: spreadProbabilities(level, 0.6),
		Specialist:    m.specialistFor(state),
		RiskFactors:   m.riskFactors(state),
	}
	m.logger.WithFields(logrus.Fields{
		"level":    level,
		"symptoms": len(state.SelectedSymptoms),
	}).Debug("Heuristic prediction")
	return pred, nil
}

// spreadProbabilities assigns peak mass to the chosen level and splits the
// remainder across its neighbors.
func spreadProbabilities(level domain.UrgencyLevel, peak float64) map[domain.UrgencyLevel]float64 {
	probs := map[domain.UrgencyLevel]float64{level: peak}
	remaining := 1.0 - peak
	var neighbors []domain.UrgencyLevel
	if level > domain.LevelEmergency {
		neighbors = append(neighbors, level-1)
	}
	if level < domain.LevelSelfCare {
		neighbors = append(neighbors, level+1)
	}
	if len(neighbors) == 0 {
		return probs
	}
	share := remaining / float64(len(neighbors))
	for _, n := range neighbors {
		probs[n] = share
	}
	return probs
}

func (m *HeuristicModel) specialistFor(state *domain.PatientState) *domain.Specialist {
	for _, symID := range state.SelectedSymptoms {
		if sp, ok := specialistRouting[symID]; ok {
			return &sp
		}
	}
	return nil
}

func (m *HeuristicModel) riskFactors(state *domain.PatientState) []string {
	var factors []string
	if state.Age >= 65 {
		factors = append(factors, "Age 65 or older")
	}
	for _, cond := range state.PMH {
		factors = append(factors, "History of "+cond)
	}
	for _, entry := range state.InterviewHistory {
		if domain.IsFollowUpID(entry.QuestionID) && isConcerningValue(entry.RawValue()) {
			factors = append(factors, entry.AnswerDisplay)
		}
	}
	return factors
}

func containsSymptom(selected []string, id string) bool {
	for _, s := range selected {
		if s == id {
			return true
		}
	}
	return false
}

// ResilientModel wraps a primary (typically remote) prediction model with a
// circuit breaker and falls back to the built-in heuristic when the primary
// fails or the breaker is open. Triage must always produce an answer.
type ResilientModel struct {
	primary  domain.PredictionModel
	fallback domain.PredictionModel
	breaker  *gobreaker.CircuitBreaker
	logger   *logrus.Logger
}

// NewResilientModel wraps primary with breaker-guarded fallback.
func NewResilientModel(primary, fallback domain.PredictionModel, logger *logrus.Logger) *ResilientModel {
	settings := gobreaker.Settings{
		Name:        "prediction-model",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Prediction model circuit breaker state change")
		},
	}
	return &ResilientModel{
		primary:  primary,
		fallback: fallback,
		breaker:  gobreaker.NewCircuitBreaker(settings),
		logger:   logger,
	}
}

// Predict tries the primary model through the breaker, then the fallback.
func (r *ResilientModel) Predict(ctx context.Context, state *domain.PatientState) (*domain.Prediction, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.primary.Predict(ctx, state)
	})
	if err == nil {
		return result.(*domain.Prediction), nil
	}

	r.logger.WithError(err).Warn("Primary prediction model unavailable, using fallback")
	pred, fbErr := r.fallback.Predict(ctx, state)
	if fbErr != nil {
		return nil, fmt.Errorf("prediction fallback failed after primary error %v: %w", err, fbErr)
	}
	return pred, nil
}
