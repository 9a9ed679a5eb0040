package service

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-advisor-server/internal/domain"
	"github.com/triage-advisor-server/internal/knowledge"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testKB() *knowledge.Base {
	rates := knowledge.ReferenceRates{
		Overall: knowledge.OverallRates{AdmissionRate: 13.1, SevenDayMortality: 0.1},
		BySymptom: map[string]knowledge.SymptomRates{
			"chest_pain": {AdmissionRate: 42.0, MortalityRate: 0.3, Source: "CDC NHAMCS 2021"},
			"headache":   {AdmissionRate: 8.2, MortalityRate: 0.1, Source: "CDC NHAMCS 2021"},
			"back_pain":  {AdmissionRate: 6.4, MortalityRate: 0.05, Source: "CDC NHAMCS 2021"},
		},
	}
	categories := []knowledge.SymptomCategory{
		{ID: "chest_pain", Label: "Chest pain"},
		{ID: "headache", Label: "Headache"},
		{ID: "back_pain", Label: "Back pain"},
		{ID: "fever", Label: "Fever"},
		{ID: "other", Label: "Something else"},
	}
	return knowledge.NewBase(rates, categories)
}

func chestPainState() *domain.PatientState {
	state := domain.NewPatientState()
	state.Age = 55
	state.Sex = domain.SexMale
	state.SelectedSymptoms = []string{"chest_pain"}
	state.SymptomText = "crushing chest pain"
	return state
}

func TestRiskPercentagesChestPain(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	pred := &domain.Prediction{
		Level: domain.LevelEmergency,
		Label: "Emergency Department",
		Probabilities: map[domain.UrgencyLevel]float64{
			domain.LevelEmergency:  0.8,
			domain.LevelUrgentCare: 0.1,
		},
	}

	ev := synth.Synthesize(chestPainState(), pred)

	assert.Equal(t, 80.0, ev.RiskPcts.ImmediateAttention)
	assert.Equal(t, 67.2, ev.RiskPcts.Hospitalization)
	assert.Equal(t, 0.3, ev.RiskPcts.Death)
	assert.Equal(t, 90.0, ev.RiskPcts.PSerious)
}

func TestRiskPercentagesRedFlagFloors(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	pred := &domain.Prediction{
		Level: domain.LevelEmergency,
		Label: "Emergency Department",
		Probabilities: map[domain.UrgencyLevel]float64{
			domain.LevelEmergency:  0.8,
			domain.LevelUrgentCare: 0.1,
		},
		RedFlag: &domain.RedFlag{ID: "severe_pain", Name: "Severe pain", OverrideLevel: 1},
	}

	ev := synth.Synthesize(chestPainState(), pred)

	assert.Equal(t, 95.0, ev.RiskPcts.ImmediateAttention)
	// Already above the published admission rate, so unchanged.
	assert.Equal(t, 67.2, ev.RiskPcts.Hospitalization)
	assert.Equal(t, 95.0, ev.RiskPcts.PSerious)
}

func TestRiskPercentagesRedFlagWithLowProbabilities(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	pred := &domain.Prediction{
		Level:         domain.LevelEmergency,
		Label:         "Emergency Department",
		Probabilities: map[domain.UrgencyLevel]float64{domain.LevelEmergency: 0.05},
		RedFlag:       &domain.RedFlag{ID: "severe_pain", Name: "Severe pain", OverrideLevel: 1},
	}

	ev := synth.Synthesize(chestPainState(), pred)

	assert.Equal(t, 95.0, ev.RiskPcts.ImmediateAttention)
	assert.GreaterOrEqual(t, ev.RiskPcts.Hospitalization, 42.0)
	assert.Equal(t, 95.0, ev.RiskPcts.PSerious)
}

func TestRiskPercentagesNoSymptomsFallsBackToOverall(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := domain.NewPatientState()
	pred := &domain.Prediction{
		Level:         domain.LevelPrimaryCare,
		Label:         "Primary Care",
		Probabilities: map[domain.UrgencyLevel]float64{domain.LevelEmergency: 0.1},
	}

	ev := synth.Synthesize(state, pred)

	assert.Empty(t, ev.SymptomStats)
	assert.Empty(t, ev.Differential)
	assert.Equal(t, 0.1, ev.RiskPcts.Death)
	assert.Contains(t, ev.Summary, "based on your responses")
	assert.Equal(t, 13.1, ev.RiskPcts.Hospitalization)
}

func TestPSeriousCappedBelowCertainty(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	pred := &domain.Prediction{
		Level: domain.LevelEmergency,
		Label: "Emergency Department",
		Probabilities: map[domain.UrgencyLevel]float64{
			domain.LevelEmergency:  0.9,
			domain.LevelUrgentCare: 0.3,
		},
	}

	ev := synth.Synthesize(chestPainState(), pred)
	assert.Equal(t, 99.0, ev.RiskPcts.PSerious)
}

func TestWorstCaseRatesAcrossSymptoms(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := chestPainState()
	state.SelectedSymptoms = []string{"headache", "chest_pain"}

	pred := &domain.Prediction{
		Level:         domain.LevelUrgentCare,
		Label:         "Urgent Care",
		Probabilities: map[domain.UrgencyLevel]float64{domain.LevelEmergency: 0.1},
	}

	ev := synth.Synthesize(state, pred)

	// chest_pain has the worst published rates of the two.
	assert.Equal(t, 42.0, ev.RiskPcts.Hospitalization)
	assert.Equal(t, 0.3, ev.RiskPcts.Death)
	assert.Len(t, ev.SymptomStats, 2)
}

func TestWatchForDeduplicatesAndCaps(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	signs := synth.buildWatchFor([]string{"chest_pain", "headache", "fever"})

	require.NotEmpty(t, signs)
	assert.LessOrEqual(t, len(signs), maxWatchForItems)
	seen := map[string]bool{}
	for _, sign := range signs {
		assert.False(t, seen[sign], "duplicate watch-for sign: %s", sign)
		seen[sign] = true
	}
	// Symptom-specific entries come before the general ones.
	assert.Contains(t, signs[0], "arm, jaw, neck")
}

func TestEscalationDeduplicatesByAction(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	items := synth.buildEscalation([]string{"chest_pain", "shortness_of_breath"})

	require.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), maxEscalationItems)
	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item.ThenAction], "duplicate action: %s", item.ThenAction)
		seen[item.ThenAction] = true
	}
}

func TestHomeRemediesOnlyAtLowestTier(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	for _, level := range []domain.UrgencyLevel{
		domain.LevelEmergency, domain.LevelUrgentCare,
		domain.LevelPrimaryCare, domain.LevelSpecialist,
	} {
		assert.Empty(t, synth.buildHomeRemedies([]string{"headache"}, level),
			"level %d must not surface home remedies", level)
	}

	remedies := synth.buildHomeRemedies([]string{"headache"}, domain.LevelSelfCare)
	require.NotEmpty(t, remedies)
	assert.LessOrEqual(t, len(remedies), maxHomeRemedies)
}

func TestHomeRemediesGeneralFallbackIsSubstitute(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	// No remedy catalogue exists for this symptom, so the general list
	// substitutes in full.
	general := synth.buildHomeRemedies([]string{"gi_bleed"}, domain.LevelSelfCare)
	require.NotEmpty(t, general)
	assert.Equal(t, "Rest", general[0].Remedy)

	// With a matched symptom the general list must not be appended.
	matched := synth.buildHomeRemedies([]string{"headache"}, domain.LevelSelfCare)
	for _, rem := range matched {
		assert.NotEqual(t, "Monitor your symptoms", rem.Remedy)
	}
}

func TestTriageSummaryLines(t *testing.T) {
	state := chestPainState()
	state.PMH = []string{"diabetes", "hypertension"}
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID:    domain.FollowUpID("chest_pain", "radiation"),
		QuestionText:  "Does the pain spread anywhere?",
		Answer:        []string{"left_arm"},
		AnswerDisplay: "Into my left arm or shoulder",
	})
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID:    domain.FollowUpID("chest_pain", "character"),
		QuestionText:  "How would you describe the chest pain?",
		Answer:        []string{"sharp"},
		AnswerDisplay: "Sharp or stabbing",
	})

	pred := &domain.Prediction{
		Level:         domain.LevelEmergency,
		Label:         "Emergency Department",
		Probabilities: map[domain.UrgencyLevel]float64{domain.LevelEmergency: 0.8},
		RedFlag:       &domain.RedFlag{ID: "cardiac_radiation", Name: "Pain radiating to arm, jaw, or neck", OverrideLevel: 1},
	}

	items := buildTriageSummary(state, pred)

	require.NotEmpty(t, items)
	assert.Equal(t, "55-year-old male", items[0])
	assert.Equal(t, "Came in for: crushing chest pain", items[1])
	assert.Contains(t, items, "Does the pain spread anywhere?: Into my left arm or shoulder")
	// Benign follow-up answers stay out of the summary.
	for _, item := range items {
		assert.NotContains(t, item, "Sharp or stabbing")
	}
	assert.Contains(t, items, "Medical history: diabetes, hypertension")
	assert.Contains(t, items[len(items)-1], "Flagged: Pain radiating to arm, jaw, or neck")
}

func TestTriageSummarySkipsNegatedHistory(t *testing.T) {
	state := chestPainState()
	state.PMHText = "none"

	pred := &domain.Prediction{
		Level:         domain.LevelUrgentCare,
		Label:         "Urgent Care",
		Probabilities: map[domain.UrgencyLevel]float64{},
	}

	for _, item := range buildTriageSummary(state, pred) {
		assert.NotContains(t, item, "Medical history")
	}
}

func TestReassuranceTemplatesPerLevel(t *testing.T) {
	sp := &domain.Specialist{Specialist: "cardiologist", Secondary: "gastroenterologist", PCPFirst: true}

	emergency := buildReassurance(domain.LevelEmergency, []string{"Chest pain"}, nil)
	assert.Contains(t, emergency, "chest pain can be frightening")
	assert.Contains(t, emergency, "emergency department")

	urgent := buildReassurance(domain.LevelUrgentCare, nil, nil)
	assert.Contains(t, urgent, "urgent care center")

	pcp := buildReassurance(domain.LevelPrimaryCare, nil, sp)
	assert.Contains(t, pcp, "refer you to a cardiologist")

	specialist := buildReassurance(domain.LevelSpecialist, nil, sp)
	assert.Contains(t, specialist, "managed by a cardiologist")
	assert.Contains(t, specialist, "a gastroenterologist may also be helpful")

	selfCare := buildReassurance(domain.LevelSelfCare, nil, nil)
	assert.Contains(t, selfCare, "very likely not serious")
}

func TestDifferentialOsteoporosisPromotionForOlderAdult(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := domain.NewPatientState()
	state.Age = 70
	state.Sex = domain.SexFemale
	state.SelectedSymptoms = []string{"back_pain"}

	dxs := synth.buildDifferential(state, domain.LevelUrgentCare)

	require.NotEmpty(t, dxs)
	var fracture *domain.DifferentialDx
	for i := range dxs {
		if strings.Contains(dxs[i].Diagnosis, "compression fracture") {
			fracture = &dxs[i]
		}
	}
	require.NotNil(t, fracture, "expected the osteoporosis-linked diagnosis in the ranking")
	// Promoted one step from Uncommon.
	assert.Equal(t, domain.LessCommon, fracture.Likelihood)
}

func TestDifferentialSexExclusions(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := domain.NewPatientState()
	state.Age = 30
	state.Sex = domain.SexMale
	state.SelectedSymptoms = []string{"abdominal_pain"}

	for _, dx := range synth.buildDifferential(state, domain.LevelSelfCare) {
		assert.NotContains(t, dx.Diagnosis, "Ectopic pregnancy")
	}
}

func TestDifferentialAcuityOrderingFollowsLevel(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := domain.NewPatientState()
	state.Age = 55
	state.Sex = domain.SexMale
	state.SelectedSymptoms = []string{"chest_pain"}

	urgent := synth.buildDifferential(state, domain.LevelEmergency)
	require.NotEmpty(t, urgent)
	assert.Equal(t, 0, acuityScore(urgent[0], domain.LevelEmergency),
		"emergency-level ranking must lead with a serious rule-out")

	benign := synth.buildDifferential(state, domain.LevelSelfCare)
	require.NotEmpty(t, benign)
	assert.Equal(t, 0, acuityScore(benign[0], domain.LevelSelfCare),
		"self-care ranking must lead with a benign cause")
	assert.Equal(t, domain.Common, benign[0].Likelihood)
}

func TestDifferentialCapsAtThree(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := domain.NewPatientState()
	state.Age = 45
	state.Sex = domain.SexFemale
	state.SelectedSymptoms = []string{"chest_pain", "headache", "abdominal_pain"}

	dxs := synth.buildDifferential(state, domain.LevelPrimaryCare)
	assert.LessOrEqual(t, len(dxs), maxDifferentialItems)
}

func TestDifferentialCardiacPromotionWithHeartHistory(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := domain.NewPatientState()
	state.Age = 50
	state.Sex = domain.SexMale
	state.SelectedSymptoms = []string{"swelling"}
	state.PMH = []string{"heart disease"}

	dxs := synth.buildDifferential(state, domain.LevelUrgentCare)
	require.NotEmpty(t, dxs)
	found := false
	for _, dx := range dxs {
		if dx.Diagnosis == "Heart failure" {
			found = true
			// Promoted one step from Less common.
			assert.Equal(t, domain.Common, dx.Likelihood)
		}
	}
	assert.True(t, found, "expected heart failure in the ranking")
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	synth := NewSynthesizer(testKB(), testLogger())

	state := chestPainState()
	state.PMH = []string{"heart disease", "diabetes"}
	state.RecordAnswer(domain.AnswerEntry{
		QuestionID: domain.FollowUpID("chest_pain", "character"),
		Answer:     []string{"pressure"},
	})
	pred := &domain.Prediction{
		Level: domain.LevelEmergency,
		Label: "Emergency Department",
		Probabilities: map[domain.UrgencyLevel]float64{
			domain.LevelEmergency:  0.8,
			domain.LevelUrgentCare: 0.1,
		},
		RedFlag: &domain.RedFlag{ID: "cardiac_character", Name: "Cardiac-type chest pain", OverrideLevel: 1},
	}

	first := synth.Synthesize(state, pred)
	second := synth.Synthesize(state, pred)

	assert.Equal(t, first, second)
}
