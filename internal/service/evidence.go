package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/triage-advisor-server/internal/domain"
	"github.com/triage-advisor-server/internal/knowledge"
)

const (
	maxWatchForItems     = 8
	maxEscalationItems   = 8
	maxHomeRemedies      = 6
	maxDifferentialItems = 3
)

// Synthesizer combines a finished patient state, the model's prediction, and
// the published reference tables into the evidence block shown on the
// results page. Every derivation is recomputed fresh per call; nothing is
// cached between sessions.
type Synthesizer struct {
	kb     *knowledge.Base
	logger *logrus.Logger
}

// NewSynthesizer creates an evidence synthesizer over a loaded knowledge
// base.
func NewSynthesizer(kb *knowledge.Base, logger *logrus.Logger) *Synthesizer {
	return &Synthesizer{kb: kb, logger: logger}
}

// Synthesize builds the full evidence block for a (state, prediction) pair.
func (s *Synthesizer) Synthesize(state *domain.PatientState, pred *domain.Prediction) *domain.Evidence {
	pubAdmission, pubMortality, stats, sources := s.referenceRates(state)
	risk := computeRisk(pred, pubAdmission, pubMortality)

	symptomNames := s.symptomLabels(state.SelectedSymptoms)

	ev := &domain.Evidence{
		Summary:       s.buildSummary(symptomNames, risk.Hospitalization),
		SymptomStats:  stats,
		Sources:       sources,
		RiskPcts:      risk,
		Reassurance:   buildReassurance(pred.Level, symptomNames, pred.Specialist),
		WatchFor:      s.buildWatchFor(state.SelectedSymptoms),
		Escalation:    s.buildEscalation(state.SelectedSymptoms),
		HomeRemedies:  s.buildHomeRemedies(state.SelectedSymptoms, pred.Level),
		TriageSummary: buildTriageSummary(state, pred),
		Differential:  s.buildDifferential(state, pred.Level),
	}

	s.logger.WithFields(logrus.Fields{
		"level":        pred.Level,
		"symptoms":     len(state.SelectedSymptoms),
		"red_flag":     pred.RedFlag != nil,
		"differential": len(ev.Differential),
	}).Debug("Synthesized evidence")
	return ev
}

// referenceRates resolves the worst-case published rates across the
// patient's matched symptoms, falling back to the overall ED rates when no
// symptom matches.
func (s *Synthesizer) referenceRates(state *domain.PatientState) (admission, mortality float64, stats []domain.SymptomStat, sources []string) {
	var matchedAdmission, matchedMortality []float64
	seenSources := map[string]bool{}

	for _, symID := range state.SelectedSymptoms {
		rates, ok := s.kb.SymptomRatesFor(symID)
		if !ok {
			continue
		}
		matchedAdmission = append(matchedAdmission, rates.AdmissionRate)
		matchedMortality = append(matchedMortality, rates.MortalityRate)
		if rates.Source != "" && !seenSources[rates.Source] {
			seenSources[rates.Source] = true
			sources = append(sources, rates.Source)
		}
		if label, known := s.kb.Label(symID); known {
			stats = append(stats, domain.SymptomStat{
				Label:         label,
				AdmissionRate: rates.AdmissionRate,
				MortalityRate: rates.MortalityRate,
			})
		}
	}

	if len(matchedAdmission) > 0 {
		admission = maxFloat(matchedAdmission)
		mortality = maxFloat(matchedMortality)
		return admission, mortality, stats, sources
	}
	overall := s.kb.Rates.Overall
	return overall.AdmissionRate, overall.SevenDayMortality, stats, sources
}

// computeRisk derives the four risk percentages from the model
// probabilities and the published rates, then applies the red-flag floors.
// The floors guarantee a confirmed red flag is never undercut by a model
// that assigned it little probability mass.
func computeRisk(pred *domain.Prediction, pubAdmission, pubMortality float64) domain.RiskPercentages {
	p1 := pred.P(domain.LevelEmergency)
	p2 := pred.P(domain.LevelUrgentCare)

	immediate := round1(p1 * 100)

	hosp := round1(math.Max(pubAdmission, p1*pubAdmission*2))
	hosp = math.Min(hosp, 95.0)

	death := round1(pubMortality)

	pSerious := round1(math.Min((p1+p2)*100, 99.0))

	if pred.RedFlag != nil {
		immediate = math.Max(immediate, 95.0)
		hosp = math.Max(hosp, pubAdmission)
		pSerious = math.Max(pSerious, 95.0)
	}

	return domain.RiskPercentages{
		ImmediateAttention: immediate,
		Hospitalization:    hosp,
		Death:              death,
		PSerious:           pSerious,
	}
}

func (s *Synthesizer) symptomLabels(selected []string) []string {
	var names []string
	for _, symID := range selected {
		if symID == "other" {
			continue
		}
		if label, ok := s.kb.Label(symID); ok {
			names = append(names, label)
		}
	}
	return names
}

func (s *Synthesizer) buildSummary(symptomNames []string, hospPct float64) string {
	if len(symptomNames) == 0 {
		return "This recommendation is based on your responses analyzed " +
			"against published emergency department outcome data."
	}
	return fmt.Sprintf(
		"Based on published emergency department data, patients presenting "+
			"with symptoms similar to yours (%q) have an estimated %.1f%% "+
			"rate of hospital admission.",
		symptomNames[0], hospPct,
	)
}

// buildWatchFor collects symptom-specific warning signs first, then pads
// with the general list, deduplicating on exact text.
func (s *Synthesizer) buildWatchFor(selected []string) []string {
	var signs []string
	seen := map[string]bool{}
	add := func(sign string) {
		if !seen[sign] {
			seen[sign] = true
			signs = append(signs, sign)
		}
	}
	for _, symID := range selected {
		for _, sign := range s.kb.WatchForSigns(symID) {
			add(sign)
		}
	}
	for _, sign := range s.kb.GeneralWatchForSigns() {
		add(sign)
	}
	if len(signs) > maxWatchForItems {
		signs = signs[:maxWatchForItems]
	}
	return signs
}

// buildEscalation deduplicates on the action text so the patient never sees
// the same instruction twice under different triggers.
func (s *Synthesizer) buildEscalation(selected []string) []domain.EscalationItem {
	var items []domain.EscalationItem
	seenActions := map[string]bool{}
	add := func(item domain.EscalationItem) {
		if !seenActions[item.ThenAction] {
			seenActions[item.ThenAction] = true
			items = append(items, item)
		}
	}
	for _, symID := range selected {
		for _, item := range s.kb.EscalationRules(symID) {
			add(item)
		}
	}
	for _, item := range s.kb.GeneralEscalationRules() {
		add(item)
	}
	if len(items) > maxEscalationItems {
		items = items[:maxEscalationItems]
	}
	return items
}

// buildHomeRemedies returns self-care suggestions for the lowest-urgency
// tier only. The general list is a substitute when no symptom matched, not
// a supplement.
func (s *Synthesizer) buildHomeRemedies(selected []string, level domain.UrgencyLevel) []domain.HomeRemedy {
	if level != domain.LevelSelfCare {
		return nil
	}
	var remedies []domain.HomeRemedy
	seen := map[string]bool{}
	for _, symID := range selected {
		for _, rem := range s.kb.HomeRemedies(symID) {
			if !seen[rem.Remedy] {
				seen[rem.Remedy] = true
				remedies = append(remedies, rem)
			}
		}
	}
	if len(remedies) == 0 {
		remedies = append(remedies, s.kb.GeneralHomeRemedies()...)
	}
	if len(remedies) > maxHomeRemedies {
		remedies = remedies[:maxHomeRemedies]
	}
	return remedies
}

// negation tokens that suppress the free-text medical-history line.
func isPMHNegation(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "none", "no", "nothing", "n/a", "":
		return true
	}
	return false
}

// buildTriageSummary produces the structured hand-off lines a patient can
// show the triage nurse: demographics, chief complaint, every concerning
// follow-up answer, medical history, and the red flag if one fired.
func buildTriageSummary(state *domain.PatientState, pred *domain.Prediction) []string {
	var items []string

	if state.Age > 0 && (state.Sex == domain.SexMale || state.Sex == domain.SexFemale) {
		items = append(items, fmt.Sprintf("%d-year-old %s", state.Age, state.Sex))
	}
	if state.SymptomText != "" {
		items = append(items, "Came in for: "+state.SymptomText)
	}

	for _, entry := range state.InterviewHistory {
		if !domain.IsFollowUpID(entry.QuestionID) {
			continue
		}
		if isConcerningValue(entry.RawValue()) {
			items = append(items, entry.QuestionText+": "+entry.AnswerDisplay)
		}
	}

	if len(state.PMH) > 0 {
		items = append(items, "Medical history: "+strings.Join(state.PMH, ", "))
	} else if state.PMHText != "" && !isPMHNegation(state.PMHText) {
		items = append(items, "Medical history: "+state.PMHText)
	}

	if pred.RedFlag != nil {
		items = append(items, "⚠️ Flagged: "+pred.RedFlag.Name)
	}
	return items
}

// seriousMarkers identify diagnoses that an emergency-level recommendation
// exists to rule out.
var seriousMarkers = []string{
	"emergency", "medical emergency", "requires", "drainage",
	"heart attack", "stroke", "tia", "dissection", "embolism",
	"hemorrhage", "meningitis", "sepsis", "obstruction", "ectopic",
	"detachment", "glaucoma", "cauda equina", "intracranial",
	"fracture", "concussion", "appendicitis", "cholecystitis",
	"pyelonephritis", "pancreatitis", "heart failure",
}

// acuityScore ranks a diagnosis against the recommendation level: lower is
// more relevant. At emergency/urgent levels the serious rule-outs drive the
// recommendation and rank first; at lower levels the common benign causes
// do.
func acuityScore(dx domain.DifferentialDx, level domain.UrgencyLevel) int {
	text := strings.ToLower(dx.Diagnosis + " " + dx.Notes)
	serious := false
	for _, m := range seriousMarkers {
		if strings.Contains(text, m) {
			serious = true
			break
		}
	}
	if level <= domain.LevelUrgentCare {
		if serious {
			return 0
		}
		return 2
	}
	if serious {
		return 2
	}
	return 0
}

// buildDifferential assembles candidate diagnoses across the selected
// symptoms, adjusts their qualitative likelihood for age, sex, and medical
// history, and returns the top candidates driving the recommendation.
func (s *Synthesizer) buildDifferential(state *domain.PatientState, level domain.UrgencyLevel) []domain.DifferentialDx {
	var out []domain.DifferentialDx
	seen := map[string]bool{}

	age := state.Age
	if age <= 0 {
		age = 40
	}

	for _, symID := range state.SelectedSymptoms {
		for _, dx := range s.kb.Differentials(symID) {
			if seen[dx.Diagnosis] {
				continue
			}
			notes := strings.ToLower(dx.Notes)

			if strings.Contains(notes, "reproductive-age female") && state.Sex == domain.SexMale {
				continue
			}
			if strings.Contains(notes, "older males") && state.Sex == domain.SexFemale {
				continue
			}

			entry := dx
			entry.SourceSymptom = symID

			if strings.Contains(notes, "older adults") && age < 40 {
				entry.Likelihood = entry.Likelihood.Demote()
			}
			if strings.Contains(notes, "younger patients") && age >= 60 {
				entry.Likelihood = entry.Likelihood.Demote()
			}
			if strings.Contains(notes, "diabetes") && state.HasCondition("diabetes") {
				entry.Likelihood = entry.Likelihood.Promote()
			}
			if strings.Contains(notes, "cardiac") && state.HasCondition("heart disease") {
				entry.Likelihood = entry.Likelihood.Promote()
			}
			if strings.Contains(notes, "osteoporosis") && age >= 65 {
				entry.Likelihood = entry.Likelihood.Promote()
			}

			out = append(out, entry)
			seen[dx.Diagnosis] = true
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := acuityScore(out[i], level), acuityScore(out[j], level)
		if ai != aj {
			return ai < aj
		}
		return out[i].Likelihood.Order() < out[j].Likelihood.Order()
	})

	if len(out) > maxDifferentialItems {
		out = out[:maxDifferentialItems]
	}
	return out
}

// buildReassurance renders the level-keyed reassurance paragraph, weaving in
// the specialist routing where the level's template uses it.
func buildReassurance(level domain.UrgencyLevel, symptomNames []string, specialist *domain.Specialist) string {
	symptomDesc := "your symptoms"
	if len(symptomNames) > 0 {
		symptomDesc = strings.ToLower(symptomNames[0])
	}

	switch level {
	case domain.LevelEmergency:
		return fmt.Sprintf(
			"We understand that %s can be frightening. Based on your "+
				"responses, this combination of symptoms warrants prompt "+
				"medical evaluation to rule out anything serious. Many "+
				"patients who go to the emergency department for similar "+
				"symptoms are treated and sent home the same day. Going to "+
				"the ER is the safe and right thing to do — it does not mean "+
				"the worst is happening. Getting checked out gives you and "+
				"your doctors the information needed to take care of you "+
				"properly.",
			symptomDesc,
		)
	case domain.LevelUrgentCare:
		return "Your symptoms suggest you should be seen by a healthcare " +
			"provider today, but the situation is unlikely to be " +
			"life-threatening. An urgent care center can evaluate you, run " +
			"basic tests, and provide treatment or refer you if needed. " +
			"Most people with similar symptoms are treated and feel better " +
			"within a short time. If at any point your symptoms get " +
			"significantly worse, go to the nearest emergency department."
	case domain.LevelPrimaryCare:
		if specialist != nil && specialist.PCPFirst && specialist.Specialist != "" {
			return fmt.Sprintf(
				"Based on what you've told us, your symptoms are worth "+
					"getting checked, but they don't appear to need emergency "+
					"care right now. We recommend making an appointment with "+
					"your primary care doctor in the next day or two. Your "+
					"doctor can do a thorough evaluation and, if needed, "+
					"refer you to a %s for further workup. Most conditions "+
					"like this can be effectively managed starting with your "+
					"primary care provider. In the meantime, rest, stay "+
					"hydrated, and monitor how you're feeling.",
				specialist.Specialist,
			)
		}
		return "Based on what you've told us, your symptoms are concerning " +
			"enough to see a doctor, but they don't appear to need " +
			"emergency care right now. We recommend making an appointment " +
			"with your primary care doctor in the next day or two. Your " +
			"doctor can do a thorough evaluation and order any tests that " +
			"might be helpful. In the meantime, rest, stay hydrated, and " +
			"monitor how you're feeling."
	case domain.LevelSpecialist:
		spLine := "a specialist"
		secondaryLine := ""
		if specialist != nil {
			if specialist.Specialist != "" {
				spLine = "a " + specialist.Specialist
			}
			if specialist.Secondary != "" {
				secondaryLine = fmt.Sprintf(
					" In some cases, a %s may also be helpful, and your "+
						"doctor can advise which is best for you.",
					specialist.Secondary,
				)
			}
		}
		return fmt.Sprintf(
			"Your symptoms suggest a condition that may benefit from "+
				"specialized care. Based on published data from large "+
				"emergency department studies, patients with similar "+
				"complaints most often receive a diagnosis managed by %s. "+
				"This is not an emergency, but a specialist can help you get "+
				"the right diagnosis and treatment plan.%s Ask your primary "+
				"care doctor for a referral, or contact the specialist's "+
				"office directly. Most conditions like this respond well to "+
				"treatment once properly identified.",
			spLine, secondaryLine,
		)
	default:
		return "The good news is that based on your responses, your " +
			"symptoms are very likely not serious. Many people experience " +
			"similar symptoms that resolve on their own with rest, " +
			"hydration, and over-the-counter remedies. That said, your body " +
			"knows best — if something feels wrong or your symptoms change, " +
			"don't hesitate to seek medical care. Trust your instincts."
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func maxFloat(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
