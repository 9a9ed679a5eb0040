// Package knowledge holds the process-wide clinical reference data: published
// population rates, the symptom taxonomy, and the static content tables
// (watch-for signs, escalation rules, home remedies, differential catalogues).
// Everything here is loaded or compiled in once and is read-only afterwards,
// so any number of concurrent sessions can share one Base without locking.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/triage-advisor-server/internal/domain"
)

// OverallRates are the population-wide fallback rates used when none of the
// patient's symptoms match the per-symptom table.
type OverallRates struct {
	AdmissionRate     float64 `json:"admission_rate"`
	SevenDayMortality float64 `json:"seven_day_mortality"`
}

// SymptomRates are the published admission and mortality rates for one
// symptom category, with the citing source.
type SymptomRates struct {
	AdmissionRate float64 `json:"admission_rate"`
	MortalityRate float64 `json:"mortality_rate"`
	Source        string  `json:"source"`
}

// ReferenceRates is the file contract for public_reference_rates.json.
type ReferenceRates struct {
	Overall   OverallRates            `json:"overall"`
	BySymptom map[string]SymptomRates `json:"by_symptom"`
}

// SymptomCategory is one entry of the ordered symptom taxonomy.
type SymptomCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Base is the immutable knowledge base. Construct it once at startup with
// Load and inject it; no component mutates it after load.
type Base struct {
	Rates      ReferenceRates
	Categories []SymptomCategory

	labels map[string]string
}

// Load reads the file-backed reference tables. Any missing or unreadable
// file is an error: the system must not serve sessions with partial
// reference data, so callers treat a Load failure as fatal.
func Load(cfg domain.KnowledgeConfig) (*Base, error) {
	b := &Base{}

	if err := readJSONFile(cfg.ReferenceRatesPath, &b.Rates); err != nil {
		return nil, fmt.Errorf("loading reference rates: %w", err)
	}
	if b.Rates.Overall.AdmissionRate <= 0 {
		return nil, fmt.Errorf("loading reference rates: overall admission rate missing")
	}

	if err := readJSONFile(cfg.SymptomCategoriesPath, &b.Categories); err != nil {
		return nil, fmt.Errorf("loading symptom categories: %w", err)
	}
	if len(b.Categories) == 0 {
		return nil, fmt.Errorf("loading symptom categories: empty taxonomy")
	}

	b.labels = make(map[string]string, len(b.Categories))
	for _, c := range b.Categories {
		b.labels[c.ID] = c.Label
	}

	return b, nil
}

// NewBase builds a knowledge base directly from in-memory data. Intended for
// tests that substitute fixture rates and taxonomies.
func NewBase(rates ReferenceRates, categories []SymptomCategory) *Base {
	labels := make(map[string]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Label
	}
	return &Base{Rates: rates, Categories: categories, labels: labels}
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Label returns the display label for a symptom id. ok is false for ids
// absent from the taxonomy.
func (b *Base) Label(symptomID string) (string, bool) {
	label, ok := b.labels[symptomID]
	return label, ok
}

// SymptomRatesFor returns the published rates for a symptom id, if any.
func (b *Base) SymptomRatesFor(symptomID string) (SymptomRates, bool) {
	r, ok := b.Rates.BySymptom[symptomID]
	return r, ok
}

// WatchForSigns returns the warning-sign list for a symptom; nil for
// symptoms absent from the table.
func (b *Base) WatchForSigns(symptomID string) []string {
	return symptomWatchFor[symptomID]
}

// GeneralWatchForSigns returns the symptom-independent fallback signs.
func (b *Base) GeneralWatchForSigns() []string {
	return generalWatchFor
}

// EscalationRules returns the escalation rules for a symptom; nil for
// symptoms absent from the table.
func (b *Base) EscalationRules(symptomID string) []domain.EscalationItem {
	return symptomEscalation[symptomID]
}

// GeneralEscalationRules returns the symptom-independent fallback rules.
func (b *Base) GeneralEscalationRules() []domain.EscalationItem {
	return generalEscalation
}

// HomeRemedies returns the self-care suggestions for a symptom; nil for
// symptoms absent from the table.
func (b *Base) HomeRemedies(symptomID string) []domain.HomeRemedy {
	return symptomHomeRemedies[symptomID]
}

// GeneralHomeRemedies returns the fallback suggestions used when no selected
// symptom has a remedy entry. The fallback substitutes, never supplements.
func (b *Base) GeneralHomeRemedies() []domain.HomeRemedy {
	return generalHomeRemedies
}

// Differentials returns the candidate-diagnosis catalogue for a symptom; nil
// for symptoms absent from the table.
func (b *Base) Differentials(symptomID string) []domain.DifferentialDx {
	return symptomDifferentials[symptomID]
}
