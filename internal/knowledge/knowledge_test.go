package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triage-advisor-server/internal/domain"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const ratesFixture = `{
	"overall": {"admission_rate": 13.1, "seven_day_mortality": 0.1},
	"by_symptom": {
		"chest_pain": {"admission_rate": 42.0, "mortality_rate": 0.3, "source": "CDC NHAMCS 2021"}
	}
}`

const categoriesFixture = `[
	{"id": "chest_pain", "label": "Chest pain"},
	{"id": "headache", "label": "Headache"}
]`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.KnowledgeConfig{
		ReferenceRatesPath:    writeFixture(t, dir, "rates.json", ratesFixture),
		SymptomCategoriesPath: writeFixture(t, dir, "categories.json", categoriesFixture),
	}

	b, err := Load(cfg)
	require.NoError(t, err)

	assert.InDelta(t, 13.1, b.Rates.Overall.AdmissionRate, 1e-9)
	r, ok := b.SymptomRatesFor("chest_pain")
	require.True(t, ok)
	assert.InDelta(t, 42.0, r.AdmissionRate, 1e-9)
	assert.Equal(t, "CDC NHAMCS 2021", r.Source)

	label, ok := b.Label("headache")
	require.True(t, ok)
	assert.Equal(t, "Headache", label)
	_, ok = b.Label("unknown")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.KnowledgeConfig{
		ReferenceRatesPath:    filepath.Join(dir, "absent.json"),
		SymptomCategoriesPath: writeFixture(t, dir, "categories.json", categoriesFixture),
	}

	_, err := Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading reference rates")
}

func TestLoadRejectsMissingOverallRate(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.KnowledgeConfig{
		ReferenceRatesPath:    writeFixture(t, dir, "rates.json", `{"overall": {}, "by_symptom": {}}`),
		SymptomCategoriesPath: writeFixture(t, dir, "categories.json", categoriesFixture),
	}

	_, err := Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overall admission rate")
}

func TestLoadRejectsEmptyTaxonomy(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.KnowledgeConfig{
		ReferenceRatesPath:    writeFixture(t, dir, "rates.json", ratesFixture),
		SymptomCategoriesPath: writeFixture(t, dir, "categories.json", `[]`),
	}

	_, err := Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty taxonomy")
}

func TestLoadShippedReferenceData(t *testing.T) {
	cfg := domain.KnowledgeConfig{
		ReferenceRatesPath:    "../../config/public_reference_rates.json",
		SymptomCategoriesPath: "../../config/symptom_categories.json",
	}

	b, err := Load(cfg)
	require.NoError(t, err)
	assert.Greater(t, b.Rates.Overall.AdmissionRate, 0.0)
	assert.NotEmpty(t, b.Categories)

	// Every category in the shipped taxonomy with published rates also
	// carries a source citation.
	for _, c := range b.Categories {
		if r, ok := b.SymptomRatesFor(c.ID); ok {
			assert.NotEmpty(t, r.Source, c.ID)
		}
	}
}

func TestNewBaseAccessors(t *testing.T) {
	b := NewBase(
		ReferenceRates{
			Overall:   OverallRates{AdmissionRate: 10, SevenDayMortality: 0.1},
			BySymptom: map[string]SymptomRates{},
		},
		[]SymptomCategory{{ID: "fever", Label: "Fever"}},
	)

	label, ok := b.Label("fever")
	require.True(t, ok)
	assert.Equal(t, "Fever", label)
	_, ok = b.SymptomRatesFor("fever")
	assert.False(t, ok)
}

func TestStaticTablesPresent(t *testing.T) {
	b := NewBase(ReferenceRates{}, nil)

	assert.NotEmpty(t, b.WatchForSigns("chest_pain"))
	assert.NotEmpty(t, b.GeneralWatchForSigns())
	assert.NotEmpty(t, b.EscalationRules("chest_pain"))
	assert.NotEmpty(t, b.GeneralEscalationRules())
	assert.NotEmpty(t, b.HomeRemedies("headache"))
	assert.NotEmpty(t, b.GeneralHomeRemedies())
	assert.NotEmpty(t, b.Differentials("chest_pain"))

	assert.Nil(t, b.WatchForSigns("no_such_symptom"))
	assert.Nil(t, b.Differentials("no_such_symptom"))
}

func TestEscalationRulesWellFormed(t *testing.T) {
	for _, symptom := range []string{"chest_pain", "headache", "abdominal_pain", "shortness_of_breath"} {
		for _, rule := range NewBase(ReferenceRates{}, nil).EscalationRules(symptom) {
			assert.NotEmpty(t, rule.IfSign, symptom)
			assert.NotEmpty(t, rule.ThenAction, symptom)
			assert.NotEmpty(t, rule.Severity, symptom)
		}
	}
}
