package service

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
)

// KeywordClassifier maps free-text symptom and history descriptions to the
// closed symptom-category and condition vocabularies. Classification is a
// pure function of the input text, so results are memoized in a bounded LRU
// cache keyed by the normalized text.
type KeywordClassifier struct {
	cache  *lru.Cache
	logger *logrus.Logger
}

// symptomKeywords maps each symptom-category id to the phrases that select
// it. Multi-word phrases are matched as substrings of the normalized text;
// single words are matched against word boundaries via token lookup.
var symptomKeywords = map[string][]string{
	"chest_pain":          {"chest pain", "chest pressure", "chest tightness", "chest hurts", "pain in my chest", "angina"},
	"headache":            {"headache", "head ache", "migraine", "head pain", "head hurts"},
	"shortness_of_breath": {"short of breath", "shortness of breath", "can't breathe", "cannot breathe", "trouble breathing", "hard to breathe", "breathless", "wheezing"},
	"abdominal_pain":      {"stomach pain", "stomach ache", "belly pain", "abdominal pain", "stomach hurts", "belly hurts", "cramps"},
	"fever":               {"fever", "temperature", "chills", "feverish"},
	"dizziness":           {"dizzy", "dizziness", "lightheaded", "light headed", "vertigo", "room spinning"},
	"back_pain":           {"back pain", "back ache", "backache", "back hurts", "sciatica"},
	"weakness":            {"weak", "weakness", "fatigue", "exhausted", "no energy", "tired all the time"},
	"nausea_vomiting":     {"nausea", "nauseous", "vomit", "vomiting", "throwing up", "threw up"},
	"injury_fall":         {"fell", "fall", "injury", "injured", "hurt myself", "accident", "twisted", "sprain", "broke"},
	"gi_bleed":            {"blood in stool", "bloody stool", "black stool", "vomiting blood", "blood in vomit", "rectal bleeding"},
	"allergic_reaction":   {"allergic", "allergy", "hives", "swelling after", "bee sting", "swollen lips", "swollen tongue"},
	"rash":                {"rash", "skin irritation", "itchy skin", "red spots", "blisters"},
	"urinary":             {"burning when i pee", "painful urination", "burning urination", "uti", "blood in urine", "pee a lot", "urinary"},
	"cough":               {"cough", "coughing"},
	"sore_throat":         {"sore throat", "throat pain", "throat hurts", "swallowing hurts"},
}

// pmhKeywords maps structured condition labels to recognizer phrases.
var pmhKeywords = map[string][]string{
	"diabetes":            {"diabetes", "diabetic", "type 1", "type 2", "blood sugar"},
	"hypertension":        {"high blood pressure", "hypertension"},
	"heart disease":       {"heart disease", "heart attack", "heart failure", "afib", "atrial fibrillation", "stent", "bypass", "angina"},
	"asthma":              {"asthma", "inhaler"},
	"copd":                {"copd", "emphysema", "chronic bronchitis"},
	"cancer":              {"cancer", "chemotherapy", "chemo", "tumor"},
	"kidney disease":      {"kidney disease", "kidney failure", "dialysis"},
	"liver disease":       {"liver disease", "cirrhosis", "hepatitis"},
	"stroke":              {"stroke", "tia", "mini stroke"},
	"blood thinner use":   {"blood thinner", "warfarin", "coumadin", "eliquis", "xarelto"},
	"immunocompromised":   {"immunocompromised", "immune suppressed", "transplant", "hiv"},
	"pregnancy":           {"pregnant", "pregnancy"},
	"osteoporosis":        {"osteoporosis", "brittle bones"},
	"seizure disorder":    {"seizure", "epilepsy"},
	"mental health":       {"depression", "anxiety", "bipolar", "schizophrenia"},
	"thyroid disorder":    {"thyroid"},
	"high cholesterol":    {"high cholesterol", "cholesterol"},
	"autoimmune disease":  {"lupus", "rheumatoid", "autoimmune", "crohn", "colitis"},
}

// symptomOrder fixes the output order so classification is deterministic
// regardless of map iteration.
var symptomOrder = []string{
	"chest_pain", "shortness_of_breath", "headache", "abdominal_pain",
	"gi_bleed", "injury_fall", "allergic_reaction", "dizziness", "weakness",
	"nausea_vomiting", "fever", "back_pain", "urinary", "rash", "cough",
	"sore_throat",
}

var pmhOrder = []string{
	"diabetes", "hypertension", "heart disease", "high cholesterol", "asthma",
	"copd", "cancer", "kidney disease", "liver disease", "stroke",
	"blood thinner use", "immunocompromised", "pregnancy", "osteoporosis",
	"seizure disorder", "thyroid disorder", "autoimmune disease",
	"mental health",
}

// NewKeywordClassifier creates a classifier with a bounded memo cache.
func NewKeywordClassifier(cacheSize int, logger *logrus.Logger) (*KeywordClassifier, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &KeywordClassifier{cache: cache, logger: logger}, nil
}

// ClassifySymptoms extracts symptom-category ids from a free-text complaint.
// Returns ids in the fixed catalogue order; empty input yields nil.
func (c *KeywordClassifier) ClassifySymptoms(text string) []string {
	return c.classify("sym:", text, symptomOrder, symptomKeywords)
}

// ClassifyPMH extracts structured condition labels from a free-text medical
// history. Negation tokens ("none", "no", "nothing") yield nil.
func (c *KeywordClassifier) ClassifyPMH(text string) []string {
	if isNegation(text) {
		return nil
	}
	return c.classify("pmh:", text, pmhOrder, pmhKeywords)
}

func (c *KeywordClassifier) classify(prefix, text string, order []string, table map[string][]string) []string {
	normalized := normalizeText(text)
	if normalized == "" {
		return nil
	}
	cacheKey := prefix + normalized
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]string)
	}

	tokens := tokenSet(normalized)
	var matched []string
	for _, id := range order {
		for _, phrase := range table[id] {
			if matchPhrase(normalized, tokens, phrase) {
				matched = append(matched, id)
				break
			}
		}
	}
	c.cache.Add(cacheKey, matched)
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"matches": len(matched),
		}).Debug("Classified free-text input")
	}
	return matched
}

func matchPhrase(normalized string, tokens map[string]struct{}, phrase string) bool {
	if strings.ContainsRune(phrase, ' ') {
		return strings.Contains(normalized, phrase)
	}
	_, ok := tokens[phrase]
	return ok
}

func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenSet(normalized string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, t := range strings.Fields(normalized) {
		tokens[t] = struct{}{}
	}
	return tokens
}

func isNegation(text string) bool {
	switch strings.TrimSpace(strings.ToLower(text)) {
	case "none", "no", "nothing", "n/a", "na", "":
		return true
	}
	return false
}
