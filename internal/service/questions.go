package service

import (
	"github.com/triage-advisor-server/internal/domain"
)

// baselineQuestion pairs a typed baseline kind with its question and the
// state mutation it performs (applied in interview.go). The reason question
// is a branch: it is only asked when the answering_for answer is "other".
type baselineQuestion struct {
	Kind     domain.BaselineKind
	Question domain.Question
}

var yesNoChoices = []domain.Choice{
	{Value: "yes", Label: "Yes"},
	{Value: "no", Label: "No"},
}

// baselineCatalogue is the fixed intake sequence, in interview order.
var baselineCatalogue = []baselineQuestion{
	{
		Kind: domain.BaselineName,
		Question: domain.Question{
			ID:   string(domain.BaselineName),
			Text: "What is your first name?",
			Type: domain.FreeText,
		},
	},
	{
		Kind: domain.BaselineAnsweringFor,
		Question: domain.Question{
			ID:   string(domain.BaselineAnsweringFor),
			Text: "Are you answering these questions for yourself or for someone else?",
			Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: string(domain.AnsweringSelf), Label: "For myself"},
				{Value: string(domain.AnsweringOther), Label: "For someone else"},
			},
		},
	},
	{
		Kind: domain.BaselineAnsweringForReason,
		Question: domain.Question{
			ID:   string(domain.BaselineAnsweringForReason),
			Text: "Why are you answering for them?",
			Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: string(domain.ReasonTooYoung), Label: "They are a child"},
				{Value: string(domain.ReasonConfused), Label: "They are confused or can't answer right now"},
				{Value: string(domain.ReasonChronicUnable), Label: "A long-standing condition keeps them from answering"},
				{Value: string(domain.ReasonOther), Label: "Another reason"},
			},
		},
	},
	{
		Kind: domain.BaselineAge,
		Question: domain.Question{
			ID:   string(domain.BaselineAge),
			Text: "How old is the person with symptoms?",
			Type: domain.Numeric,
		},
	},
	{
		Kind: domain.BaselineSex,
		Question: domain.Question{
			ID:   string(domain.BaselineSex),
			Text: "What sex was the person assigned at birth?",
			Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: string(domain.SexMale), Label: "Male"},
				{Value: string(domain.SexFemale), Label: "Female"},
				{Value: string(domain.SexUnknown), Label: "Prefer not to say"},
			},
		},
	},
	{
		Kind: domain.BaselineSymptoms,
		Question: domain.Question{
			ID:   string(domain.BaselineSymptoms),
			Text: "In your own words, what symptoms are bothering you today?",
			Type: domain.FreeText,
		},
	},
	{
		Kind: domain.BaselinePMH,
		Question: domain.Question{
			ID:   string(domain.BaselinePMH),
			Text: "Do you have any ongoing medical conditions? (for example diabetes, heart problems, asthma)",
			Type: domain.FreeText,
		},
	},
	{
		Kind: domain.BaselineZipCode,
		Question: domain.Question{
			ID:   string(domain.BaselineZipCode),
			Text: "What is your ZIP code? (used only to suggest nearby facilities)",
			Type: domain.FreeText,
		},
	},
}

// followUp is one symptom-scoped question. The issued question id is the
// namespaced `<symptom>__<attribute>` form.
type followUp struct {
	Attribute string
	Text      string
	Type      domain.QuestionType
	Choices   []domain.Choice
}

var severityChoices = []domain.Choice{
	{Value: "mild", Label: "Mild — noticeable but manageable"},
	{Value: "moderate", Label: "Moderate — hard to ignore"},
	{Value: "severe", Label: "Severe — among the worst I've had"},
	{Value: "worst", Label: "The worst of my life"},
}

var onsetChoices = []domain.Choice{
	{Value: "sudden", Label: "Suddenly, within seconds or minutes"},
	{Value: "gradual", Label: "Gradually, over hours or days"},
	{Value: "chronic", Label: "It comes and goes over weeks or longer"},
}

// followUpCatalogue maps each symptom category to its ordered follow-up
// questions. Answer values for safety-critical options come from the closed
// concerning vocabulary checked by the red-flag rules.
var followUpCatalogue = map[string][]followUp{
	"chest_pain": {
		{Attribute: "character", Text: "How would you describe the chest pain?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "sharp", Label: "Sharp or stabbing"},
				{Value: "pressure", Label: "Pressure or squeezing"},
				{Value: "tightness", Label: "Tightness"},
				{Value: "tearing", Label: "Tearing, ripping toward the back"},
				{Value: "burning", Label: "Burning"},
			}},
		{Attribute: "radiation", Text: "Does the pain spread anywhere?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No, it stays in one place"},
				{Value: "left_arm", Label: "Into my left arm or shoulder"},
				{Value: "jaw_neck", Label: "Into my jaw or neck"},
				{Value: "back", Label: "Into my back"},
			}},
		{Attribute: "trigger", Text: "When does the pain happen?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "exertion", Label: "With activity or exertion"},
				{Value: "at_rest", Label: "Even at rest"},
				{Value: "position", Label: "With certain positions or breathing"},
				{Value: "eating", Label: "After eating"},
			}},
		{Attribute: "cardiac_history", Text: "Have you ever had a heart problem?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No"},
				{Value: "heart_attack", Label: "A previous heart attack"},
				{Value: "heart_disease", Label: "Diagnosed heart disease"},
				{Value: "stent_surgery", Label: "A stent or heart surgery"},
			}},
		{Attribute: "pulse", Text: "How does your heartbeat feel right now?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "normal", Label: "Normal"},
				{Value: "rapid", Label: "Racing or pounding"},
				{Value: "irregular", Label: "Skipping or irregular"},
			}},
	},
	"headache": {
		{Attribute: "severity", Text: "How bad is the headache?", Type: domain.SingleChoice,
			Choices: append(append([]domain.Choice{}, severityChoices...),
				domain.Choice{Value: "thunderclap", Label: "It hit like a thunderclap — instantly severe"})},
		{Attribute: "onset", Text: "How did the headache start?", Type: domain.SingleChoice, Choices: onsetChoices},
		{Attribute: "neuro", Text: "Have you noticed any of these changes?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "none", Label: "None of these"},
				{Value: "one_side_face", Label: "Drooping or numbness on one side of the face"},
				{Value: "one_side_body", Label: "Weakness or numbness on one side of the body"},
				{Value: "loss", Label: "Loss of vision"},
				{Value: "double", Label: "Double vision"},
			}},
		{Attribute: "vomiting", Text: "Have you vomited with this headache?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No"},
				{Value: "vomiting", Label: "Yes, vomiting"},
				{Value: "projectile", Label: "Yes, sudden forceful vomiting"},
			}},
		{Attribute: "fever_stiff_neck", Text: "Do you also have a fever or a stiff neck?", Type: domain.SingleChoice, Choices: yesNoChoices},
	},
	"shortness_of_breath": {
		{Attribute: "severity", Text: "How hard is it to breathe?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "mild", Label: "Slightly winded"},
				{Value: "moderate", Label: "Short of breath with light activity"},
				{Value: "severe", Label: "Short of breath even sitting still"},
			}},
		{Attribute: "onset", Text: "How did the breathing trouble start?", Type: domain.SingleChoice, Choices: onsetChoices},
		{Attribute: "speaking", Text: "Can you speak in full sentences?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "full", Label: "Yes, normally"},
				{Value: "short", Label: "Only short phrases"},
				{Value: "no_words", Label: "Barely a few words"},
			}},
		{Attribute: "pulse", Text: "How does your heartbeat feel?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "normal", Label: "Normal"},
				{Value: "rapid", Label: "Racing or pounding"},
			}},
	},
	"abdominal_pain": {
		{Attribute: "severity", Text: "How bad is the belly pain?", Type: domain.SingleChoice, Choices: severityChoices},
		{Attribute: "onset", Text: "How did the pain start?", Type: domain.SingleChoice, Choices: onsetChoices},
		{Attribute: "location", Text: "Where is the pain strongest?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "upper_right", Label: "Upper right"},
				{Value: "upper_middle", Label: "Upper middle"},
				{Value: "lower_right", Label: "Lower right"},
				{Value: "lower_left", Label: "Lower left"},
				{Value: "all_over", Label: "All over"},
			}},
		{Attribute: "blood", Text: "Have you seen blood in your vomit or stool?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No"},
				{Value: "yes_today", Label: "Yes, today"},
				{Value: "yes_recently", Label: "Yes, in the past few days"},
			}},
	},
	"fever": {
		{Attribute: "height", Text: "How high has the temperature been?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "low", Label: "Under 100.4°F (38°C)"},
				{Value: "moderate", Label: "100.4–102.9°F (38–39.4°C)"},
				{Value: "high", Label: "103°F (39.4°C) or higher"},
			}},
		{Attribute: "duration", Text: "How long have you had the fever?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "under_day", Label: "Less than a day"},
				{Value: "days_1_3", Label: "1–3 days"},
				{Value: "over_3_days", Label: "More than 3 days"},
			}},
		{Attribute: "stiff_neck", Text: "Do you have a stiff neck, rash, or confusion with the fever?", Type: domain.SingleChoice, Choices: yesNoChoices},
	},
	"dizziness": {
		{Attribute: "onset", Text: "How did the dizziness start?", Type: domain.SingleChoice, Choices: onsetChoices},
		{Attribute: "neuro", Text: "Have you noticed any of these with the dizziness?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "none", Label: "None of these"},
				{Value: "one_side_face", Label: "Drooping or numbness on one side of the face"},
				{Value: "one_side_body", Label: "Weakness on one side of the body"},
				{Value: "double", Label: "Double vision"},
			}},
		{Attribute: "fainted", Text: "Have you fainted or passed out?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No"},
				{Value: "yes_today", Label: "Yes, today"},
				{Value: "yes_recently", Label: "Yes, in the past few days"},
			}},
	},
	"back_pain": {
		{Attribute: "severity", Text: "How bad is the back pain?", Type: domain.SingleChoice, Choices: severityChoices},
		{Attribute: "onset", Text: "How did the pain start?", Type: domain.SingleChoice, Choices: onsetChoices},
		{Attribute: "bladder_bowel", Text: "Have you lost control of your bladder or bowels, or felt numbness between your legs?", Type: domain.SingleChoice, Choices: yesNoChoices},
		{Attribute: "leg_weakness", Text: "Is there numbness or weakness in your legs?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No"},
				{Value: "one_leg", Label: "In one leg"},
				{Value: "both_legs", Label: "In both legs"},
			}},
	},
	"weakness": {
		{Attribute: "onset", Text: "How did the weakness come on?", Type: domain.SingleChoice, Choices: onsetChoices},
		{Attribute: "neuro", Text: "Where is the weakness?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "general", Label: "All over, general tiredness"},
				{Value: "one_side_face", Label: "One side of the face"},
				{Value: "one_side_body", Label: "One side of the body"},
				{Value: "legs", Label: "Both legs"},
			}},
		{Attribute: "speech", Text: "Any trouble speaking or finding words?", Type: domain.SingleChoice, Choices: yesNoChoices},
	},
	"nausea_vomiting": {
		{Attribute: "duration", Text: "How long has the vomiting lasted?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "under_12h", Label: "Less than 12 hours"},
				{Value: "12_24h", Label: "12–24 hours"},
				{Value: "over_24h", Label: "More than 24 hours"},
			}},
		{Attribute: "blood", Text: "Have you seen blood in the vomit?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No"},
				{Value: "yes_today", Label: "Yes, today"},
			}},
		{Attribute: "fluids", Text: "Have you been unable to keep fluids down for more than 12 hours?", Type: domain.SingleChoice, Choices: yesNoChoices},
	},
	"injury_fall": {
		{Attribute: "region", Text: "What part of the body was injured?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "head", Label: "Head"},
				{Value: "torso", Label: "Chest, belly, or back"},
				{Value: "limb", Label: "Arm or leg"},
				{Value: "multiple", Label: "More than one area"},
			}},
		{Attribute: "head_symptoms", Text: "Since the injury, any confusion, repeated vomiting, or worsening headache?", Type: domain.SingleChoice, Choices: yesNoChoices},
		{Attribute: "weight_bearing", Text: "Can you move and put weight on the injured area?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "full", Label: "Yes, with some pain"},
				{Value: "limited", Label: "Only a little"},
				{Value: "none", Label: "Not at all"},
			}},
	},
	"gi_bleed": {
		{Attribute: "recency", Text: "When did you last see blood?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "yes_today", Label: "Today"},
				{Value: "yes_recently", Label: "In the past few days"},
				{Value: "over_week", Label: "More than a week ago"},
			}},
		{Attribute: "amount", Text: "How much blood was there?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "streaks", Label: "Streaks or a small amount"},
				{Value: "large", Label: "A large amount"},
			}},
		{Attribute: "lightheaded", Text: "Do you feel lightheaded or faint?", Type: domain.SingleChoice, Choices: yesNoChoices},
	},
	"allergic_reaction": {
		{Attribute: "swelling", Text: "Is there swelling of your face, lips, tongue, or throat?", Type: domain.SingleChoice, Choices: yesNoChoices},
		{Attribute: "breathing", Text: "Any trouble breathing or swallowing?", Type: domain.SingleChoice, Choices: yesNoChoices},
		{Attribute: "exposure", Text: "What do you think triggered it?", Type: domain.FreeText},
	},
	"rash": {
		{Attribute: "spread", Text: "Is the rash spreading quickly?", Type: domain.SingleChoice, Choices: yesNoChoices},
		{Attribute: "fever", Text: "Do you have a fever with the rash?", Type: domain.SingleChoice, Choices: yesNoChoices},
	},
	"urinary": {
		{Attribute: "fever", Text: "Do you have a fever or chills with the urinary symptoms?", Type: domain.SingleChoice, Choices: yesNoChoices},
		{Attribute: "flank_pain", Text: "Any pain in your side or back near the ribs?", Type: domain.SingleChoice, Choices: yesNoChoices},
		{Attribute: "blood", Text: "Have you seen blood in your urine?", Type: domain.SingleChoice,
			Choices: []domain.Choice{
				{Value: "no", Label: "No"},
				{Value: "yes_today", Label: "Yes, today"},
			}},
	},
}

// followUpsFor returns a symptom's follow-up questions; nil for symptoms
// with no catalogue entry (they simply get no follow-ups).
func followUpsFor(symptom string) []followUp {
	return followUpCatalogue[symptom]
}
