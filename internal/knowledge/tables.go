package knowledge

import (
	"github.com/triage-advisor-server/internal/domain"
)

// Symptom-specific watch-for signs, keyed by symptom category id. Content is
// plain-language and deliberately avoids clinical jargon.
var symptomWatchFor = map[string][]string{
	"chest_pain": {
		"Pain that spreads to your arm, jaw, neck, or back",
		"Chest pain that gets worse with activity or doesn't go away with rest",
		"Chest pain with sweating, nausea, or lightheadedness",
	},
	"shortness_of_breath": {
		"Breathing that keeps getting harder or faster",
		"Lips or fingertips turning blue or gray",
		"Unable to speak in full sentences due to breathlessness",
	},
	"abdominal_pain": {
		"Belly pain that becomes severe or constant",
		"Belly that feels hard or very tender to touch",
		"Vomiting blood or passing dark/bloody stool",
	},
	"headache": {
		"Sudden, severe headache unlike anything you've had before",
		"Headache with stiff neck, high fever, or confusion",
		"Headache with vision changes, weakness, or trouble speaking",
	},
	"fever": {
		"Temperature above 103°F (39.4°C) that won't come down",
		"Fever with a stiff neck, rash, or confusion",
		"Fever with difficulty breathing or chest pain",
	},
	"dizziness": {
		"Dizziness with slurred speech or weakness on one side",
		"Fainting or passing out",
		"Dizziness with chest pain or irregular heartbeat",
	},
	"injury_fall": {
		"Increasing swelling, numbness, or inability to move the injured area",
		"Injury with signs of infection (redness spreading, warmth, pus)",
		"Head injury followed by confusion, vomiting, or worsening headache",
	},
	"back_pain": {
		"Loss of bladder or bowel control",
		"Numbness or weakness spreading to both legs",
		"Severe pain that wakes you from sleep or doesn't improve",
	},
	"weakness": {
		"Sudden weakness or numbness on one side of your body",
		"Weakness with trouble speaking, confusion, or vision changes",
		"Weakness that keeps getting worse over hours",
	},
	"nausea_vomiting": {
		"Vomiting that won't stop or contains blood",
		"Signs of dehydration (very dry mouth, no urination, dizziness)",
		"Severe belly pain with vomiting",
	},
	"rash": {
		"Rash that spreads quickly or comes with fever",
		"Swelling of face, lips, or throat",
		"Blisters or skin that looks infected (warm, red, swelling)",
	},
	"urinary": {
		"Fever or chills with urinary symptoms",
		"Blood in your urine that is heavy or won't stop",
		"Severe flank or back pain with urinary symptoms",
	},
	"allergic_reaction": {
		"Swelling of your face, lips, tongue, or throat",
		"Trouble breathing or swallowing",
		"Feeling faint or dizzy after exposure to an allergen",
	},
	"gi_bleed": {
		"Large amounts of blood in vomit or stool",
		"Feeling lightheaded, dizzy, or like you might pass out",
		"Rapid heartbeat or cold/clammy skin",
	},
	"anxiety_depression": {
		"Thoughts of hurting yourself or others",
		"Feeling unable to cope or function",
		"Panic symptoms that don't improve (racing heart, can't breathe)",
	},
	"substance_use": {
		"Confusion, seizures, or loss of consciousness",
		"Difficulty breathing or very slow breathing",
		"Chest pain or irregular heartbeat",
	},
}

var generalWatchFor = []string{
	"Sudden or severe chest pain or pressure",
	"Difficulty breathing that gets worse",
	"Sudden confusion, trouble speaking, or weakness on one side",
	"Fainting or loss of consciousness",
	"Severe or worsening pain that doesn't improve",
}

// "If this happens, escalate" rules, keyed by symptom category id.
var symptomEscalation = map[string][]domain.EscalationItem{
	"chest_pain": {
		{IfSign: "your chest pain gets worse or spreads to your arm, jaw, or neck",
			ThenAction: "Call 911 immediately", Severity: "critical"},
		{IfSign: "you start sweating, feel nauseous, or get lightheaded with the chest pain",
			ThenAction: "Call 911 immediately", Severity: "critical"},
		{IfSign: "the pain doesn’t go away after 15 minutes of rest",
			ThenAction: "Go to the Emergency Department", Severity: "urgent"},
	},
	"shortness_of_breath": {
		{IfSign: "your breathing gets harder, faster, or you can’t speak full sentences",
			ThenAction: "Call 911 immediately", Severity: "critical"},
		{IfSign: "your lips or fingertips turn blue or gray",
			ThenAction: "Call 911 immediately", Severity: "critical"},
	},
	"headache": {
		{IfSign: "you get a sudden, severe headache that’s the worst of your life",
			ThenAction: "Call 911 — this could be bleeding in the brain", Severity: "critical"},
		{IfSign: "you develop a stiff neck with fever",
			ThenAction: "Go to the Emergency Department now", Severity: "critical"},
		{IfSign: "you notice weakness on one side, trouble speaking, or vision changes",
			ThenAction: "Call 911 — these could be signs of a stroke", Severity: "critical"},
	},
	"abdominal_pain": {
		{IfSign: "your belly pain becomes severe or constant and won’t go away",
			ThenAction: "Go to the Emergency Department", Severity: "urgent"},
		{IfSign: "you see blood in your vomit or stool",
			ThenAction: "Go to the Emergency Department immediately", Severity: "critical"},
		{IfSign: "your belly becomes hard, swollen, or very tender to touch",
			ThenAction: "Go to the Emergency Department", Severity: "urgent"},
	},
	"fever": {
		{IfSign: "your temperature goes above 103°F (39.4°C) and won’t come down",
			ThenAction: "Go to the Emergency Department", Severity: "urgent"},
		{IfSign: "you develop a fever with confusion, stiff neck, or rash",
			ThenAction: "Call 911 or go to the ER immediately", Severity: "critical"},
	},
	"dizziness": {
		{IfSign: "you develop slurred speech or weakness on one side of your body",
			ThenAction: "Call 911 — these are signs of a stroke", Severity: "critical"},
		{IfSign: "you faint or pass out",
			ThenAction: "Call 911 or go to the Emergency Department", Severity: "critical"},
	},
	"back_pain": {
		{IfSign: "you lose control of your bladder or bowels",
			ThenAction: "Go to the Emergency Department immediately", Severity: "critical"},
		{IfSign: "numbness or weakness spreads to both legs",
			ThenAction: "Go to the Emergency Department now", Severity: "critical"},
	},
	"weakness": {
		{IfSign: "you develop sudden weakness or numbness on one side of your body",
			ThenAction: "Call 911 — this could be a stroke", Severity: "critical"},
	},
	"nausea_vomiting": {
		{IfSign: "you can’t keep any fluids down for more than 12 hours",
			ThenAction: "Go to an Urgent Care or Emergency Department for fluids", Severity: "urgent"},
		{IfSign: "you see blood in your vomit",
			ThenAction: "Go to the Emergency Department immediately", Severity: "critical"},
	},
	"rash": {
		{IfSign: "the rash spreads quickly and comes with fever or trouble breathing",
			ThenAction: "Call 911 or go to the Emergency Department", Severity: "critical"},
	},
	"urinary": {
		{IfSign: "you develop fever, chills, or severe flank pain with urinary symptoms",
			ThenAction: "Go to the Emergency Department", Severity: "urgent"},
	},
	"allergic_reaction": {
		{IfSign: "your face, lips, or throat start to swell, or you have trouble breathing",
			ThenAction: "Use your EpiPen if you have one and call 911 immediately", Severity: "critical"},
	},
	"gi_bleed": {
		{IfSign: "you feel lightheaded, dizzy, or like you might pass out",
			ThenAction: "Call 911 immediately", Severity: "critical"},
	},
	"injury_fall": {
		{IfSign: "after a head injury you develop confusion, vomiting, or worsening headache",
			ThenAction: "Go to the Emergency Department immediately", Severity: "critical"},
		{IfSign: "you notice increasing swelling, numbness, or can’t move the injured area",
			ThenAction: "Go to an Urgent Care or Emergency Department", Severity: "urgent"},
	},
	"anxiety_depression": {
		{IfSign: "you have thoughts of hurting yourself or others",
			ThenAction: "Call 988 (Suicide & Crisis Lifeline) or go to the nearest ER", Severity: "critical"},
	},
}

var generalEscalation = []domain.EscalationItem{
	{IfSign: "your symptoms suddenly get much worse",
		ThenAction: "Call 911 or go to the nearest Emergency Department", Severity: "critical"},
	{IfSign: "you develop new trouble breathing, chest pain, or confusion",
		ThenAction: "Call 911 immediately", Severity: "critical"},
	{IfSign: "your symptoms don’t improve after 24–48 hours or keep getting worse",
		ThenAction: "See a doctor sooner than planned or go to Urgent Care", Severity: "watch"},
}

// Home remedies for reassurance-level recommendations, keyed by symptom
// category id.
var symptomHomeRemedies = map[string][]domain.HomeRemedy{
	"headache": {
		{Remedy: "Rest in a quiet, dark room", Detail: "Reducing light and noise can help a headache ease."},
		{Remedy: "Stay hydrated", Detail: "Drink water or clear fluids — dehydration is a common headache trigger."},
		{Remedy: "Over-the-counter pain relief", Detail: "Acetaminophen (Tylenol) or ibuprofen (Advil) as directed on the label."},
		{Remedy: "Cold compress", Detail: "Place a cold cloth or ice pack on your forehead for 15 minutes."},
		{Remedy: "Limit screen time", Detail: "Take a break from phones, computers, and bright screens."},
	},
	"fever": {
		{Remedy: "Rest and sleep", Detail: "Your body fights illness best when resting."},
		{Remedy: "Stay hydrated", Detail: "Drink water, broth, or electrolyte drinks frequently."},
		{Remedy: "Over-the-counter fever reducer", Detail: "Acetaminophen or ibuprofen as directed. Do NOT give aspirin to children."},
		{Remedy: "Lukewarm compress", Detail: "A lukewarm (not cold) washcloth on the forehead can help."},
		{Remedy: "Dress lightly", Detail: "Wear light clothing and use a light blanket."},
	},
	"nausea_vomiting": {
		{Remedy: "Sip clear fluids slowly", Detail: "Small sips of water, ginger ale, or electrolyte drinks every few minutes."},
		{Remedy: "Try the BRAT diet", Detail: "Bananas, rice, applesauce, and toast are gentle on the stomach."},
		{Remedy: "Ginger", Detail: "Ginger tea, ginger ale, or ginger candies can help settle nausea."},
		{Remedy: "Avoid triggers", Detail: "Stay away from greasy, spicy, or strong-smelling foods."},
		{Remedy: "Rest sitting up", Detail: "Lying flat can make nausea worse — try propping yourself up."},
	},
	"cough": {
		{Remedy: "Warm fluids", Detail: "Tea with honey, warm water with lemon, or broth can soothe your throat."},
		{Remedy: "Honey", Detail: "A spoonful of honey can help calm a cough (not for children under 1)."},
		{Remedy: "Humidifier", Detail: "Adding moisture to the air can help loosen congestion."},
		{Remedy: "Cough drops or lozenges", Detail: "Over-the-counter throat lozenges can provide temporary relief."},
		{Remedy: "Elevate your head", Detail: "Use an extra pillow when sleeping to reduce nighttime coughing."},
	},
	"sore_throat": {
		{Remedy: "Warm saltwater gargle", Detail: "Mix ½ teaspoon salt in warm water and gargle for 30 seconds."},
		{Remedy: "Warm fluids", Detail: "Tea with honey, warm broth, or warm water with lemon."},
		{Remedy: "Throat lozenges", Detail: "Over-the-counter lozenges or hard candy to keep your throat moist."},
		{Remedy: "Over-the-counter pain relief", Detail: "Acetaminophen or ibuprofen can reduce pain and swelling."},
		{Remedy: "Rest your voice", Detail: "Try to talk less and avoid whispering (it strains your throat more)."},
	},
	"back_pain": {
		{Remedy: "Gentle movement", Detail: "Avoid bed rest — gentle walking and stretching help more than staying still."},
		{Remedy: "Alternate ice and heat", Detail: "Ice for the first 48 hours (20 min on/off), then switch to heat."},
		{Remedy: "Over-the-counter anti-inflammatory", Detail: "Ibuprofen (Advil) or naproxen (Aleve) as directed on the label."},
		{Remedy: "Avoid heavy lifting", Detail: "Don’t lift anything heavy until the pain improves."},
		{Remedy: "Good posture", Detail: "Sit and stand straight — slouching puts extra strain on your back."},
	},
	"extremity_pain": {
		{Remedy: "RICE method", Detail: "Rest, Ice (20 min on/off), Compression (wrap), Elevation (raise it up)."},
		{Remedy: "Over-the-counter anti-inflammatory", Detail: "Ibuprofen or naproxen to reduce pain and swelling."},
		{Remedy: "Gentle stretching", Detail: "Light stretching may help if the pain is from a muscle strain."},
		{Remedy: "Avoid overuse", Detail: "Give the area time to heal — don’t push through the pain."},
	},
	"rash": {
		{Remedy: "Cool compress", Detail: "A cool, damp cloth on the rash can relieve itching and swelling."},
		{Remedy: "Over-the-counter antihistamine", Detail: "Benadryl (diphenhydramine) or Zyrtec (cetirizine) for itching."},
		{Remedy: "Moisturize", Detail: "Unscented lotion or aloe vera gel can soothe irritated skin."},
		{Remedy: "Avoid scratching", Detail: "Scratching can make it worse or cause infection."},
		{Remedy: "Avoid irritants", Detail: "Stay away from harsh soaps, new detergents, or anything that may have triggered it."},
	},
	"dizziness": {
		{Remedy: "Sit or lie down right away", Detail: "This prevents falls and helps blood flow to your brain."},
		{Remedy: "Stay hydrated", Detail: "Dizziness is often caused by dehydration — drink water or electrolyte drinks."},
		{Remedy: "Eat something", Detail: "Low blood sugar can cause dizziness — try a light snack."},
		{Remedy: "Avoid sudden movements", Detail: "Get up slowly from sitting or lying down."},
		{Remedy: "Rest", Detail: "Give your body time to recover in a comfortable position."},
	},
	"abdominal_pain": {
		{Remedy: "Clear liquids", Detail: "Start with water, broth, or ginger tea. Avoid solid food until the pain eases."},
		{Remedy: "Warm compress", Detail: "A heating pad or warm towel on your belly can help relax cramps."},
		{Remedy: "Rest", Detail: "Lie in a comfortable position — try lying on your side with knees pulled up."},
		{Remedy: "Avoid trigger foods", Detail: "Stay away from fatty, spicy, or acidic foods until you feel better."},
		{Remedy: "Peppermint tea", Detail: "Peppermint can help relax stomach muscles and ease bloating."},
	},
	"urinary": {
		{Remedy: "Drink plenty of water", Detail: "Flushing your system with water can help mild urinary symptoms."},
		{Remedy: "Cranberry juice", Detail: "Unsweetened cranberry juice may help prevent bacteria from sticking."},
		{Remedy: "Avoid caffeine and alcohol", Detail: "These can irritate the bladder and make symptoms worse."},
		{Remedy: "Warm compress", Detail: "A warm cloth on your lower belly can ease discomfort."},
	},
	"anxiety_depression": {
		{Remedy: "Deep breathing", Detail: "Breathe in for 4 seconds, hold for 4, out for 4. Repeat 5 times."},
		{Remedy: "Grounding technique", Detail: "Name 5 things you see, 4 you hear, 3 you touch, 2 you smell, 1 you taste."},
		{Remedy: "Talk to someone", Detail: "Call a friend, family member, or the 988 Suicide & Crisis Lifeline."},
		{Remedy: "Physical activity", Detail: "Even a 10-minute walk can help reduce anxiety."},
		{Remedy: "Limit caffeine", Detail: "Coffee and energy drinks can worsen anxiety symptoms."},
	},
	"insomnia": {
		{Remedy: "Keep a regular sleep schedule", Detail: "Go to bed and wake up at the same time each day."},
		{Remedy: "Avoid screens before bed", Detail: "Put away phones and laptops at least 30 minutes before sleep."},
		{Remedy: "Create a calm environment", Detail: "Cool, dark, quiet room. Try earplugs or a white noise machine."},
		{Remedy: "Avoid caffeine after noon", Detail: "Caffeine stays in your system for hours and disrupts sleep."},
	},
}

var generalHomeRemedies = []domain.HomeRemedy{
	{Remedy: "Rest", Detail: "Give your body time to heal — take it easy for a day or two."},
	{Remedy: "Stay hydrated", Detail: "Drink water, herbal tea, or clear broth throughout the day."},
	{Remedy: "Over-the-counter pain relief", Detail: "Acetaminophen (Tylenol) or ibuprofen (Advil) as directed if needed."},
	{Remedy: "Monitor your symptoms", Detail: "Keep track of how you feel. If things get worse, seek medical care."},
}
