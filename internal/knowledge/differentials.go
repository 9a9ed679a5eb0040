package knowledge

import (
	"github.com/triage-advisor-server/internal/domain"
)

// Candidate-diagnosis catalogues keyed by symptom category id. Likelihoods
// approximate the Arvig et al. WestJEM 2022 discharge-diagnosis data plus
// standard clinical teaching. The notes text carries the keyword markers the
// synthesizer uses for demographic and history adjustments.
var symptomDifferentials = map[string][]domain.DifferentialDx{
	"chest_pain": {
		{Diagnosis: "Musculoskeletal chest wall pain", Likelihood: domain.Common, Notes: "Reproducible with palpation; often positional"},
		{Diagnosis: "Gastroesophageal reflux (GERD)", Likelihood: domain.Common, Notes: "Burning quality; worse after eating or lying down"},
		{Diagnosis: "Anxiety / Panic attack", Likelihood: domain.Common, Notes: "Palpitations, tingling, sense of doom; often in younger patients"},
		{Diagnosis: "Acute coronary syndrome (heart attack)", Likelihood: domain.LessCommon, Notes: "Pressure/squeezing; radiates to arm/jaw; sweating; risk increases with age, diabetes, smoking"},
		{Diagnosis: "Pulmonary embolism", Likelihood: domain.LessCommon, Notes: "Sudden onset with shortness of breath; pleuritic; risk with immobility, birth control, recent surgery"},
		{Diagnosis: "Pneumonia / Pleuritis", Likelihood: domain.LessCommon, Notes: "Sharp pain with breathing; cough; fever"},
		{Diagnosis: "Pericarditis", Likelihood: domain.Uncommon, Notes: "Sharp pain worse with lying flat, better leaning forward; recent viral illness"},
		{Diagnosis: "Aortic dissection", Likelihood: domain.Rare, Notes: "Tearing pain radiating to back; hypertension; medical emergency"},
	},
	"shortness_of_breath": {
		{Diagnosis: "Asthma / Reactive airway", Likelihood: domain.Common, Notes: "Wheezing; triggered by allergens, exercise, or cold air"},
		{Diagnosis: "COPD exacerbation", Likelihood: domain.Common, Notes: "Chronic smoker; worsening baseline dyspnea; productive cough"},
		{Diagnosis: "Pneumonia", Likelihood: domain.Common, Notes: "Cough, fever, abnormal breath sounds"},
		{Diagnosis: "Heart failure exacerbation", Likelihood: domain.LessCommon, Notes: "Leg swelling, orthopnea, history of heart disease"},
		{Diagnosis: "Anxiety / Hyperventilation", Likelihood: domain.Common, Notes: "Tingling, lightheadedness; often younger patients"},
		{Diagnosis: "Pulmonary embolism", Likelihood: domain.LessCommon, Notes: "Sudden onset; pleuritic chest pain; tachycardia"},
		{Diagnosis: "Anemia", Likelihood: domain.LessCommon, Notes: "Gradual onset; fatigue; pallor"},
	},
	"headache": {
		{Diagnosis: "Tension headache", Likelihood: domain.VeryCommon, Notes: "Band-like pressure; bilateral; associated with stress"},
		{Diagnosis: "Migraine", Likelihood: domain.Common, Notes: "Unilateral, throbbing; nausea; light/sound sensitivity; aura possible"},
		{Diagnosis: "Sinusitis", Likelihood: domain.Common, Notes: "Facial pressure; nasal congestion; worse leaning forward"},
		{Diagnosis: "Medication overuse headache", Likelihood: domain.LessCommon, Notes: "Chronic daily headache in someone using analgesics >15 days/month"},
		{Diagnosis: "Hypertensive headache", Likelihood: domain.LessCommon, Notes: "Severe headache with very high blood pressure"},
		{Diagnosis: "Subarachnoid hemorrhage", Likelihood: domain.Rare, Notes: "Sudden thunderclap worst-ever headache; medical emergency"},
		{Diagnosis: "Meningitis", Likelihood: domain.Rare, Notes: "Headache with fever, stiff neck, photophobia"},
		{Diagnosis: "Intracranial mass", Likelihood: domain.Rare, Notes: "Progressive headache; worse in morning; neurologic deficits"},
	},
	"abdominal_pain": {
		{Diagnosis: "Gastritis / Dyspepsia", Likelihood: domain.VeryCommon, Notes: "Epigastric burning; related to meals, NSAID use, or stress"},
		{Diagnosis: "Gastroenteritis", Likelihood: domain.Common, Notes: "Crampy pain with nausea, vomiting, or diarrhea; often viral"},
		{Diagnosis: "Constipation", Likelihood: domain.Common, Notes: "Diffuse cramping; infrequent or hard stools"},
		{Diagnosis: "Urinary tract infection", Likelihood: domain.Common, Notes: "Lower abdominal pain with urinary frequency, burning"},
		{Diagnosis: "Appendicitis", Likelihood: domain.LessCommon, Notes: "Starts around navel, migrates to right lower quadrant; fever"},
		{Diagnosis: "Cholecystitis (gallbladder)", Likelihood: domain.LessCommon, Notes: "Right upper quadrant pain after fatty meals; nausea"},
		{Diagnosis: "Kidney stones", Likelihood: domain.LessCommon, Notes: "Severe flank pain radiating to groin; comes in waves"},
		{Diagnosis: "Small bowel obstruction", Likelihood: domain.Uncommon, Notes: "Crampy pain, vomiting, distension; history of prior surgery"},
		{Diagnosis: "Ectopic pregnancy", Likelihood: domain.Uncommon, Notes: "Lower abdominal pain in reproductive-age female; missed period"},
	},
	"fever": {
		{Diagnosis: "Viral upper respiratory infection", Likelihood: domain.VeryCommon, Notes: "Cough, congestion, sore throat; self-limited"},
		{Diagnosis: "Urinary tract infection", Likelihood: domain.Common, Notes: "Fever with urinary symptoms; flank pain if pyelonephritis"},
		{Diagnosis: "Influenza", Likelihood: domain.Common, Notes: "High fever, body aches, fatigue; seasonal"},
		{Diagnosis: "Pneumonia", Likelihood: domain.LessCommon, Notes: "Fever with productive cough, shortness of breath"},
		{Diagnosis: "Cellulitis / Skin infection", Likelihood: domain.LessCommon, Notes: "Fever with localized redness, swelling, warmth"},
		{Diagnosis: "COVID-19", Likelihood: domain.LessCommon, Notes: "Fever with cough, loss of taste/smell, fatigue"},
		{Diagnosis: "Sepsis", Likelihood: domain.Uncommon, Notes: "High fever with confusion, rapid breathing, tachycardia; emergency"},
	},
	"dizziness": {
		{Diagnosis: "Benign positional vertigo (BPPV)", Likelihood: domain.VeryCommon, Notes: "Brief spinning triggered by head position changes"},
		{Diagnosis: "Orthostatic hypotension", Likelihood: domain.Common, Notes: "Lightheadedness on standing; dehydration or medication side effect"},
		{Diagnosis: "Vestibular neuritis / Labyrinthitis", Likelihood: domain.Common, Notes: "Prolonged vertigo after viral illness; may have hearing changes"},
		{Diagnosis: "Anemia", Likelihood: domain.LessCommon, Notes: "Gradual onset; fatigue, pallor, shortness of breath"},
		{Diagnosis: "Cardiac arrhythmia", Likelihood: domain.LessCommon, Notes: "Intermittent lightheadedness with palpitations"},
		{Diagnosis: "Stroke / TIA", Likelihood: domain.Uncommon, Notes: "Dizziness with focal weakness, speech difficulty, vision changes; emergency"},
	},
	"back_pain": {
		{Diagnosis: "Muscle strain / Mechanical back pain", Likelihood: domain.VeryCommon, Notes: "Related to lifting, activity, or posture; improves with rest"},
		{Diagnosis: "Degenerative disc disease", Likelihood: domain.Common, Notes: "Chronic; worsens with activity; common in older adults"},
		{Diagnosis: "Herniated disc / Sciatica", Likelihood: domain.LessCommon, Notes: "Pain radiating down the leg; numbness or tingling"},
		{Diagnosis: "Spinal stenosis", Likelihood: domain.LessCommon, Notes: "Pain with walking, relieved by sitting; older adults"},
		{Diagnosis: "Kidney stones / Pyelonephritis", Likelihood: domain.LessCommon, Notes: "Flank pain; may have urinary symptoms or fever"},
		{Diagnosis: "Vertebral compression fracture", Likelihood: domain.Uncommon, Notes: "Sudden pain after minor trauma; osteoporosis risk"},
		{Diagnosis: "Cauda equina syndrome", Likelihood: domain.Rare, Notes: "Saddle numbness, bladder/bowel changes, bilateral leg weakness; emergency"},
	},
	"nausea_vomiting": {
		{Diagnosis: "Gastroenteritis (stomach bug)", Likelihood: domain.VeryCommon, Notes: "Viral or food-related; diarrhea often accompanies"},
		{Diagnosis: "Food poisoning", Likelihood: domain.Common, Notes: "Acute onset hours after eating; shared with others who ate same food"},
		{Diagnosis: "Medication side effect", Likelihood: domain.Common, Notes: "New medication or change in dosage"},
		{Diagnosis: "Gastritis / Peptic ulcer", Likelihood: domain.LessCommon, Notes: "Epigastric pain; NSAID or alcohol use"},
		{Diagnosis: "Pregnancy", Likelihood: domain.LessCommon, Notes: "Morning nausea in reproductive-age female; missed period"},
		{Diagnosis: "Bowel obstruction", Likelihood: domain.Uncommon, Notes: "Severe vomiting with abdominal distension and no bowel movements"},
		{Diagnosis: "Pancreatitis", Likelihood: domain.Uncommon, Notes: "Severe epigastric pain radiating to back; alcohol or gallstone history"},
	},
	"sore_throat": {
		{Diagnosis: "Viral pharyngitis", Likelihood: domain.VeryCommon, Notes: "Cough, congestion, runny nose; gradual onset"},
		{Diagnosis: "Streptococcal pharyngitis (strep)", Likelihood: domain.Common, Notes: "Sudden onset; fever, swollen tonsils, no cough; rapid test available"},
		{Diagnosis: "Infectious mononucleosis", Likelihood: domain.LessCommon, Notes: "Fatigue, swollen lymph nodes, possible splenomegaly; young adults"},
		{Diagnosis: "Peritonsillar abscess", Likelihood: domain.Uncommon, Notes: "Severe unilateral pain, trismus, muffled voice; requires drainage"},
	},
	"cough": {
		{Diagnosis: "Viral upper respiratory infection", Likelihood: domain.VeryCommon, Notes: "Self-limited; congestion, sore throat"},
		{Diagnosis: "Acute bronchitis", Likelihood: domain.Common, Notes: "Persistent cough 1-3 weeks; may produce sputum"},
		{Diagnosis: "Asthma", Likelihood: domain.Common, Notes: "Cough worse at night or with exercise; wheezing"},
		{Diagnosis: "Post-nasal drip", Likelihood: domain.Common, Notes: "Throat clearing; sensation of drainage; allergies or sinusitis"},
		{Diagnosis: "Pneumonia", Likelihood: domain.LessCommon, Notes: "Cough with fever, shortness of breath, and abnormal breath sounds"},
		{Diagnosis: "GERD-related cough", Likelihood: domain.LessCommon, Notes: "Chronic cough; heartburn; worse lying down"},
	},
	"rash": {
		{Diagnosis: "Contact dermatitis", Likelihood: domain.Common, Notes: "Itchy rash after exposure to irritant or allergen"},
		{Diagnosis: "Eczema (atopic dermatitis)", Likelihood: domain.Common, Notes: "Dry, itchy patches; often in skin folds; chronic/recurring"},
		{Diagnosis: "Urticaria (hives)", Likelihood: domain.Common, Notes: "Raised, itchy welts; allergic trigger; comes and goes"},
		{Diagnosis: "Cellulitis", Likelihood: domain.LessCommon, Notes: "Expanding redness, warmth, pain; may have fever; bacterial infection"},
		{Diagnosis: "Shingles (herpes zoster)", Likelihood: domain.LessCommon, Notes: "Painful, blistering rash in a band/stripe; one side only"},
		{Diagnosis: "Drug reaction", Likelihood: domain.LessCommon, Notes: "Rash after starting new medication"},
	},
	"urinary": {
		{Diagnosis: "Urinary tract infection (UTI)", Likelihood: domain.VeryCommon, Notes: "Burning, frequency, urgency; more common in women"},
		{Diagnosis: "Kidney stones", Likelihood: domain.LessCommon, Notes: "Severe flank pain with blood in urine"},
		{Diagnosis: "Pyelonephritis (kidney infection)", Likelihood: domain.LessCommon, Notes: "UTI symptoms plus fever, flank pain, nausea"},
		{Diagnosis: "Benign prostatic hyperplasia", Likelihood: domain.LessCommon, Notes: "Weak stream, frequency, nocturia; older males"},
		{Diagnosis: "Sexually transmitted infection", Likelihood: domain.LessCommon, Notes: "Dysuria with discharge; recent sexual exposure"},
	},
	"extremity_pain": {
		{Diagnosis: "Musculoskeletal strain / Sprain", Likelihood: domain.VeryCommon, Notes: "Related to activity or injury; localized pain and swelling"},
		{Diagnosis: "Osteoarthritis", Likelihood: domain.Common, Notes: "Joint pain worse with use; stiffness in morning; older adults"},
		{Diagnosis: "Tendinitis / Bursitis", Likelihood: domain.Common, Notes: "Pain around a joint with repetitive use"},
		{Diagnosis: "Gout", Likelihood: domain.LessCommon, Notes: "Sudden severe joint pain (often big toe); redness, swelling"},
		{Diagnosis: "Fracture", Likelihood: domain.LessCommon, Notes: "Pain after trauma; swelling, deformity, inability to bear weight"},
		{Diagnosis: "Deep vein thrombosis (DVT)", Likelihood: domain.Uncommon, Notes: "Calf pain and swelling; risk with immobility, travel, birth control"},
	},
	"swelling": {
		{Diagnosis: "Dependent edema", Likelihood: domain.Common, Notes: "Ankle/leg swelling worse at end of day; improves with elevation"},
		{Diagnosis: "Venous insufficiency", Likelihood: domain.Common, Notes: "Chronic leg swelling with skin changes; varicose veins"},
		{Diagnosis: "Heart failure", Likelihood: domain.LessCommon, Notes: "Bilateral leg swelling with shortness of breath; cardiac history"},
		{Diagnosis: "Deep vein thrombosis", Likelihood: domain.LessCommon, Notes: "Unilateral leg swelling with calf pain; acute onset"},
		{Diagnosis: "Cellulitis", Likelihood: domain.LessCommon, Notes: "Swelling with redness, warmth, and pain; may have fever"},
	},
	"eye_problem": {
		{Diagnosis: "Conjunctivitis (pink eye)", Likelihood: domain.Common, Notes: "Red eye with discharge; itching (allergic) or crusting (infectious)"},
		{Diagnosis: "Dry eye syndrome", Likelihood: domain.Common, Notes: "Gritty sensation; burning; worse with screen use"},
		{Diagnosis: "Corneal abrasion", Likelihood: domain.LessCommon, Notes: "Sharp pain, tearing, light sensitivity after trauma or contact lens"},
		{Diagnosis: "Migraine with visual aura", Likelihood: domain.LessCommon, Notes: "Visual changes (zigzag lines, spots) followed by headache"},
		{Diagnosis: "Acute glaucoma", Likelihood: domain.Rare, Notes: "Severe eye pain, blurred vision, halos; nausea; emergency"},
		{Diagnosis: "Retinal detachment", Likelihood: domain.Rare, Notes: "Flashes, floaters, curtain over vision; emergency"},
	},
	"injury_fall": {
		{Diagnosis: "Soft tissue contusion / Bruise", Likelihood: domain.VeryCommon, Notes: "Pain and bruising at impact site; no fracture"},
		{Diagnosis: "Fracture", Likelihood: domain.Common, Notes: "Severe pain, swelling, deformity; inability to bear weight or use limb"},
		{Diagnosis: "Sprain / Ligament injury", Likelihood: domain.Common, Notes: "Joint pain and instability; swelling around joint"},
		{Diagnosis: "Concussion", Likelihood: domain.LessCommon, Notes: "Head injury with headache, dizziness, confusion; may have brief LOC"},
		{Diagnosis: "Intracranial hemorrhage", Likelihood: domain.Rare, Notes: "Head injury with worsening headache, vomiting, altered consciousness; emergency"},
	},
	"fracture": {
		{Diagnosis: "Simple fracture", Likelihood: domain.Common, Notes: "Localized pain, swelling, deformity after trauma"},
		{Diagnosis: "Stress fracture", Likelihood: domain.LessCommon, Notes: "Gradual onset pain with repetitive activity; common in runners"},
		{Diagnosis: "Pathologic fracture", Likelihood: domain.Uncommon, Notes: "Fracture from minimal trauma; may indicate osteoporosis or underlying disease"},
	},
	"pelvic_pain": {
		{Diagnosis: "Menstrual cramps (dysmenorrhea)", Likelihood: domain.Common, Notes: "Cyclic lower abdominal pain; related to period"},
		{Diagnosis: "Urinary tract infection", Likelihood: domain.Common, Notes: "Suprapubic pain with urinary symptoms"},
		{Diagnosis: "Ovarian cyst", Likelihood: domain.LessCommon, Notes: "Unilateral pelvic pain; may be sudden if ruptured"},
		{Diagnosis: "Pelvic inflammatory disease", Likelihood: domain.LessCommon, Notes: "Lower abdominal pain, discharge, fever; sexually active females"},
		{Diagnosis: "Ectopic pregnancy", Likelihood: domain.Uncommon, Notes: "Pelvic pain with missed period; vaginal bleeding; emergency if ruptured"},
		{Diagnosis: "Kidney stones", Likelihood: domain.LessCommon, Notes: "Flank-to-groin pain; hematuria; comes in waves"},
	},
}
