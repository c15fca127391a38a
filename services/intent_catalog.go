package services

import "health-chatbot-backend/models"

// DefaultIntentCatalog returns the built-in catalog of recognized intents.
// Tags are unique; the slice is treated as immutable after load. The
// classifier may also return tags without a catalog entry (medicine_info,
// mental_health, first_aid, general_health) — those resolve to the generic
// fallback response in the composer.
func DefaultIntentCatalog() []models.IntentDefinition {
	return []models.IntentDefinition{
		{
			Tag: models.IntentGreeting,
			Patterns: []string{
				"Hi", "Hello", "Good morning", "Good afternoon", "Good evening",
				"Hey there", "Namaste", "Salaam", "Vanakkam", "Adaab", "Sat sri akal",
			},
			Responses: []string{
				"🏥 Hello! I'm your healthcare assistant. How can I help you today?",
				"👋 Hi there! I'm here to provide health information and support. What can I assist you with?",
				"🩺 Welcome to the healthcare chatbot! Feel free to ask about symptoms, medications, or health advice.",
			},
		},
		{
			Tag: models.IntentEmergency,
			Patterns: []string{
				"emergency", "urgent", "help me", "chest pain", "heart attack",
				"difficulty breathing", "severe pain", "bleeding heavily", "unconscious",
				"emergency ambulance", "call doctor", "intensive pain", "can't breathe",
			},
			Responses: []string{
				"🚨 **MEDICAL EMERGENCY** - Please call emergency services immediately:\n\n🚑 India: **108** (Ambulance)\n🏥 Or visit nearest hospital\n\n⚠️ This is not a substitute for immediate medical care!",
			},
		},
		{
			Tag: models.IntentCovidSymptoms,
			Patterns: []string{
				"covid symptoms", "coronavirus", "covid-19", "fever cough",
				"loss of taste", "loss of smell", "covid test", "quarantine",
				"covid vaccination", "omicron", "delta variant",
			},
			Responses: []string{
				"🦠 **COVID-19 Common Symptoms:**\n• Fever (above 100.4°F)\n• Dry cough\n• Fatigue\n• Loss of taste/smell\n• Difficulty breathing\n• Body aches\n\n**If you have symptoms:**\n1️⃣ Get tested immediately\n2️⃣ Isolate yourself\n3️⃣ Consult a doctor\n4️⃣ Monitor oxygen levels",
			},
		},
		{
			Tag: models.IntentFever,
			Patterns: []string{
				"I have fever", "fever", "high temperature", "body heat", "bukhar",
				"I feel hot", "temperature", "chills", "sweating",
			},
			Responses: []string{
				"🌡️ **Fever Management:**\n\n**Immediate Care:**\n• Rest and stay hydrated\n• Take paracetamol as directed\n• Use cool cloth on forehead\n• Monitor temperature regularly\n\n⚠️ **Seek medical help if:**\n• Fever above 103°F (39.4°C)\n• Persistent for more than 3 days\n• Accompanied by severe symptoms",
			},
		},
		{
			Tag: models.IntentCough,
			Patterns: []string{
				"I have cough", "coughing", "dry cough", "wet cough", "khansi",
				"throat irritation", "persistent cough", "chest congestion",
			},
			Responses: []string{
				"😷 **Cough Relief:**\n\n**Home Remedies:**\n• Warm water with honey and lemon\n• Steam inhalation\n• Stay hydrated\n• Avoid cold drinks\n• Use humidifier\n\n⚠️ **See doctor if:**\n• Cough persists >2 weeks\n• Blood in cough\n• High fever with cough\n• Difficulty breathing",
			},
		},
		{
			Tag: models.IntentHeadache,
			Patterns: []string{
				"headache", "head pain", "migraine", "sir dard", "head ache",
				"severe headache", "head hurts", "brain pain",
			},
			Responses: []string{
				"🤕 **Headache Relief:**\n\n**Quick Relief:**\n• Rest in dark, quiet room\n• Apply cold/warm compress\n• Stay hydrated\n• Gentle head massage\n• Paracetamol if needed\n\n🚨 **Emergency signs:**\n• Sudden severe headache\n• Headache with fever & stiff neck\n• Vision changes\n• Confusion or weakness",
			},
		},
		{
			Tag: models.IntentVaccinationSchedule,
			Patterns: []string{
				"vaccination schedule", "vaccine calendar", "immunization",
				"child vaccination", "adult vaccines", "booster dose",
				"vaccine due", "vaccination chart", "tika", "vaccine list",
			},
			Responses: []string{
				"💉 **Vaccination Schedule:**\n\n👶 **For Children:**\n• Birth: BCG, OPV, Hep-B\n• 6 weeks: DTwP, IPV, Hib, Rotavirus, PCV\n• 10 weeks: DTwP, IPV, Hib, Rotavirus, PCV\n• 14 weeks: DTwP, IPV, Hib, Rotavirus, PCV\n\n🧑 **For Adults:**\n• COVID-19: As per guidelines\n• Annual flu vaccine\n• Tetanus booster every 10 years\n\n📱 Use CoWIN app for COVID vaccination booking!",
			},
		},
		{
			Tag: models.IntentFindDoctor,
			Patterns: []string{
				"find doctor", "doctor near me", "hospital nearby", "specialist",
				"cardiologist", "dermatologist", "pediatrician", "gynecologist",
				"orthopedic", "ENT doctor", "eye doctor", "dentist", "daktar",
			},
			Responses: []string{
				"🏥 **Find Healthcare Providers:**\n\n**Government Hospitals:**\n• Visit: mohfw.gov.in\n• Call: 104 (Health Helpline)\n• Ayushman Bharat beneficiaries\n\n**Online Directories:**\n• Practo.com\n• 1mg.com\n• Apollo hospitals\n• Local government health portals\n\n📍 **Need specific recommendations?**\nPlease share your location (city/state) for targeted suggestions.",
			},
		},
	}
}
