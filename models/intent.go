package models

// IntentTag labels a category of user request the chatbot can recognize.
type IntentTag string

const (
	IntentGreeting            IntentTag = "greeting"
	IntentEmergency           IntentTag = "emergency"
	IntentCovidSymptoms       IntentTag = "covid_symptoms"
	IntentFever               IntentTag = "fever"
	IntentCough               IntentTag = "cough"
	IntentHeadache            IntentTag = "headache"
	IntentVaccinationSchedule IntentTag = "vaccination_schedule"
	IntentFindDoctor          IntentTag = "find_doctor"
	IntentMedicineInfo        IntentTag = "medicine_info"
	IntentMentalHealth        IntentTag = "mental_health"
	IntentFirstAid            IntentTag = "first_aid"
	IntentGeneralHealth       IntentTag = "general_health"
)

// IntentDefinition is one entry of the intent catalog. Immutable after load.
type IntentDefinition struct {
	Tag       IntentTag `json:"tag"`
	Patterns  []string  `json:"patterns"`
	Responses []string  `json:"responses"`
}
