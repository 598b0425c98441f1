// Package catalog holds the built-in departments and questionnaire.
package catalog

import "medfeedback/internal/model"

// Slider answers run from 0 to 10.
const (
	sliderMin = 0
	sliderMax = 10
)

var (
	yesCompletely = []string{"Yes, Completely", "Somewhat", "No, Not at all"}
	yesVery       = []string{"Yes, Very", "Somewhat", "No"}
	yesNo         = []string{"Yes", "No"}
	yesNoNA       = []string{"Yes", "No", "N/A"}
	satisfaction  = []string{"Very Satisfied", "Satisfied", "Neutral", "Dissatisfied", "Very Dissatisfied"}
)

// Departments returns the hospital units patients can give feedback on
func Departments() []model.Department {
	return []model.Department{
		{ID: "emergency", Name: "Emergency", Order: 1},
		{ID: "outpatient", Name: "Outpatient Clinic", Order: 2},
		{ID: "inpatient", Name: "Inpatient Clinic", Order: 3},
		{ID: "radiology", Name: "Radiology", Order: 4},
		{ID: "laboratory", Name: "Laboratory", Order: 5},
		{ID: "pharmacy", Name: "Pharmacy", Order: 6},
		{ID: "billing", Name: "Billing", Order: 7},
		{ID: "mortuary", Name: "Mortuary", Order: 8},
		{ID: "maternity", Name: "Maternity", Order: 9},
		{ID: "immunization", Name: "Immunization", Order: 10},
	}
}

// Questions returns the questionnaire for every department
func Questions() []model.Question {
	return []model.Question{
		{ID: "emergency_q1", DepartmentID: "emergency", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How quickly were you attended to upon arrival?"},
		{ID: "emergency_q2", DepartmentID: "emergency", Order: 2, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How would you rate the communication of the medical team during your emergency visit?"},
		{ID: "emergency_q3", DepartmentID: "emergency", Order: 3, Kind: model.KindSingleChoice, Options: yesCompletely,
			Prompt: "Were your concerns addressed properly?"},
		{ID: "emergency_q4", DepartmentID: "emergency", Order: 4, Kind: model.KindSingleChoice, Options: yesCompletely,
			Prompt: "Were the emergency team well prepared to handle your case?"},
		{ID: "outpatient_q1", DepartmentID: "outpatient", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How long did you wait for your appointment?"},
		{ID: "outpatient_q2", DepartmentID: "outpatient", Order: 2, Kind: model.KindSingleChoice, Options: satisfaction,
			Prompt: "How satisfied were you with the clinic staff?"},
		{ID: "outpatient_q3", DepartmentID: "outpatient", Order: 3, Kind: model.KindSingleChoice, Options: yesNo,
			Prompt: "Was the clinic environment clean and comfortable?"},
		{ID: "inpatient_q1", DepartmentID: "inpatient", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How would you rate the attentiveness of the nurses?"},
		{ID: "inpatient_q2", DepartmentID: "inpatient", Order: 2, Kind: model.KindSingleChoice, Options: yesNoNA,
			Prompt: "Were your meals satisfactory during your stay?"},
		{ID: "inpatient_q3", DepartmentID: "inpatient", Order: 3, Kind: model.KindSingleChoice, Options: yesNo,
			Prompt: "Was the room clean and comfortable?"},
		{ID: "radiology_q1", DepartmentID: "radiology", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How long did you wait for your imaging procedure?"},
		{ID: "radiology_q2", DepartmentID: "radiology", Order: 2, Kind: model.KindSingleChoice, Options: yesVery,
			Prompt: "Was the technician professional and clear?"},
		{ID: "radiology_q3", DepartmentID: "radiology", Order: 3, Kind: model.KindSingleChoice, Options: yesNo,
			Prompt: "Were you given clear instructions after the procedure?"},
		{ID: "laboratory_q1", DepartmentID: "laboratory", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How quickly was your sample taken?"},
		{ID: "laboratory_q2", DepartmentID: "laboratory", Order: 2, Kind: model.KindSingleChoice, Options: yesVery,
			Prompt: "Was the lab technician gentle and skilled?"},
		{ID: "laboratory_q3", DepartmentID: "laboratory", Order: 3, Kind: model.KindSingleChoice, Options: yesNo,
			Prompt: "Was the lab area clean?"},
		{ID: "pharmacy_q1", DepartmentID: "pharmacy", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How long did you wait for your prescription?"},
		{ID: "pharmacy_q2", DepartmentID: "pharmacy", Order: 2, Kind: model.KindSingleChoice, Options: yesCompletely,
			Prompt: "Was the pharmacist helpful and knowledgeable?"},
		{ID: "pharmacy_q3", DepartmentID: "pharmacy", Order: 3, Kind: model.KindSingleChoice, Options: yesCompletely,
			Prompt: "Was the pharmacy clean and organized?"},
		{ID: "billing_q1", DepartmentID: "billing", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How clear was your billing statement?"},
		{ID: "billing_q2", DepartmentID: "billing", Order: 2, Kind: model.KindSingleChoice, Options: yesVery,
			Prompt: "Was the billing staff helpful and courteous?"},
		{ID: "billing_q3", DepartmentID: "billing", Order: 3, Kind: model.KindSingleChoice, Options: yesNo,
			Prompt: "Was the billing process efficient?"},
		{ID: "mortuary_q1", DepartmentID: "mortuary", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How would you rate the sensitivity and respect shown by the staff?"},
		{ID: "mortuary_q2", DepartmentID: "mortuary", Order: 2, Kind: model.KindSingleChoice, Options: yesCompletely,
			Prompt: "Were your needs and requests handled appropriately?"},
		{ID: "mortuary_q3", DepartmentID: "mortuary", Order: 3, Kind: model.KindSingleChoice, Options: yesNo,
			Prompt: "Was the facility clean and well-maintained?"},
		{ID: "maternity_q1", DepartmentID: "maternity", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How would you rate the care provided during labor and delivery?"},
		{ID: "maternity_q2", DepartmentID: "maternity", Order: 2, Kind: model.KindSingleChoice, Options: yesVery,
			Prompt: "Was the postnatal care informative and supportive?"},
		{ID: "maternity_q3", DepartmentID: "maternity", Order: 3, Kind: model.KindSingleChoice, Options: yesCompletely,
			Prompt: "Were your questions and concerns addressed by the medical team?"},
		{ID: "immunization_q1", DepartmentID: "immunization", Order: 1, Kind: model.KindRating, ScaleMin: sliderMin, ScaleMax: sliderMax, Required: true,
			Prompt: "How quickly was the immunization administered?"},
		{ID: "immunization_q2", DepartmentID: "immunization", Order: 2, Kind: model.KindSingleChoice, Options: yesVery,
			Prompt: "Was the nurse gentle during the injection?"},
		{ID: "immunization_q3", DepartmentID: "immunization", Order: 3, Kind: model.KindSingleChoice, Options: yesNo,
			Prompt: "Were you provided with clear post-immunization instructions?"},
	}
}
