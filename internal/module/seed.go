package module

import (
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"training-portal/internal/models"
)

// Seed installs the default training catalog on an empty database.
func Seed(db *gorm.DB) error {
	repo := NewRepository(db)

	count, err := repo.CountModules()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range defaultCatalog {
		if err := repo.CreateModule(&defaultCatalog[i]); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d default modules", len(defaultCatalog))
	return nil
}

func roles(names ...string) datatypes.JSONSlice[string] {
	return datatypes.NewJSONSlice(names)
}

var defaultCatalog = []models.Module{
	{
		ID:          models.ModulePatientsRights,
		Section:     "A. Patient Safety and Quality",
		Title:       "Patients' Rights and Responsibilities",
		Description: "Core orientation on patient rights, consent, and confidentiality.",
		Duration:    "25 min",
		Tags:        datatypes.NewJSONSlice([]string{"orientation", "patient rights"}),
		Questions: datatypes.NewJSONSlice([]models.Question{
			{
				ID:   "pr-1",
				Text: "A patient refuses a procedure after it has been explained. What should staff do?",
				Options: []string{
					"Proceed anyway, the doctor already ordered it",
					"Document the refusal and inform the attending physician",
					"Ask security to intervene",
					"Discharge the patient immediately",
				},
				CorrectAnswerIndex: 1,
			},
			{
				ID:   "pr-2",
				Text: "Who may access a patient's medical record?",
				Options: []string{
					"Any hospital employee",
					"Only staff involved in the patient's care",
					"The patient's employer",
					"Visitors with the patient's room number",
				},
				CorrectAnswerIndex: 1,
			},
		}),
	},
	{
		ID:          "incident-reporting",
		Section:     "A. Patient Safety and Quality",
		Title:       "Incident and Near-Miss Reporting",
		Description: "When and how to file an incident report.",
		Duration:    "15 min",
		Tags:        datatypes.NewJSONSlice([]string{"safety", "reporting"}),
	},
	{
		ID:          models.ModuleHandHygiene,
		Section:     models.SectionInfectionControl,
		Title:       "Hand Hygiene",
		Description: "The five moments of hand hygiene and proper technique.",
		Duration:    "20 min",
		Tags:        datatypes.NewJSONSlice([]string{"infection control", "hygiene"}),
		Questions: datatypes.NewJSONSlice([]models.Question{
			{
				ID:   "hh-1",
				Text: "How many moments of hand hygiene does the WHO define?",
				Options: []string{
					"Three",
					"Four",
					"Five",
					"Six",
				},
				CorrectAnswerIndex: 2,
			},
			{
				ID:   "hh-2",
				Text: "Alcohol-based hand rub is NOT sufficient when hands are:",
				Options: []string{
					"Visibly soiled",
					"Dry",
					"Gloved beforehand",
					"Recently washed",
				},
				CorrectAnswerIndex: 0,
			},
		}),
	},
	{
		ID:          "isolation-precautions",
		Section:     models.SectionInfectionControl,
		Title:       "Isolation Precautions",
		Description: "Contact, droplet, and airborne precautions in the ward.",
		Duration:    "30 min",
		Tags:        datatypes.NewJSONSlice([]string{"infection control", "ppe"}),
		AllowedRoles: roles(
			models.RoleDoctor,
			models.RoleNurse,
			models.RoleHighRiskNurse,
			models.RoleMedicalIntern,
		),
	},
	{
		ID:          models.ModuleIPSG,
		Section:     "C. International Patient Safety Goals",
		Title:       "International Patient Safety Goals",
		Description: "The six IPSG goals and how they apply on the floor.",
		Duration:    "35 min",
		Tags:        datatypes.NewJSONSlice([]string{"ipsg", "safety"}),
	},
	{
		ID:          models.ModuleRiskManagement,
		Section:     "D. Quality and Risk Management",
		Title:       "Risk and Opportunities Management",
		Description: "Identifying, scoring, and escalating organizational risks.",
		Duration:    "40 min",
		Tags:        datatypes.NewJSONSlice([]string{"risk", "management"}),
		AllowedRoles: roles(
			models.RoleQAAdmin,
			models.RoleHeadAssistant,
		),
	},
	{
		ID:          "fire-safety",
		Section:     "E. Facility Management and Safety",
		Title:       "Fire and Electrical Safety",
		Description: "RACE and PASS protocols, evacuation routes, code red drills.",
		Duration:    "20 min",
		Tags:        datatypes.NewJSONSlice([]string{"facility", "fire safety"}),
	},
}
