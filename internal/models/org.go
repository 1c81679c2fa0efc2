package models

// Division groups the departments shown in the registration dropdowns.
// The taxonomy is static; it only drives the cascading selects.
type Division struct {
	Name        string   `json:"name"`
	Departments []string `json:"departments"`
}

var Divisions = []Division{
	{
		Name: "Medical Division",
		Departments: []string{
			"Internal Medicine",
			"Surgery",
			"Pediatrics",
			"Obstetrics and Gynecology",
			"Emergency Medicine",
			"Anesthesiology",
		},
	},
	{
		Name: "Nursing Division",
		Departments: []string{
			"Medical Ward",
			"Surgical Ward",
			"Intensive Care Unit",
			"Operating Room",
			"Emergency Room",
			"Outpatient Department",
		},
	},
	{
		Name: "Ancillary Division",
		Departments: []string{
			"Laboratory",
			"Radiology",
			"Pharmacy",
			"Physical Therapy",
			"Nutrition and Dietetics",
		},
	},
	{
		Name: "Administrative Division",
		Departments: []string{
			"Admitting",
			"Billing",
			"Human Resources",
			"Information Technology",
			"Housekeeping and Maintenance",
		},
	},
}
