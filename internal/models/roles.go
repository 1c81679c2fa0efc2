package models

// Staff roles. The strings are stored verbatim on user profiles and in
// module allow-lists, so they must not change once data exists.
const (
	RoleQAAdmin          = "QA Admin"
	RoleHeadAssistant    = "Head / Assistant Head"
	RoleDoctor           = "Doctor"
	RoleNurse            = "Nurse"
	RoleSpecializedNurse = "Specialized Nurse"
	RoleHighRiskNurse    = "Nurse (High-risk Area)"
	RoleOtherClinical    = "Other Clinical (Allied Health)"
	RoleMedicalIntern    = "Medical Intern"
	RoleNonClinical      = "Non-clinical"
	RoleOthers           = "Others"
)

var AllRoles = []string{
	RoleQAAdmin,
	RoleHeadAssistant,
	RoleDoctor,
	RoleNurse,
	RoleSpecializedNurse,
	RoleHighRiskNurse,
	RoleOtherClinical,
	RoleMedicalIntern,
	RoleNonClinical,
	RoleOthers,
}

func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role may use the admin API.
func IsAdmin(role string) bool {
	return role == RoleQAAdmin || role == RoleHeadAssistant
}
