// Package access holds the two role-based visibility policies over the
// module catalog. Both are pure: they return a subset of the input slice
// in input order and never mutate it.
package access

import (
	"training-portal/internal/models"
)

// clinicalFallback is the role set a module falls back to when it has no
// explicit allow-list configured.
var clinicalFallback = map[string]bool{
	models.RoleDoctor:        true,
	models.RoleNurse:         true,
	models.RoleHighRiskNurse: true,
	models.RoleOtherClinical: true,
}

// DashboardModules returns the modules a learner sees on their dashboard.
// The rules are fixed per role name; an unrecognized or empty role sees
// nothing.
func DashboardModules(role string, catalog []models.Module) []models.Module {
	visible := make([]models.Module, 0, len(catalog))

	switch role {
	case models.RoleQAAdmin:
		return append(visible, catalog...)

	case models.RoleDoctor, models.RoleNurse, models.RoleSpecializedNurse:
		for _, m := range catalog {
			if m.ID != models.ModuleRiskManagement {
				visible = append(visible, m)
			}
		}

	case models.RoleNonClinical, models.RoleOthers:
		for _, m := range catalog {
			if m.ID == models.ModulePatientsRights || m.ID == models.ModuleHandHygiene {
				visible = append(visible, m)
			}
		}

	case models.RoleMedicalIntern:
		for _, m := range catalog {
			if m.ID == models.ModulePatientsRights ||
				m.ID == models.ModuleIPSG ||
				m.Section == models.SectionInfectionControl {
				visible = append(visible, m)
			}
		}
	}

	return visible
}

// ConfiguredModules returns the modules visible under the per-module
// allow-list model used by the admin audit views. QA Admins and Heads see
// everything; for the rest, a module without an allow-list falls back to
// the fixed clinical role set.
func ConfiguredModules(role string, catalog []models.Module) []models.Module {
	visible := make([]models.Module, 0, len(catalog))

	if role == models.RoleQAAdmin || role == models.RoleHeadAssistant {
		return append(visible, catalog...)
	}

	for _, m := range catalog {
		if len(m.AllowedRoles) > 0 {
			for _, allowed := range m.AllowedRoles {
				if allowed == role {
					visible = append(visible, m)
					break
				}
			}
			continue
		}
		if clinicalFallback[role] {
			visible = append(visible, m)
		}
	}

	return visible
}
