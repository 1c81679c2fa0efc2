package access

import (
	"testing"

	"gorm.io/datatypes"

	"training-portal/internal/models"
)

func catalog() []models.Module {
	return []models.Module{
		{ID: models.ModulePatientsRights, Section: "A. Patient Safety"},
		{ID: "fire-safety", Section: "A. Patient Safety"},
		{ID: models.ModuleHandHygiene, Section: models.SectionInfectionControl},
		{ID: "isolation-precautions", Section: models.SectionInfectionControl},
		{ID: models.ModuleIPSG, Section: "C. International Goals"},
		{ID: "medication-safety", Section: "C. International Goals"},
		{ID: models.ModuleRiskManagement, Section: "D. Quality Management"},
		{ID: "waste-management", Section: "E. Facility Management"},
	}
}

func ids(modules []models.Module) []string {
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = m.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Module, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestDashboardModulesQAAdminSeesAll(t *testing.T) {
	cat := catalog()
	if got := DashboardModules(models.RoleQAAdmin, cat); len(got) != len(cat) {
		t.Fatalf("QA Admin sees %d of %d modules", len(got), len(cat))
	}
}

func TestDashboardModulesClinicalExcludesRiskManagement(t *testing.T) {
	for _, role := range []string{models.RoleDoctor, models.RoleNurse, models.RoleSpecializedNurse} {
		got := DashboardModules(role, catalog())
		if len(got) != len(catalog())-1 {
			t.Fatalf("%s: got %d modules", role, len(got))
		}
		for _, m := range got {
			if m.ID == models.ModuleRiskManagement {
				t.Fatalf("%s should not see %s", role, models.ModuleRiskManagement)
			}
		}
	}
}

func TestDashboardModulesNonClinical(t *testing.T) {
	for _, role := range []string{models.RoleNonClinical, models.RoleOthers} {
		got := DashboardModules(role, catalog())
		assertIDs(t, got, models.ModulePatientsRights, models.ModuleHandHygiene)
	}
}

func TestDashboardModulesMedicalIntern(t *testing.T) {
	// Patients' Rights, every Infection Prevention module, and IPSG;
	// nothing else from sections A, C, D or E.
	got := DashboardModules(models.RoleMedicalIntern, catalog())
	assertIDs(t, got,
		models.ModulePatientsRights,
		models.ModuleHandHygiene,
		"isolation-precautions",
		models.ModuleIPSG,
	)
}

func TestDashboardModulesUnknownRoleSeesNothing(t *testing.T) {
	for _, role := range []string{"", "Visitor", "Student"} {
		if got := DashboardModules(role, catalog()); len(got) != 0 {
			t.Fatalf("role %q: got %v, want empty", role, ids(got))
		}
	}
}

func TestConfiguredModulesAdminsSeeAll(t *testing.T) {
	cat := catalog()
	for _, role := range []string{models.RoleQAAdmin, models.RoleHeadAssistant} {
		if got := ConfiguredModules(role, cat); len(got) != len(cat) {
			t.Fatalf("%s sees %d of %d modules", role, len(got), len(cat))
		}
	}
}

func TestConfiguredModulesAllowList(t *testing.T) {
	cat := []models.Module{
		{ID: "a", AllowedRoles: datatypes.JSONSlice[string]{models.RoleMedicalIntern}},
		{ID: "b", AllowedRoles: datatypes.JSONSlice[string]{models.RoleDoctor, models.RoleNurse}},
		{ID: "c"}, // no allow-list, clinical fallback
	}

	assertIDs(t, ConfiguredModules(models.RoleMedicalIntern, cat), "a")
	assertIDs(t, ConfiguredModules(models.RoleDoctor, cat), "b", "c")
	assertIDs(t, ConfiguredModules(models.RoleHighRiskNurse, cat), "c")
	assertIDs(t, ConfiguredModules(models.RoleOtherClinical, cat), "c")
	assertIDs(t, ConfiguredModules(models.RoleNonClinical, cat))
}

func TestPoliciesReturnSubsets(t *testing.T) {
	cat := catalog()
	inCatalog := make(map[string]bool, len(cat))
	for _, m := range cat {
		inCatalog[m.ID] = true
	}

	roles := append([]string{"", "bogus"}, models.AllRoles...)
	for _, role := range roles {
		for _, filter := range []func(string, []models.Module) []models.Module{DashboardModules, ConfiguredModules} {
			first := ids(filter(role, cat))
			second := ids(filter(role, cat))
			if len(first) != len(second) {
				t.Fatalf("role %q: filter not deterministic", role)
			}
			for _, id := range first {
				if !inCatalog[id] {
					t.Fatalf("role %q: %s is not in the input catalog", role, id)
				}
			}
		}
	}
}
