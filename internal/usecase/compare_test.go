package usecase

import (
	"context"
	"strings"
	"testing"

	"WorthWise/internal/domain/models"
)

func TestCompareScenariosOrderAndFailure(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{
			inst:  publicInstitution(),
			major: &models.MajorRecord{CIPCode: "11.0701", Title: "Computer Science"},
		},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	good := *baseRequest()
	bad := *baseRequest()
	bad.InstitutionID = 999

	out := engine.CompareScenarios(context.Background(), []models.ScenarioRequest{good, bad})
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}

	first := out[0]
	if first.ScenarioIndex != 0 {
		t.Fatalf("first index = %d", first.ScenarioIndex)
	}
	if first.KPIs == nil {
		t.Fatalf("first scenario should have KPIs")
	}
	if first.InstitutionName != "Test University" {
		t.Fatalf("institution name = %q", first.InstitutionName)
	}
	if first.MajorName != "Computer Science" {
		t.Fatalf("major name = %q", first.MajorName)
	}

	second := out[1]
	if second.ScenarioIndex != 1 {
		t.Fatalf("second index = %d", second.ScenarioIndex)
	}
	if second.KPIs != nil {
		t.Fatalf("failed scenario should have nil KPIs")
	}
	if second.InstitutionName != "Institution 999" {
		t.Fatalf("placeholder name = %q", second.InstitutionName)
	}
	if len(second.Warnings) != 1 || !strings.HasPrefix(second.Warnings[0], "Failed to compute: ") {
		t.Fatalf("warnings = %v", second.Warnings)
	}
}

func TestCompareScenariosSingle(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	out := engine.CompareScenarios(context.Background(), []models.ScenarioRequest{*baseRequest()})
	if len(out) != 1 {
		t.Fatalf("got %d entries, want 1", len(out))
	}
	if out[0].KPIs == nil {
		t.Fatalf("expected KPIs")
	}
	// No major on file: identifier placeholder
	if out[0].MajorName != "Major 11.0701" {
		t.Fatalf("major name = %q", out[0].MajorName)
	}
}
