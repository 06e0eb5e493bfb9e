package usecase

import (
	"context"
	"errors"
	"testing"

	"WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
)

type fakeRefStore struct {
	inst  *models.InstitutionRecord
	major *models.MajorRecord
}

func (f *fakeRefStore) GetInstitution(_ context.Context, id int) (*models.InstitutionRecord, error) {
	if f.inst == nil || f.inst.ID != id {
		return nil, domrepo.ErrNotFound
	}
	return f.inst, nil
}

func (f *fakeRefStore) SearchInstitutions(context.Context, string, string, int) ([]models.InstitutionOption, error) {
	return nil, nil
}

func (f *fakeRefStore) GetMajor(_ context.Context, cipCode string) (*models.MajorRecord, error) {
	if f.major == nil || f.major.CIPCode != cipCode {
		return nil, domrepo.ErrNotFound
	}
	return f.major, nil
}

func (f *fakeRefStore) SearchMajors(context.Context, string, int) ([]models.MajorRecord, error) {
	return nil, nil
}

func (f *fakeRefStore) ListRegions(context.Context) ([]models.RegionRecord, error) {
	return nil, nil
}

func (f *fakeRefStore) DataVersions(context.Context) (map[string]string, error) {
	return map[string]string{"scorecard": "2025-06"}, nil
}

func (f *fakeRefStore) Health(context.Context) error { return nil }

type fakeAnalyticsStore struct {
	prog *models.ProgramRecord
	rent *int
	rpp  *float64
}

func (f *fakeAnalyticsStore) GetProgram(context.Context, int, string, int) (*models.ProgramRecord, error) {
	return f.prog, nil
}

func (f *fakeAnalyticsStore) GetRent(context.Context, string, string) (*int, error) {
	return f.rent, nil
}

func (f *fakeAnalyticsStore) GetRegionalPriceParity(context.Context, int) (*float64, error) {
	return f.rpp, nil
}

func (f *fakeAnalyticsStore) Health(context.Context) error { return nil }

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func boolp(v bool) *bool        { return &v }

func publicInstitution() *models.InstitutionRecord {
	return &models.InstitutionRecord{
		ID:             100,
		Name:           "Test University",
		Zip:            "10001",
		Ownership:      models.OwnershipPublic,
		TuitionInState: intp(14254),
	}
}

func sampleProgram() *models.ProgramRecord {
	return &models.ProgramRecord{
		InstitutionID:   100,
		CIPCode:         "11.0701",
		CredentialLevel: 3,
		Earnings1Yr:     intp(70000),
		Earnings4Yr:     intp(97500),
		Earnings5Yr:     intp(105000),
	}
}

func baseRequest() *models.ScenarioRequest {
	return &models.ScenarioRequest{
		InstitutionID:    100,
		CIPCode:          "11.0701",
		CredentialLevel:  3,
		HousingType:      "1BR",
		RoommateCount:    1,
		FoodMonthly:      intp(400),
		TransportMonthly: intp(100),
		UtilitiesMonthly: intp(200),
		MiscMonthly:      intp(150),
		BooksAnnual:      intp(1200),
		AidAnnual:        10000,
		CashAnnual:       5000,
		LoanAPR:          0.0529,
		EffectiveTaxRate: 0.25,
	}
}

func TestComputeKPIsFullData(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	kpis, assumptions, warnings, err := engine.ComputeKPIs(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if assumptions.RentSource != "hud_fmr" {
		t.Fatalf("rent source = %q, want hud_fmr", assumptions.RentSource)
	}

	if kpis.HousingAnnual != 10800 {
		t.Fatalf("housing = %d, want 10800", kpis.HousingAnnual)
	}
	if kpis.OtherExpenses != 11400 {
		t.Fatalf("other = %d, want 11400", kpis.OtherExpenses)
	}
	if kpis.TuitionFees != 14254 {
		t.Fatalf("tuition = %d, want 14254", kpis.TuitionFees)
	}
	if kpis.TrueYearlyCost != 36454 {
		t.Fatalf("total = %d, want 36454", kpis.TrueYearlyCost)
	}
	if kpis.ExpectedDebtAtGrad != 92868 {
		t.Fatalf("debt = %d, want 92868", kpis.ExpectedDebtAtGrad)
	}
	if kpis.EarningsYear3 == nil || *kpis.EarningsYear3 != 88333 {
		t.Fatalf("earn3 = %v, want 88333", kpis.EarningsYear3)
	}
	if kpis.ROI == nil || *kpis.ROI != 3.17 {
		t.Fatalf("roi = %v, want 3.17", kpis.ROI)
	}
	if kpis.PaybackYears == nil || *kpis.PaybackYears != 4.1 {
		t.Fatalf("payback = %v, want 4.1", kpis.PaybackYears)
	}
	if kpis.DTIYear1 == nil || *kpis.DTIYear1 != 1.33 {
		t.Fatalf("dti = %v, want 1.33", kpis.DTIYear1)
	}
	if kpis.ComfortIndex == nil || *kpis.ComfortIndex != 63.9 {
		t.Fatalf("comfort = %v, want 63.9", kpis.ComfortIndex)
	}
}

func TestComputeKPIsInstitutionNotFound(t *testing.T) {
	engine := NewKPIEngine(&fakeRefStore{}, &fakeAnalyticsStore{})

	_, _, _, err := engine.ComputeKPIs(context.Background(), baseRequest())
	if !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestComputeKPIsHousingNone(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	req := baseRequest()
	req.HousingType = models.HousingNone

	kpis, assumptions, _, err := engine.ComputeKPIs(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.HousingAnnual != 0 {
		t.Fatalf("housing = %d, want 0", kpis.HousingAnnual)
	}
	if assumptions.RentSource != "none" {
		t.Fatalf("rent source = %q, want none", assumptions.RentSource)
	}
}

func TestComputeKPIsUserRent(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{prog: sampleProgram()},
	)

	req := baseRequest()
	req.RentMonthly = intp(1000)
	req.RoommateCount = 0

	kpis, assumptions, _, err := engine.ComputeKPIs(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.HousingAnnual != 12000 {
		t.Fatalf("housing = %d, want 12000", kpis.HousingAnnual)
	}
	if assumptions.RentSource != "user_provided" {
		t.Fatalf("rent source = %q, want user_provided", assumptions.RentSource)
	}
}

func TestComputeKPIsZeroRentOverrideFallsThrough(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	req := baseRequest()
	req.RentMonthly = intp(0)

	kpis, assumptions, _, err := engine.ComputeKPIs(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assumptions.RentSource != "hud_fmr" {
		t.Fatalf("rent source = %q, want hud_fmr", assumptions.RentSource)
	}
	if kpis.HousingAnnual != 10800 {
		t.Fatalf("housing = %d, want 10800", kpis.HousingAnnual)
	}
}

func TestComputeKPIsRentFallback(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{prog: sampleProgram()},
	)

	req := baseRequest()
	req.RoommateCount = 0

	kpis, _, warnings, err := engine.ComputeKPIs(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.HousingAnnual != 14400 {
		t.Fatalf("housing = %d, want 14400", kpis.HousingAnnual)
	}
	if !hasWarning(warnings, "No FMR data for ZIP code - using default $1200/month") {
		t.Fatalf("missing rent warning, got %v", warnings)
	}
}

func TestComputeKPIsNoProgramData(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{rent: intp(1800)},
	)

	kpis, _, warnings, err := engine.ComputeKPIs(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hasWarning(warnings, "No earnings data available for this program - using estimates") {
		t.Fatalf("missing earnings warning, got %v", warnings)
	}
	if kpis.EarningsYear1 != nil || kpis.EarningsYear3 != nil {
		t.Fatalf("expected nil earnings, got %v %v", kpis.EarningsYear1, kpis.EarningsYear3)
	}
	if kpis.ROI != nil || kpis.PaybackYears != nil || kpis.DTIYear1 != nil || kpis.ComfortIndex != nil {
		t.Fatalf("expected nil return metrics")
	}
	if kpis.ExpectedDebtAtGrad != 92868 {
		t.Fatalf("debt = %d, want 92868", kpis.ExpectedDebtAtGrad)
	}
}

func TestComputeKPIsTuitionEstimateFallback(t *testing.T) {
	inst := publicInstitution()
	inst.TuitionInState = nil

	engine := NewKPIEngine(
		&fakeRefStore{inst: inst},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	kpis, _, warnings, err := engine.ComputeKPIs(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.TuitionFees != 14000 {
		t.Fatalf("tuition = %d, want 14000", kpis.TuitionFees)
	}
	if !hasWarning(warnings, "Using estimated tuition (data unavailable)") {
		t.Fatalf("missing tuition warning, got %v", warnings)
	}
}

func TestComputeKPIsNetPriceFallback(t *testing.T) {
	inst := publicInstitution()
	inst.TuitionInState = nil
	inst.AvgNetPricePublic = intp(12000)

	engine := NewKPIEngine(
		&fakeRefStore{inst: inst},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	kpis, _, warnings, err := engine.ComputeKPIs(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.TuitionFees != 12000 {
		t.Fatalf("tuition = %d, want 12000", kpis.TuitionFees)
	}
	if !hasWarning(warnings, "Using average net price (tuition data unavailable)") {
		t.Fatalf("missing net price warning, got %v", warnings)
	}
}

func TestComputeKPIsOutOfStateTuition(t *testing.T) {
	inst := publicInstitution()
	inst.TuitionOutState = intp(32000)

	engine := NewKPIEngine(
		&fakeRefStore{inst: inst},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800)},
	)

	req := baseRequest()
	req.InState = boolp(false)

	kpis, _, _, err := engine.ComputeKPIs(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.TuitionFees != 32000 {
		t.Fatalf("tuition = %d, want 32000", kpis.TuitionFees)
	}
}

func TestComputeKPIsRegionalAdjustment(t *testing.T) {
	engine := NewKPIEngine(
		&fakeRefStore{inst: publicInstitution()},
		&fakeAnalyticsStore{prog: sampleProgram(), rent: intp(1800), rpp: floatp(200)},
	)

	req := baseRequest()
	req.PostgradRegionID = intp(7)

	kpis, _, _, err := engine.ComputeKPIs(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kpis.EarningsYear1 == nil || *kpis.EarningsYear1 != 35000 {
		t.Fatalf("earn1 = %v, want 35000", kpis.EarningsYear1)
	}
	if kpis.EarningsYear3 == nil || *kpis.EarningsYear3 != 44166 {
		t.Fatalf("earn3 = %v, want 44166", kpis.EarningsYear3)
	}
	// Year-5 earnings stay nominal
	if kpis.EarningsYear5 == nil || *kpis.EarningsYear5 != 105000 {
		t.Fatalf("earn5 = %v, want 105000", kpis.EarningsYear5)
	}
}

func hasWarning(warnings []string, want string) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}
