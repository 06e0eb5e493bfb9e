package usecase

import (
	"context"
	"errors"
	"fmt"

	"WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
	"WorthWise/internal/services/finance"
	applogger "WorthWise/pkg/logger"
)

// ErrComputation marks an unexpected internal fault during a scenario
// computation, as opposed to a missing reference entity
// (repository.ErrNotFound). Callers map the two to different statuses.
var ErrComputation = errors.New("computation failed")

// Fallback constants used when reference data is missing. Every use is
// reported through a warning; silent substitution is prohibited.
const (
	fallbackRentMonthly          = 1200
	fallbackTuitionPublic        = 14000
	fallbackTuitionPrivate       = 35000
	fallbackTuitionForProfit     = 25000
	placeholderGraduationRate    = 0.75
	earnings3YrInterpolationStep = 2.0 / 3.0
)

// KPIEngine orchestrates one scenario computation: it resolves
// defaults and fallbacks against the reference and analytics stores,
// runs the finance formulas in order, and collects a warning for every
// degraded-data path taken.
type KPIEngine struct {
	ref       domrepo.ReferenceStore
	analytics domrepo.AnalyticsStore
	metrics   domrepo.Metrics
	l         *applogger.Logger
}

func NewKPIEngine(ref domrepo.ReferenceStore, analytics domrepo.AnalyticsStore) *KPIEngine {
	return &KPIEngine{ref: ref, analytics: analytics}
}

// SetLogger injects a structured logger.
func (e *KPIEngine) SetLogger(l *applogger.Logger) { e.l = l }

// SetMetrics injects a metrics recorder.
func (e *KPIEngine) SetMetrics(m domrepo.Metrics) { e.metrics = m }

// ComputeKPIs runs the full pipeline for one scenario and returns the
// KPIs, the assumptions used, and warnings in computation order.
// Institution-not-found surfaces as repository.ErrNotFound; any other
// store fault wraps ErrComputation.
func (e *KPIEngine) ComputeKPIs(ctx context.Context, req *models.ScenarioRequest) (*models.KPIResult, models.Assumptions, []string, error) {
	warnings := []string{}
	assumptions := finance.DefaultAssumptions()

	// 1. Institution record: the only fatal miss.
	inst, err := e.ref.GetInstitution(ctx, req.InstitutionID)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			e.recordOutcome("not_found")
			return nil, assumptions, nil, fmt.Errorf("institution %d: %w", req.InstitutionID, domrepo.ErrNotFound)
		}
		e.recordOutcome("error")
		return nil, assumptions, nil, fmt.Errorf("%w: institution lookup: %v", ErrComputation, err)
	}

	// 2. Program earnings/debt: misses and store faults both degrade.
	prog := e.fetchProgram(ctx, req)
	if !hasValue(prog.Earnings1Yr) {
		warnings = append(warnings, "No earnings data available for this program - using estimates")
		e.recordFallback("earnings")
	}

	// 3. Year-3 earnings sit two thirds of the way from year 1 to year 4.
	var earn3 *int
	if hasValue(prog.Earnings1Yr) && hasValue(prog.Earnings4Yr) {
		v := int(float64(*prog.Earnings1Yr) + float64(*prog.Earnings4Yr-*prog.Earnings1Yr)*earnings3YrInterpolationStep)
		earn3 = &v
	}

	// 4. Housing.
	var housingAnnual int
	switch {
	case req.HousingType == models.HousingNone:
		// Living at home: no housing cost regardless of roommates.
		housingAnnual = 0
		assumptions.RentSource = "none"
	case hasValue(req.RentMonthly):
		// A zero override reads as unset, like the other zero-vs-missing
		// fields in the source data.
		assumptions.RentSource = "user_provided"
		housingAnnual = finance.HousingCost(*req.RentMonthly, req.RoommateCount)
	default:
		fmr := e.lookupRent(ctx, inst.Zip, req.HousingType)
		if fmr == 0 {
			fmr = fallbackRentMonthly
			warnings = append(warnings, fmt.Sprintf("No FMR data for ZIP code - using default $%d/month", fmr))
			e.recordFallback("rent")
		}
		assumptions.RentSource = "hud_fmr"
		housingAnnual = finance.HousingCost(fmr, req.RoommateCount)
	}

	// 5. Remaining line items: user override or default.
	foodMonthly := orDefault(req.FoodMonthly, assumptions.FoodMonthly)
	transportMonthly := orDefault(req.TransportMonthly, assumptions.TransportMonthly)
	utilitiesMonthly := orDefault(req.UtilitiesMonthly, assumptions.UtilitiesMonthly)
	miscMonthly := orDefault(req.MiscMonthly, assumptions.MiscMonthly)
	booksAnnual := orDefault(req.BooksAnnual, assumptions.BooksAnnual)

	// 6. Tuition by ownership and residency.
	tuitionFees, tuitionWarnings := resolveTuition(inst, req.IsInState())
	warnings = append(warnings, tuitionWarnings...)
	if len(tuitionWarnings) > 0 {
		e.recordFallback("tuition")
	}

	// 7. Total cost.
	trueYearlyCost, housingAnnual, otherExpenses := finance.TotalCost(
		tuitionFees, housingAnnual,
		foodMonthly, transportMonthly, utilitiesMonthly, miscMonthly, booksAnnual,
	)

	// 8. Debt at graduation.
	expectedDebt := finance.Debt(trueYearlyCost, req.AidAnnual, req.CashAnnual, assumptions.ProgramYears, req.LoanAPR)

	// 9. Regional adjustment of year-1 and year-3 earnings only; a
	// missing region or index leaves earnings nominal, silently.
	earn1 := prog.Earnings1Yr
	earn5 := prog.Earnings5Yr
	if req.PostgradRegionID != nil {
		rpp := e.lookupRPP(ctx, *req.PostgradRegionID)
		if rpp != nil && hasValue(earn1) {
			v := finance.RegionalAdjustment(*earn1, rpp)
			earn1 = &v
		}
		if rpp != nil && hasValue(earn3) {
			v := finance.RegionalAdjustment(*earn3, rpp)
			earn3 = &v
		}
	}

	// 10-13. Return metrics. ROI intentionally uses the interpolated
	// 3-year earnings as its proxy.
	totalInvestment := trueYearlyCost*assumptions.ProgramYears - req.AidAnnual*assumptions.ProgramYears
	roi := finance.ROI(totalInvestment, earn3)
	payback := finance.PaybackPeriod(expectedDebt, earn1, req.EffectiveTaxRate)
	dti := finance.DTI(expectedDebt, earn1)

	// Placeholder until a completion-rate source is wired.
	gradRate := placeholderGraduationRate
	comfort := finance.ComfortIndex(earn1, expectedDebt, dti, &gradRate)

	kpis := &models.KPIResult{
		TrueYearlyCost:     trueYearlyCost,
		TuitionFees:        tuitionFees,
		HousingAnnual:      housingAnnual,
		OtherExpenses:      otherExpenses,
		ExpectedDebtAtGrad: expectedDebt,
		EarningsYear1:      earn1,
		EarningsYear3:      earn3,
		EarningsYear5:      earn5,
		ROI:                roi,
		PaybackYears:       payback,
		DTIYear1:           dti,
		GraduationRate:     &gradRate,
		ComfortIndex:       comfort,
	}

	e.recordOutcome("ok")
	return kpis, assumptions, warnings, nil
}

// fetchProgram degrades any analytics fault or miss into an empty
// record; earnings gaps are reported by the caller as warnings.
func (e *KPIEngine) fetchProgram(ctx context.Context, req *models.ScenarioRequest) *models.ProgramRecord {
	prog, err := e.analytics.GetProgram(ctx, req.InstitutionID, req.CIPCode, req.CredentialLevel)
	if err != nil {
		if e.l != nil {
			e.l.Warn("program lookup failed",
				applogger.Int("institution_id", req.InstitutionID),
				applogger.String("cip_code", req.CIPCode),
				applogger.Error(err),
			)
		}
		prog = nil
	}
	if prog == nil {
		return &models.ProgramRecord{
			InstitutionID:   req.InstitutionID,
			CIPCode:         req.CIPCode,
			CredentialLevel: req.CredentialLevel,
		}
	}
	return prog
}

// lookupRent swallows misses and faults into zero; the caller applies
// the documented fallback with a warning.
func (e *KPIEngine) lookupRent(ctx context.Context, zip, housingType string) int {
	rent, err := e.analytics.GetRent(ctx, zip, housingType)
	if err != nil {
		if e.l != nil {
			e.l.Warn("rent lookup failed",
				applogger.String("zip", zip),
				applogger.String("housing_type", housingType),
				applogger.Error(err),
			)
		}
		return 0
	}
	if rent == nil {
		return 0
	}
	return *rent
}

// lookupRPP returns nil on miss or fault; earnings then stay nominal.
func (e *KPIEngine) lookupRPP(ctx context.Context, regionID int) *float64 {
	rpp, err := e.analytics.GetRegionalPriceParity(ctx, regionID)
	if err != nil {
		if e.l != nil {
			e.l.Warn("rpp lookup failed", applogger.Int("region_id", regionID), applogger.Error(err))
		}
		return nil
	}
	if rpp != nil && *rpp == 0 {
		return nil
	}
	return rpp
}

// resolveTuition picks the annual tuition figure for the institution's
// ownership category and the student's residency, falling back to net
// price and then fixed estimates. At most one warning per scenario.
func resolveTuition(inst *models.InstitutionRecord, inState bool) (int, []string) {
	switch inst.Ownership {
	case models.OwnershipPublic:
		switch {
		case inState && hasValue(inst.TuitionInState):
			return *inst.TuitionInState, nil
		case !inState && hasValue(inst.TuitionOutState):
			return *inst.TuitionOutState, nil
		case hasValue(inst.AvgNetPricePublic):
			return *inst.AvgNetPricePublic, []string{"Using average net price (tuition data unavailable)"}
		default:
			return fallbackTuitionPublic, []string{"Using estimated tuition (data unavailable)"}
		}
	case models.OwnershipPrivateNonprofit:
		switch {
		case hasValue(inst.AvgNetPricePrivate):
			return *inst.AvgNetPricePrivate, nil
		case hasValue(inst.TuitionInState):
			// Private schools often report a single list price here.
			return *inst.TuitionInState, nil
		default:
			return fallbackTuitionPrivate, []string{"Using estimated tuition (data unavailable)"}
		}
	default: // private for-profit
		switch {
		case hasValue(inst.TuitionInState):
			return *inst.TuitionInState, nil
		case hasValue(inst.AvgNetPricePrivate):
			return *inst.AvgNetPricePrivate, nil
		default:
			return fallbackTuitionForProfit, []string{"Using estimated tuition (data unavailable)"}
		}
	}
}

func (e *KPIEngine) recordOutcome(outcome string) {
	if e.metrics != nil {
		e.metrics.RecordComputation(outcome)
	}
}

func (e *KPIEngine) recordFallback(kind string) {
	if e.metrics != nil {
		e.metrics.RecordFallback(kind)
	}
}

// hasValue reports a present, non-zero value; the source data uses
// zero interchangeably with missing.
func hasValue(v *int) bool {
	return v != nil && *v != 0
}

func orDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}
