// Package finance holds the pure formula library behind the KPI
// engine: cost aggregation, amortized debt, ROI, payback, DTI, the
// comfort index and regional salary adjustment. Functions are
// side-effect free; "no data" is a nil result, never an error.
package finance

import (
	"math"

	"WorthWise/internal/domain/models"
)

// Default assumptions. Line items default to zero because user
// overrides are the primary source in practice.
const (
	DefaultProgramYears     = 4
	DefaultFoodMonthly      = 0
	DefaultTransportMonthly = 0
	DefaultUtilitiesMonthly = 0
	DefaultMiscMonthly      = 0
	DefaultBooksAnnual      = 0

	// Annual living expenses assumed during debt repayment.
	LivingExpensesAnnual = 30000
)

// DefaultAssumptions returns the baseline assumption set.
func DefaultAssumptions() models.Assumptions {
	return models.Assumptions{
		ProgramYears:     DefaultProgramYears,
		FoodMonthly:      DefaultFoodMonthly,
		TransportMonthly: DefaultTransportMonthly,
		UtilitiesMonthly: DefaultUtilitiesMonthly,
		MiscMonthly:      DefaultMiscMonthly,
		BooksAnnual:      DefaultBooksAnnual,
	}
}

// TotalCost aggregates the annual cost of attendance.
// other = 12 x (food + transport + utilities + misc) + books.
func TotalCost(tuitionAnnual, housingAnnual, foodMonthly, transportMonthly, utilitiesMonthly, miscMonthly, booksAnnual int) (trueYearlyCost, housing, otherExpenses int) {
	otherExpenses = 12*(foodMonthly+transportMonthly+utilitiesMonthly+miscMonthly) + booksAnnual
	trueYearlyCost = tuitionAnnual + housingAnnual + otherExpenses
	return trueYearlyCost, housingAnnual, otherExpenses
}

// HousingCost splits monthly rent across roommates plus self and
// annualizes, truncating to whole dollars.
func HousingCost(fmrMonthly, roommateCount int) int {
	monthlyShare := float64(fmrMonthly) / float64(roommateCount+1)
	return int(monthlyShare * 12)
}

// Debt computes total debt at graduation. A loan taken at the start of
// program year y compounds for the remaining (years-y-1) years of
// study, consistent with loans capitalizing before repayment begins.
func Debt(yearlyCost, aidAnnual, cashAnnual, programYears int, loanAPR float64) int {
	annualNeed := yearlyCost - aidAnnual - cashAnnual
	if annualNeed <= 0 {
		return 0
	}

	total := 0.0
	for year := 0; year < programYears; year++ {
		accumulating := programYears - year - 1
		total += float64(annualNeed) * math.Pow(1+loanAPR, float64(accumulating))
	}
	return int(total)
}

// ROI returns (cumulative earnings - investment) / investment, using a
// flat five-year run rate of the supplied earnings proxy as a stand-in
// for lifetime value. The engine passes 3-year earnings as the proxy.
// Nil when the proxy is missing or the investment is not positive.
func ROI(totalInvestment int, earningsProxy *int) *float64 {
	if earningsProxy == nil || *earningsProxy == 0 || totalInvestment <= 0 {
		return nil
	}

	cumulativeEarnings := *earningsProxy * 5
	roi := round2(float64(cumulativeEarnings-totalInvestment) / float64(totalInvestment))
	return &roi
}

// PaybackPeriod estimates years to retire the debt from disposable
// income (after-tax earnings minus fixed living expenses). Nil when
// earnings are missing, there is no debt, or the debt cannot be
// serviced.
func PaybackPeriod(totalDebt int, earningsYear1 *int, effectiveTaxRate float64) *float64 {
	if earningsYear1 == nil || *earningsYear1 == 0 || totalDebt <= 0 {
		return nil
	}

	afterTax := float64(*earningsYear1) * (1 - effectiveTaxRate)
	disposable := afterTax - LivingExpensesAnnual
	if disposable <= 0 {
		return nil
	}

	payback := round1(float64(totalDebt) / disposable)
	return &payback
}

// DTI is total debt over first-year income, nil without earnings.
func DTI(totalDebt int, earningsYear1 *int) *float64 {
	if earningsYear1 == nil || *earningsYear1 <= 0 {
		return nil
	}

	dti := round2(float64(totalDebt) / float64(*earningsYear1))
	return &dti
}

// ComfortIndex blends earnings level, debt burden and graduation
// likelihood into a 0-100 score. Sub-scores: earnings linear to 40
// points at $100k, debt 30..0 points across DTI 0.5..2.0, graduation
// rate x 30 points; missing dti or rate scores a neutral 15.
func ComfortIndex(earningsYear1 *int, totalDebt int, dti, graduationRate *float64) *float64 {
	if earningsYear1 == nil || *earningsYear1 == 0 {
		return nil
	}

	earningsScore := math.Min(40, float64(*earningsYear1)/100000*40)

	debtScore := 15.0
	if dti != nil {
		switch {
		case *dti <= 0.5:
			debtScore = 30
		case *dti >= 2.0:
			debtScore = 0
		default:
			debtScore = 30 * (1 - (*dti-0.5)/1.5)
		}
	}

	gradScore := 15.0
	if graduationRate != nil {
		gradScore = *graduationRate * 30
	}

	comfort := round1(earningsScore + debtScore + gradScore)
	return &comfort
}

// RegionalAdjustment converts a nominal salary to purchasing-power
// equivalent using a Regional Price Parity index (100 = national
// average). Unchanged when the index is missing or zero.
func RegionalAdjustment(salary int, rppIndex *float64) int {
	if rppIndex == nil || *rppIndex == 0 {
		return salary
	}
	return int(float64(salary) / (*rppIndex / 100))
}

// Banker's rounding: ties go to the even neighbor, so 0.125 rounds to
// 0.12, not 0.13. The published figures were produced this way and
// reimplementations must not drift on tie values.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
