package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"WorthWise/internal/domain/models"
)

// ScenarioCSV renders a computed scenario as a two-column Metric/Value
// CSV for download. Nullable KPIs are omitted rather than printed
// empty.
func ScenarioCSV(resp *models.ComputeResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Metric", "Value"},
		{},
		{"SCENARIO PARAMETERS", ""},
		{"Institution ID", strconv.Itoa(resp.Scenario.InstitutionID)},
		{"CIP Code", resp.Scenario.CIPCode},
		{"Housing Type", resp.Scenario.HousingType},
		{"Roommates", strconv.Itoa(resp.Scenario.RoommateCount)},
		{"Annual Aid", dollars(resp.Scenario.AidAnnual)},
		{"Annual Cash", dollars(resp.Scenario.CashAnnual)},
		{"Loan APR", fmt.Sprintf("%.2f%%", resp.Scenario.LoanAPR*100)},
		{},
		{"KEY PERFORMANCE INDICATORS", ""},
	}

	kpis := resp.KPIs
	rows = append(rows,
		[]string{"True Yearly Cost", dollars(kpis.TrueYearlyCost)},
		[]string{"Tuition & Fees", dollars(kpis.TuitionFees)},
		[]string{"Housing (Annual)", dollars(kpis.HousingAnnual)},
		[]string{"Other Expenses", dollars(kpis.OtherExpenses)},
		[]string{"Expected Debt at Graduation", dollars(kpis.ExpectedDebtAtGrad)},
	)

	if kpis.EarningsYear1 != nil {
		rows = append(rows, []string{"Earnings Year 1", dollars(*kpis.EarningsYear1)})
	}
	if kpis.EarningsYear3 != nil {
		rows = append(rows, []string{"Earnings Year 3", dollars(*kpis.EarningsYear3)})
	}
	if kpis.EarningsYear5 != nil {
		rows = append(rows, []string{"Earnings Year 5", dollars(*kpis.EarningsYear5)})
	}
	if kpis.ROI != nil {
		rows = append(rows, []string{"ROI", fmt.Sprintf("%.2f", *kpis.ROI)})
	}
	if kpis.PaybackYears != nil {
		rows = append(rows, []string{"Payback Period (years)", fmt.Sprintf("%.1f", *kpis.PaybackYears)})
	}
	if kpis.DTIYear1 != nil {
		rows = append(rows, []string{"DTI Year 1", fmt.Sprintf("%.2f", *kpis.DTIYear1)})
	}
	if kpis.GraduationRate != nil {
		rows = append(rows, []string{"Graduation Rate", fmt.Sprintf("%.1f%%", *kpis.GraduationRate*100)})
	}
	if kpis.ComfortIndex != nil {
		rows = append(rows, []string{"Comfort Index", fmt.Sprintf("%.1f", *kpis.ComfortIndex)})
	}

	rows = append(rows, []string{})
	if len(resp.Warnings) > 0 {
		rows = append(rows, []string{"WARNINGS", ""})
		for _, warning := range resp.Warnings {
			rows = append(rows, []string{"", warning})
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write scenario csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ComparisonCSV renders a comparison as a metric-per-row grid with one
// column per scenario. Scenarios without KPIs (failed computations)
// show N/A in every metric cell.
func ComparisonCSV(resp *models.CompareResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	comps := resp.Comparisons
	header := []string{"Metric"}
	for i, c := range comps {
		header = append(header, fmt.Sprintf("Scenario %d: %s", i+1, c.InstitutionName))
	}

	rows := [][]string{header, {}}

	rows = append(rows, []string{"COSTS", ""})
	rows = append(rows,
		comparisonRow(comps, "True Yearly Cost", func(k *models.KPIResult) string { return dollars(k.TrueYearlyCost) }),
		comparisonRow(comps, "Tuition & Fees", func(k *models.KPIResult) string { return dollars(k.TuitionFees) }),
		comparisonRow(comps, "Housing (Annual)", func(k *models.KPIResult) string { return dollars(k.HousingAnnual) }),
		comparisonRow(comps, "Other Expenses", func(k *models.KPIResult) string { return dollars(k.OtherExpenses) }),
		[]string{},
	)

	rows = append(rows, []string{"DEBT", ""})
	rows = append(rows,
		comparisonRow(comps, "Expected Debt at Grad", func(k *models.KPIResult) string { return dollars(k.ExpectedDebtAtGrad) }),
		[]string{},
	)

	rows = append(rows, []string{"EARNINGS", ""})
	rows = append(rows,
		comparisonRow(comps, "Year 1 Earnings", func(k *models.KPIResult) string { return optDollars(k.EarningsYear1) }),
		comparisonRow(comps, "Year 3 Earnings", func(k *models.KPIResult) string { return optDollars(k.EarningsYear3) }),
		comparisonRow(comps, "Year 5 Earnings", func(k *models.KPIResult) string { return optDollars(k.EarningsYear5) }),
		[]string{},
	)

	rows = append(rows, []string{"ROI METRICS", ""})
	rows = append(rows,
		comparisonRow(comps, "ROI", func(k *models.KPIResult) string { return optFloat(k.ROI, "%.2f") }),
		comparisonRow(comps, "Payback Years", func(k *models.KPIResult) string { return optFloat(k.PaybackYears, "%.1f") }),
		comparisonRow(comps, "DTI Year 1", func(k *models.KPIResult) string { return optFloat(k.DTIYear1, "%.2f") }),
		comparisonRow(comps, "Graduation Rate", func(k *models.KPIResult) string { return optPercent(k.GraduationRate) }),
		comparisonRow(comps, "Comfort Index", func(k *models.KPIResult) string { return optFloat(k.ComfortIndex, "%.1f") }),
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write comparison csv: %w", err)
	}
	return buf.Bytes(), nil
}

func comparisonRow(comps []models.ScenarioComparison, label string, cell func(*models.KPIResult) string) []string {
	row := []string{label}
	for _, c := range comps {
		if c.KPIs == nil {
			row = append(row, "N/A")
			continue
		}
		row = append(row, cell(c.KPIs))
	}
	return row
}

// dollars formats an amount with thousands separators, e.g. $36,454.
func dollars(amount int) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.Itoa(amount)
	var b []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, digit)
	}

	if neg {
		return "-$" + string(b)
	}
	return "$" + string(b)
}

func optDollars(v *int) string {
	if v == nil {
		return "N/A"
	}
	return dollars(*v)
}

func optFloat(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

func optPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
