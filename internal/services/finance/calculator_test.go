package finance

import (
	"testing"
)

func TestTotalCost(t *testing.T) {
	total, housing, other := TotalCost(10000, 7200, 300, 100, 150, 50, 1200)
	if other != 8400 {
		t.Fatalf("other = %d, want 8400", other)
	}
	if housing != 7200 {
		t.Fatalf("housing = %d, want 7200", housing)
	}
	if total != 25600 {
		t.Fatalf("total = %d, want 25600", total)
	}
}

func TestHousingCost(t *testing.T) {
	if got := HousingCost(1200, 0); got != 14400 {
		t.Fatalf("no roommates: got %d, want 14400", got)
	}
	if got := HousingCost(1200, 1); got != 7200 {
		t.Fatalf("one roommate: got %d, want 7200", got)
	}
	if got := HousingCost(1200, 3); got != 3600 {
		t.Fatalf("three roommates: got %d, want 3600", got)
	}
}

func TestDebtZeroAPR(t *testing.T) {
	got := Debt(30000, 5000, 5000, 4, 0)
	if got != 80000 {
		t.Fatalf("got %d, want 80000", got)
	}
}

func TestDebtCompounds(t *testing.T) {
	// need = 21454/yr, 5.29% APR, four years of capitalization
	got := Debt(36454, 10000, 5000, 4, 0.0529)
	if got != 92868 {
		t.Fatalf("got %d, want 92868", got)
	}
}

func TestDebtNoNeed(t *testing.T) {
	if got := Debt(20000, 15000, 5000, 4, 0.05); got != 0 {
		t.Fatalf("covered cost: got %d, want 0", got)
	}
	if got := Debt(20000, 25000, 0, 4, 0.05); got != 0 {
		t.Fatalf("aid exceeds cost: got %d, want 0", got)
	}
}

func TestROI(t *testing.T) {
	proxy := 60000
	got := ROI(100000, &proxy)
	if got == nil || *got != 2.0 {
		t.Fatalf("got %v, want 2.0", got)
	}
}

func TestROINilWithoutData(t *testing.T) {
	if got := ROI(100000, nil); got != nil {
		t.Fatalf("nil proxy: got %v", *got)
	}
	zero := 0
	if got := ROI(100000, &zero); got != nil {
		t.Fatalf("zero proxy: got %v", *got)
	}
	proxy := 60000
	if got := ROI(0, &proxy); got != nil {
		t.Fatalf("zero investment: got %v", *got)
	}
}

func TestPaybackPeriod(t *testing.T) {
	earn := 70000
	got := PaybackPeriod(40000, &earn, 0.25)
	// disposable = 70000*0.75 - 30000 = 22500; 40000/22500 = 1.777...
	if got == nil || *got != 1.8 {
		t.Fatalf("got %v, want 1.8", got)
	}
}

func TestPaybackPeriodUnserviceable(t *testing.T) {
	earn := 35000
	// disposable = 35000*0.8 - 30000 = -2000
	if got := PaybackPeriod(40000, &earn, 0.2); got != nil {
		t.Fatalf("got %v, want nil", *got)
	}
	if got := PaybackPeriod(0, &earn, 0); got != nil {
		t.Fatalf("no debt: got %v, want nil", *got)
	}
	if got := PaybackPeriod(40000, nil, 0.2); got != nil {
		t.Fatalf("no earnings: got %v, want nil", *got)
	}
}

func TestDTI(t *testing.T) {
	earn := 75000
	got := DTI(28000, &earn)
	if got == nil || *got != 0.37 {
		t.Fatalf("got %v, want 0.37", got)
	}
	if got := DTI(28000, nil); got != nil {
		t.Fatalf("no earnings: got %v, want nil", *got)
	}
}

func TestDTITieRoundsToEven(t *testing.T) {
	earn := 80000
	// 10000/80000 = 0.125 exactly; ties round to even
	got := DTI(10000, &earn)
	if got == nil || *got != 0.12 {
		t.Fatalf("got %v, want 0.12", got)
	}
}

func TestPaybackPeriodTieRoundsToEven(t *testing.T) {
	earn := 70000
	// disposable = 70000 - 30000 = 40000; 10000/40000 = 0.25
	got := PaybackPeriod(10000, &earn, 0)
	if got == nil || *got != 0.2 {
		t.Fatalf("got %v, want 0.2", got)
	}
}

func TestROITieRoundsToEven(t *testing.T) {
	proxy := 36000
	// (180000-160000)/160000 = 0.125
	got := ROI(160000, &proxy)
	if got == nil || *got != 0.12 {
		t.Fatalf("got %v, want 0.12", got)
	}
}

func TestComfortIndexBounds(t *testing.T) {
	earn := 100000
	lowDTI := 0.5
	highDTI := 2.0
	grad := 0.75

	best := ComfortIndex(&earn, 10000, &lowDTI, &grad)
	if best == nil || *best != 92.5 {
		t.Fatalf("low dti: got %v, want 92.5", best)
	}

	worst := ComfortIndex(&earn, 200000, &highDTI, &grad)
	if worst == nil || *worst != 62.5 {
		t.Fatalf("high dti: got %v, want 62.5", worst)
	}

	if *worst >= *best {
		t.Fatalf("comfort should fall as dti rises: %v >= %v", *worst, *best)
	}
}

func TestComfortIndexMonotonicInEarnings(t *testing.T) {
	dti := 1.0
	grad := 0.75
	prev := -1.0
	for _, earn := range []int{20000, 40000, 60000, 80000, 100000, 150000} {
		e := earn
		got := ComfortIndex(&e, 50000, &dti, &grad)
		if got == nil {
			t.Fatalf("earn %d: nil", earn)
		}
		if *got < prev {
			t.Fatalf("comfort fell from %v to %v at earn %d", prev, *got, earn)
		}
		if *got < 0 || *got > 100 {
			t.Fatalf("comfort out of range: %v", *got)
		}
		prev = *got
	}
}

func TestComfortIndexNeutralWhenMissing(t *testing.T) {
	earn := 50000
	got := ComfortIndex(&earn, 0, nil, nil)
	// 20 earnings + 15 neutral debt + 15 neutral graduation
	if got == nil || *got != 50.0 {
		t.Fatalf("got %v, want 50.0", got)
	}
}

func TestComfortIndexNilWithoutEarnings(t *testing.T) {
	if got := ComfortIndex(nil, 10000, nil, nil); got != nil {
		t.Fatalf("got %v, want nil", *got)
	}
}

func TestRegionalAdjustment(t *testing.T) {
	if got := RegionalAdjustment(60000, nil); got != 60000 {
		t.Fatalf("nil index: got %d", got)
	}
	zero := 0.0
	if got := RegionalAdjustment(60000, &zero); got != 60000 {
		t.Fatalf("zero index: got %d", got)
	}
	national := 100.0
	if got := RegionalAdjustment(60000, &national); got != 60000 {
		t.Fatalf("national average: got %d, want 60000", got)
	}
	cheap := 50.0
	if got := RegionalAdjustment(60000, &cheap); got != 120000 {
		t.Fatalf("cheap region: got %d, want 120000", got)
	}
	costly := 200.0
	if got := RegionalAdjustment(60000, &costly); got != 30000 {
		t.Fatalf("costly region: got %d, want 30000", got)
	}
}
