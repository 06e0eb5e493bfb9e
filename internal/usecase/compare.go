package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
	applogger "WorthWise/pkg/logger"
)

// CompareScenarios evaluates up to four scenarios independently and
// returns entries in input order. A failed scenario never aborts the
// batch: it yields a placeholder entry whose warning carries the
// reason and whose KPIs are nil.
func (e *KPIEngine) CompareScenarios(ctx context.Context, scenarios []models.ScenarioRequest) []models.ScenarioComparison {
	out := make([]models.ScenarioComparison, len(scenarios))

	var wg sync.WaitGroup
	for i := range scenarios {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			out[idx] = e.compareOne(ctx, idx, &scenarios[idx])
		}(i)
	}
	wg.Wait()

	return out
}

func (e *KPIEngine) compareOne(ctx context.Context, idx int, scenario *models.ScenarioRequest) models.ScenarioComparison {
	instName, majorName := e.displayNames(ctx, scenario)

	kpis, _, warnings, err := e.ComputeKPIs(ctx, scenario)
	if err != nil {
		if e.l != nil {
			e.l.Warn("comparison scenario failed",
				applogger.Int("scenario_index", idx),
				applogger.Int("institution_id", scenario.InstitutionID),
				applogger.Error(err),
			)
		}
		reason := fmt.Sprintf("Computation error: %v", err)
		if errors.Is(err, domrepo.ErrNotFound) {
			reason = fmt.Sprintf("Failed to compute: %v", err)
		}
		return models.ScenarioComparison{
			ScenarioIndex:   idx,
			InstitutionName: instName,
			MajorName:       majorName,
			Scenario:        scenario,
			Warnings:        []string{reason},
		}
	}

	return models.ScenarioComparison{
		ScenarioIndex:   idx,
		InstitutionName: instName,
		MajorName:       majorName,
		Scenario:        scenario,
		KPIs:            kpis,
		Warnings:        warnings,
	}
}

// displayNames resolves human-readable labels best-effort; misses fall
// back to identifier-based placeholders.
func (e *KPIEngine) displayNames(ctx context.Context, scenario *models.ScenarioRequest) (string, string) {
	instName := fmt.Sprintf("Institution %d", scenario.InstitutionID)
	if inst, err := e.ref.GetInstitution(ctx, scenario.InstitutionID); err == nil && inst.Name != "" {
		instName = inst.Name
	}

	majorName := fmt.Sprintf("Major %s", scenario.CIPCode)
	if major, err := e.ref.GetMajor(ctx, scenario.CIPCode); err == nil && major.Title != "" {
		majorName = major.Title
	}

	return instName, majorName
}
