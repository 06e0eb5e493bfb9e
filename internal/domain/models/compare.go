package models

// CompareRequest carries 1-4 scenarios for side-by-side evaluation.
type CompareRequest struct {
	Scenarios []ScenarioRequest `json:"scenarios" validate:"required,min=1,max=4,dive"`
}

// ScenarioComparison is the per-scenario comparison entry. KPIs is nil
// when the scenario failed; the failure reason is carried in Warnings.
type ScenarioComparison struct {
	ScenarioIndex   int              `json:"scenario_index"`
	InstitutionName string           `json:"institution_name"`
	MajorName       string           `json:"major_name"`
	Scenario        *ScenarioRequest `json:"scenario"`
	KPIs            *KPIResult       `json:"kpis,omitempty"`
	Warnings        []string         `json:"warnings"`
}

// CompareResponse is the payload returned by the compare endpoint.
// Entries follow the input order.
type CompareResponse struct {
	Comparisons  []ScenarioComparison `json:"comparisons"`
	DataVersions map[string]string    `json:"data_versions"`
}
