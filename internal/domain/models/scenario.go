package models

// ScenarioRequest describes one college scenario to evaluate: the
// institution/program pair plus the user's cost and financing
// assumptions. Optional monetary overrides are pointers; nil means
// "use the default or an external lookup".
type ScenarioRequest struct {
	InstitutionID   int    `json:"institution_id" validate:"required,gt=0"`
	CIPCode         string `json:"cip_code" validate:"required,cip"`
	CredentialLevel int    `json:"credential_level" default:"3" validate:"gte=1,lte=6"`

	// Residency, for public-institution tuition. Pointer so an explicit
	// false survives default filling.
	InState *bool `json:"is_instate,omitempty" default:"true"`

	// Housing
	HousingType   string `json:"housing_type" default:"1BR" validate:"oneof=none studio 0BR 1BR 2BR 3BR 4BR"`
	RoommateCount int    `json:"roommate_count" validate:"gte=0,lte=10"`

	// Post-graduation region for cost-of-living adjustment
	PostgradRegionID *int `json:"postgrad_region_id,omitempty" validate:"omitempty,gt=0"`

	// User-provided budgets (monthly USD unless noted)
	RentMonthly      *int `json:"rent_monthly,omitempty" validate:"omitempty,gte=0"`
	UtilitiesMonthly *int `json:"utilities_monthly,omitempty" validate:"omitempty,gte=0"`
	FoodMonthly      *int `json:"food_monthly,omitempty" validate:"omitempty,gte=0"`
	TransportMonthly *int `json:"transport_monthly,omitempty" validate:"omitempty,gte=0"`
	BooksAnnual      *int `json:"books_annual,omitempty" validate:"omitempty,gte=0"`
	MiscMonthly      *int `json:"misc_monthly,omitempty" validate:"omitempty,gte=0"`

	// Financial aid and savings (annual USD)
	AidAnnual  int `json:"aid_annual" validate:"gte=0"`
	CashAnnual int `json:"cash_annual" validate:"gte=0"`

	// Loan and tax terms (decimal rates)
	LoanAPR          float64 `json:"loan_apr" validate:"gte=0,lte=1"`
	EffectiveTaxRate float64 `json:"effective_tax_rate" validate:"gte=0,lte=1"`
}

// IsInState reports residency, defaulting to in-state when unset.
func (r *ScenarioRequest) IsInState() bool {
	return r.InState == nil || *r.InState
}

// KPIResult holds the computed indicators for one scenario. Nullable
// metrics stay nil when the underlying earnings data is missing.
type KPIResult struct {
	// Cost metrics (USD/year)
	TrueYearlyCost int `json:"true_yearly_cost"`
	TuitionFees    int `json:"tuition_fees"`
	HousingAnnual  int `json:"housing_annual"`
	OtherExpenses  int `json:"other_expenses"`

	// Debt metrics
	ExpectedDebtAtGrad int `json:"expected_debt_at_grad"`

	// Earnings projections (USD/year)
	EarningsYear1 *int `json:"earnings_year_1"`
	EarningsYear3 *int `json:"earnings_year_3"`
	EarningsYear5 *int `json:"earnings_year_5"`

	// Return metrics
	ROI          *float64 `json:"roi"`
	PaybackYears *float64 `json:"payback_years"`
	DTIYear1     *float64 `json:"dti_year_1"`

	GraduationRate *float64 `json:"graduation_rate"`
	ComfortIndex   *float64 `json:"comfort_index"`
}

// ComputeResponse is the payload returned by the compute endpoint.
type ComputeResponse struct {
	Scenario     *ScenarioRequest  `json:"scenario"`
	KPIs         *KPIResult        `json:"kpis"`
	Assumptions  Assumptions       `json:"assumptions"`
	DataVersions map[string]string `json:"data_versions"`
	Warnings     []string          `json:"warnings"`
}

// Assumptions reports the default values a computation fell back on
// and where the rent figure came from (none, user_provided, hud_fmr).
type Assumptions struct {
	ProgramYears     int    `json:"program_years"`
	FoodMonthly      int    `json:"food_monthly"`
	TransportMonthly int    `json:"transport_monthly"`
	UtilitiesMonthly int    `json:"utilities_monthly"`
	MiscMonthly      int    `json:"misc_monthly"`
	BooksAnnual      int    `json:"books_annual"`
	RentSource       string `json:"rent_source,omitempty"`
}
