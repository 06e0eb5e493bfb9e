package models

// Ownership categorizes an institution per the College Scorecard
// encoding.
type Ownership int

const (
	OwnershipPublic           Ownership = 1
	OwnershipPrivateNonprofit Ownership = 2
	OwnershipPrivateForProfit Ownership = 3
)

// Label returns the human-readable ownership name.
func (o Ownership) Label() string {
	switch o {
	case OwnershipPublic:
		return "Public"
	case OwnershipPrivateNonprofit:
		return "Private Nonprofit"
	case OwnershipPrivateForProfit:
		return "Private For-Profit"
	default:
		return "Unknown"
	}
}

// Housing types accepted by ScenarioRequest.
const (
	HousingNone   = "none"
	HousingStudio = "studio"
)

// InstitutionRecord is the reference-data row for one institution.
// Any subset of the tuition/net-price fields may be missing.
type InstitutionRecord struct {
	ID                 int
	Name               string
	City               string
	StateCode          string
	Zip                string
	Ownership          Ownership
	TuitionInState     *int
	TuitionOutState    *int
	AvgNetPricePublic  *int
	AvgNetPricePrivate *int
}

// ProgramRecord is the analytical row for one institution × CIP code ×
// credential level. Earnings are 1/4/5 years post-completion; the
// 3-year figure is not in the source data and is interpolated by the
// engine.
type ProgramRecord struct {
	InstitutionID   int
	CIPCode         string
	CredentialLevel int
	Earnings1Yr     *int
	Earnings4Yr     *int
	Earnings5Yr     *int
	DebtMedian      *int
	DebtMean        *int
	EarnersCount    *int
	AwardsCount     *int
}

// MajorRecord maps a CIP code to its display title.
type MajorRecord struct {
	CIPCode string `json:"cip_code"`
	Title   string `json:"title"`
}

// RegionRecord is a post-graduation region available for the
// cost-of-living adjustment.
type RegionRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
