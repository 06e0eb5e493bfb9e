package models

// SchoolsRequest filters the school dropdown.
type SchoolsRequest struct {
	State  string `query:"state" validate:"omitempty,len=2"`
	Search string `query:"search"`
	Limit  int    `query:"limit" default:"100" validate:"gte=1,lte=1000"`
}

// MajorsRequest filters the major dropdown.
type MajorsRequest struct {
	Search string `query:"search"`
	Limit  int    `query:"limit" default:"500" validate:"gte=1,lte=1000"`
}

// InstitutionOption is a dropdown entry for the school selector.
type InstitutionOption struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	City            string `json:"city,omitempty"`
	StateCode       string `json:"state_code,omitempty"`
	OwnershipLabel  string `json:"ownership_label"`
	TuitionInState  *int   `json:"tuition_in_state,omitempty"`
	TuitionOutState *int   `json:"tuition_out_state,omitempty"`
}
