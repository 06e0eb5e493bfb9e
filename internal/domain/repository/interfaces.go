package repository

import (
	"context"

	"WorthWise/internal/domain/models"
)

// ReferenceStore serves relational reference data. GetInstitution
// returns ErrNotFound when the id is unknown; that miss is fatal for a
// computation, unlike the analytical lookups below.
type ReferenceStore interface {
	GetInstitution(ctx context.Context, id int) (*models.InstitutionRecord, error)
	SearchInstitutions(ctx context.Context, state, search string, limit int) ([]models.InstitutionOption, error)
	GetMajor(ctx context.Context, cipCode string) (*models.MajorRecord, error)
	SearchMajors(ctx context.Context, search string, limit int) ([]models.MajorRecord, error)
	ListRegions(ctx context.Context) ([]models.RegionRecord, error)
	DataVersions(ctx context.Context) (map[string]string, error)
	Health(ctx context.Context) error
}

// AnalyticsStore serves the columnar analytical datasets. A missing
// row is a normal outcome and comes back as (nil, nil); only transport
// or query faults surface as errors.
type AnalyticsStore interface {
	GetProgram(ctx context.Context, institutionID int, cipCode string, credentialLevel int) (*models.ProgramRecord, error)
	GetRent(ctx context.Context, zip, housingType string) (*int, error)
	GetRegionalPriceParity(ctx context.Context, regionID int) (*float64, error)
	Health(ctx context.Context) error
}

// Metrics records computation outcomes and lookup timings.
type Metrics interface {
	RecordComputation(outcome string)
	RecordFallback(kind string)
	RecordLookupLatency(store, op string, seconds float64)
}
