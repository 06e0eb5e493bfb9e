package repository

import (
	"context"
	"fmt"
	"time"

	"WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
	"WorthWise/internal/service/cache"
)

// CacheTTLs holds the per-dataset cache lifetimes. Rent and RPP data
// change on an annual release cycle and tolerate long TTLs; program
// rows are larger and cached shorter.
type CacheTTLs struct {
	Program time.Duration
	Rent    time.Duration
	RPP     time.Duration
}

// CachedAnalyticsStore decorates an AnalyticsStore with a read-through
// byte cache. Misses (nil values) are cached too, so a hot ZIP with no
// FMR row does not hammer the store. Lookup faults bypass the cache.
type CachedAnalyticsStore struct {
	next domrepo.AnalyticsStore
	c    cache.BytesCache
	ttls CacheTTLs
}

func NewCachedAnalyticsStore(next domrepo.AnalyticsStore, c cache.BytesCache, ttls CacheTTLs) *CachedAnalyticsStore {
	return &CachedAnalyticsStore{next: next, c: c, ttls: ttls}
}

// cached wire forms. Present distinguishes a cached miss from a cached
// value.
type cachedProgram struct {
	Present bool                  `json:"present"`
	Record  *models.ProgramRecord `json:"record,omitempty"`
}

type cachedInt struct {
	Present bool `json:"present"`
	Value   int  `json:"value,omitempty"`
}

type cachedFloat struct {
	Present bool    `json:"present"`
	Value   float64 `json:"value,omitempty"`
}

func (s *CachedAnalyticsStore) GetProgram(ctx context.Context, institutionID int, cipCode string, credentialLevel int) (*models.ProgramRecord, error) {
	key := fmt.Sprintf("program:%d:%s:%d", institutionID, cipCode, credentialLevel)

	var hit cachedProgram
	if cache.GetJSON(s.c, key, &hit) {
		if !hit.Present {
			return nil, nil
		}
		return hit.Record, nil
	}

	rec, err := s.next.GetProgram(ctx, institutionID, cipCode, credentialLevel)
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(s.c, key, cachedProgram{Present: rec != nil, Record: rec}, s.ttls.Program)
	return rec, nil
}

func (s *CachedAnalyticsStore) GetRent(ctx context.Context, zip, housingType string) (*int, error) {
	key := fmt.Sprintf("rent:%s:%s", zip, housingType)

	var hit cachedInt
	if cache.GetJSON(s.c, key, &hit) {
		if !hit.Present {
			return nil, nil
		}
		v := hit.Value
		return &v, nil
	}

	rent, err := s.next.GetRent(ctx, zip, housingType)
	if err != nil {
		return nil, err
	}
	entry := cachedInt{Present: rent != nil}
	if rent != nil {
		entry.Value = *rent
	}
	_ = cache.SetJSON(s.c, key, entry, s.ttls.Rent)
	return rent, nil
}

func (s *CachedAnalyticsStore) GetRegionalPriceParity(ctx context.Context, regionID int) (*float64, error) {
	key := fmt.Sprintf("rpp:%d", regionID)

	var hit cachedFloat
	if cache.GetJSON(s.c, key, &hit) {
		if !hit.Present {
			return nil, nil
		}
		v := hit.Value
		return &v, nil
	}

	rpp, err := s.next.GetRegionalPriceParity(ctx, regionID)
	if err != nil {
		return nil, err
	}
	entry := cachedFloat{Present: rpp != nil}
	if rpp != nil {
		entry.Value = *rpp
	}
	_ = cache.SetJSON(s.c, key, entry, s.ttls.RPP)
	return rpp, nil
}

func (s *CachedAnalyticsStore) Health(ctx context.Context) error {
	return s.next.Health(ctx)
}
