package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
	pkgch "WorthWise/pkg/clickhouse"
	applogger "WorthWise/pkg/logger"
)

// CHAnalyticsStore implements AnalyticsStore backed by ClickHouse.
// Misses come back as (nil, nil); only query faults are errors.
type CHAnalyticsStore struct {
	db      *sql.DB
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewCHAnalyticsStore(ch *pkgch.Client) *CHAnalyticsStore {
	return &CHAnalyticsStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHAnalyticsStore) SetLogger(l *applogger.Logger) { s.l = l }

// SetMetrics injects a metrics recorder for lookup latency.
func (s *CHAnalyticsStore) SetMetrics(m domrepo.Metrics) { s.metrics = m }

func (s *CHAnalyticsStore) GetProgram(ctx context.Context, institutionID int, cipCode string, credentialLevel int) (*models.ProgramRecord, error) {
	start := time.Now()
	const q = `
        SELECT institution_id, cip_code, credential_level,
               earnings_1yr, earnings_4yr, earnings_5yr,
               debt_median, debt_mean,
               earners_count, awards_count
        FROM worthwise.programs
        WHERE institution_id = ? AND cip_code = ? AND credential_level = ?
        LIMIT 1
    `
	var rec models.ProgramRecord
	err := s.db.QueryRowContext(ctx, q, institutionID, cipCode, credentialLevel).Scan(
		&rec.InstitutionID, &rec.CIPCode, &rec.CredentialLevel,
		&rec.Earnings1Yr, &rec.Earnings4Yr, &rec.Earnings5Yr,
		&rec.DebtMedian, &rec.DebtMean,
		&rec.EarnersCount, &rec.AwardsCount,
	)
	s.observe("program", start)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_program query error",
				applogger.Int("institution_id", institutionID),
				applogger.String("cip_code", cipCode),
				applogger.Int("credential_level", credentialLevel),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get program: %w", err)
	}
	return &rec, nil
}

// fmrColumns whitelists the SAFMR column per housing type. Unknown
// types fold to the one-bedroom figure.
var fmrColumns = map[string]string{
	"studio": "safmr_0br",
	"0BR":    "safmr_0br",
	"1BR":    "safmr_1br",
	"2BR":    "safmr_2br",
	"3BR":    "safmr_3br",
	"4BR":    "safmr_4br",
}

func (s *CHAnalyticsStore) GetRent(ctx context.Context, zip, housingType string) (*int, error) {
	start := time.Now()
	column, ok := fmrColumns[housingType]
	if !ok {
		column = "safmr_1br"
	}
	q := fmt.Sprintf(`
        SELECT %s
        FROM worthwise.fmr_latest
        WHERE zip_code = ?
        LIMIT 1
    `, column)

	var rent *int
	err := s.db.QueryRowContext(ctx, q, zip).Scan(&rent)
	s.observe("rent", start)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_rent query error",
				applogger.String("zip", zip),
				applogger.String("column", column),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get rent: %w", err)
	}
	return rent, nil
}

func (s *CHAnalyticsStore) GetRegionalPriceParity(ctx context.Context, regionID int) (*float64, error) {
	start := time.Now()
	const q = `
        SELECT rpp_index
        FROM worthwise.rpp_latest
        WHERE region_id = ?
        LIMIT 1
    `
	var rpp *float64
	err := s.db.QueryRowContext(ctx, q, regionID).Scan(&rpp)
	s.observe("rpp", start)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_rpp query error",
				applogger.Int("region_id", regionID),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get rpp: %w", err)
	}
	return rpp, nil
}

func (s *CHAnalyticsStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHAnalyticsStore) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordLookupLatency("clickhouse", op, time.Since(start).Seconds())
	}
}
