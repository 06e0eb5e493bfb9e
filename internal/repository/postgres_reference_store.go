package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
	applogger "WorthWise/pkg/logger"
	pkgpg "WorthWise/pkg/postgres"
)

// PGReferenceStore implements ReferenceStore backed by Postgres.
type PGReferenceStore struct {
	pool    *pgxpool.Pool
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewPGReferenceStore(pg *pkgpg.Client) *PGReferenceStore {
	return &PGReferenceStore{pool: pg.Pool()}
}

// SetLogger injects a structured logger.
func (s *PGReferenceStore) SetLogger(l *applogger.Logger) { s.l = l }

// SetMetrics injects a metrics recorder for lookup latency.
func (s *PGReferenceStore) SetMetrics(m domrepo.Metrics) { s.metrics = m }

func (s *PGReferenceStore) GetInstitution(ctx context.Context, id int) (*models.InstitutionRecord, error) {
	start := time.Now()
	const q = `
        SELECT id, name, city, state_code, zip, ownership,
               tuition_in_state, tuition_out_state,
               avg_net_price_public, avg_net_price_private
        FROM institutions
        WHERE id = $1
    `
	var rec models.InstitutionRecord
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&rec.ID, &rec.Name, &rec.City, &rec.StateCode, &rec.Zip, &rec.Ownership,
		&rec.TuitionInState, &rec.TuitionOutState,
		&rec.AvgNetPricePublic, &rec.AvgNetPricePrivate,
	)
	s.observe("institution", start)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domrepo.ErrNotFound
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres get_institution query error",
				applogger.Int("institution_id", id),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get institution: %w", err)
	}
	return &rec, nil
}

func (s *PGReferenceStore) SearchInstitutions(ctx context.Context, state, search string, limit int) ([]models.InstitutionOption, error) {
	start := time.Now()
	q := `
        SELECT id, name, city, state_code, ownership,
               tuition_in_state, tuition_out_state
        FROM institutions
        WHERE operating AND main_campus
    `
	args := []any{}
	if state != "" {
		args = append(args, strings.ToUpper(state))
		q += fmt.Sprintf(" AND state_code = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		q += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres search_institutions query error",
				applogger.String("state", state),
				applogger.String("search", search),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("search institutions: %w", err)
	}
	defer rows.Close()

	out := make([]models.InstitutionOption, 0, limit)
	for rows.Next() {
		var opt models.InstitutionOption
		var ownership models.Ownership
		if err := rows.Scan(
			&opt.ID, &opt.Name, &opt.City, &opt.StateCode, &ownership,
			&opt.TuitionInState, &opt.TuitionOutState,
		); err != nil {
			return nil, fmt.Errorf("scan institution: %w", err)
		}
		opt.OwnershipLabel = ownership.Label()
		out = append(out, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.observe("search_institutions", start)
	return out, nil
}

func (s *PGReferenceStore) GetMajor(ctx context.Context, cipCode string) (*models.MajorRecord, error) {
	start := time.Now()
	const q = `
        SELECT cip_code, cip_title
        FROM cip_codes
        WHERE cip_code = $1
    `
	var rec models.MajorRecord
	err := s.pool.QueryRow(ctx, q, cipCode).Scan(&rec.CIPCode, &rec.Title)
	s.observe("major", start)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domrepo.ErrNotFound
	}
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres get_major query error",
				applogger.String("cip_code", cipCode),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get major: %w", err)
	}
	return &rec, nil
}

func (s *PGReferenceStore) SearchMajors(ctx context.Context, search string, limit int) ([]models.MajorRecord, error) {
	start := time.Now()
	q := `
        SELECT cip_code, cip_title
        FROM cip_codes
    `
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		q += fmt.Sprintf(" WHERE cip_title ILIKE $%d", len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY cip_title LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres search_majors query error",
				applogger.String("search", search),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("search majors: %w", err)
	}
	defer rows.Close()

	out := make([]models.MajorRecord, 0, limit)
	for rows.Next() {
		var rec models.MajorRecord
		if err := rows.Scan(&rec.CIPCode, &rec.Title); err != nil {
			return nil, fmt.Errorf("scan major: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.observe("search_majors", start)
	return out, nil
}

func (s *PGReferenceStore) ListRegions(ctx context.Context) ([]models.RegionRecord, error) {
	start := time.Now()
	const q = `
        SELECT id, region_name
        FROM regions
        WHERE is_active
        ORDER BY display_order, region_name
    `
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres list_regions query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var out []models.RegionRecord
	for rows.Next() {
		var rec models.RegionRecord
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.observe("regions", start)
	return out, nil
}

func (s *PGReferenceStore) DataVersions(ctx context.Context) (map[string]string, error) {
	start := time.Now()
	const q = `
        SELECT dataset_name, version_identifier
        FROM data_versions
        WHERE status = 'active'
        ORDER BY dataset_name
    `
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres data_versions query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("data versions: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var dataset, version string
		if err := rows.Scan(&dataset, &version); err != nil {
			return nil, fmt.Errorf("scan data version: %w", err)
		}
		out[dataset] = version
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.observe("data_versions", start)
	return out, nil
}

func (s *PGReferenceStore) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PGReferenceStore) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordLookupLatency("postgres", op, time.Since(start).Seconds())
	}
}
