package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"WorthWise/internal/domain/repository"
	"WorthWise/internal/handler/api"
	internalrepo "WorthWise/internal/repository"
	icache "WorthWise/internal/service/cache"
	"WorthWise/internal/service/metrics"
	"WorthWise/internal/usecase"
	pkgch "WorthWise/pkg/clickhouse"
	"WorthWise/pkg/config"
	xhttp "WorthWise/pkg/http"
	applogger "WorthWise/pkg/logger"
	pkgpg "WorthWise/pkg/postgres"
	"WorthWise/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvidePostgresClient creates the reference-data Postgres client.
func ProvidePostgresClient(cfg *config.Config) (*pkgpg.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgpg.NewClient(ctx,
		pkgpg.WithURL(cfg.Postgres.URL),
		pkgpg.WithPoolSize(int32(cfg.Postgres.MaxConns), int32(cfg.Postgres.MinConns)),
		pkgpg.WithConnectTimeout(cfg.Postgres.ConnectTimeout),
		pkgpg.WithMaxConnLifetime(cfg.Postgres.MaxConnLifetime),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}
	return client, nil
}

// ProvideClickHouseClient creates the analytics ClickHouse client and
// ensures the schema exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS worthwise",
		`CREATE TABLE IF NOT EXISTS worthwise.programs (
            institution_id Int64, cip_code String, credential_level Int64,
            earnings_1yr Nullable(Int64), earnings_4yr Nullable(Int64), earnings_5yr Nullable(Int64),
            debt_median Nullable(Int64), debt_mean Nullable(Int64),
            earners_count Nullable(Int64), awards_count Nullable(Int64)
        ) ENGINE=MergeTree ORDER BY (institution_id, cip_code, credential_level)`,
		`CREATE TABLE IF NOT EXISTS worthwise.fmr_latest (
            zip_code String,
            safmr_0br Nullable(Int64), safmr_1br Nullable(Int64), safmr_2br Nullable(Int64),
            safmr_3br Nullable(Int64), safmr_4br Nullable(Int64)
        ) ENGINE=MergeTree ORDER BY zip_code`,
		`CREATE TABLE IF NOT EXISTS worthwise.rpp_latest (
            region_id Int64, rpp_index Nullable(Float64)
        ) ENGINE=MergeTree ORDER BY region_id`,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideCache creates the byte cache backend selected in config.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Type == "redis" {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.NewRecorder()
}

// ProvideReferenceStore creates the Postgres-backed reference store.
func ProvideReferenceStore(pg *pkgpg.Client, l *applogger.Logger, m repository.Metrics) repository.ReferenceStore {
	store := internalrepo.NewPGReferenceStore(pg)
	store.SetLogger(l)
	store.SetMetrics(m)
	return store
}

// ProvideAnalyticsStore creates the ClickHouse analytics store wrapped
// in the read-through cache.
func ProvideAnalyticsStore(ch *pkgch.Client, c icache.BytesCache, cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.AnalyticsStore {
	store := internalrepo.NewCHAnalyticsStore(ch)
	store.SetLogger(l)
	store.SetMetrics(m)
	return internalrepo.NewCachedAnalyticsStore(store, c, internalrepo.CacheTTLs{
		Program: cfg.Cache.TTL.Program,
		Rent:    cfg.Cache.TTL.Rent,
		RPP:     cfg.Cache.TTL.RPP,
	})
}

// ProvideKPIEngine creates the scenario computation engine.
func ProvideKPIEngine(ref repository.ReferenceStore, analytics repository.AnalyticsStore, l *applogger.Logger, m repository.Metrics) *usecase.KPIEngine {
	engine := usecase.NewKPIEngine(ref, analytics)
	engine.SetLogger(l)
	engine.SetMetrics(m)
	return engine
}

// ProvideHandler assembles the HTTP handlers.
func ProvideHandler(
	l *applogger.Logger,
	engine *usecase.KPIEngine,
	ref repository.ReferenceStore,
	analytics repository.AnalyticsStore,
	c icache.BytesCache,
	cfg *config.Config,
) xhttp.Handler {
	return xhttp.Handlers{
		api.NewKPIEchoHandler(l, engine, ref),
		api.NewOptionsEchoHandler(l, ref, analytics, c, cfg.Cache.TTL.Options),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	pg *pkgpg.Client,
	ch *pkgch.Client,
	c icache.BytesCache,
) *server.App {
	app := server.New(cfg, l, handler, pg, ch)
	if closer, ok := c.(io.Closer); ok {
		app.SetCacheCloser(closer)
	}
	return app
}
