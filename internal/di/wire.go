//go:build wireinject
// +build wireinject

package di

import (
	"WorthWise/pkg/config"
	"WorthWise/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvidePostgresClient,
		ProvideClickHouseClient,
		ProvideCache,

		// Stores
		ProvideReferenceStore,
		ProvideAnalyticsStore,

		// Use cases
		ProvideKPIEngine,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
