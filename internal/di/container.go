// Package di provides dependency injection configuration for the lookup server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/emilyynorton/NotreDameRMP/internal/cache"
	"github.com/emilyynorton/NotreDameRMP/internal/config"
	"github.com/emilyynorton/NotreDameRMP/internal/di/providers"
	"github.com/emilyynorton/NotreDameRMP/internal/logger"
	"github.com/emilyynorton/NotreDameRMP/internal/rmp"
	"github.com/emilyynorton/NotreDameRMP/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideResultCache)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Ratings layer
	do.Provide(injector, providers.ProvideRatingsClient)
	do.Provide(injector, providers.ProvideLookupService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*cache.ResultCache](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*rmp.Client](injector)
	_ = do.MustInvoke[*service.LookupService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
