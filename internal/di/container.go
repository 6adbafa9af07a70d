// Package di provides dependency injection configuration for bookwarm.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookwarm/internal/config"
	"github.com/listenupapp/bookwarm/internal/di/providers"
	"github.com/listenupapp/bookwarm/internal/logger"
	"github.com/listenupapp/bookwarm/internal/service"
)

// NewContainer creates and configures the DI container around cfg.
func NewContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideCodecs)

	// Services
	do.Provide(injector, providers.ProvideCatalog)

	return injector
}

// Bootstrap initializes every provider and returns the catalog.
func Bootstrap(injector *do.RootScope) (*service.Catalog, error) {
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return nil, err
	}
	if _, err := do.Invoke[providers.Codecs](injector); err != nil {
		return nil, err
	}
	return do.Invoke[*service.Catalog](injector)
}
