// Package di provides dependency injection configuration for the brain client.
package di

import (
	"github.com/samber/do/v2"

	"github.com/secondbrain/brain-client/internal/config"
	"github.com/secondbrain/brain-client/internal/dashboard"
	"github.com/secondbrain/brain-client/internal/di/providers"
	"github.com/secondbrain/brain-client/internal/form"
	"github.com/secondbrain/brain-client/internal/gateway"
	"github.com/secondbrain/brain-client/internal/logger"
	"github.com/secondbrain/brain-client/internal/service"
	"github.com/secondbrain/brain-client/internal/share"
)

// NewContainer creates and configures the DI container with all providers.
// Flags from the command line take precedence over every other config source.
func NewContainer(flags config.Flags) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, flags)
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideNotices)

	// Session storage and the remote API
	do.Provide(injector, providers.ProvideAuthStore)
	do.Provide(injector, providers.ProvideGateway)

	// Workflows
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideDashboard)
	do.Provide(injector, providers.ProvideForm)
	do.Provide(injector, providers.ProvideShareWorkflow)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes the client services. Failures in config or storage
// surface here rather than on first use.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.AuthStoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*gateway.Client](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*dashboard.Dashboard](injector)
	_ = do.MustInvoke[*form.Form](injector)
	_ = do.MustInvoke[*share.Workflow](injector)

	return nil
}

// StartServer bootstraps the client and starts the local UI server.
func StartServer(injector *do.RootScope) error {
	if err := Bootstrap(injector); err != nil {
		return err
	}
	_, err := do.Invoke[*providers.HTTPServerHandle](injector)
	return err
}

// Shutdown stops every service in reverse order. The container always hands
// back a report, so only a failed one is returned as an error.
func Shutdown(injector *do.RootScope) error {
	if report := injector.Shutdown(); report != nil && !report.Succeed {
		return report
	}
	return nil
}
