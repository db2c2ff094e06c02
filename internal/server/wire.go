//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/philly/quillpost/internal/adapters/rest"
	"github.com/philly/quillpost/internal/adapters/web"
	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/events"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/platform/password"
	"github.com/philly/quillpost/internal/platform/seeder"
	postsApp "github.com/philly/quillpost/internal/posts/application"
	usersApp "github.com/philly/quillpost/internal/users/application"
)

// InitializeApp creates a fully configured API App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,
		logger.ProviderSet,

		// Storage backend selected by config
		ProvideStorage,
		wire.FieldsOf(new(Storage), "Posts", "Users", "Pinger"),

		// Platform services
		eventbus.ProviderSet,
		events.NewAuditLog,
		provideHasher,
		wire.Bind(new(usersApp.PasswordHasher), new(*password.Hasher)),

		// Application services
		postsApp.ProviderSet,
		usersApp.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideRouterConfig,
		provideAPIMetrics,
		provideVersion,

		// Demo data
		provideSeeders,
		seeder.NewOrchestrator,

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}

// InitializeWebApp creates the front-end App
func InitializeWebApp() (*App, func(), error) {
	wire.Build(
		LoadWebConfig,
		provideWebLoggerConfig,
		logger.ProviderSet,

		web.ProviderSet,
		provideClientConfig,
		provideWebRouterConfig,
		provideWebMetrics,

		NewWebHTTPServer,
		NewWebApp,
	)

	return nil, nil, nil
}
