package server

import (
	"github.com/philly/quillpost/internal/adapters/rest"
	"github.com/philly/quillpost/internal/adapters/rest/middleware"
	"github.com/philly/quillpost/internal/adapters/web"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/platform/password"
	"github.com/philly/quillpost/internal/platform/seeder"
	"github.com/philly/quillpost/internal/posts/ports"
	postsSeeder "github.com/philly/quillpost/internal/posts/seeder"
)

// apiClientRetries is how often the front end retries a failed GET
const apiClientRetries = 3

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
		Component:   "api",
	}
}

func provideWebLoggerConfig(config WebConfig) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
		Component:   "web",
	}
}

func provideHasher(config Config) (*password.Hasher, error) {
	return password.NewHasher(config.BcryptCost)
}

func provideRouterConfig(config Config) rest.RouterConfig {
	return rest.RouterConfig{RequestTimeout: config.RequestTimeout}
}

func provideAPIMetrics() *middleware.Metrics {
	return middleware.NewMetrics("quillpost_api")
}

// provideSeeders lists the seeders in the order they run
func provideSeeders(posts ports.PostRepository) []seeder.Seeder {
	return []seeder.Seeder{
		postsSeeder.NewDemoPostsSeeder(posts),
	}
}

func provideWebRouterConfig(config WebConfig) web.RouterConfig {
	return web.RouterConfig{RequestTimeout: config.RequestTimeout}
}

func provideWebMetrics() *middleware.Metrics {
	return middleware.NewMetrics("quillpost_web")
}

func provideClientConfig(config WebConfig) web.ClientConfig {
	return web.ClientConfig{
		BaseURL:  config.APIURL,
		Timeout:  config.RequestTimeout,
		RetryMax: apiClientRetries,
	}
}
