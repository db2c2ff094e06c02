package web

import "github.com/google/wire"

// ProviderSet is the wire provider set for the front end
var ProviderSet = wire.NewSet(
	NewAPIClient,
	NewViews,
	NewHandler,
	NewRouter,
)
