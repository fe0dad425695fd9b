package endpoints

import (
	"time"

	"github.com/fintab/fintab/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// StartedAt feeds the status endpoint's uptime.
	StartedAt time.Time
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health and status
		&HealthEndpoint{},
		&StatusEndpoint{StartedAt: cfg.StartedAt},

		// Extraction pipeline
		&ExtractEndpoint{},
		&ListExtractionsEndpoint{},
		&GetExtractionEndpoint{},

		// Generated artifacts
		&ArtifactsEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}
