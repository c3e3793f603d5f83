package api

import (
	"context"
	"net/http"
	"time"

	"github.com/RMahshie/scmplot/internal/api/handlers"
	"github.com/RMahshie/scmplot/internal/repository"
	"github.com/RMahshie/scmplot/pkg/models"
	"github.com/danielgtaylor/huma/v2"
)

// Version is reported by the health endpoint and the OpenAPI document
const Version = "1.0.0"

// RegisterHealth registers the health endpoint
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = Version
		resp.Body.Time = time.Now()
		return resp, nil
	})
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, repo repository.ArtifactRepository, defaultGlob string) {
	artifactHandler := handlers.NewArtifactHandler(repo, defaultGlob)

	huma.Register(api, huma.Operation{
		OperationID: "getChart",
		Method:      http.MethodGet,
		Path:        "/api/chart",
		Summary:     "Get the telemetry chart",
		Description: "Returns the most recently rendered telemetry chart as PNG",
		Tags:        []string{"Telemetry"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Telemetry chart",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
	}, artifactHandler.GetChart)

	huma.Register(api, huma.Operation{
		OperationID: "listPDR",
		Method:      http.MethodGet,
		Path:        "/api/pdr",
		Summary:     "List PDR tables",
		Description: "Extracts setting/PDR tables from the receiver logs matching a glob",
		Tags:        []string{"PDR"},
	}, artifactHandler.ListPDR)
}
