package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/RMahshie/scmplot/internal/repository"
	"github.com/RMahshie/scmplot/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// ArtifactHandler serves the charts and tables produced by the CLI
type ArtifactHandler struct {
	repo        repository.ArtifactRepository
	defaultGlob string
}

// NewArtifactHandler creates a new artifact handler. defaultGlob is used when
// a PDR request does not name its own.
func NewArtifactHandler(repo repository.ArtifactRepository, defaultGlob string) *ArtifactHandler {
	return &ArtifactHandler{
		repo:        repo,
		defaultGlob: defaultGlob,
	}
}

// GetChart returns the latest rendered telemetry chart
func (h *ArtifactHandler) GetChart(ctx context.Context, req *models.GetChartRequest) (*models.GetChartResponse, error) {
	chart, err := h.repo.LatestChart(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, huma.Error404NotFound("No chart has been rendered yet", err)
		}
		log.Error().Err(err).Msg("Failed to load chart")
		return nil, huma.Error500InternalServerError("Failed to load chart", err)
	}

	return &models.GetChartResponse{
		ContentType:  "image/png",
		LastModified: chart.Modified.UTC().Format(http.TimeFormat),
		Body:         chart.PNG,
	}, nil
}

// errOutsideLogDir is returned for glob overrides that are not a bare file
// name pattern
var errOutsideLogDir = errors.New("glob must be a file name pattern inside the receiver log directory")

// logGlob resolves a glob override against the directory of the configured
// glob. Only bare name patterns are accepted.
func (h *ArtifactHandler) logGlob(override string) (string, error) {
	if override == "" {
		return h.defaultGlob, nil
	}
	if filepath.IsAbs(override) || strings.ContainsAny(override, `/\`) || strings.Contains(override, "..") {
		return "", fmt.Errorf("%w: %q", errOutsideLogDir, override)
	}
	if _, err := filepath.Match(override, ""); err != nil {
		return "", fmt.Errorf("invalid glob %q: %w", override, err)
	}
	return filepath.Join(filepath.Dir(h.defaultGlob), override), nil
}

// ListPDR extracts the PDR tables from the receiver logs
func (h *ArtifactHandler) ListPDR(ctx context.Context, req *models.ListPDRRequest) (*models.ListPDRResponse, error) {
	glob, err := h.logGlob(req.Glob)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid glob", err)
	}

	tables, err := h.repo.PDRTables(ctx, glob)
	if err != nil {
		log.Error().Err(err).Str("glob", glob).Msg("Failed to extract PDR tables")
		return nil, huma.Error500InternalServerError("Failed to extract PDR tables", err)
	}
	if tables == nil {
		tables = []models.PDRTable{}
	}

	log.Info().Str("glob", glob).Int("tables", len(tables)).Msg("Returning PDR tables")
	return &models.ListPDRResponse{
		Body: models.ListPDRResponseBody{Tables: tables},
	}, nil
}
