package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/RMahshie/scmplot/internal/extract"
	"github.com/RMahshie/scmplot/internal/repository"
	"github.com/RMahshie/scmplot/internal/storage"
	"github.com/RMahshie/scmplot/pkg/models"
)

// ArtifactRepository implements repository.ArtifactRepository on top of the
// files written by the monitor and extract commands
type ArtifactRepository struct {
	store     storage.ArtifactStore
	chartName string
}

// NewArtifactRepository creates a repository that serves chartName from store
func NewArtifactRepository(store storage.ArtifactStore, chartName string) repository.ArtifactRepository {
	return &ArtifactRepository{store: store, chartName: chartName}
}

// LatestChart reads the most recently rendered telemetry chart
func (r *ArtifactRepository) LatestChart(ctx context.Context) (*repository.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := r.store.Open(r.chartName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, r.chartName)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat chart: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart: %w", err)
	}
	return &repository.Chart{PNG: data, Modified: info.ModTime()}, nil
}

// PDRTables extracts the receiver logs matching glob
func (r *ArtifactRepository) PDRTables(ctx context.Context, glob string) ([]models.PDRTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return extract.Glob(glob)
}
