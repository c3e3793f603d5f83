package repository

import (
	"context"
	"errors"
	"time"

	"github.com/RMahshie/scmplot/pkg/models"
)

// ErrNotFound is returned when a requested artifact has not been produced yet
var ErrNotFound = errors.New("artifact not found")

// Chart is a rendered chart image and its modification time
type Chart struct {
	PNG      []byte
	Modified time.Time
}

// ArtifactRepository defines read access to what the monitor and extract
// commands produce
type ArtifactRepository interface {
	LatestChart(ctx context.Context) (*Chart, error)
	PDRTables(ctx context.Context, glob string) ([]models.PDRTable, error)
}
