package services

import (
	"context"

	"archiva/internal/domain/models"
)

// TreeService assembles the folder hierarchy for rendering.
type TreeService interface {
	// GetTree builds the rooted forest of active folders. The build never
	// fails on bad parent pointers; anomalies are reported as warnings.
	GetTree(ctx context.Context) (*models.Tree, error)
}
