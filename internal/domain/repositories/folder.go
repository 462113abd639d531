package repositories

import (
	"context"
	"time"

	"archiva/internal/domain/models"
)

// FolderRepository persists folder records.
type FolderRepository interface {
	// Create inserts a new folder.
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder regardless of its deleted state.
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// FindActiveByNameAndParent looks up a non-deleted folder by
	// case-insensitive name under the given parent (nil = root).
	// Returns (nil, nil) when no such folder exists.
	FindActiveByNameAndParent(ctx context.Context, name string, parentID *string) (*models.Folder, error)

	// Update persists name/parent changes to an existing folder.
	Update(ctx context.Context, folder *models.Folder) error

	// ListActive returns every non-deleted folder as a flat list.
	ListActive(ctx context.Context) ([]models.Folder, error)

	// SoftDelete sets deleted_at on an active folder. Returns false when the
	// folder was not active (already trashed or missing).
	SoftDelete(ctx context.Context, id string, at time.Time) (bool, error)

	// Restore clears deleted_at on a trashed folder. Returns false when the
	// folder was not trashed.
	Restore(ctx context.Context, id string) (bool, error)
}
