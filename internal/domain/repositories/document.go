package repositories

import (
	"context"
	"time"

	"archiva/internal/domain/models"
)

// StatusUpdate is the payload of a moderation transition. The transition is
// issued as a single conditional update keyed on the expected current
// status, so two reviewers racing on the same pending document get exactly
// one success.
type StatusUpdate struct {
	To              models.DocumentStatus
	ReviewerID      string
	At              time.Time
	RejectionReason *string
}

// DocumentStats aggregates counts for the admin dashboard.
type DocumentStats struct {
	Pending        int `json:"pending"`
	Approved       int `json:"approved"`
	Rejected       int `json:"rejected"`
	Trashed        int `json:"trashed"`
	TotalDownloads int `json:"total_downloads"`
}

// DocumentRepository persists document records.
type DocumentRepository interface {
	// Create inserts a new document.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document regardless of its deleted state.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListActive returns every non-trashed document.
	ListActive(ctx context.Context) ([]models.Document, error)

	// ListTrashed returns every trashed document.
	ListTrashed(ctx context.Context) ([]models.Document, error)

	// TransitionStatus applies update iff the document is active and its
	// current status equals from. Returns false when no row matched.
	TransitionStatus(ctx context.Context, id string, from models.DocumentStatus, update StatusUpdate) (bool, error)

	// IncrementDownloads atomically bumps the download counter of an active
	// document and returns the new count. ok is false when no active row
	// matched (missing or trashed).
	IncrementDownloads(ctx context.Context, id string) (count int, ok bool, err error)

	// SoftDelete sets deleted_at on an active document. Returns false when
	// the document was not active.
	SoftDelete(ctx context.Context, id string, at time.Time) (bool, error)

	// Restore clears deleted_at on a trashed document, leaving its status
	// untouched. Returns false when the document was not trashed.
	Restore(ctx context.Context, id string) (bool, error)

	// Purge permanently removes a trashed document. Returns false when the
	// document was not trashed.
	Purge(ctx context.Context, id string) (bool, error)

	// Stats aggregates document counts by lifecycle state.
	Stats(ctx context.Context) (*DocumentStats, error)
}
