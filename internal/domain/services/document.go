package services

import (
	"context"

	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

// DocumentService owns the document lifecycle and the search surfaces.
type DocumentService interface {
	// Submit creates a new document in pending status with zero downloads.
	Submit(ctx context.Context, req *SubmitDocumentRequest) (*models.Document, error)

	// Approve moves a pending document to approved, recording the reviewer
	// and clearing any prior rejection reason. Fails with ErrInvalidState
	// unless the document is currently pending.
	Approve(ctx context.Context, id string, reviewer models.Actor) (*models.Document, error)

	// Reject moves a pending document to rejected, recording the reviewer
	// and an optional reason. Same precondition as Approve.
	Reject(ctx context.Context, id string, reviewer models.Actor, reason *string) (*models.Document, error)

	// RecordDownload atomically increments the download counter and returns
	// the new count. Allowed in any moderation state, rejected with
	// ErrInvalidState once the document is trashed.
	RecordDownload(ctx context.Context, id string) (int, error)

	// SoftDelete moves a document into the trash, status unchanged.
	SoftDelete(ctx context.Context, id string, actor models.Actor) error

	// Restore brings a trashed document back with its pre-delete status.
	// Restoring a non-trashed document is a no-op success.
	Restore(ctx context.Context, id string, actor models.Actor) error

	// Purge permanently removes a trashed document. Purging a live document
	// fails with ErrInvalidState: the explicit trash step comes first.
	Purge(ctx context.Context, id string, actor models.Actor) error

	// GetDocument retrieves a document by id (any state).
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// SearchPublic filters the approved, non-trashed snapshot.
	SearchPublic(ctx context.Context, criteria models.SearchCriteria) ([]models.Document, error)

	// ListAdmin filters the non-trashed snapshot across all moderation
	// states, honoring the status criterion. The director of studies sees
	// every upload; teachers see only documents they uploaded.
	ListAdmin(ctx context.Context, criteria models.SearchCriteria, actor models.Actor) ([]models.Document, error)

	// ListTrash returns trashed documents annotated with purge eligibility.
	ListTrash(ctx context.Context, actor models.Actor) ([]TrashedDocument, error)

	// Stats aggregates lifecycle counts for the admin dashboard.
	Stats(ctx context.Context, actor models.Actor) (*repositories.DocumentStats, error)
}

// SubmitDocumentRequest carries upload metadata. Name, FileURL, ClassLevel
// and Subject are required before the record may be created.
type SubmitDocumentRequest struct {
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	FileSize    string       `json:"file_size"`
	FileType    string       `json:"file_type"`
	FileURL     *string      `json:"file_url"`
	ClassLevel  *string      `json:"class_level"`
	Subject     *string      `json:"subject"`
	Year        *string      `json:"year,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	FolderID    *string      `json:"folder_id,omitempty"`
	Actor       models.Actor `json:"-"`
}

// TrashedDocument is a trash listing entry: the document plus how long it
// has before it becomes purge-eligible.
type TrashedDocument struct {
	models.Document
	DaysRemaining int  `json:"days_remaining"`
	PurgeEligible bool `json:"purge_eligible"`
}
