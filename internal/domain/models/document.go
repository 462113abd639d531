package models

import "time"

// DocumentStatus is the moderation state of an upload.
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "pending"
	StatusApproved DocumentStatus = "approved"
	StatusRejected DocumentStatus = "rejected"
)

// Valid reports whether s is one of the three moderation states.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document is an uploaded file's metadata record. File bytes live in the
// external object store; FileURL is an opaque reference the core never
// dereferences.
//
// Lifecycle: created pending, reviewed exactly once (approved or rejected,
// no path back to pending - a resubmission is a new document), soft-deleted
// into the trash, then either restored with its status unchanged or purged.
type Document struct {
	ID              string         `json:"id" db:"id"`
	Name            string         `json:"name" db:"name"`
	Description     *string        `json:"description,omitempty" db:"description"`
	FileSize        string         `json:"file_size" db:"file_size"`
	FileType        string         `json:"file_type" db:"file_type"`
	FileURL         *string        `json:"file_url,omitempty" db:"file_url"`
	ClassLevel      *string        `json:"class_level,omitempty" db:"class_level"`
	Subject         *string        `json:"subject,omitempty" db:"subject"`
	Year            *string        `json:"year,omitempty" db:"year"`
	Tags            []string       `json:"tags" db:"tags"`
	Status          DocumentStatus `json:"status" db:"status"`
	Downloads       int            `json:"downloads" db:"downloads"`
	UploadedBy      string         `json:"uploaded_by" db:"uploaded_by"`
	ApprovedBy      *string        `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty" db:"approved_at"`
	RejectionReason *string        `json:"rejection_reason,omitempty" db:"rejection_reason"`
	FolderID        *string        `json:"folder_id,omitempty" db:"folder_id"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time     `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Trashed reports whether the document is soft-deleted.
func (d *Document) Trashed() bool {
	return d.DeletedAt != nil
}

// PubliclyVisible reports whether the document may appear on the public
// search surface: approved and not trashed.
func (d *Document) PubliclyVisible() bool {
	return d.Status == StatusApproved && !d.Trashed()
}
