package services

import (
	"context"

	"archiva/internal/domain/models"
)

// FolderService owns the folder lifecycle: creation, rename, move,
// soft-delete/restore and idempotent template provisioning.
type FolderService interface {
	// CreateFolder creates a new folder under an active parent (nil = root).
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder by id (any state).
	GetFolder(ctx context.Context, id string) (*models.Folder, error)

	// UpdateFolder applies a rename and/or move as a single write: a
	// combined request either fully applies or changes nothing.
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// RenameFolder renames a folder. Renaming to the current name is a no-op
	// success.
	RenameFolder(ctx context.Context, id, newName string, actor models.Actor) (*models.Folder, error)

	// MoveFolder reparents a folder. The new parent must be active and must
	// not be the folder itself or one of its descendants.
	MoveFolder(ctx context.Context, id string, newParentID *string, actor models.Actor) (*models.Folder, error)

	// SoftDeleteFolder trashes a folder. Children are not cascaded: they
	// become unreachable through the tree but keep deleted_at null, so
	// restoring the parent brings them back.
	SoftDeleteFolder(ctx context.Context, id string, actor models.Actor) error

	// RestoreFolder brings a trashed folder back into the tree.
	RestoreFolder(ctx context.Context, id string, actor models.Actor) error

	// ApplyTemplates provisions folder skeletons idempotently. Existing
	// folders are reused; applying the same templates twice changes nothing.
	ApplyTemplates(ctx context.Context, templates []models.FolderTemplate, actor models.Actor) (*TemplateResult, error)
}

// CreateFolderRequest is a folder creation request.
type CreateFolderRequest struct {
	Name     string       `json:"name"`
	ParentID *string      `json:"parent_id,omitempty"`
	Actor    models.Actor `json:"-"`
}

// UpdateFolderRequest carries a folder PATCH. SetParent distinguishes
// "move to the given parent (nil = root)" from "leave the parent alone".
type UpdateFolderRequest struct {
	Name      *string      `json:"name,omitempty"`
	ParentID  *string      `json:"parent_id,omitempty"`
	SetParent bool         `json:"-"`
	Actor     models.Actor `json:"-"`
}

// TemplateResult reports what a template application did.
type TemplateResult struct {
	Created []models.Folder `json:"created"`
	Reused  []models.Folder `json:"reused"`
}
