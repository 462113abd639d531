package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"archiva/internal/config"
	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
	"archiva/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// folderService implements the FolderService interface.
type folderService struct {
	folderRepo repositories.FolderRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(folderRepo repositories.FolderRepository, txManager repositories.TransactionManager, logger *slog.Logger) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder under an active parent (nil = root).
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent %s does not resolve", domain.ErrInvalidParent, *req.ParentID)
		}
		if !parent.Active() {
			return nil, fmt.Errorf("%w: parent %s is deleted", domain.ErrInvalidParent, *req.ParentID)
		}
	}

	if err := s.checkSiblingName(ctx, req.Name, req.ParentID, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		CreatedBy: req.Actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"actor", req.Actor.ID,
	)

	return folder, nil
}

// GetFolder retrieves a folder by id (any state).
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// UpdateFolder applies a rename and/or move as a single write. All checks
// run against the destination state before anything is persisted, so a
// combined request that fails its move leaves the name untouched too.
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !folder.Active() {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	newName := folder.Name
	if req.Name != nil {
		newName = strings.TrimSpace(*req.Name)
		if err := s.validateName(newName); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	newParentID := folder.ParentID
	if req.SetParent {
		newParentID = req.ParentID
		if newParentID != nil && *newParentID == "" {
			newParentID = nil
		}
	}

	renamed := newName != folder.Name
	moved := req.SetParent && !equalParent(newParentID, folder.ParentID)
	if !renamed && !moved {
		return folder, nil
	}

	if moved && newParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *newParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent %s does not resolve", domain.ErrInvalidParent, *newParentID)
		}
		if !parent.Active() {
			return nil, fmt.Errorf("%w: parent %s is deleted", domain.ErrInvalidParent, *newParentID)
		}
		if err := s.checkNoCircularReference(ctx, id, *newParentID); err != nil {
			return nil, err
		}
	}

	// The duplicate check targets the destination parent. A pure case change
	// of the folder's own name in place is allowed.
	if moved || !strings.EqualFold(folder.Name, newName) {
		if err := s.checkSiblingName(ctx, newName, newParentID, folder.ID); err != nil {
			return nil, err
		}
	}

	folder.Name = newName
	folder.ParentID = newParentID
	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"actor", req.Actor.ID,
	)

	return folder, nil
}

// RenameFolder renames a folder. Renaming to the current name is a no-op success.
func (s *folderService) RenameFolder(ctx context.Context, id, newName string, actor models.Actor) (*models.Folder, error) {
	return s.UpdateFolder(ctx, id, &services.UpdateFolderRequest{Name: &newName, Actor: actor})
}

// MoveFolder reparents a folder. The new parent must be active and must not
// be the folder itself or one of its descendants - cycle prevention happens
// here at write time, not just when the tree is read.
func (s *folderService) MoveFolder(ctx context.Context, id string, newParentID *string, actor models.Actor) (*models.Folder, error) {
	return s.UpdateFolder(ctx, id, &services.UpdateFolderRequest{ParentID: newParentID, SetParent: true, Actor: actor})
}

// SoftDeleteFolder trashes a folder. Children keep deleted_at null
// (filter-on-read): they drop out of the tree with their parent and come
// back when it is restored.
func (s *folderService) SoftDeleteFolder(ctx context.Context, id string, actor models.Actor) error {
	ok, err := s.folderRepo.SoftDelete(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("folder soft-deleted", "id", id, "actor", actor.ID)
	return nil
}

// RestoreFolder brings a trashed folder back into the tree.
func (s *folderService) RestoreFolder(ctx context.Context, id string, actor models.Actor) error {
	ok, err := s.folderRepo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("trashed folder %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("folder restored", "id", id, "actor", actor.ID)
	return nil
}

// equalParent compares two optional parent ids.
func equalParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// validateName validates a folder name.
func (s *folderService) validateName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name cannot be empty"),
		validation.Length(1, config.MaxFolderNameLength),
	)
}

// checkSiblingName rejects with ConflictError when an active folder other
// than excludeID already carries the same case-insensitive name under parentID.
func (s *folderService) checkSiblingName(ctx context.Context, name string, parentID *string, excludeID string) error {
	sibling, err := s.folderRepo.FindActiveByNameAndParent(ctx, name, parentID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	if sibling != nil && sibling.ID != excludeID {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
			ResourceID:   sibling.ID,
		}
	}
	return nil
}

// checkNoCircularReference ensures moving a folder won't create circular references.
func (s *folderService) checkNoCircularReference(ctx context.Context, folderID, newParentID string) error {
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move folder into itself", domain.ErrInvalidParent)
	}

	// Walk up from the candidate parent; hitting folderID means the target
	// is one of its own descendants.
	currentID := newParentID
	for {
		current, err := s.folderRepo.GetByID(ctx, currentID)
		if err != nil {
			return err
		}
		if current.ParentID == nil {
			return nil
		}
		if *current.ParentID == folderID {
			return fmt.Errorf("%w: cannot move folder under its own descendant", domain.ErrInvalidParent)
		}
		currentID = *current.ParentID
	}
}
