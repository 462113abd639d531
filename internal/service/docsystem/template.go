package docsystem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/services"

	"github.com/google/uuid"
)

// ApplyTemplates provisions folder skeletons. Reuse-or-create per entry:
// running the same template file twice leaves the tree unchanged.
func (s *folderService) ApplyTemplates(ctx context.Context, templates []models.FolderTemplate, actor models.Actor) (*services.TemplateResult, error) {
	if !actor.CanReview() {
		return nil, fmt.Errorf("%w: only the director of studies may provision folders", domain.ErrForbidden)
	}

	for _, t := range templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("%w: template folder name cannot be empty", domain.ErrValidation)
		}
		for _, child := range t.Children {
			if strings.TrimSpace(child) == "" {
				return nil, fmt.Errorf("%w: template %q has an empty child name", domain.ErrValidation, t.Name)
			}
		}
	}

	result := &services.TemplateResult{}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for _, t := range templates {
			root, created, err := s.reuseOrCreate(txCtx, strings.TrimSpace(t.Name), nil, actor)
			if err != nil {
				return err
			}
			s.record(result, root, created)

			for _, child := range t.Children {
				folder, created, err := s.reuseOrCreate(txCtx, strings.TrimSpace(child), &root.ID, actor)
				if err != nil {
					return err
				}
				s.record(result, folder, created)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder templates applied",
		"created", len(result.Created),
		"reused", len(result.Reused),
		"actor", actor.ID,
	)

	return result, nil
}

// reuseOrCreate returns the active folder with the given name under parentID,
// creating it when absent. The bool reports whether a row was inserted.
func (s *folderService) reuseOrCreate(ctx context.Context, name string, parentID *string, actor models.Actor) (*models.Folder, bool, error) {
	existing, err := s.folderRepo.FindActiveByNameAndParent(ctx, name, parentID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	now := time.Now()
	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  parentID,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, false, err
	}

	return folder, true, nil
}

func (s *folderService) record(result *services.TemplateResult, folder *models.Folder, created bool) {
	if created {
		result.Created = append(result.Created, *folder)
	} else {
		result.Reused = append(result.Reused, *folder)
	}
}
