package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
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

// documentService implements the DocumentService interface.
type documentService struct {
	docRepo       repositories.DocumentRepository
	folderRepo    repositories.FolderRepository
	retentionDays int
	logger        *slog.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(docRepo repositories.DocumentRepository, folderRepo repositories.FolderRepository, retentionDays int, logger *slog.Logger) services.DocumentService {
	if retentionDays <= 0 {
		retentionDays = config.DefaultRetentionDays
	}
	return &documentService{
		docRepo:       docRepo,
		folderRepo:    folderRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Submit creates a new document in pending status with zero downloads.
func (s *documentService) Submit(ctx context.Context, req *services.SubmitDocumentRequest) (*models.Document, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	if err := s.validateSubmission(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.FolderID != nil {
		folder, err := s.folderRepo.GetByID(ctx, *req.FolderID)
		if err != nil {
			return nil, fmt.Errorf("%w: folder %s does not resolve", domain.ErrInvalidParent, *req.FolderID)
		}
		if !folder.Active() {
			return nil, fmt.Errorf("%w: folder %s is deleted", domain.ErrInvalidParent, *req.FolderID)
		}
	}

	now := time.Now()
	doc := &models.Document{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		FileSize:    req.FileSize,
		FileType:    req.FileType,
		FileURL:     req.FileURL,
		ClassLevel:  req.ClassLevel,
		Subject:     req.Subject,
		Year:        req.Year,
		Tags:        req.Tags,
		Status:      models.StatusPending,
		Downloads:   0,
		UploadedBy:  req.Actor.ID,
		FolderID:    req.FolderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document submitted",
		"id", doc.ID,
		"name", doc.Name,
		"uploaded_by", doc.UploadedBy,
	)

	return doc, nil
}

// Approve moves a pending document to approved.
func (s *documentService) Approve(ctx context.Context, id string, reviewer models.Actor) (*models.Document, error) {
	if !reviewer.CanReview() {
		return nil, fmt.Errorf("%w: only the director of studies may review uploads", domain.ErrForbidden)
	}

	update := repositories.StatusUpdate{
		To:         models.StatusApproved,
		ReviewerID: reviewer.ID,
		At:         time.Now(),
		// An approved document carries no rejection reason.
		RejectionReason: nil,
	}

	ok, err := s.docRepo.TransitionStatus(ctx, id, models.StatusPending, update)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionFailure(ctx, id, "approve")
	}

	s.logger.Info("document approved", "id", id, "reviewer", reviewer.ID)

	return s.docRepo.GetByID(ctx, id)
}

// Reject moves a pending document to rejected with an optional reason.
func (s *documentService) Reject(ctx context.Context, id string, reviewer models.Actor, reason *string) (*models.Document, error) {
	if !reviewer.CanReview() {
		return nil, fmt.Errorf("%w: only the director of studies may review uploads", domain.ErrForbidden)
	}

	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if trimmed == "" {
			reason = nil
		} else {
			if len(trimmed) > config.MaxRejectionReasonLength {
				return nil, fmt.Errorf("%w: rejection reason too long", domain.ErrValidation)
			}
			reason = &trimmed
		}
	}

	update := repositories.StatusUpdate{
		To:              models.StatusRejected,
		ReviewerID:      reviewer.ID,
		At:              time.Now(),
		RejectionReason: reason,
	}

	ok, err := s.docRepo.TransitionStatus(ctx, id, models.StatusPending, update)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionFailure(ctx, id, "reject")
	}

	s.logger.Info("document rejected", "id", id, "reviewer", reviewer.ID)

	return s.docRepo.GetByID(ctx, id)
}

// RecordDownload atomically increments the counter and returns the new count.
func (s *documentService) RecordDownload(ctx context.Context, id string) (int, error) {
	count, ok, err := s.docRepo.IncrementDownloads(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		// No active row matched: the document is trashed or gone.
		doc, getErr := s.docRepo.GetByID(ctx, id)
		if getErr != nil {
			return 0, getErr
		}
		if doc.Trashed() {
			return 0, fmt.Errorf("%w: document %s is in the trash", domain.ErrInvalidState, id)
		}
		return 0, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return count, nil
}

// SoftDelete moves a document into the trash, status unchanged.
func (s *documentService) SoftDelete(ctx context.Context, id string, actor models.Actor) error {
	ok, err := s.docRepo.SoftDelete(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("document soft-deleted", "id", id, "actor", actor.ID)
	return nil
}

// Restore brings a trashed document back with its pre-delete status.
// Restoring a document that is not trashed succeeds without changes.
func (s *documentService) Restore(ctx context.Context, id string, actor models.Actor) error {
	ok, err := s.docRepo.Restore(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		// Either the document never existed or it was never trashed.
		if _, getErr := s.docRepo.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return nil
	}

	s.logger.Info("document restored", "id", id, "actor", actor.ID)
	return nil
}

// Purge permanently removes a trashed document.
func (s *documentService) Purge(ctx context.Context, id string, actor models.Actor) error {
	if !actor.CanReview() {
		return fmt.Errorf("%w: only the director of studies may purge documents", domain.ErrForbidden)
	}

	ok, err := s.docRepo.Purge(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		doc, getErr := s.docRepo.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		if !doc.Trashed() {
			return fmt.Errorf("%w: document %s must be trashed before it can be purged", domain.ErrInvalidState, id)
		}
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	s.logger.Info("document purged", "id", id, "actor", actor.ID)
	return nil
}

// GetDocument retrieves a document by id (any state).
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// SearchPublic filters the approved, non-trashed snapshot.
func (s *documentService) SearchPublic(ctx context.Context, criteria models.SearchCriteria) ([]models.Document, error) {
	criteria.ApplyDefaults()
	// Public search always pins approved regardless of the caller's input.
	criteria.Status = models.StatusApproved
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	docs, err := s.docRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	return FilterDocuments(docs, criteria), nil
}

// ListAdmin filters the non-trashed snapshot across all moderation states.
// The director of studies sees every upload; teachers see only their own,
// so they can follow their submissions through review.
func (s *documentService) ListAdmin(ctx context.Context, criteria models.SearchCriteria, actor models.Actor) ([]models.Document, error) {
	criteria.ApplyDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	docs, err := s.docRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := FilterDocuments(docs, criteria)
	if actor.CanReview() {
		return matched, nil
	}

	own := make([]models.Document, 0, len(matched))
	for _, doc := range matched {
		if doc.UploadedBy == actor.ID {
			own = append(own, doc)
		}
	}
	return own, nil
}

// ListTrash returns trashed documents annotated with purge eligibility.
func (s *documentService) ListTrash(ctx context.Context, actor models.Actor) ([]services.TrashedDocument, error) {
	if !actor.CanReview() {
		return nil, fmt.Errorf("%w: only the director of studies may view the trash", domain.ErrForbidden)
	}

	docs, err := s.docRepo.ListTrashed(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]services.TrashedDocument, 0, len(docs))
	for _, doc := range docs {
		days := DaysRemaining(*doc.DeletedAt, s.retentionDays, now)
		entries = append(entries, services.TrashedDocument{
			Document:      doc,
			DaysRemaining: days,
			PurgeEligible: days == 0,
		})
	}

	return entries, nil
}

// Stats aggregates lifecycle counts for the admin dashboard.
func (s *documentService) Stats(ctx context.Context, actor models.Actor) (*repositories.DocumentStats, error) {
	if !actor.CanReview() {
		return nil, fmt.Errorf("%w: only the director of studies may view stats", domain.ErrForbidden)
	}

	return s.docRepo.Stats(ctx)
}

// transitionFailure discriminates why a conditional status update matched no
// row: the document is missing, trashed, or not in the expected state.
func (s *documentService) transitionFailure(ctx context.Context, id, action string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.Trashed() {
		return fmt.Errorf("%w: cannot %s document %s while it is in the trash", domain.ErrInvalidState, action, id)
	}
	return fmt.Errorf("%w: cannot %s document %s in status %s", domain.ErrInvalidState, action, id, doc.Status)
}

func (s *documentService) validateSubmission(req *services.SubmitDocumentRequest) error {
	if err := validation.Validate(req.Name,
		validation.Required.Error("document name cannot be empty"),
		validation.Length(1, config.MaxDocumentNameLength),
	); err != nil {
		return fmt.Errorf("name: %v", err)
	}

	if req.FileURL == nil || strings.TrimSpace(*req.FileURL) == "" {
		return fmt.Errorf("file_url is required")
	}
	if req.ClassLevel == nil || !models.ValidClassLevel(*req.ClassLevel) {
		return fmt.Errorf("class_level is required and must be one of %v", models.ClassLevels)
	}
	if req.Subject == nil || !models.ValidSubject(*req.Subject) {
		return fmt.Errorf("subject is required and must be a known subject")
	}
	if req.Year != nil && !yearPattern.MatchString(*req.Year) {
		return fmt.Errorf("year must be a four-digit year")
	}
	for _, tag := range req.Tags {
		if !models.ValidTag(tag) {
			return fmt.Errorf("unknown tag %q", tag)
		}
	}

	return nil
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)
