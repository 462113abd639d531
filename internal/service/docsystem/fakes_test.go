package docsystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the function directly; the in-memory fakes have no
// transactional state to manage.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeFolderRepo is an in-memory FolderRepository.
type fakeFolderRepo struct {
	folders map[string]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) add(f models.Folder) {
	clone := f
	r.folders[f.ID] = &clone
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if _, ok := r.folders[folder.ID]; ok {
		return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
	}
	clone := *folder
	r.folders[folder.ID] = &clone
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	clone := *f
	return &clone, nil
}

func (r *fakeFolderRepo) FindActiveByNameAndParent(ctx context.Context, name string, parentID *string) (*models.Folder, error) {
	for _, f := range r.folders {
		if f.DeletedAt != nil {
			continue
		}
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		if !equalParent(f.ParentID, parentID) {
			continue
		}
		clone := *f
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	if _, ok := r.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	clone := *folder
	r.folders[folder.ID] = &clone
	return nil
}

func (r *fakeFolderRepo) ListActive(ctx context.Context) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.DeletedAt == nil {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFolderRepo) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	f, ok := r.folders[id]
	if !ok || f.DeletedAt != nil {
		return false, nil
	}
	t := at
	f.DeletedAt = &t
	f.UpdatedAt = at
	return true, nil
}

func (r *fakeFolderRepo) Restore(ctx context.Context, id string) (bool, error) {
	f, ok := r.folders[id]
	if !ok || f.DeletedAt == nil {
		return false, nil
	}
	f.DeletedAt = nil
	f.UpdatedAt = time.Now()
	return true, nil
}

// fakeDocumentRepo is an in-memory DocumentRepository. The mutex mirrors
// the row-level atomicity of the real increment statement so download
// counting can be exercised from concurrent goroutines.
type fakeDocumentRepo struct {
	mu   sync.Mutex
	docs map[string]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocumentRepo) add(d models.Document) {
	clone := d
	r.docs[d.ID] = &clone
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	clone := *doc
	r.docs[doc.ID] = &clone
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDocumentRepo) ListActive(ctx context.Context) ([]models.Document, error) {
	return r.list(func(d *models.Document) bool { return d.DeletedAt == nil }), nil
}

func (r *fakeDocumentRepo) ListTrashed(ctx context.Context) ([]models.Document, error) {
	return r.list(func(d *models.Document) bool { return d.DeletedAt != nil }), nil
}

func (r *fakeDocumentRepo) list(keep func(*models.Document) bool) []models.Document {
	var out []models.Document
	for _, d := range r.docs {
		if keep(d) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeDocumentRepo) TransitionStatus(ctx context.Context, id string, from models.DocumentStatus, update repositories.StatusUpdate) (bool, error) {
	d, ok := r.docs[id]
	if !ok || d.DeletedAt != nil || d.Status != from {
		return false, nil
	}
	d.Status = update.To
	d.ApprovedBy = &update.ReviewerID
	t := update.At
	d.ApprovedAt = &t
	d.RejectionReason = update.RejectionReason
	d.UpdatedAt = update.At
	return true, nil
}

func (r *fakeDocumentRepo) IncrementDownloads(ctx context.Context, id string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.DeletedAt != nil {
		return 0, false, nil
	}
	d.Downloads++
	return d.Downloads, true, nil
}

func (r *fakeDocumentRepo) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	d, ok := r.docs[id]
	if !ok || d.DeletedAt != nil {
		return false, nil
	}
	t := at
	d.DeletedAt = &t
	d.UpdatedAt = at
	return true, nil
}

func (r *fakeDocumentRepo) Restore(ctx context.Context, id string) (bool, error) {
	d, ok := r.docs[id]
	if !ok || d.DeletedAt == nil {
		return false, nil
	}
	d.DeletedAt = nil
	d.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeDocumentRepo) Purge(ctx context.Context, id string) (bool, error) {
	d, ok := r.docs[id]
	if !ok || d.DeletedAt == nil {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

func (r *fakeDocumentRepo) Stats(ctx context.Context) (*repositories.DocumentStats, error) {
	stats := &repositories.DocumentStats{}
	for _, d := range r.docs {
		stats.TotalDownloads += d.Downloads
		if d.DeletedAt != nil {
			stats.Trashed++
			continue
		}
		switch d.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}
