package postgres

import (
	"context"
	"fmt"
	"time"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentRepository implements the DocumentRepository interface.
//
// Every state transition is a single conditional statement keyed on the
// expected current state, so concurrent reviewers/readers never produce a
// double transition or a lost update.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const documentColumns = `id, name, description, file_size, file_type, file_url,
		class_level, subject, year, tags, status, downloads, uploaded_by,
		approved_by, approved_at, rejection_reason, folder_id,
		created_at, updated_at, deleted_at`

func scanDocument(row interface{ Scan(...interface{}) error }, d *models.Document) error {
	return row.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.FileSize,
		&d.FileType,
		&d.FileURL,
		&d.ClassLevel,
		&d.Subject,
		&d.Year,
		&d.Tags,
		&d.Status,
		&d.Downloads,
		&d.UploadedBy,
		&d.ApprovedBy,
		&d.ApprovedAt,
		&d.RejectionReason,
		&d.FolderID,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
	)
}

// Create inserts a new document.
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, file_size, file_type, file_url,
			class_level, subject, year, tags, status, downloads, uploaded_by,
			folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, r.tables.Documents)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.ID,
		doc.Name,
		doc.Description,
		doc.FileSize,
		doc.FileType,
		doc.FileURL,
		doc.ClassLevel,
		doc.Subject,
		doc.Year,
		doc.Tags,
		doc.Status,
		doc.Downloads,
		doc.UploadedBy,
		doc.FolderID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder of document '%s': %w", doc.Name, domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document regardless of its deleted state.
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	var doc models.Document
	err := scanDocument(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &doc)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

func (r *PostgresDocumentRepository) list(ctx context.Context, where string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY created_at DESC, id ASC
	`, documentColumns, r.tables.Documents, where)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// ListActive returns every non-trashed document.
func (r *PostgresDocumentRepository) ListActive(ctx context.Context) ([]models.Document, error) {
	return r.list(ctx, "deleted_at IS NULL")
}

// ListTrashed returns every trashed document.
func (r *PostgresDocumentRepository) ListTrashed(ctx context.Context) ([]models.Document, error) {
	return r.list(ctx, "deleted_at IS NOT NULL")
}

// TransitionStatus applies a moderation transition iff the document is
// active and currently in the expected status.
func (r *PostgresDocumentRepository) TransitionStatus(ctx context.Context, id string, from models.DocumentStatus, update repositories.StatusUpdate) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, approved_by = $2, approved_at = $3,
			rejection_reason = $4, updated_at = $3
		WHERE id = $5 AND status = $6 AND deleted_at IS NULL
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		update.To,
		update.ReviewerID,
		update.At,
		update.RejectionReason,
		id,
		from,
	)
	if err != nil {
		return false, fmt.Errorf("transition document status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// IncrementDownloads bumps the counter in a single statement - never
// read-modify-write, so concurrent downloads lose nothing.
func (r *PostgresDocumentRepository) IncrementDownloads(ctx context.Context, id string) (int, bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET downloads = downloads + 1
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING downloads
	`, r.tables.Documents)

	var count int
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(&count)
	if err != nil {
		if isPgNoRowsError(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("increment downloads: %w", err)
	}

	return count, true, nil
}

// SoftDelete sets deleted_at on an active document.
func (r *PostgresDocumentRepository) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, at, id)
	if err != nil {
		return false, fmt.Errorf("soft delete document: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Restore clears deleted_at, leaving status untouched.
func (r *PostgresDocumentRepository) Restore(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NULL, updated_at = now()
		WHERE id = $1 AND deleted_at IS NOT NULL
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("restore document: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Purge permanently removes a trashed document. The trashed-only condition
// keeps purge of a live document impossible at the storage level too.
func (r *PostgresDocumentRepository) Purge(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND deleted_at IS NOT NULL
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("purge document: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Stats aggregates document counts by lifecycle state.
func (r *PostgresDocumentRepository) Stats(ctx context.Context) (*repositories.DocumentStats, error) {
	query := fmt.Sprintf(`
		SELECT
			count(*) FILTER (WHERE status = 'pending' AND deleted_at IS NULL),
			count(*) FILTER (WHERE status = 'approved' AND deleted_at IS NULL),
			count(*) FILTER (WHERE status = 'rejected' AND deleted_at IS NULL),
			count(*) FILTER (WHERE deleted_at IS NOT NULL),
			COALESCE(sum(downloads), 0)
		FROM %s
	`, r.tables.Documents)

	var stats repositories.DocumentStats
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query).Scan(
		&stats.Pending,
		&stats.Approved,
		&stats.Rejected,
		&stats.Trashed,
		&stats.TotalDownloads,
	)
	if err != nil {
		return nil, fmt.Errorf("document stats: %w", err)
	}

	return &stats, nil
}
