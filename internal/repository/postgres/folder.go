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

// PostgresFolderRepository implements the FolderRepository interface.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, name, parent_id, created_by, created_at, updated_at, deleted_at"

func scanFolder(row interface{ Scan(...interface{}) error }, f *models.Folder) error {
	return row.Scan(
		&f.ID,
		&f.Name,
		&f.ParentID,
		&f.CreatedBy,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.DeletedAt,
	)
}

// Create inserts a new folder.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, parent_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ID,
		folder.Name,
		folder.ParentID,
		folder.CreatedBy,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("parent of folder '%s': %w", folder.Name, domain.ErrInvalidParent)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder regardless of its deleted state.
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// FindActiveByNameAndParent looks up an active sibling by case-insensitive name.
func (r *PostgresFolderRepository) FindActiveByNameAndParent(ctx context.Context, name string, parentID *string) (*models.Folder, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE lower(name) = lower($1) AND parent_id IS NULL AND deleted_at IS NULL
		`, folderColumns, r.tables.Folders)
		args = append(args, name)
	} else {
		query = fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE lower(name) = lower($1) AND parent_id = $2 AND deleted_at IS NULL
		`, folderColumns, r.tables.Folders)
		args = append(args, name, *parentID)
	}

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // not found, not an error
		}
		return nil, fmt.Errorf("find folder by name and parent: %w", err)
	}

	return &folder, nil
}

// Update persists name/parent changes to an existing folder.
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_id = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// ListActive returns every non-deleted folder as a flat list.
func (r *PostgresFolderRepository) ListActive(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// SoftDelete sets deleted_at on an active folder.
func (r *PostgresFolderRepository) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, at, id)
	if err != nil {
		return false, fmt.Errorf("soft delete folder: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Restore clears deleted_at on a trashed folder.
func (r *PostgresFolderRepository) Restore(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NULL, updated_at = now()
		WHERE id = $1 AND deleted_at IS NOT NULL
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("restore folder: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
