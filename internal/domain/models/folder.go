package models

import "time"

// Folder is one node of the document hierarchy. ParentID == nil means the
// folder sits at the root. A folder with DeletedAt set is trashed: it is
// invisible to the public tree but keeps its children untouched, so
// restoring it brings the whole subtree back (filter-on-read policy).
type Folder struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	ParentID  *string    `json:"parent_id" db:"parent_id"`
	CreatedBy string     `json:"created_by" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Active reports whether the folder is not trashed.
func (f *Folder) Active() bool {
	return f.DeletedAt == nil
}
