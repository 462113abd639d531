package models

// FolderNode is a folder with its resolved children, as assembled by the
// tree builder. Children are ordered by name (case-insensitive), ties
// broken by creation time.
type FolderNode struct {
	Folder
	Children []*FolderNode `json:"children"`
}

// Tree is the rooted forest the portal renders as the sidebar, plus any
// data-integrity warnings discovered while assembling it. The builder never
// fails: orphans and cycle members are promoted to roots and reported here.
type Tree struct {
	Roots    []*FolderNode `json:"roots"`
	Warnings []TreeWarning `json:"warnings,omitempty"`
}

// TreeWarning flags a folder whose recorded parent pointer was unusable.
type TreeWarning struct {
	FolderID string `json:"folder_id"`
	Reason   string `json:"reason"`
}
