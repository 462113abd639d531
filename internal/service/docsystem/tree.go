package docsystem

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
	"archiva/internal/domain/services"
)

// treeService implements the TreeService interface.
type treeService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service.
func NewTreeService(folderRepo repositories.FolderRepository, logger *slog.Logger) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// GetTree builds the rooted forest of active folders.
func (s *treeService) GetTree(ctx context.Context) (*models.Tree, error) {
	folders, err := s.folderRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	tree := BuildTree(folders)

	for _, w := range tree.Warnings {
		s.logger.Warn("folder tree integrity warning",
			"folder_id", w.FolderID,
			"reason", w.Reason,
		)
	}

	s.logger.Debug("folder tree built",
		"folder_count", len(folders),
		"root_count", len(tree.Roots),
	)

	return tree, nil
}

// BuildTree converts a flat folder list into a rooted forest. Pure function
// of its input; the stored records are never mutated.
//
// Policies, chosen to keep the tree always renderable:
//   - folders with deleted_at set are ignored entirely
//   - a folder whose recorded parent is missing (or deleted) becomes a root
//   - a parent chain that loops is broken by promoting the first node found
//     to be reachable from itself; the anomaly is reported as a warning
//
// Children are ordered by name ascending (case-insensitive), ties broken by
// creation time ascending, so output order is fully deterministic.
func BuildTree(folders []models.Folder) *models.Tree {
	byID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		if folders[i].DeletedAt != nil {
			continue
		}
		byID[folders[i].ID] = &folders[i]
	}

	var warnings []models.TreeWarning

	// Effective parent per folder: nil means root. Orphans (recorded parent
	// absent from the active set) are re-rooted here.
	parent := make(map[string]*string, len(byID))
	for id, f := range byID {
		if f.ParentID == nil {
			parent[id] = nil
			continue
		}
		if _, ok := byID[*f.ParentID]; !ok {
			parent[id] = nil
			warnings = append(warnings, models.TreeWarning{
				FolderID: id,
				Reason:   "parent folder missing or deleted; folder promoted to root",
			})
			continue
		}
		parent[id] = f.ParentID
	}

	// Break parent cycles. Walk each folder's parent chain; the first node
	// seen twice within one walk closes a loop and is promoted to root.
	done := make(map[string]bool, len(byID))
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic walk order

	for _, start := range ids {
		if done[start] {
			continue
		}
		walk := make(map[string]bool)
		var path []string
		cur := start
		for {
			if done[cur] {
				break
			}
			if walk[cur] {
				// cur is reachable from itself: break the loop here
				parent[cur] = nil
				warnings = append(warnings, models.TreeWarning{
					FolderID: cur,
					Reason:   "parent chain forms a cycle; folder promoted to root",
				})
				break
			}
			walk[cur] = true
			path = append(path, cur)
			p := parent[cur]
			if p == nil {
				break
			}
			cur = *p
		}
		for _, id := range path {
			done[id] = true
		}
	}

	// Assemble nodes and attach children.
	nodes := make(map[string]*models.FolderNode, len(byID))
	for id, f := range byID {
		nodes[id] = &models.FolderNode{Folder: *f, Children: []*models.FolderNode{}}
	}

	var roots []*models.FolderNode
	for _, id := range ids {
		if p := parent[id]; p != nil {
			nodes[*p].Children = append(nodes[*p].Children, nodes[id])
		} else {
			roots = append(roots, nodes[id])
		}
	}

	sortNodes(roots)
	for _, n := range nodes {
		sortNodes(n.Children)
	}

	return &models.Tree{Roots: roots, Warnings: warnings}
}

func sortNodes(nodes []*models.FolderNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		ni, nj := strings.ToLower(nodes[i].Name), strings.ToLower(nodes[j].Name)
		if ni != nj {
			return ni < nj
		}
		if !nodes[i].CreatedAt.Equal(nodes[j].CreatedAt) {
			return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
		}
		return nodes[i].ID < nodes[j].ID
	})
}
