package docsystem

import (
	"testing"
	"time"

	"archiva/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func makeFolder(id, name string, parentID *string, created time.Time) models.Folder {
	return models.Folder{
		ID:        id,
		Name:      name,
		ParentID:  parentID,
		CreatedBy: "u-1",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func collectIDs(roots []*models.FolderNode) map[string]int {
	seen := make(map[string]int)
	var visit func(n *models.FolderNode)
	visit = func(n *models.FolderNode) {
		seen[n.ID]++
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	return seen
}

func TestBuildTree_EveryActiveFolderAppearsOnce(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	folders := []models.Folder{
		makeFolder("a", "Past Papers", nil, base),
		makeFolder("b", "S4", strPtr("a"), base.Add(time.Hour)),
		makeFolder("c", "S5", strPtr("a"), base.Add(2*time.Hour)),
		makeFolder("d", "Notes", nil, base.Add(3*time.Hour)),
	}

	tree := BuildTree(folders)

	seen := collectIDs(tree.Roots)
	if len(seen) != 4 {
		t.Fatalf("tree contains %d folders, want 4", len(seen))
	}
	for _, f := range folders {
		if seen[f.ID] != 1 {
			t.Errorf("folder %s appears %d times, want 1", f.ID, seen[f.ID])
		}
	}
	if len(tree.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", tree.Warnings)
	}
}

func TestBuildTree_SkipsDeletedFolders(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deleted := makeFolder("x", "Old", nil, base)
	now := time.Now()
	deleted.DeletedAt = &now

	tree := BuildTree([]models.Folder{
		makeFolder("a", "Active", nil, base),
		deleted,
	})

	seen := collectIDs(tree.Roots)
	if seen["x"] != 0 {
		t.Error("deleted folder appeared in the tree")
	}
	if len(seen) != 1 {
		t.Fatalf("tree contains %d folders, want 1", len(seen))
	}
}

func TestBuildTree_OrphanBecomesRoot(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tree := BuildTree([]models.Folder{
		makeFolder("child", "Stranded", strPtr("gone"), base),
	})

	if len(tree.Roots) != 1 || tree.Roots[0].ID != "child" {
		t.Fatalf("orphan was not promoted to root: %+v", tree.Roots)
	}
	if len(tree.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(tree.Warnings))
	}
	if tree.Warnings[0].FolderID != "child" {
		t.Errorf("warning names %s, want child", tree.Warnings[0].FolderID)
	}
}

func TestBuildTree_ParentIsDeleted(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	parent := makeFolder("p", "Parent", nil, base)
	now := time.Now()
	parent.DeletedAt = &now

	tree := BuildTree([]models.Folder{
		parent,
		makeFolder("c", "Child", strPtr("p"), base.Add(time.Hour)),
	})

	if len(tree.Roots) != 1 || tree.Roots[0].ID != "c" {
		t.Fatalf("child of deleted parent was not promoted to root: %+v", tree.Roots)
	}
	if len(tree.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(tree.Warnings))
	}
}

func TestBuildTree_BreaksCycle(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tree := BuildTree([]models.Folder{
		makeFolder("a", "A", strPtr("b"), base),
		makeFolder("b", "B", strPtr("a"), base.Add(time.Hour)),
	})

	seen := collectIDs(tree.Roots)
	if len(seen) != 2 || seen["a"] != 1 || seen["b"] != 1 {
		t.Fatalf("cycle members not all present exactly once: %v", seen)
	}
	if len(tree.Roots) != 1 {
		t.Fatalf("got %d roots, want 1 (one cycle member promoted)", len(tree.Roots))
	}
	if len(tree.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(tree.Warnings))
	}
}

func TestBuildTree_SelfParentBecomesRoot(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tree := BuildTree([]models.Folder{
		makeFolder("a", "Loop", strPtr("a"), base),
	})

	if len(tree.Roots) != 1 || tree.Roots[0].ID != "a" {
		t.Fatalf("self-parented folder not promoted to root: %+v", tree.Roots)
	}
	if len(tree.Warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(tree.Warnings))
	}
}

func TestBuildTree_ChildOrdering(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tree := BuildTree([]models.Folder{
		makeFolder("root", "Root", nil, base),
		makeFolder("z", "zebra", strPtr("root"), base.Add(time.Hour)),
		makeFolder("A", "Apple", strPtr("root"), base.Add(2*time.Hour)),
		makeFolder("m2", "mango", strPtr("root"), base.Add(4*time.Hour)),
		makeFolder("m1", "Mango", strPtr("root"), base.Add(3*time.Hour)),
	})

	if len(tree.Roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(tree.Roots))
	}
	children := tree.Roots[0].Children
	got := make([]string, len(children))
	for i, c := range children {
		got[i] = c.ID
	}
	// Case-insensitive by name, creation time breaks the Mango/mango tie.
	want := []string{"A", "m1", "m2", "z"}
	if len(got) != len(want) {
		t.Fatalf("got %d children, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children order = %v, want %v", got, want)
		}
	}
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	folders := []models.Folder{
		makeFolder("orphan", "Stranded", strPtr("gone"), base),
	}

	BuildTree(folders)

	if folders[0].ParentID == nil || *folders[0].ParentID != "gone" {
		t.Error("input folder record was mutated")
	}
}
