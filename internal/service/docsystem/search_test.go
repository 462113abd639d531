package docsystem

import (
	"context"
	"testing"
	"time"

	"archiva/internal/domain/models"
)

func makeDoc(id, name string, status models.DocumentStatus, created time.Time) models.Document {
	return models.Document{
		ID:        id,
		Name:      name,
		Status:    status,
		Tags:      []string{},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func idsOf(docs []models.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

func sameIDs(got []models.Document, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].ID != want[i] {
			return false
		}
	}
	return true
}

func TestFilterDocuments_Text(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	physics := makeDoc("1", "S5 Physics Mock", models.StatusApproved, base)
	physics.Subject = strPtr("Physics")

	chemistry := makeDoc("2", "S5 Chemistry Notes", models.StatusApproved, base.Add(time.Hour))
	chemistry.Subject = strPtr("Chemistry")

	hidden := makeDoc("3", "Physics Revision Pack", models.StatusPending, base.Add(2*time.Hour))
	hidden.Subject = strPtr("Physics")

	byDescription := makeDoc("4", "Practical Guide", models.StatusApproved, base.Add(3*time.Hour))
	byDescription.Description = strPtr("covers the physics practicals for term two")

	docs := []models.Document{physics, chemistry, hidden, byDescription}

	got := FilterDocuments(docs, models.SearchCriteria{
		Text:   "physics",
		Status: models.StatusApproved,
		Sort:   models.SortNewest,
	})

	// Pending upload is filtered out; the description match counts.
	if !sameIDs(got, []string{"4", "1"}) {
		t.Errorf("got %v, want [4 1]", idsOf(got))
	}
}

func TestFilterDocuments_CriteriaCombineWithAnd(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	match := makeDoc("1", "Paper 1", models.StatusApproved, base)
	match.ClassLevel = strPtr("S4")
	match.Subject = strPtr("Mathematics")
	match.Year = strPtr("2026")

	wrongLevel := makeDoc("2", "Paper 2", models.StatusApproved, base)
	wrongLevel.ClassLevel = strPtr("S5")
	wrongLevel.Subject = strPtr("Mathematics")
	wrongLevel.Year = strPtr("2026")

	noLevel := makeDoc("3", "Paper 3", models.StatusApproved, base)
	noLevel.Subject = strPtr("Mathematics")

	got := FilterDocuments([]models.Document{match, wrongLevel, noLevel}, models.SearchCriteria{
		ClassLevel: "S4",
		Subject:    "Mathematics",
		Year:       "2026",
	})

	if !sameIDs(got, []string{"1"}) {
		t.Errorf("got %v, want [1]", idsOf(got))
	}
}

func TestFilterDocuments_TagsMatchAny(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock := makeDoc("1", "Mock Paper", models.StatusApproved, base)
	mock.Tags = []string{"Mock", "Term 1"}

	national := makeDoc("2", "National Paper", models.StatusApproved, base.Add(time.Hour))
	national.Tags = []string{"National Exam"}

	untagged := makeDoc("3", "Untagged", models.StatusApproved, base.Add(2*time.Hour))

	got := FilterDocuments([]models.Document{mock, national, untagged}, models.SearchCriteria{
		Tags: []string{"Mock", "National Exam"},
		Sort: models.SortOldest,
	})

	if !sameIDs(got, []string{"1", "2"}) {
		t.Errorf("got %v, want [1 2]", idsOf(got))
	}
}

func TestFilterDocuments_ExcludesTrashed(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	live := makeDoc("1", "Live", models.StatusApproved, base)
	trashed := makeDoc("2", "Trashed", models.StatusApproved, base)
	now := time.Now()
	trashed.DeletedAt = &now

	got := FilterDocuments([]models.Document{live, trashed}, models.SearchCriteria{})

	if !sameIDs(got, []string{"1"}) {
		t.Errorf("got %v, want [1]", idsOf(got))
	}
}

func TestFilterDocuments_SortOrders(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a := makeDoc("a", "banana", models.StatusApproved, base)
	a.Downloads = 3
	b := makeDoc("b", "Apple", models.StatusApproved, base.Add(time.Hour))
	b.Downloads = 9
	c := makeDoc("c", "cherry", models.StatusApproved, base.Add(2*time.Hour))
	c.Downloads = 9

	docs := []models.Document{a, b, c}

	tests := []struct {
		name string
		sort models.SortOrder
		want []string
	}{
		{"newest first", models.SortNewest, []string{"c", "b", "a"}},
		{"oldest first", models.SortOldest, []string{"a", "b", "c"}},
		{"downloads desc, name breaks ties", models.SortDownloads, []string{"b", "c", "a"}},
		{"name ascending case-insensitive", models.SortAZ, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDocuments(docs, models.SearchCriteria{Sort: tt.sort})
			if !sameIDs(got, tt.want) {
				t.Errorf("got %v, want %v", idsOf(got), tt.want)
			}
		})
	}
}

func TestSearchPublic_PinsApproved(t *testing.T) {
	ctx := context.Background()
	docRepo := newFakeDocumentRepo()
	svc := newTestDocumentService(docRepo, newFakeFolderRepo())

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	docRepo.add(makeDoc("approved", "Paper", models.StatusApproved, base))
	docRepo.add(makeDoc("pending", "Paper", models.StatusPending, base))
	docRepo.add(makeDoc("rejected", "Paper", models.StatusRejected, base))

	// Even an explicit pending filter cannot widen the public surface.
	got, err := svc.SearchPublic(ctx, models.SearchCriteria{Status: models.StatusPending})
	if err != nil {
		t.Fatalf("SearchPublic() error = %v", err)
	}
	if !sameIDs(got, []string{"approved"}) {
		t.Errorf("got %v, want [approved]", idsOf(got))
	}
}

func TestListAdmin_HonorsStatusFilter(t *testing.T) {
	ctx := context.Background()
	docRepo := newFakeDocumentRepo()
	svc := newTestDocumentService(docRepo, newFakeFolderRepo())

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	docRepo.add(makeDoc("approved", "Paper A", models.StatusApproved, base))
	docRepo.add(makeDoc("pending", "Paper B", models.StatusPending, base.Add(time.Hour)))

	got, err := svc.ListAdmin(ctx, models.SearchCriteria{Status: models.StatusPending}, dos)
	if err != nil {
		t.Fatalf("ListAdmin() error = %v", err)
	}
	if !sameIDs(got, []string{"pending"}) {
		t.Errorf("got %v, want [pending]", idsOf(got))
	}

	all, err := svc.ListAdmin(ctx, models.SearchCriteria{}, dos)
	if err != nil {
		t.Fatalf("ListAdmin() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered admin list has %d entries, want 2", len(all))
	}
}

func TestListAdmin_TeacherSeesOwnUploads(t *testing.T) {
	ctx := context.Background()
	docRepo := newFakeDocumentRepo()
	svc := newTestDocumentService(docRepo, newFakeFolderRepo())

	// A teacher submits a paper and then checks on its review status.
	own, err := svc.Submit(ctx, validSubmitRequest())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	colleague := makeDoc("colleague", "Colleague Paper", models.StatusApproved, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	colleague.UploadedBy = "t-2"
	docRepo.add(colleague)

	got, err := svc.ListAdmin(ctx, models.SearchCriteria{}, teacher)
	if err != nil {
		t.Fatalf("ListAdmin() error = %v", err)
	}
	if !sameIDs(got, []string{own.ID}) {
		t.Fatalf("teacher list = %v, want [%s]", idsOf(got), own.ID)
	}
	if got[0].Status != models.StatusPending {
		t.Errorf("status = %s, want %s", got[0].Status, models.StatusPending)
	}

	// The director still sees the whole catalogue.
	all, err := svc.ListAdmin(ctx, models.SearchCriteria{}, dos)
	if err != nil {
		t.Fatalf("ListAdmin() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("director list has %d entries, want 2", len(all))
	}
}
