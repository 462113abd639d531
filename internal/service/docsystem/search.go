package docsystem

import (
	"sort"
	"strings"

	"archiva/internal/domain/models"
)

// FilterDocuments applies criteria to a document snapshot and returns the
// matches in the requested order. Pure function; the input slice is not
// reordered or mutated.
//
// Criteria combine with AND. The free-text term matches case-insensitively
// as a substring of name, description, subject, or any tag. Within Tags a
// document qualifies by carrying at least one of the requested tags.
func FilterDocuments(docs []models.Document, criteria models.SearchCriteria) []models.Document {
	text := strings.ToLower(strings.TrimSpace(criteria.Text))

	matches := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Trashed() {
			continue
		}
		if criteria.Status != "" && doc.Status != criteria.Status {
			continue
		}
		if criteria.ClassLevel != "" && (doc.ClassLevel == nil || *doc.ClassLevel != criteria.ClassLevel) {
			continue
		}
		if criteria.Subject != "" && (doc.Subject == nil || *doc.Subject != criteria.Subject) {
			continue
		}
		if criteria.Year != "" && (doc.Year == nil || *doc.Year != criteria.Year) {
			continue
		}
		if len(criteria.Tags) > 0 && !hasAnyTag(doc.Tags, criteria.Tags) {
			continue
		}
		if text != "" && !matchesText(&doc, text) {
			continue
		}
		matches = append(matches, doc)
	}

	sortDocuments(matches, criteria.Sort)

	return matches
}

func matchesText(doc *models.Document, text string) bool {
	if strings.Contains(strings.ToLower(doc.Name), text) {
		return true
	}
	if doc.Description != nil && strings.Contains(strings.ToLower(*doc.Description), text) {
		return true
	}
	if doc.Subject != nil && strings.Contains(strings.ToLower(*doc.Subject), text) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	return false
}

func hasAnyTag(docTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range docTags {
			if t == w {
				return true
			}
		}
	}
	return false
}

func sortDocuments(docs []models.Document, order models.SortOrder) {
	switch order {
	case models.SortOldest:
		sort.SliceStable(docs, func(i, j int) bool {
			if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
				return docs[i].CreatedAt.Before(docs[j].CreatedAt)
			}
			return docs[i].ID < docs[j].ID
		})
	case models.SortDownloads:
		sort.SliceStable(docs, func(i, j int) bool {
			if docs[i].Downloads != docs[j].Downloads {
				return docs[i].Downloads > docs[j].Downloads
			}
			return strings.ToLower(docs[i].Name) < strings.ToLower(docs[j].Name)
		})
	case models.SortAZ:
		sort.SliceStable(docs, func(i, j int) bool {
			ni, nj := strings.ToLower(docs[i].Name), strings.ToLower(docs[j].Name)
			if ni != nj {
				return ni < nj
			}
			return docs[i].ID < docs[j].ID
		})
	default: // SortNewest
		sort.SliceStable(docs, func(i, j int) bool {
			if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
				return docs[i].CreatedAt.After(docs[j].CreatedAt)
			}
			return docs[i].ID < docs[j].ID
		})
	}
}
