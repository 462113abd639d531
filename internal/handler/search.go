package handler

import (
	"net/http"
	"strings"

	"archiva/internal/domain/models"
	"archiva/internal/httputil"
)

// parseSearchCriteria reads filter parameters from the query string.
func parseSearchCriteria(r *http.Request) models.SearchCriteria {
	q := r.URL.Query()

	criteria := models.SearchCriteria{
		Text:       q.Get("q"),
		ClassLevel: q.Get("class_level"),
		Subject:    q.Get("subject"),
		Year:       q.Get("year"),
		Status:     models.DocumentStatus(q.Get("status")),
		Sort:       models.SortOrder(q.Get("sort")),
	}

	if tags := q.Get("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				criteria.Tags = append(criteria.Tags, t)
			}
		}
	}

	return criteria
}

// SearchDocuments filters the approved catalogue for the public site
// GET /api/documents/search
func (h *DocumentHandler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.SearchPublic(r.Context(), parseSearchCriteria(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// ListDocuments filters all live documents for the admin surface
// GET /api/admin/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	docs, err := h.docService.ListAdmin(r.Context(), parseSearchCriteria(r), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// GetVocabulary returns the controlled vocabularies the upload form offers
// GET /api/vocabulary
func (h *DocumentHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string][]string{
		"class_levels": models.ClassLevels,
		"subjects":     models.Subjects,
		"years":        models.Years,
		"tags":         models.DocumentTags,
	})
}
