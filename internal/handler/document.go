package handler

import (
	"log/slog"
	"net/http"

	"archiva/internal/domain/services"
	"archiva/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// HealthCheck responds with a simple status for load balancer probes
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitDocument creates a new pending document
// POST /api/documents
func (h *DocumentHandler) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req services.SubmitDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Actor = actor

	doc, err := h.docService.Submit(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ApproveDocument approves a pending document
// POST /api/documents/{id}/approve
func (h *DocumentHandler) ApproveDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	doc, err := h.docService.Approve(r.Context(), r.PathValue("id"), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

type rejectRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RejectDocument rejects a pending document with an optional reason
// POST /api/documents/{id}/reject
func (h *DocumentHandler) RejectDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req rejectRequest
	if r.ContentLength > 0 {
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	doc, err := h.docService.Reject(r.Context(), r.PathValue("id"), actor, req.Reason)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// RecordDownload bumps the download counter and returns the new count
// POST /api/documents/{id}/download
func (h *DocumentHandler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	count, err := h.docService.RecordDownload(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"downloads": count})
}

// DeleteDocument soft-deletes a document into the trash
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.docService.SoftDelete(r.Context(), r.PathValue("id"), actor); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreDocument brings a trashed document back
// POST /api/documents/{id}/restore
func (h *DocumentHandler) RestoreDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.docService.Restore(r.Context(), r.PathValue("id"), actor); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PurgeDocument permanently removes a trashed document
// DELETE /api/trash/{id}
func (h *DocumentHandler) PurgeDocument(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.docService.Purge(r.Context(), r.PathValue("id"), actor); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTrash lists trashed documents with purge eligibility
// GET /api/trash
func (h *DocumentHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	entries, err := h.docService.ListTrash(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// GetStats aggregates lifecycle counts for the admin dashboard
// GET /api/stats
func (h *DocumentHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	stats, err := h.docService.Stats(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
