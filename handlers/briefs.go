package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mustafamoossawi/brief-server/brief"
	"github.com/mustafamoossawi/brief-server/middleware"
	"github.com/mustafamoossawi/brief-server/models"
	"github.com/mustafamoossawi/brief-server/render"
)

type BriefHandler struct {
	orch *brief.Orchestrator
}

func NewBriefHandler(orch *brief.Orchestrator) *BriefHandler {
	return &BriefHandler{orch: orch}
}

// StartBrief handles POST /briefs
func (h *BriefHandler) StartBrief(w http.ResponseWriter, r *http.Request) {
	// The body is optional. A first-time visitor has no draft key yet.
	var req models.StartBriefRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	resp, err := h.orch.Start(req.DraftKey)
	if err != nil {
		slog.Error("failed to start brief", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start brief")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetBrief handles GET /briefs/:id
func (h *BriefHandler) GetBrief(w http.ResponseWriter, r *http.Request) {
	state, err := h.orch.State(r.PathValue("id"))
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// UpdateBrief handles PATCH /briefs/:id
func (h *BriefHandler) UpdateBrief(w http.ResponseWriter, r *http.Request) {
	var patch models.BriefPatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	state, err := h.orch.Update(r.PathValue("id"), patch)
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// Restore handles POST /briefs/:id/restore
func (h *BriefHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req models.RestoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	state, err := h.orch.Restore(r.PathValue("id"), req.Action)
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// AddMoodboard handles POST /briefs/:id/moodboard
func (h *BriefHandler) AddMoodboard(w http.ResponseWriter, r *http.Request) {
	var req models.AddMoodboardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Image == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image is required")
		return
	}

	state, err := h.orch.AddMoodboard(r.PathValue("id"), req.Image)
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// RemoveMoodboard handles DELETE /briefs/:id/moodboard/:index
func (h *BriefHandler) RemoveMoodboard(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "index must be a number")
		return
	}

	state, err := h.orch.RemoveMoodboard(r.PathValue("id"), index)
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// Next handles POST /briefs/:id/next
func (h *BriefHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.orch.Next(r.PathValue("id"))
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// Back handles POST /briefs/:id/back
func (h *BriefHandler) Back(w http.ResponseWriter, r *http.Request) {
	state, err := h.orch.Back(r.PathValue("id"))
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// RenderPDF handles POST /briefs/:id/pdf
//
// Produces the document for a local download without submitting anything.
func (h *BriefHandler) RenderPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.orch.RenderPDF(r.Context(), r.PathValue("id"))
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RenderPDFResponse{
		Success:   true,
		Filename:  doc.Filename,
		PDFBase64: base64.StdEncoding.EncodeToString(doc.Bytes),
	})
}

// Submit handles POST /briefs/:id/submit
func (h *BriefHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := h.orch.Submit(r.Context(), r.PathValue("id"), req.Confirmed)
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Reset handles POST /briefs/:id/reset
func (h *BriefHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.orch.Reset(r.PathValue("id"))
	if err != nil {
		writeOrchestratorError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

// writeOrchestratorError maps pipeline errors onto HTTP statuses. The
// error text goes into the details field so the form can show it.
func writeOrchestratorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, brief.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, brief.ErrNotConfirmed),
		errors.Is(err, brief.ErrNoDraft),
		errors.Is(err, brief.ErrBadRestoreAction),
		errors.Is(err, models.ErrBadImage):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, brief.ErrBusy),
		errors.Is(err, brief.ErrAlreadySubmitted),
		errors.Is(err, brief.ErrWrongStep),
		errors.Is(err, models.ErrMoodboardFull):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrImageTooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, models.ErrNoSuchImage):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, brief.ErrEmailNotConfigured),
		errors.Is(err, render.ErrBackendUnavailable),
		errors.Is(err, render.ErrRenderTimeout):
		slog.Error("brief pipeline failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
	default:
		slog.Error("brief request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}
