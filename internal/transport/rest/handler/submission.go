package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"preorder/internal/service"
	"preorder/internal/transport/rest/middleware"
)

// SubmissionHandler handles submit and host-side submission listing
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// SubmitRequest is the request body for finalizing a session
type SubmitRequest struct {
	Email string `json:"email,omitempty"` // Confirmation mail recipient
}

// Submit handles POST /v1/forms/{formId}/submit
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID, sessionID, ok := sessionScope(w, r)
	if !ok {
		return
	}

	// Body is optional; a malformed one is still rejected
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	submission, err := h.submissionSvc.Submit(r.Context(), formID, sessionID, req.Email)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

// List handles GET /v1/forms/{formId}/submissions (host only)
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	if middleware.GetHostID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	submissions, err := h.submissionSvc.List(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": submissions})
}
