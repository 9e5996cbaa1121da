package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"preorder/internal/service"
	"preorder/internal/transport/rest/middleware"
)

// FormHandler handles form schema and session endpoints
type FormHandler struct {
	formSvc  *service.FormService
	orderSvc *service.OrderService
	authSvc  *service.AuthService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService, orderSvc *service.OrderService, authSvc *service.AuthService) *FormHandler {
	return &FormHandler{
		formSvc:  formSvc,
		orderSvc: orderSvc,
		authSvc:  authSvc,
	}
}

// OpenSession handles POST /v1/forms/{formId}/sessions
func (h *FormHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	session, err := h.orderSvc.OpenSession(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	token, err := h.authSvc.GenerateSessionToken(formID, session.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"sessionId": session.ID,
		"token":     token,
	})
}

// Get handles GET /v1/forms/{formId}: the schema, the gift sections with
// parsed thresholds, the session's answers and the current order state.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	if formID != middleware.GetFormID(r.Context()) {
		writeError(w, http.StatusForbidden, "token not valid for this form")
		return
	}
	sessionID := middleware.GetSessionID(r.Context())

	bundle, err := h.formSvc.LoadForm(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	answers, err := h.orderSvc.Answers(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	state, err := h.orderSvc.State(r.Context(), formID, sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"schema":  bundle.Schema,
		"gifts":   bundle.Sections,
		"answers": answers,
		"state":   state,
	})
}
