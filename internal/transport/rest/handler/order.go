package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"preorder/internal/model"
	"preorder/internal/service"
	"preorder/internal/transport/rest/middleware"
)

// OrderHandler handles live answer mutations and order state reads
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// sessionScope checks the token's form scope and returns (formID, sessionID)
func sessionScope(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	formID := mux.Vars(r)["formId"]
	if formID != middleware.GetFormID(r.Context()) {
		writeError(w, http.StatusForbidden, "token not valid for this form")
		return "", "", false
	}
	return formID, middleware.GetSessionID(r.Context()), true
}

// SetAnswer handles PUT /v1/forms/{formId}/answers/{fieldId}. The body is
// the raw value: a JSON string or an array of strings.
func (h *OrderHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	formID, sessionID, ok := sessionScope(w, r)
	if !ok {
		return
	}
	fieldID := mux.Vars(r)["fieldId"]

	var value model.Value
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.orderSvc.SetAnswer(r.Context(), formID, sessionID, fieldID, value)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ClearAnswer handles DELETE /v1/forms/{formId}/answers/{fieldId}
func (h *OrderHandler) ClearAnswer(w http.ResponseWriter, r *http.Request) {
	formID, sessionID, ok := sessionScope(w, r)
	if !ok {
		return
	}
	fieldID := mux.Vars(r)["fieldId"]

	state, err := h.orderSvc.ClearAnswer(r.Context(), formID, sessionID, fieldID)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// State handles GET /v1/forms/{formId}/state
func (h *OrderHandler) State(w http.ResponseWriter, r *http.Request) {
	formID, sessionID, ok := sessionScope(w, r)
	if !ok {
		return
	}

	state, err := h.orderSvc.State(r.Context(), formID, sessionID)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionSubmitted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
