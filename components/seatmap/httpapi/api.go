package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-seatmap/components/seatmap"
	"github.com/goliatone/go-seatmap/components/seatmap/commands"
	"github.com/goliatone/go-seatmap/components/seatmap/queries"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Load      gocommand.Commander[commands.LoadTemplateInput]
	Wheel     gocommand.Commander[commands.WheelInput]
	Drag      gocommand.Commander[commands.DragInput]
	Resize    gocommand.Commander[commands.ResizeInput]
	Close     gocommand.Commander[commands.CloseSessionInput]
	Viewport  gocommand.Querier[queries.SessionInput, seatmap.ViewportState]
	Inventory gocommand.Querier[queries.SessionInput, seatmap.InventoryReport]
}

func (h *Handlers) HandleLoadTemplate(w http.ResponseWriter, r *http.Request) {
	var payload commands.LoadTemplateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var out seatmap.LoadTemplateResult
	payload.Output = &out
	if err := h.Load.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) HandleWheel(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.WheelInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var out seatmap.ViewportState
	payload.SessionID = sessionID
	payload.Output = &out
	if err := h.Wheel.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) HandleDrag(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.DragInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var out seatmap.ViewportState
	payload.SessionID = sessionID
	payload.Output = &out
	if err := h.Drag.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) HandleResize(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.ResizeInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var out seatmap.ViewportState
	payload.SessionID = sessionID
	payload.Output = &out
	if err := h.Resize.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) HandleCloseSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.Close.Execute(r.Context(), commands.CloseSessionInput{SessionID: sessionID}); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleViewport(w http.ResponseWriter, r *http.Request, sessionID string) {
	state, err := h.Viewport.Query(r.Context(), queries.SessionInput{SessionID: sessionID})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleInventory(w http.ResponseWriter, r *http.Request, sessionID string) {
	report, err := h.Inventory.Query(r.Context(), queries.SessionInput{SessionID: sessionID})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// StatusFor maps builder errors onto HTTP status codes.
func StatusFor(err error) int {
	return statusFor(err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, seatmap.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, seatmap.ErrInvalidScene),
		errors.Is(err, seatmap.ErrSceneRequired),
		errors.Is(err, seatmap.ErrSessionIDRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
