package event_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salsa-storefront/internal/events"
	"salsa-storefront/internal/logger"
	"salsa-storefront/internal/models"
	"salsa-storefront/internal/utils"
)

type Handler struct {
	EventService *events.Service
	Logger       *logger.Logger
}

// ListEvents serves the events screen. The filter query selects
// upcoming (default), past or all.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var list []models.Event
	switch r.URL.Query().Get("filter") {
	case "past":
		list = h.EventService.Past()
	case "all":
		list = h.EventService.Events()
	default:
		list = h.EventService.Upcoming()
	}
	if list == nil {
		list = []models.Event{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListEvents: failed to encode response: %v", err))
	}
}

type eventRequest struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Address     string `json:"address"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description,omitempty"`
}

func (r eventRequest) toEvent() models.Event {
	return models.Event{
		Title:       r.Title,
		Location:    r.Location,
		Address:     r.Address,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Description: r.Description,
	}
}

func (r eventRequest) validate() string {
	if r.Title == "" || r.Location == "" || r.Address == "" || r.Date == "" || r.StartTime == "" || r.EndTime == "" {
		return "title, location, address, date, start_time and end_time are required"
	}
	return ""
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Could not create event", msg))
		return
	}

	event, err := h.EventService.AddEvent(r.Context(), req.toEvent())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Could not create event", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Event created", event))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Could not update event", msg))
		return
	}

	if err := h.EventService.UpdateEvent(r.Context(), eventID, req.toEvent()); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateEvent: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Could not update event", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Event updated", nil))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if err := h.EventService.DeleteEvent(r.Context(), eventID); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteEvent: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Could not delete event", err.Error()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
