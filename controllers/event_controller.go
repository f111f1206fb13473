package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"linkup_server/middleware"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// EventController handles networking-event CRUD endpoints.
type EventController struct {
	Events *services.EventService
}

// NewEventController creates a new EventController instance
func NewEventController(events *services.EventService) *EventController {
	return &EventController{Events: events}
}

// HandleCreateEvent creates a new event owned by the authenticated user.
func (ec *EventController) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "auth", Message: "User not authenticated"}}, http.StatusUnauthorized)
		return
	}

	var request struct {
		Name        string  `json:"name" validate:"required,max=200"`
		Datetime    string  `json:"datetime" validate:"required"`
		Description string  `json:"description" validate:"omitempty,max=2000"`
		Location    string  `json:"location" validate:"omitempty,max=200"`
		Latitude    float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
		Longitude   float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, request.Datetime)
	if err != nil {
		utils.SendError(w, "Validation Error",
			[]utils.FieldError{{Field: "datetime", Message: "datetime must be an RFC 3339 timestamp"}}, http.StatusBadRequest)
		return
	}

	event, err := ec.Events.CreateEvent(r.Context(), request.Name, start, request.Description, request.Location, request.Latitude, request.Longitude, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("Create event error")
		utils.ServerError(w, "Create event failed")
		return
	}

	utils.SendSuccess(w, "Event created successfully", map[string]interface{}{"event": event}, http.StatusCreated)
}

// HandleGetEvents lists active events with pagination and search.
func (ec *EventController) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	pagination := utils.ParsePagination(r.URL.Query())

	events, total, err := ec.Events.ListEvents(r.Context(), pagination)
	if err != nil {
		log.Error().Err(err).Msg("Get events error")
		utils.ServerError(w, "Failed to retrieve events")
		return
	}

	utils.SendSuccess(w, "Events retrieved successfully",
		utils.NewListResponse(events, total, pagination.Limit), http.StatusOK)
}

// HandleGetEventByID returns one active event.
func (ec *EventController) HandleGetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["id"]

	event, err := ec.Events.GetEventByID(r.Context(), eventID)
	if err != nil {
		log.Error().Err(err).Str("eventId", eventID).Msg("Get event error")
		utils.ServerError(w, "Failed to retrieve event")
		return
	}
	if event == nil || !event.IsActive {
		utils.SendError(w, "Event not found",
			[]utils.FieldError{{Field: "id", Message: "Event with specified ID does not exist"}}, http.StatusNotFound)
		return
	}

	utils.SendSuccess(w, "Event details retrieved successfully", event, http.StatusOK)
}

// HandleUpdateEvent updates an event; only its creator may do so.
func (ec *EventController) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "auth", Message: "User not authenticated"}}, http.StatusUnauthorized)
		return
	}
	eventID := mux.Vars(r)["id"]

	var request struct {
		Name        *string  `json:"name" validate:"omitempty,max=200"`
		Datetime    *string  `json:"datetime"`
		Description *string  `json:"description" validate:"omitempty,max=2000"`
		Location    *string  `json:"location" validate:"omitempty,max=200"`
		Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
		Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.SendError(w, "Invalid request payload", nil, http.StatusBadRequest)
		return
	}
	if fieldErrors := utils.ValidateStruct(request); fieldErrors != nil {
		utils.SendError(w, "Validation Error", fieldErrors, http.StatusBadRequest)
		return
	}

	event, err := ec.Events.GetEventByID(r.Context(), eventID)
	if err != nil {
		log.Error().Err(err).Str("eventId", eventID).Msg("Update event error")
		utils.ServerError(w, "Event update failed")
		return
	}
	if event == nil || !event.IsActive {
		utils.SendError(w, "Event not found",
			[]utils.FieldError{{Field: "id", Message: "Event with the specified ID does not exist"}}, http.StatusNotFound)
		return
	}
	if event.CreatedBy != user.ID {
		utils.SendError(w, "Authorization Error",
			[]utils.FieldError{{Field: "permission", Message: "Only the event creator can update this event"}}, http.StatusForbidden)
		return
	}

	if request.Name != nil {
		event.Name = *request.Name
	}
	if request.Datetime != nil {
		start, err := time.Parse(time.RFC3339, *request.Datetime)
		if err != nil {
			utils.SendError(w, "Validation Error",
				[]utils.FieldError{{Field: "datetime", Message: "datetime must be an RFC 3339 timestamp"}}, http.StatusBadRequest)
			return
		}
		event.Start = start
		event.End = start.Add(2 * time.Hour)
	}
	if request.Description != nil {
		event.Detail = *request.Description
	}
	if request.Location != nil {
		event.LocationName = *request.Location
	}
	if request.Latitude != nil {
		event.Latitude = *request.Latitude
	}
	if request.Longitude != nil {
		event.Longitude = *request.Longitude
	}

	updated, err := ec.Events.UpdateEvent(r.Context(), event)
	if err != nil {
		log.Error().Err(err).Str("eventId", eventID).Msg("Update event error")
		utils.ServerError(w, "Event update failed")
		return
	}

	utils.SendSuccess(w, "Event updated successfully", updated, http.StatusOK)
}

// HandleDeleteEvent soft-deletes an event; only its creator may do so.
func (ec *EventController) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "auth", Message: "User not authenticated"}}, http.StatusUnauthorized)
		return
	}
	eventID := mux.Vars(r)["id"]

	event, err := ec.Events.GetEventByID(r.Context(), eventID)
	if err != nil {
		log.Error().Err(err).Str("eventId", eventID).Msg("Delete event error")
		utils.ServerError(w, "Event deletion failed")
		return
	}
	if event == nil || !event.IsActive {
		utils.SendError(w, "Event not found",
			[]utils.FieldError{{Field: "id", Message: "Event with the specified ID does not exist"}}, http.StatusNotFound)
		return
	}
	if event.CreatedBy != user.ID {
		utils.SendError(w, "Authorization Error",
			[]utils.FieldError{{Field: "permission", Message: "Only the event creator can delete this event"}}, http.StatusForbidden)
		return
	}

	if err := ec.Events.SoftDeleteEvent(r.Context(), eventID); err != nil {
		log.Error().Err(err).Str("eventId", eventID).Msg("Delete event error")
		utils.ServerError(w, "Event deletion failed")
		return
	}

	utils.SendSuccess(w, "Event deleted successfully", nil, http.StatusOK)
}
