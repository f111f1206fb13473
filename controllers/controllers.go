package controllers

import (
	"net/http"

	"linkup_server/middleware"
	"linkup_server/models"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/rs/zerolog/log"
)

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.SendSuccess(w, "Server is running!", nil, http.StatusOK)
}

// WelcomeHandler provides a welcome message
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	utils.SendSuccess(w, "Welcome to the server! This is the LinkUp API.", nil, http.StatusOK)
}

// authorizeAttendee loads the attendee named in the path and checks the
// caller may act on it: either the attendee belongs to the authenticated
// user, or the caller holds a visitor token for that exact attendee. It
// writes the error response itself when the check fails.
func authorizeAttendee(w http.ResponseWriter, r *http.Request, attendees *services.AttendeeService, attendeeID string) (*models.Attendee, bool) {
	user := middleware.UserFromContext(r.Context())
	tokenAttendee := middleware.AttendeeFromContext(r.Context())
	if user == nil && tokenAttendee == nil {
		utils.SendError(w, "Authentication required",
			[]utils.FieldError{{Field: "token", Message: "No valid token provided"}}, http.StatusUnauthorized)
		return nil, false
	}

	attendee, err := attendees.GetAttendeeByID(r.Context(), attendeeID)
	if err != nil {
		log.Error().Err(err).Str("attendeeId", attendeeID).Msg("Attendee lookup failed")
		utils.ServerError(w, "Failed to load attendee")
		return nil, false
	}
	if attendee == nil || !attendee.IsActive {
		utils.SendError(w, "Attendee not found",
			[]utils.FieldError{{Field: "attendeeId", Message: "Attendee with specified ID does not exist"}}, http.StatusNotFound)
		return nil, false
	}

	if user != nil && attendee.UserID == user.ID {
		return attendee, true
	}
	if tokenAttendee != nil && tokenAttendee.ID == attendee.ID {
		return attendee, true
	}

	utils.SendError(w, "Authorization Error",
		[]utils.FieldError{{Field: "permission", Message: "You cannot act on behalf of this attendee"}}, http.StatusForbidden)
	return nil, false
}
