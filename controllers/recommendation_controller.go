package controllers

import (
	"context"
	"net/http"

	"linkup_server/ai"
	"linkup_server/services"
	"linkup_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// RecommendationController exposes AI-driven attendee matching. Fresh
// generation goes through the coordinator; a stale copy from the
// Recommendations table serves as the fallback when the AI service is down.
type RecommendationController struct {
	Attendees       *services.AttendeeService
	Recommendations *services.RecommendationService
	Coordinator     *ai.Coordinator
}

// NewRecommendationController creates a new RecommendationController instance
func NewRecommendationController(attendees *services.AttendeeService, recommendations *services.RecommendationService, coordinator *ai.Coordinator) *RecommendationController {
	return &RecommendationController{Attendees: attendees, Recommendations: recommendations, Coordinator: coordinator}
}

// HandleGenerateRecommendations submits the attendee's profile to the AI
// service and returns the matches for their event. Concurrent requests for
// the same event share a single upstream round trip.
func (rc *RecommendationController) HandleGenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	attendeeID := mux.Vars(r)["attendeeId"]

	attendee, ok := authorizeAttendee(w, r, rc.Attendees, attendeeID)
	if !ok {
		return
	}

	request, err := rc.Attendees.BuildRecommendationRequest(r.Context(), attendee)
	if err != nil {
		log.Error().Err(err).Str("attendeeId", attendee.ID).Msg("Recommendation request build failed")
		utils.ServerError(w, "Failed to generate recommendations")
		return
	}

	response, err := rc.Coordinator.GetRecommendations(r.Context(), request)
	if err != nil {
		log.Warn().Err(err).
			Str("eventId", attendee.EventID).
			Str("attendeeId", attendee.ID).
			Msg("AI recommendation call failed, serving stored results")
		rc.serveStored(w, r.Context(), attendee.EventID, attendee.ID)
		return
	}

	if err := rc.Recommendations.UpsertRecommendations(r.Context(), attendee.EventID, response.Recommendations); err != nil {
		log.Error().Err(err).Str("eventId", attendee.EventID).Msg("Recommendation persistence failed")
	}

	matches := make([]ai.RecommendationItem, 0, len(response.Recommendations))
	for _, item := range response.Recommendations {
		if item.SourceAttendeeID == attendee.ID && item.TargetAttendeeID != attendee.ID {
			matches = append(matches, item)
		}
	}

	utils.SendSuccess(w, "Recommendations generated successfully", map[string]interface{}{
		"eventId":         attendee.EventID,
		"attendeeId":      attendee.ID,
		"stale":           false,
		"recommendations": matches,
	}, http.StatusOK)
}

// HandleGetRecommendations returns the persisted matches for the attendee
// without contacting the AI service.
func (rc *RecommendationController) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	attendeeID := mux.Vars(r)["attendeeId"]

	attendee, ok := authorizeAttendee(w, r, rc.Attendees, attendeeID)
	if !ok {
		return
	}

	edges, err := rc.Recommendations.GetStoredRecommendations(r.Context(), attendee.EventID, attendee.ID)
	if err != nil {
		log.Error().Err(err).Str("attendeeId", attendee.ID).Msg("Stored recommendations lookup failed")
		utils.ServerError(w, "Failed to retrieve recommendations")
		return
	}

	utils.SendSuccess(w, "Recommendations retrieved successfully", map[string]interface{}{
		"eventId":         attendee.EventID,
		"attendeeId":      attendee.ID,
		"recommendations": edges,
	}, http.StatusOK)
}

func (rc *RecommendationController) serveStored(w http.ResponseWriter, ctx context.Context, eventID, attendeeID string) {
	edges, err := rc.Recommendations.GetStoredRecommendations(ctx, eventID, attendeeID)
	if err != nil {
		log.Error().Err(err).Str("attendeeId", attendeeID).Msg("Stored recommendations lookup failed")
		utils.ServerError(w, "Failed to generate recommendations")
		return
	}

	utils.SendSuccess(w, "Serving previously generated recommendations", map[string]interface{}{
		"eventId":         eventID,
		"attendeeId":      attendeeID,
		"stale":           true,
		"recommendations": edges,
	}, http.StatusOK)
}
