package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"linkup_server/ai"
	"linkup_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// RecommendationService persists recommendation edges returned by the AI
// coordinator so clients can fall back to them when a fresh call fails.
type RecommendationService struct {
	Dynamo *DynamoService
}

// UpsertRecommendations stores every returned edge, overwriting earlier
// scores for the same pair. Items naming their source as the target are
// skipped; attendees are never matched with themselves.
func (rs *RecommendationService) UpsertRecommendations(ctx context.Context, eventID string, items []ai.RecommendationItem) error {
	now := time.Now().UTC()
	stored := 0
	for _, item := range items {
		if item.SourceAttendeeID == item.TargetAttendeeID {
			continue
		}
		edge := models.Recommendation{
			EventID:          eventID,
			EdgeID:           fmt.Sprintf("%s#%s", item.SourceAttendeeID, item.TargetAttendeeID),
			SourceAttendeeID: item.SourceAttendeeID,
			TargetAttendeeID: item.TargetAttendeeID,
			Score:            item.Score,
			Reasoning:        item.Reasoning,
			IsActive:         true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := rs.Dynamo.PutItem(ctx, models.RecommendationsTable, edge); err != nil {
			return err
		}
		stored++
	}

	log.Info().Str("eventId", eventID).Int("count", stored).Msg("Recommendations persisted")
	return nil
}

// GetStoredRecommendations returns the active persisted edges for one source
// attendee, best score first.
func (rs *RecommendationService) GetStoredRecommendations(ctx context.Context, eventID, sourceAttendeeID string) ([]models.Recommendation, error) {
	var edges []models.Recommendation
	err := rs.Dynamo.QueryItems(ctx, models.RecommendationsTable, "",
		"eventId = :eventId AND begins_with(edgeId, :source)",
		map[string]types.AttributeValue{
			":eventId": &types.AttributeValueMemberS{Value: eventID},
			":source":  &types.AttributeValueMemberS{Value: sourceAttendeeID + "#"},
		},
		&edges,
	)
	if err != nil {
		return nil, err
	}

	active := edges[:0]
	for _, edge := range edges {
		if edge.IsActive {
			active = append(active, edge)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Score > active[j].Score })
	return active, nil
}
