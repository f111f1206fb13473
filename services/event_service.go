package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"linkup_server/models"
	"linkup_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Events default to a two-hour window when no end time is given.
const defaultEventDuration = 2 * time.Hour

// EventService handles networking-event CRUD.
type EventService struct {
	Dynamo *DynamoService
}

// CreateEvent stores a new event owned by the given user.
func (es *EventService) CreateEvent(ctx context.Context, name string, start time.Time, detail, locationName string, latitude, longitude float64, createdBy string) (*models.Event, error) {
	now := time.Now().UTC()
	event := models.Event{
		ID:                  uuid.NewString(),
		Name:                name,
		Start:               start,
		End:                 start.Add(defaultEventDuration),
		Detail:              detail,
		LocationName:        locationName,
		Latitude:            latitude,
		Longitude:           longitude,
		Status:              models.EventStatusUpcoming,
		CurrentParticipants: 0,
		CreatedBy:           createdBy,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := es.Dynamo.PutItem(ctx, models.EventsTable, event); err != nil {
		return nil, err
	}

	log.Info().Str("eventId", event.ID).Str("name", event.Name).Msg("Event created")
	return &event, nil
}

// GetEventByID fetches an event. Returns nil without an error when it does
// not exist; callers decide how to treat inactive events.
func (es *EventService) GetEventByID(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	err := es.Dynamo.GetItem(ctx, models.EventsTable, map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: eventID},
	}, &event)
	if err == ErrItemNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns one page of active events matching the search term,
// along with the total match count.
func (es *EventService) ListEvents(ctx context.Context, p utils.Pagination) ([]models.Event, int, error) {
	var events []models.Event
	if err := es.Dynamo.ScanItems(ctx, models.EventsTable, &events); err != nil {
		return nil, 0, err
	}

	filtered := events[:0]
	search := strings.ToLower(p.Search)
	for _, event := range events {
		if !event.IsActive {
			continue
		}
		if search != "" && !matchesSearch(event, search) {
			continue
		}
		filtered = append(filtered, event)
	}

	sortEvents(filtered, p.SortBy, p.SortOrder)

	total := len(filtered)
	startIdx := p.Offset()
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + p.Limit
	if endIdx > total {
		endIdx = total
	}
	return filtered[startIdx:endIdx], total, nil
}

func matchesSearch(event models.Event, search string) bool {
	return strings.Contains(strings.ToLower(event.Name), search) ||
		strings.Contains(strings.ToLower(event.Detail), search) ||
		strings.Contains(strings.ToLower(event.LocationName), search)
}

func sortEvents(events []models.Event, sortBy, sortOrder string) {
	less := func(a, b models.Event) bool { return a.CreatedAt.After(b.CreatedAt) } // newest first by default
	switch sortBy {
	case "name":
		less = func(a, b models.Event) bool { return a.Name < b.Name }
	case "start":
		less = func(a, b models.Event) bool { return a.Start.Before(b.Start) }
	case "createdAt":
		less = func(a, b models.Event) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	if sortBy != "" && sortOrder == "desc" {
		inner := less
		less = func(a, b models.Event) bool { return inner(b, a) }
	}
	sort.SliceStable(events, func(i, j int) bool { return less(events[i], events[j]) })
}

// UpdateEvent overwrites the stored event.
func (es *EventService) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	event.UpdatedAt = time.Now().UTC()
	if err := es.Dynamo.PutItem(ctx, models.EventsTable, *event); err != nil {
		return nil, err
	}
	return event, nil
}

// SoftDeleteEvent disables an event without removing its row.
func (es *EventService) SoftDeleteEvent(ctx context.Context, eventID string) error {
	_, err := es.Dynamo.UpdateItem(ctx, models.EventsTable,
		map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: eventID},
		},
		"SET isActive = :inactive, updatedAt = :now",
		map[string]types.AttributeValue{
			":inactive": &types.AttributeValueMemberBOOL{Value: false},
			":now":      &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		nil,
	)
	return err
}

// IncrementParticipants bumps the participant counter after an attendee
// registers.
func (es *EventService) IncrementParticipants(ctx context.Context, eventID string) error {
	_, err := es.Dynamo.UpdateItem(ctx, models.EventsTable,
		map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: eventID},
		},
		"SET currentParticipants = currentParticipants + :one",
		map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		nil,
	)
	return err
}
