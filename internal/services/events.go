package services

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EventPublisher publishes recipe events to Kafka. A nil writer disables it.
type EventPublisher struct {
	writer KafkaWriter
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish sends one event keyed by recipe id. Failures are logged, not returned:
// the write the event describes has already been committed.
func (p *EventPublisher) Publish(ctx context.Context, ownerID, recipeID int64, operation string) {
	event := models.RecipeEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    ownerID,
		RecipeID:  recipeID,
		Operation: operation,
	}

	if p == nil || p.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "operation", operation)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal recipe event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(recipeID, 10)),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish recipe event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Recipe event published to Kafka", "event_id", event.EventID, "operation", operation, "recipe_id", recipeID)
	}
}
