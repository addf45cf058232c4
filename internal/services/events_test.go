package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := NewMockKafkaWriter(ctrl)
	p := NewEventPublisher(mockKafka)

	mockKafka.EXPECT().WriteMessages(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, "42", string(msgs[0].Key))

			var event models.RecipeEvent
			require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, int64(7), event.UserID)
			assert.Equal(t, int64(42), event.RecipeID)
			assert.Equal(t, models.RecipeCreated, event.Operation)
			assert.NotEmpty(t, event.EventID)
			assert.NotZero(t, event.Timestamp)
			return nil
		})
	p.Publish(ctx, 7, 42, models.RecipeCreated)

	// publishing errors are swallowed
	mockKafka.EXPECT().WriteMessages(ctx, gomock.Any()).Return(errors.New("kafka error")).Times(1)
	p.Publish(ctx, 7, 42, models.RecipeDeleted)
}

func TestEventPublisher_NoWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		NewEventPublisher(nil).Publish(context.Background(), 1, 2, models.RecipeUpdated)
	})
}
