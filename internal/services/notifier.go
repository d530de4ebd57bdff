package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"wellness-backend/internal/models"
)

// UserChannel is the pub/sub channel the websocket hub listens on for a user.
func UserChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user_updates:%s", userID.String())
}

// Notifier publishes live dashboard updates via Redis pub/sub.
type Notifier struct {
	redis *redis.Client
}

func NewNotifier(redisClient *redis.Client) *Notifier {
	return &Notifier{redis: redisClient}
}

// PublishUpdate is best effort: a failed publish is logged, not returned.
func (n *Notifier) PublishUpdate(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.WithError(err).Warn("failed to encode live update")
		return
	}
	if err := n.redis.Publish(ctx, UserChannel(userID), string(data)).Err(); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("failed to publish live update")
	}
}
