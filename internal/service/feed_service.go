// FILE: internal/service/feed_service.go
package service

import (
	"context"
	"strings"

	"featured-listing-be/internal/pkg/logger"
	"featured-listing-be/internal/websocket"
	"featured-listing-be/pkg/events"
	pktNats "featured-listing-be/pkg/nats"
)

// FeedService relays lifecycle events from the platform event stream onto the
// admin live feed. Purchase activations reach the hub through the in-process
// receipt pipeline, which decorates them with listing names; this worker
// covers the admin-initiated mutations, which can originate on any instance.
type FeedService struct {
	subscriber *pktNats.Subscriber
	feedHub    *websocket.Hub
	logger     logger.ILogger
}

func NewFeedService(subscriber *pktNats.Subscriber, feedHub *websocket.Hub, log logger.ILogger) *FeedService {
	return &FeedService{
		subscriber: subscriber,
		feedHub:    feedHub,
		logger:     log,
	}
}

// Start subscribes with a durable consumer and blocks until the subscription
// is set up. Run it in a goroutine from the container.
func (s *FeedService) Start() {
	err := s.subscriber.Subscribe("events.>", "feature-feed-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("FeedService", "failed to subscribe to event stream", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("FeedService", "listening for lifecycle events", nil)
}

func (s *FeedService) handleEvent(ctx context.Context, event events.Event) error {
	// The NATS subject includes the stream prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	switch typeCode {
	case "FEATURE_EXTENDED", "FEATURE_UNFEATURED":
		if s.feedHub != nil {
			s.feedHub.Broadcast(websocket.FeedEvent{
				Event: strings.ToLower(typeCode),
				Data:  event.Payload(),
			})
		}
	}
	// Unknown event types are acked; this worker only feeds the dashboard.
	return nil
}
