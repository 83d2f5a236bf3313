// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/pkg/mailer"
	"featured-listing-be/internal/repository/contract"
	"featured-listing-be/internal/websocket"
	"featured-listing-be/pkg/admin/mapper"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the activation topic: one receipt email to the
// vendor and one live-feed event per purchase. Both are best-effort side
// effects; the placement itself was committed before the message was
// published.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	resourceDir  contract.ResourceDirectory
	vendorDir    contract.VendorDirectory
	emailService mailer.IEmailService
	feedHub      *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	resourceDir contract.ResourceDirectory,
	vendorDir contract.VendorDirectory,
	emailService mailer.IEmailService,
	feedHub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		resourceDir:  resourceDir,
		vendorDir:    vendorDir,
		emailService: emailService,
		feedHub:      feedHub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishFeatureActivatedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing activation side effects for record %s", payload.FeatureRecordId)

	resourceName := mapper.DeletedResourceName
	resource, err := cs.resourceDir.FindById(ctx, entity.ResourceType(payload.ResourceType), payload.ResourceId)
	if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		log.Printf("[ERROR] Failed to resolve resource %s/%s: %v", payload.ResourceType, payload.ResourceId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if resource != nil {
		resourceName = resource.Name
	}

	if cs.feedHub != nil {
		cs.feedHub.Broadcast(websocket.FeedEvent{
			Event: "feature_activated",
			Data: map[string]interface{}{
				"feature_record_id": payload.FeatureRecordId,
				"resource_type":     payload.ResourceType,
				"resource_id":       payload.ResourceId,
				"resource_name":     resourceName,
				"amount":            payload.Amount,
				"featured_to":       payload.FeaturedTo,
				"extended":          payload.Extended,
			},
		})
	}

	vendor, err := cs.vendorDir.FindById(ctx, payload.VendorId)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			log.Printf("[WARN] Vendor %s not found, skipping receipt", payload.VendorId)
			msg.Ack() // Vendor deleted? Ack.
			return
		}
		log.Printf("[ERROR] Failed to resolve vendor %s: %v", payload.VendorId, err)
		msg.Nack()
		return
	}

	if err := cs.emailService.SendFeatureReceipt(vendor.Email, resourceName, payload.Amount, payload.FeaturedTo, payload.Extended); err != nil {
		log.Printf("[ERROR] Failed to send receipt to %s: %v", vendor.Email, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Activation side effects done for record %s", payload.FeatureRecordId)
	msg.Ack()
}
