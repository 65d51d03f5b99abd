package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsWebhookEventProcessed reports whether the gateway event with the given ID
// has already been processed.
func (ms *MongoStorage) IsWebhookEventProcessed(eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	count, err := ms.webhookEvents.CountDocuments(ctx, bson.M{"_id": eventID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ClaimWebhookEvent records the gateway event ID in the processed ledger. The
// unique _id insert makes the claim atomic: exactly one of any number of
// concurrent deliveries gets true, the rest get false.
func (ms *MongoStorage) ClaimWebhookEvent(eventID, eventType string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	event := &WebhookEvent{
		ID:          eventID,
		Type:        eventType,
		ProcessedAt: time.Now(),
	}
	if _, err := ms.webhookEvents.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReleaseWebhookEvent removes the event from the ledger, so a delivery whose
// processing failed after claiming can be retried by the gateway.
func (ms *MongoStorage) ReleaseWebhookEvent(eventID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, err := ms.webhookEvents.DeleteOne(ctx, bson.M{"_id": eventID})
	return err
}
