// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationRequest is a recipient's expression of interest in a donation.
// Inserts are not deduplicated: a recipient clicking request twice creates
// two rows. That matches the product's observed behavior and is left as-is.
type DonationRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DonationID  primitive.ObjectID `bson:"donation_id" json:"donation_id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Status      string             `bson:"status" json:"status"` // pending on insert
	RequestedAt time.Time          `bson:"requested_at" json:"requested_at"`
}
