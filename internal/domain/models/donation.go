// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation statuses. A donation only ever moves forward:
// available -> pending -> completed, or -> expired. Nothing in this
// application reverts a status.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// ValidStatus reports whether status is a known donation status.
func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusPending, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Default map center (Jakarta). Also the fallback coordinate when a pickup
// address cannot be geocoded.
const (
	DefaultLat = -6.2088
	DefaultLng = 106.8456
)

// FoodDonation is a food listing created by a donor. Latitude/Longitude are
// pointers because older rows may predate geocoding; markers are only placed
// for rows where both are set.
type FoodDonation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DonorID         primitive.ObjectID `bson:"donor_id" json:"donor_id"`
	FoodName        string             `bson:"food_name" json:"food_name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Quantity        string             `bson:"quantity" json:"quantity"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	ExpiryDate      time.Time          `bson:"expiry_date" json:"expiry_date"`
	PickupAddress   string             `bson:"pickup_address,omitempty" json:"pickup_address,omitempty"`
	PickupTimeStart string             `bson:"pickup_time_start,omitempty" json:"pickup_time_start,omitempty"`
	PickupTimeEnd   string             `bson:"pickup_time_end,omitempty" json:"pickup_time_end,omitempty"`
	ContactInfo     string             `bson:"contact_info,omitempty" json:"contact_info,omitempty"`
	ImageURL        string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Latitude        *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude       *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Status          string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
