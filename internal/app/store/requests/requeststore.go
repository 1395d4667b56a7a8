package requeststore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makanenak/makanenak/internal/domain/models"
)

// Store manages pickup requests. Inserts are intentionally not
// deduplicated; see models.DonationRequest.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("donation_requests")}
}

// EnsureIndexes creates the indexes request listings are served from.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "requested_at", Value: -1}},
			Options: options.Index().SetName("idx_requests_recipient"),
		},
		{
			Keys:    bson.D{{Key: "donation_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_requests_donation_status"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a pending request for the donation.
func (s *Store) Create(ctx context.Context, donationID, recipientID primitive.ObjectID) (models.DonationRequest, error) {
	req := models.DonationRequest{
		ID:          primitive.NewObjectID(),
		DonationID:  donationID,
		RecipientID: recipientID,
		Status:      models.StatusPending,
		RequestedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.DonationRequest{}, err
	}
	return req, nil
}

// WithDonation is a request joined with its donation's listing fields,
// as shown on the recipient's requests page and the donor dashboard.
type WithDonation struct {
	models.DonationRequest `bson:",inline"`
	FoodName               string `bson:"food_name" json:"food_name"`
	Quantity               string `bson:"quantity" json:"quantity"`
	PickupAddress          string `bson:"pickup_address" json:"pickup_address,omitempty"`
	DonationStatus         string `bson:"donation_status" json:"donation_status"`
	RecipientName          string `bson:"recipient_name" json:"recipient_name,omitempty"`
}

func donationLookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "food_donations",
			"localField":   "donation_id",
			"foreignField": "_id",
			"as":           "donation",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$donation",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"food_name":       "$donation.food_name",
			"quantity":        "$donation.quantity",
			"pickup_address":  "$donation.pickup_address",
			"donation_status": "$donation.status",
		}}},
	}
}

// ListForRecipient returns the recipient's requests joined with their
// donations, newest first.
func (s *Store) ListForRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]WithDonation, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"recipient_id": recipientID}}},
		{{Key: "$sort", Value: bson.D{{Key: "requested_at", Value: -1}}}},
	}
	pipeline = append(pipeline, donationLookupStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{"donation": 0}}})

	return s.aggregate(ctx, pipeline)
}

// ListForDonor returns requests against any of the donor's donations,
// joined with the donation and the requesting recipient's name.
func (s *Store) ListForDonor(ctx context.Context, donationIDs []primitive.ObjectID) ([]WithDonation, error) {
	if len(donationIDs) == 0 {
		return nil, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"donation_id": bson.M{"$in": donationIDs}}}},
		{{Key: "$sort", Value: bson.D{{Key: "requested_at", Value: -1}}}},
	}
	pipeline = append(pipeline, donationLookupStages()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "recipient_id",
			"foreignField": "_id",
			"as":           "recipient",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$recipient",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"recipient_name": "$recipient.full_name"}}},
		bson.D{{Key: "$project", Value: bson.M{"donation": 0, "recipient": 0}}},
	)

	return s.aggregate(ctx, pipeline)
}

func (s *Store) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]WithDonation, error) {
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []WithDonation
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CountPendingForDonations counts pending requests across the given
// donations. Feeds the donor dashboard's incoming-requests card.
func (s *Store) CountPendingForDonations(ctx context.Context, donationIDs []primitive.ObjectID) (int64, error) {
	if len(donationIDs) == 0 {
		return 0, nil
	}
	return s.c.CountDocuments(ctx, bson.M{
		"donation_id": bson.M{"$in": donationIDs},
		"status":      models.StatusPending,
	})
}

// CountPending counts pending requests across the whole site. Used by
// the admin panel.
func (s *Store) CountPending(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": models.StatusPending})
}

// UpdateStatus moves a request to the given status.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
