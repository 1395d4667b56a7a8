package donationstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makanenak/makanenak/internal/app/system/normalize"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("food_donations")}
}

// EnsureIndexes creates the indexes the map and dashboard queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_donations_status_created"),
		},
		{
			Keys:    bson.D{{Key: "donor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_donations_donor_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

var (
	errFoodNameRequired = errors.New("food name is required")
	errQuantityRequired = errors.New("quantity is required")
	errBadStatus        = errors.New(`status must be "available"|"pending"|"completed"|"expired"`)
)

// Create inserts a new donation. Status defaults to available.
func (s *Store) Create(ctx context.Context, d models.FoodDonation) (models.FoodDonation, error) {
	d.ID = primitive.NewObjectID()
	if d.FoodName == "" {
		return models.FoodDonation{}, errFoodNameRequired
	}
	if d.Quantity == "" {
		return models.FoodDonation{}, errQuantityRequired
	}
	if d.Status == "" {
		d.Status = models.StatusAvailable
	}
	if !models.ValidStatus(d.Status) {
		return models.FoodDonation{}, errBadStatus
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.FoodDonation{}, err
	}
	return d, nil
}

// GetByID loads a donation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.FoodDonation, error) {
	var d models.FoodDonation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// WithDonor is a donation joined with the listing donor's public contact
// fields, as shown in map popups and recipient listings.
type WithDonor struct {
	models.FoodDonation `bson:",inline"`
	DonorName           string `bson:"donor_name" json:"donor_name"`
	DonorPhone          string `bson:"donor_phone" json:"donor_phone,omitempty"`
}

// ListAvailableWithDonor returns all available donations joined with
// donor name and phone, newest first.
func (s *Store) ListAvailableWithDonor(ctx context.Context) ([]WithDonor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusAvailable}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "donor_id",
			"foreignField": "_id",
			"as":           "donor",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$donor",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"donor_name":  "$donor.full_name",
			"donor_phone": "$donor.phone",
		}}},
		{{Key: "$project", Value: bson.M{"donor": 0}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []WithDonor
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByDonor returns the donor's donations, newest first. A limit of 0
// means no limit.
func (s *Store) ListByDonor(ctx context.Context, donorID primitive.ObjectID, limit int64) ([]models.FoodDonation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{"donor_id": donorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.FoodDonation
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// StatusCounts summarizes a donor's listings for the dashboard cards.
type StatusCounts struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Expired   int64 `json:"expired"`
}

// CountsByStatus aggregates the donor's donation counts per status.
func (s *Store) CountsByStatus(ctx context.Context, donorID primitive.ObjectID) (StatusCounts, error) {
	return s.countsByStatus(ctx, bson.M{"donor_id": donorID})
}

// CountsByStatusAll aggregates donation counts per status across the
// whole site. Used by the admin panel.
func (s *Store) CountsByStatusAll(ctx context.Context) (StatusCounts, error) {
	return s.countsByStatus(ctx, bson.M{})
}

func (s *Store) countsByStatus(ctx context.Context, match bson.M) (StatusCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return StatusCounts{}, err
	}
	defer cur.Close(ctx)

	var counts StatusCounts
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return StatusCounts{}, err
		}
		counts.Total += row.Count
		switch row.Status {
		case models.StatusAvailable:
			counts.Available = row.Count
		case models.StatusPending:
			counts.Pending = row.Count
		case models.StatusCompleted:
			counts.Completed = row.Count
		case models.StatusExpired:
			counts.Expired = row.Count
		}
	}
	return counts, cur.Err()
}

// UpdateStatus moves a donation to the given status.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if !models.ValidStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ExpirePast marks available donations whose expiry date has passed as
// expired and returns how many rows changed.
func (s *Store) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"status": models.StatusAvailable, "expiry_date": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": models.StatusExpired}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
