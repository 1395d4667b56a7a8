package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/makanenak/makanenak/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a profile with the given role and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		FullName:  name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("insert fixture user: %v", err)
	}
	return u
}

// CreateDonation inserts a donation owned by donorID with the given status.
func (f *Fixtures) CreateDonation(ctx context.Context, donorID primitive.ObjectID, foodName, status string) models.FoodDonation {
	f.t.Helper()

	lat, lng := models.DefaultLat, models.DefaultLng
	d := models.FoodDonation{
		ID:            primitive.NewObjectID(),
		DonorID:       donorID,
		FoodName:      foodName,
		Description:   "fixture donation",
		Quantity:      "3 porsi",
		Category:      "meal",
		ExpiryDate:    time.Now().UTC().Add(24 * time.Hour),
		PickupAddress: "Jl. Test No. 1, Jakarta",
		Latitude:      &lat,
		Longitude:     &lng,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("food_donations").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("insert fixture donation: %v", err)
	}
	return d
}

// CreateRequest inserts a pickup request for the given donation.
func (f *Fixtures) CreateRequest(ctx context.Context, donationID, recipientID primitive.ObjectID) models.DonationRequest {
	f.t.Helper()

	req := models.DonationRequest{
		ID:          primitive.NewObjectID(),
		DonationID:  donationID,
		RecipientID: recipientID,
		Status:      models.StatusPending,
		RequestedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("donation_requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("insert fixture request: %v", err)
	}
	return req
}

// CreateNotification inserts an unread notification for userID.
func (f *Fixtures) CreateNotification(ctx context.Context, userID primitive.ObjectID, message string) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("insert fixture notification: %v", err)
	}
	return n
}
