package requeststore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	requeststore "github.com/makanenak/makanenak/internal/app/store/requests"
	"github.com/makanenak/makanenak/internal/domain/models"
	"github.com/makanenak/makanenak/internal/testutil"
)

func TestStore_Create_NoDedup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	donationID := primitive.NewObjectID()
	recipientID := primitive.NewObjectID()

	first, err := store.Create(ctx, donationID, recipientID)
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := store.Create(ctx, donationID, recipientID)
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("expected two distinct rows")
	}
	if first.Status != models.StatusPending {
		t.Errorf("expected pending status, got %q", first.Status)
	}

	rows, err := store.ListForRecipient(ctx, recipientID)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected both requests listed, got %d", len(rows))
	}
}

func TestStore_ListForRecipient_JoinsDonation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	donor := fixtures.CreateUser(ctx, "Budi", "budi@example.com", "donor")
	d := fixtures.CreateDonation(ctx, donor.ID, "Nasi Kotak", models.StatusAvailable)
	recipient := fixtures.CreateUser(ctx, "Siti", "siti@example.com", "recipient")
	fixtures.CreateRequest(ctx, d.ID, recipient.ID)

	rows, err := store.ListForRecipient(ctx, recipient.ID)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 request, got %d", len(rows))
	}
	if rows[0].FoodName != "Nasi Kotak" {
		t.Errorf("expected donation joined, got %q", rows[0].FoodName)
	}
}

func TestStore_ListForDonor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	donor := fixtures.CreateUser(ctx, "Budi", "budi@example.com", "donor")
	mine := fixtures.CreateDonation(ctx, donor.ID, "Nasi Kotak", models.StatusAvailable)
	other := fixtures.CreateDonation(ctx, primitive.NewObjectID(), "Roti", models.StatusAvailable)

	recipient := fixtures.CreateUser(ctx, "Siti", "siti@example.com", "recipient")
	fixtures.CreateRequest(ctx, mine.ID, recipient.ID)
	fixtures.CreateRequest(ctx, other.ID, recipient.ID)

	rows, err := store.ListForDonor(ctx, []primitive.ObjectID{mine.ID})
	if err != nil {
		t.Fatalf("ListForDonor failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only requests for my donations, got %d", len(rows))
	}
	if rows[0].RecipientName != "Siti" {
		t.Errorf("expected recipient name joined, got %q", rows[0].RecipientName)
	}
}

func TestStore_CountPendingForDonations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	recipient := primitive.NewObjectID()

	fixtures.CreateRequest(ctx, a, recipient)
	fixtures.CreateRequest(ctx, b, recipient)
	req := fixtures.CreateRequest(ctx, b, recipient)
	if err := store.UpdateStatus(ctx, req.ID, models.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	n, err := store.CountPendingForDonations(ctx, []primitive.ObjectID{a, b})
	if err != nil {
		t.Fatalf("CountPendingForDonations failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pending, got %d", n)
	}

	n, err = store.CountPendingForDonations(ctx, nil)
	if err != nil {
		t.Fatalf("CountPendingForDonations(nil) failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 for empty id list, got %d", n)
	}

	n, err = store.CountPending(ctx)
	if err != nil {
		t.Fatalf("CountPending failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pending site-wide, got %d", n)
	}
}
