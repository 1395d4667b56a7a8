package notificationstore_test

import (
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	notificationstore "github.com/makanenak/makanenak/internal/app/store/notifications"
	"github.com/makanenak/makanenak/internal/testutil"
)

func TestStore_ListUnread_CappedAndNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	for i := 0; i < notificationstore.UnreadLimit+2; i++ {
		if err := store.Create(ctx, userID, fmt.Sprintf("pesan %d", i)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	rows, err := store.ListUnread(ctx, userID)
	if err != nil {
		t.Fatalf("ListUnread failed: %v", err)
	}
	if len(rows) != notificationstore.UnreadLimit {
		t.Errorf("expected %d rows, got %d", notificationstore.UnreadLimit, len(rows))
	}
}

func TestStore_MarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	n := fixtures.CreateNotification(ctx, userID, "permintaan baru")

	if err := store.MarkRead(ctx, n.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	rows, err := store.ListUnread(ctx, userID)
	if err != nil {
		t.Fatalf("ListUnread failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no unread rows, got %d", len(rows))
	}
}

func TestStore_MarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		if err := store.Create(ctx, userID, "pesan"); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if err := store.Create(ctx, other, "pesan lain"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.MarkAllRead(ctx, userID); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	if rows, _ := store.ListUnread(ctx, userID); len(rows) != 0 {
		t.Errorf("expected user's notifications read, got %d unread", len(rows))
	}
	if rows, _ := store.ListUnread(ctx, other); len(rows) != 1 {
		t.Errorf("expected other user's notification untouched, got %d", len(rows))
	}
}
