package identitystore

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) shared by an
//     identity record and its profile in the users collection
//   - Email: the credential users type to log in

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/makanenak/makanenak/internal/app/system/authutil"
	"github.com/makanenak/makanenak/internal/app/system/normalize"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("identities")}
}

// EnsureIndexes enforces one identity per email.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_identities_email").SetUnique(true),
	})
	return err
}

var (
	// ErrDuplicateEmail is returned when an identity already exists for the email.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Create hashes the password and inserts a new identity. The returned
// identity carries the generated ID, which the caller reuses for the
// profile record.
func (s *Store) Create(ctx context.Context, email, password, fullName, role string) (models.Identity, error) {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return models.Identity{}, err
	}

	ident := models.Identity{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(email),
		PasswordHash: hash,
		FullName:     normalize.Name(fullName),
		Role:         normalize.Role(role),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, ident); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Identity{}, ErrDuplicateEmail
		}
		return models.Identity{}, err
	}
	return ident, nil
}

// GetByEmail looks up an identity by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	var ident models.Identity
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

// Authenticate verifies the email/password pair and returns the
// identity on success. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials so callers cannot distinguish the two.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	ident, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !matchesPassword(ident, password) {
		return nil, ErrInvalidCredentials
	}
	return ident, nil
}

// matchesPassword reports whether the supplied plaintext matches the
// identity's stored bcrypt hash.
func matchesPassword(ident *models.Identity, password string) bool {
	return authutil.CheckPassword(password, ident.PasswordHash)
}
