package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novikovpa/user-accounts/internal/logger"
	"github.com/novikovpa/user-accounts/internal/models"
)

// usersCollection is the collection holding user documents.
const usersCollection = "users"

// EnsureUserIndexes creates unique indexes on email and username.
// The store is the sole arbiter of the register check-then-write race,
// so both keys must be enforced at the collection level.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// UserReadRepository provides read-only access to user documents.
type UserReadRepository struct {
	col *mongo.Collection
}

// NewUserReadRepository creates a new UserReadRepository instance.
func NewUserReadRepository(db *mongo.Database) *UserReadRepository {
	return &UserReadRepository{col: db.Collection(usersCollection)}
}

// GetByEmail returns the user with the given email, or nil when absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByUsername returns the user with the given username, or nil when absent.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByID returns the user with the given hex document id, or nil when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, id string) (*models.UserDB, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserReadRepository) findOne(ctx context.Context, filter bson.M) (*models.UserDB, error) {
	var user models.UserDB
	err := r.col.FindOne(ctx, filter).Decode(&user)

	logger.Log.Infow(
		"findOne",
		"collection", usersCollection,
		"filter", filter,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository provides write access to user documents.
type UserWriteRepository struct {
	col *mongo.Collection
}

// NewUserWriteRepository creates a new UserWriteRepository instance.
func NewUserWriteRepository(db *mongo.Database) *UserWriteRepository {
	return &UserWriteRepository{col: db.Collection(usersCollection)}
}

// Save inserts a new user document and returns its hex id.
func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash string) (string, error) {
	now := time.Now().UTC()
	doc := models.UserDB{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.col.InsertOne(ctx, doc)

	logger.Log.Infow(
		"insertOne",
		"collection", usersCollection,
		"username", username,
		"email", email,
		"error", err,
	)

	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// Update replaces the stored document matching user's id.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.UserDB) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	var matched int64
	if res != nil {
		matched = res.MatchedCount
	}

	logger.Log.Infow(
		"replaceOne",
		"collection", usersCollection,
		"id", user.ID.Hex(),
		"matched", matched,
		"error", err,
	)

	if err != nil {
		return err
	}
	if matched == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
