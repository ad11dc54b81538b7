package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDB represents a user document in the users collection.
type UserDB struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`         // Document id, assigned by the store
	Username     string             `bson:"username" json:"username"`        // Unique username
	Email        string             `bson:"email" json:"email"`              // Unique email, login key
	PasswordHash string             `bson:"password_hash" json:"-"`          // bcrypt hash, never serialized
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`    // Last update timestamp
}
