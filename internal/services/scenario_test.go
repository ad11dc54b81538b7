package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/novikovpa/user-accounts/internal/jwt"
	"github.com/novikovpa/user-accounts/internal/models"
	"github.com/novikovpa/user-accounts/internal/services"
)

// memStore is an in-memory UserReader/UserWriter used to exercise the
// whole register/login/update flow against real bcrypt and JWT.
type memStore struct {
	users map[string]*models.UserDB // keyed by hex id
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.UserDB{}}
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*models.UserDB, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetByUsername(_ context.Context, username string) (*models.UserDB, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*models.UserDB, error) {
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) Save(_ context.Context, username, email, passwordHash string) (string, error) {
	id := primitive.NewObjectID()
	s.users[id.Hex()] = &models.UserDB{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	return id.Hex(), nil
}

func (s *memStore) Update(_ context.Context, user *models.UserDB) error {
	cp := *user
	s.users[user.ID.Hex()] = &cp
	return nil
}

func TestAuthService_RegisterLoginUpdateFlow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tokens := jwt.New("scenario-secret", time.Hour)

	svc := services.NewAuthService(store, store, tokens, nil)

	// Register alice
	err := svc.Register(ctx, "alice", "a@x.com", "pw1")
	assert.NoError(t, err)

	// Stored hash is never the plaintext password
	stored, err := store.GetByEmail(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "pw1", stored.PasswordHash)

	// Second registration with the same email fails and does not
	// alter the first record
	err = svc.Register(ctx, "alice2", "a@x.com", "pw2")
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
	unchanged, _ := store.GetByEmail(ctx, "a@x.com")
	assert.Equal(t, stored.Username, unchanged.Username)
	assert.Equal(t, stored.PasswordHash, unchanged.PasswordHash)

	// Wrong password fails with the same error as an unknown email
	_, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "missing@x.com", "pw1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Successful login returns a token whose subject is alice's id
	token, err := svc.Login(ctx, "a@x.com", "pw1")
	assert.NoError(t, err)
	gotID, err := tokens.GetUserID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), gotID)

	// Update only the email: username and password hash stay put
	err = svc.UpdateUser(ctx, "alice", "", "a2@x.com", "")
	assert.NoError(t, err)
	updated, _ := store.GetByEmail(ctx, "a2@x.com")
	assert.NotNil(t, updated)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, stored.PasswordHash, updated.PasswordHash)

	// Login with the new email and the old password still works
	_, err = svc.Login(ctx, "a2@x.com", "pw1")
	assert.NoError(t, err)

	// Change the password: the old one stops working, the new one works
	err = svc.UpdateUser(ctx, "alice", "", "", "pw2")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "a2@x.com", "pw1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "a2@x.com", "pw2")
	assert.NoError(t, err)
}
