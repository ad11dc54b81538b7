package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/novikovpa/user-accounts/internal/logger"
	"github.com/novikovpa/user-accounts/internal/models"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
// A nil user with a nil error means the document is absent.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByID(ctx context.Context, id string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (string, error)
	Update(ctx context.Context, user *models.UserDB) error
}

// JWTGenerator defines an interface for generating session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID string) (string, error)
}

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// AuthService handles registration, login and profile updates.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
	events EventWriter
}

// NewAuthService creates a new AuthService instance.
// events may be nil when event publishing is not configured.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, events EventWriter) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
		events: events,
	}
}

// Register registers a new user. The email must not belong to an
// existing account; the password is stored only as a bcrypt hash.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) error {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if user != nil {
		logger.Log.Infow("user already exists", "email", email)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	id, err := svc.writer.Save(ctx, username, email, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.EventUserRegistered, id, username, email)
	return nil
}

// Login authenticates a user by email and returns a session token.
// An unknown email and a wrong password fail with the same error so
// the response does not reveal whether the email is registered.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("login for unknown email", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("password mismatch", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID.Hex())
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return token, nil
}

// UpdateUser updates the account currently named usernameKey.
// Only non-empty fields are applied; a non-empty password is re-hashed
// before being stored.
func (svc *AuthService) UpdateUser(ctx context.Context, usernameKey, username, email, password string) error {
	user, err := svc.reader.GetByUsername(ctx, usernameKey)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Infow("user not found", "username", usernameKey)
		return ErrUserNotFound
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return err
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := svc.writer.Update(ctx, user); err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return err
	}

	svc.publishEvent(ctx, models.EventUserUpdated, user.ID.Hex(), user.Username, user.Email)
	return nil
}

// GetUser returns the account with the given id.
func (svc *AuthService) GetUser(ctx context.Context, id string) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// publishEvent writes an account event to Kafka. Publishing is best
// effort: a broker failure is logged and never fails the request.
func (svc *AuthService) publishEvent(ctx context.Context, eventType, userID, username, email string) {
	if svc.events == nil {
		return
	}

	event := models.UserEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		UserID:     userID,
		Username:   username,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "type", eventType, "err", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(userID),
		Value: value,
	}
	if err := svc.events.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "type", eventType, "err", err)
	}
}
