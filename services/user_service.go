package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linkup_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrEmailInUse is returned when registering with an already-taken email.
var ErrEmailInUse = errors.New("email already in use")

// UserService handles registered-user accounts.
type UserService struct {
	Dynamo *DynamoService
}

// CreateUser registers a new user with an already-hashed password.
func (us *UserService) CreateUser(ctx context.Context, name, email, passwordHash, username, nickname, photoLink string) (*models.User, error) {
	existing, err := us.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Username:     username,
		Nickname:     nickname,
		PhotoLink:    photoLink,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := us.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, err
	}

	log.Info().Str("userId", user.ID).Msg("User registered")
	return &user, nil
}

// GetUserByEmail looks a user up through the email GSI. Returns nil without
// an error when no user exists for the address.
func (us *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	err := us.Dynamo.QueryItems(ctx, models.UsersTable, models.UserEmailIndex,
		"email = :email",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		&users,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// GetUserByID fetches a user by primary key. Returns nil without an error
// when the user does not exist.
func (us *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := us.Dynamo.GetItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: userID},
	}, &user)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites the editable profile fields, keeping current
// values for anything left blank.
func (us *UserService) UpdateProfile(ctx context.Context, user *models.User, name, username, nickname string) (*models.User, error) {
	updated := *user
	if name != "" {
		updated.Name = name
	}
	if username != "" {
		updated.Username = username
	}
	if nickname != "" {
		updated.Nickname = nickname
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := us.Dynamo.PutItem(ctx, models.UsersTable, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
