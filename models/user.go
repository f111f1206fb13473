package models

import "time"

// User defines the structure for registered users
type User struct {
	ID               string    `json:"id" dynamodbav:"id"`
	Name             string    `json:"name" dynamodbav:"name"`
	Email            string    `json:"email" dynamodbav:"email"`
	Username         string    `json:"username,omitempty" dynamodbav:"username,omitempty"`
	Nickname         string    `json:"nickname,omitempty" dynamodbav:"nickname,omitempty"`
	PhotoLink        string    `json:"profilePhoto,omitempty" dynamodbav:"photoLink,omitempty"`
	LinkedinUsername string    `json:"linkedinUsername,omitempty" dynamodbav:"linkedinUsername,omitempty"`
	PasswordHash     string    `json:"-" dynamodbav:"passwordHash"`
	IsActive         bool      `json:"isActive" dynamodbav:"isActive"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// PublicProfile returns the subset of the user safe to show other users.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"name":         u.Name,
		"username":     u.Username,
		"nickname":     u.Nickname,
		"profilePhoto": u.PhotoLink,
	}
}

// UsersTable is the DynamoDB table name for users
const UsersTable = "Users"

// UserEmailIndex is the GSI used to look users up by email
const UserEmailIndex = "email-index"
