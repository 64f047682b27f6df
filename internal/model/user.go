package model

import "time"

// User represents an account record as stored in the users table (or the
// users DynamoDB table).  The email is the primary key and is always kept
// in normalized form (trimmed and lower-cased).  Users are created on
// registration and never updated or deleted.
//
// Fields:
//
//	Email          – normalized, unique email address.
//	HashedPassword – bcrypt hash of the user's password.
//	CreatedAt      – timestamp of registration (UTC).
type User struct {
	Email          string    `json:"email" dynamodbav:"email"`         // users.email
	HashedPassword string    `json:"-" dynamodbav:"hashedPassword"`    // users.hashed_password
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"createdAt"` // users.created_at
}
