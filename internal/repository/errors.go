// Package repository persists users and their matches.  Two backends
// implement the same store interfaces: a SQL one (MySQL or SQLite) and a
// DynamoDB one.  The sentinel errors below let handlers distinguish
// failure scenarios without knowing which backend is in use.
package repository

import "errors"

// ErrEmailExists is returned by UserStore.Create when the normalized email
// is already registered.  Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned by UserStore.GetByEmail when no account
// exists for the email.
var ErrUserNotFound = errors.New("user not found")
