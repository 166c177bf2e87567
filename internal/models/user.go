package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRoleType string

const (
	UserRoleUser  UserRoleType = "user"
	UserRoleAdmin UserRoleType = "admin"
)

// User is an account of the congregation tooling. The engine itself treats
// actor names as opaque strings; users exist only to supply them.
type User struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         UserRoleType `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (u *User) GetID() string { return u.ID.String() }
