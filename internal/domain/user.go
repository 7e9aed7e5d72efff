package domain

import (
	"time"
)

// User is the sole entity of the service. Age is nil when not set.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserInput is the payload for create and full update. Name and email are
// required; age is optional.
type UserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
}

// UserPatch is the payload for partial update. Every field is optional;
// a nil field is left untouched.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Age   *int    `json:"age"`
}

// Empty reports whether the patch carries no recognized field.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil
}
