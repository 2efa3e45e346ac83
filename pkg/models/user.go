package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account provisioned from the external identity provider.
// Users own companies; deleting a user cascades to everything below it.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
