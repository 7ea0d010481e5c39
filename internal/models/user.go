package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account provisioned on first authenticated request. Subject is
// the OIDC subject claim from the identity provider.
type User struct {
	ID        uuid.UUID `json:"id"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
