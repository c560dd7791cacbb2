package domain

import (
	"context"
	"time"
)

// User represents a CRM team member
type User struct {
	ID           string    `json:"id"` // UUID
	Name         string    `json:"name"`
	Email        string    `json:"email"` // Unique email address
	PasswordHash string    `json:"-"`     // Peppered bcrypt hash, never serialized
	Roles        []string  `json:"roles"`
	MobileNo     string    `json:"mobileNo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRef is the trimmed projection used when a user is resolved as the
// handler of an interaction or booking.
type UserRef struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
}

// Ref returns the handler projection of the user.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Roles: u.Roles}
}

// RefreshToken is a persisted long-lived credential. Its presence in the
// store is what makes a signed refresh token redeemable; deleting the
// record revokes the token ahead of its own expiry.
type RefreshToken struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error
}

// RefreshTokenRepository defines data access for persisted refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteByToken removes the record if present; deleting an absent
	// token is not an error (logout is idempotent).
	DeleteByToken(ctx context.Context, token string) error
	List(ctx context.Context) ([]*RefreshToken, error)
	// DeleteCreatedBefore purges tokens issued before the cutoff and
	// returns how many were removed.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
