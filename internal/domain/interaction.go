package domain

import (
	"context"
	"time"
)

// Interaction contact channels
const (
	InteractionTypeCall      = "Call"
	InteractionTypeEmail     = "Email"
	InteractionTypeMeeting   = "Meeting"
	InteractionTypeSiteVisit = "Site Visit"
)

var interactionTypes = map[string]bool{
	InteractionTypeCall:      true,
	InteractionTypeEmail:     true,
	InteractionTypeMeeting:   true,
	InteractionTypeSiteVisit: true,
}

// IsValidInteractionType reports whether s is a known contact channel.
func IsValidInteractionType(s string) bool { return interactionTypes[s] }

// Interaction is a logged contact event with a lead. Creating one also
// appends its id to the parent lead's interaction list; the two writes
// are a single transaction.
type Interaction struct {
	ID              string    `json:"id"` // UUID
	LeadID          string    `json:"leadId"`
	Notes           string    `json:"notes"`
	InteractionType string    `json:"interactionType"`
	HandledByID     string    `json:"handledById"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Populated on reads, never persisted
	Lead      *LeadRef `json:"lead,omitempty"`
	HandledBy *UserRef `json:"handledBy,omitempty"`
}

// UpdateInteractionInput carries the mutable interaction fields; nil means unchanged.
type UpdateInteractionInput struct {
	Notes           *string `json:"notes"`
	InteractionType *string `json:"interactionType"`
	HandledByID     *string `json:"handledBy"`
}

// InteractionRepository defines data access for interactions
type InteractionRepository interface {
	// Create inserts the interaction and appends its id to the parent
	// lead's interaction list atomically. Returns ErrNotFound if the
	// parent lead does not exist.
	Create(ctx context.Context, interaction *Interaction) error
	GetByID(ctx context.Context, id string) (*Interaction, error)
	List(ctx context.Context) ([]*Interaction, error)
	// ListByIDs returns interactions in the order of the given ids,
	// silently skipping ids that no longer resolve.
	ListByIDs(ctx context.Context, ids []string) ([]*Interaction, error)
	Update(ctx context.Context, id string, in UpdateInteractionInput) (*Interaction, error)
	Delete(ctx context.Context, id string) error
}
