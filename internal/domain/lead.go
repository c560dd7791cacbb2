package domain

import (
	"context"
	"time"
)

// Lead acquisition sources
const (
	LeadSourceWebsite   = "Website"
	LeadSourceLinkedIn  = "LinkedIn"
	LeadSourceFacebook  = "Facebook"
	LeadSourceInstagram = "Instagram"
	LeadSourceOther     = "Other"
)

// Lead pipeline statuses
const (
	LeadStatusNew        = "New"
	LeadStatusContacted  = "Contacted"
	LeadStatusInterested = "Interested"
	LeadStatusConverted  = "Converted"
	LeadStatusLost       = "Lost"
)

var leadSources = map[string]bool{
	LeadSourceWebsite:   true,
	LeadSourceLinkedIn:  true,
	LeadSourceFacebook:  true,
	LeadSourceInstagram: true,
	LeadSourceOther:     true,
}

var leadStatuses = map[string]bool{
	LeadStatusNew:        true,
	LeadStatusContacted:  true,
	LeadStatusInterested: true,
	LeadStatusConverted:  true,
	LeadStatusLost:       true,
}

// IsValidLeadSource reports whether s is a known acquisition source.
func IsValidLeadSource(s string) bool { return leadSources[s] }

// IsValidLeadStatus reports whether s is a known pipeline status.
func IsValidLeadStatus(s string) bool { return leadStatuses[s] }

// Lead is a prospective customer and the aggregation root for
// interactions, enquiries and bookings. Children are referenced by id
// only; deleting a lead does not cascade to them.
type Lead struct {
	ID             string    `json:"id"` // UUID
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Source         string    `json:"source"`
	Status         string    `json:"status"`
	InteractionIDs []string  `json:"interactionIds"` // ordered, append-only via interaction creation
	EnquiryID      *string   `json:"enquiryId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Populated on reads, never persisted
	Interactions []*Interaction `json:"interactions,omitempty"`
	Enquiry      *Enquiry       `json:"enquiry,omitempty"`
}

// LeadRef is the trimmed projection used when a lead is resolved as the
// parent of an interaction, enquiry or booking.
type LeadRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Ref returns the parent projection of the lead.
func (l *Lead) Ref() *LeadRef {
	return &LeadRef{ID: l.ID, Name: l.Name, Email: l.Email, Phone: l.Phone}
}

// UpdateLeadInput carries the mutable lead fields; nil means unchanged.
type UpdateLeadInput struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Source *string `json:"source"`
	Status *string `json:"status"`
}

// LeadRepository defines data access for leads
type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	GetByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context) ([]*Lead, error)
	Update(ctx context.Context, id string, in UpdateLeadInput) (*Lead, error)
	Delete(ctx context.Context, id string) error
}
