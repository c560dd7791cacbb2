package domain

import (
	"context"
	"time"
)

// Enquiry statuses
const (
	EnquiryStatusScheduled = "Scheduled"
	EnquiryStatusCompleted = "Completed"
)

var enquiryStatuses = map[string]bool{
	EnquiryStatusScheduled: true,
	EnquiryStatusCompleted: true,
}

// IsValidEnquiryStatus reports whether s is a known enquiry status.
func IsValidEnquiryStatus(s string) bool { return enquiryStatuses[s] }

// Enquiry is a lead's expressed interest in a specific property,
// optionally with a scheduled site visit. A lead references at most one
// enquiry, but nothing prevents several enquiries from pointing at the
// same lead; the data layer does not enforce the one-to-one.
type Enquiry struct {
	ID               string     `json:"id"` // UUID
	LeadID           string     `json:"leadId"`
	PropertyInterest string     `json:"propertyInterest"`
	SiteVisitDate    *time.Time `json:"siteVisitDate,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	// Populated on reads, never persisted
	Lead *LeadRef `json:"lead,omitempty"`
}

// UpdateEnquiryInput carries the mutable enquiry fields; nil means unchanged.
type UpdateEnquiryInput struct {
	PropertyInterest *string    `json:"propertyInterest"`
	SiteVisitDate    *time.Time `json:"siteVisitDate"`
	Status           *string    `json:"status"`
}

// EnquiryRepository defines data access for enquiries
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *Enquiry) error
	GetByID(ctx context.Context, id string) (*Enquiry, error)
	List(ctx context.Context) ([]*Enquiry, error)
	Update(ctx context.Context, id string, in UpdateEnquiryInput) (*Enquiry, error)
	Delete(ctx context.Context, id string) error
}
