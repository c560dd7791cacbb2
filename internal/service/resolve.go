package service

import (
	"context"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// Relationship population helpers shared by the entity services.
// Referential fields are permissive: an id that no longer resolves just
// yields a nil reference instead of failing the read.

func resolveLeadRef(ctx context.Context, leads domain.LeadRepository, id string) *domain.LeadRef {
	if id == "" {
		return nil
	}
	lead, err := leads.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return lead.Ref()
}

// resolveUserRef projects a handler. The roles field is only included
// where the original API exposed it (interaction and booking listings;
// not interactions nested under a lead).
func resolveUserRef(ctx context.Context, users domain.UserRepository, id string, withRoles bool) *domain.UserRef {
	if id == "" {
		return nil
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	ref := user.Ref()
	if !withRoles {
		ref.Roles = nil
	}
	return ref
}
