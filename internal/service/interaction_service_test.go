package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

func TestCreateInteractionBackLinksLead(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	agent := &domain.User{Name: "Asha Mehta", Email: "asha@example.com", Roles: []string{"agent"}, MobileNo: "5551230000"}
	require.NoError(t, f.users.Create(ctx, agent))

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	first, err := f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		Notes:           "Intro call",
		InteractionType: domain.InteractionTypeCall,
		HandledByID:     agent.ID,
	})
	require.NoError(t, err)

	// The create response already carries the resolved lead and handler
	require.NotNil(t, first.Lead)
	assert.Equal(t, "Sam Buyer", first.Lead.Name)
	require.NotNil(t, first.HandledBy)
	assert.Equal(t, "Asha Mehta", first.HandledBy.Name)
	assert.Equal(t, []string{"agent"}, first.HandledBy.Roles)

	second, err := f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		Notes:           "Shared brochure",
		InteractionType: domain.InteractionTypeEmail,
		HandledByID:     agent.ID,
	})
	require.NoError(t, err)

	// Both directions of the link hold, in creation order
	fetched, err := f.leadService.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, fetched.InteractionIDs)

	got, err := f.interactionService.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, got.LeadID)
	require.NotNil(t, got.Lead)
	assert.Equal(t, "Sam Buyer", got.Lead.Name)

	// Interaction views resolve the handler with roles included
	require.NotNil(t, got.HandledBy)
	assert.Equal(t, []string{"agent"}, got.HandledBy.Roles)
}

func TestCreateInteractionMissingLead(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	_, err := f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          "missing-lead",
		Notes:           "Intro call",
		InteractionType: domain.InteractionTypeCall,
		HandledByID:     "some-agent",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nothing was persisted
	all, err := f.interactionService.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateInteractionValidation(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	_, err = f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		Notes:           "Intro call",
		InteractionType: "Telepathy",
		HandledByID:     "some-agent",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		InteractionType: domain.InteractionTypeCall,
		HandledByID:     "some-agent",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateInteraction(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	created, err := f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		Notes:           "Intro call",
		InteractionType: domain.InteractionTypeCall,
		HandledByID:     "some-agent",
	})
	require.NoError(t, err)

	notes := "Follow-up email sent"
	kind := domain.InteractionTypeEmail
	updated, err := f.interactionService.Update(ctx, created.ID, domain.UpdateInteractionInput{
		Notes:           &notes,
		InteractionType: &kind,
	})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, domain.InteractionTypeEmail, updated.InteractionType)

	bad := "Telepathy"
	_, err = f.interactionService.Update(ctx, created.ID, domain.UpdateInteractionInput{InteractionType: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeleteInteractionKeepsLeadReference(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	created, err := f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		Notes:           "Intro call",
		InteractionType: domain.InteractionTypeCall,
		HandledByID:     "some-agent",
	})
	require.NoError(t, err)

	require.NoError(t, f.interactionService.Delete(ctx, created.ID))

	// The lead keeps the stale id but resolution skips it
	fetched, err := f.leadService.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, fetched.InteractionIDs)
	assert.Empty(t, fetched.Interactions)
}
