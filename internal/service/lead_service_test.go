package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/repository/memory"
)

type leadFixture struct {
	leads        *memory.LeadRepo
	interactions *memory.InteractionRepo
	enquiries    *memory.EnquiryRepo
	users        *memory.UserRepo

	leadService        *LeadService
	interactionService *InteractionService
}

func newLeadFixture() *leadFixture {
	leads := memory.NewLeadRepo()
	interactions := memory.NewInteractionRepo(leads)
	enquiries := memory.NewEnquiryRepo()
	users := memory.NewUserRepo()

	return &leadFixture{
		leads:        leads,
		interactions: interactions,
		enquiries:    enquiries,
		users:        users,

		leadService:        NewLeadService(leads, interactions, enquiries, users, nil),
		interactionService: NewInteractionService(interactions, leads, users, nil),
	}
}

func validLead() CreateLeadInput {
	return CreateLeadInput{
		Name:   "Sam Buyer",
		Email:  "sam@example.com",
		Phone:  "5559876543",
		Source: domain.LeadSourceWebsite,
	}
}

func TestCreateLead(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, domain.LeadStatusNew, lead.Status, "status defaults to New")
	assert.Empty(t, lead.InteractionIDs)
}

func TestCreateLeadValidation(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	in := validLead()
	in.Phone = ""
	_, err := f.leadService.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = validLead()
	in.Source = "Carrier Pigeon"
	_, err = f.leadService.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = validLead()
	in.Status = "Mislaid"
	_, err = f.leadService.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateLead(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	status := domain.LeadStatusContacted
	updated, err := f.leadService.Update(ctx, lead.ID, domain.UpdateLeadInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusContacted, updated.Status)
	assert.Equal(t, "Sam Buyer", updated.Name, "untouched fields survive")

	bad := "Mislaid"
	_, err = f.leadService.Update(ctx, lead.ID, domain.UpdateLeadInput{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.leadService.Update(ctx, "missing-id", domain.UpdateLeadInput{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetLeadPopulatesInteractions(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	agent := &domain.User{Name: "Asha Mehta", Email: "asha@example.com", Roles: []string{"agent"}, MobileNo: "5551230000"}
	require.NoError(t, f.users.Create(ctx, agent))

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	created, err := f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		Notes:           "Discussed site visit",
		InteractionType: domain.InteractionTypeCall,
		HandledByID:     agent.ID,
	})
	require.NoError(t, err)

	fetched, err := f.leadService.GetByID(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Interactions, 1)
	assert.Equal(t, created.ID, fetched.Interactions[0].ID)

	// Interactions under a lead resolve their handler to name and email
	// only; roles stay off this shape
	handledBy := fetched.Interactions[0].HandledBy
	require.NotNil(t, handledBy)
	assert.Equal(t, "Asha Mehta", handledBy.Name)
	assert.Empty(t, handledBy.Roles)
}

func TestDeleteLeadLeavesInteractions(t *testing.T) {
	ctx := context.Background()
	f := newLeadFixture()

	lead, err := f.leadService.Create(ctx, validLead())
	require.NoError(t, err)

	agent := &domain.User{Name: "Asha Mehta", Email: "asha@example.com", Roles: []string{"agent"}, MobileNo: "5551230000"}
	require.NoError(t, f.users.Create(ctx, agent))

	created, err := f.interactionService.Create(ctx, CreateInteractionInput{
		LeadID:          lead.ID,
		Notes:           "First call",
		InteractionType: domain.InteractionTypeCall,
		HandledByID:     agent.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.leadService.Delete(ctx, lead.ID))

	_, err = f.leadService.GetByID(ctx, lead.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// No cascade: the interaction survives with a dangling lead ref
	orphan, err := f.interactionService.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, orphan.LeadID)
	assert.Nil(t, orphan.Lead)
}
