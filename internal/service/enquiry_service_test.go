package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzi29/crmsystemdesign/internal/domain"
	"github.com/huzi29/crmsystemdesign/internal/repository/memory"
)

func newEnquiryService() (*EnquiryService, *LeadService) {
	leads := memory.NewLeadRepo()
	interactions := memory.NewInteractionRepo(leads)
	enquiries := memory.NewEnquiryRepo()
	users := memory.NewUserRepo()

	return NewEnquiryService(enquiries, leads, nil),
		NewLeadService(leads, interactions, enquiries, users, nil)
}

func TestCreateEnquiry(t *testing.T) {
	ctx := context.Background()
	enquiryService, leadService := newEnquiryService()

	lead, err := leadService.Create(ctx, validLead())
	require.NoError(t, err)

	visit := time.Now().Add(72 * time.Hour)
	enquiry, err := enquiryService.Create(ctx, CreateEnquiryInput{
		LeadID:           lead.ID,
		PropertyInterest: "3BHK in Sunrise Towers",
		SiteVisitDate:    &visit,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, enquiry.ID)
	assert.Equal(t, domain.EnquiryStatusScheduled, enquiry.Status, "status defaults to Scheduled")

	fetched, err := enquiryService.GetByID(ctx, enquiry.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Lead)
	assert.Equal(t, "Sam Buyer", fetched.Lead.Name)
	require.NotNil(t, fetched.SiteVisitDate)
}

func TestCreateEnquiryValidation(t *testing.T) {
	ctx := context.Background()
	enquiryService, _ := newEnquiryService()

	_, err := enquiryService.Create(ctx, CreateEnquiryInput{
		LeadID: "lead-1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = enquiryService.Create(ctx, CreateEnquiryInput{
		LeadID:           "lead-1",
		PropertyInterest: "3BHK in Sunrise Towers",
		Status:           "Abandoned",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateEnquiry(t *testing.T) {
	ctx := context.Background()
	enquiryService, _ := newEnquiryService()

	enquiry, err := enquiryService.Create(ctx, CreateEnquiryInput{
		LeadID:           "lead-1",
		PropertyInterest: "3BHK in Sunrise Towers",
	})
	require.NoError(t, err)

	status := domain.EnquiryStatusCompleted
	updated, err := enquiryService.Update(ctx, enquiry.ID, domain.UpdateEnquiryInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryStatusCompleted, updated.Status)

	_, err = enquiryService.Update(ctx, "missing-id", domain.UpdateEnquiryInput{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// An enquiry survives its lead; the dangling reference resolves to nil.
func TestEnquiryOutlivesLead(t *testing.T) {
	ctx := context.Background()
	enquiryService, leadService := newEnquiryService()

	lead, err := leadService.Create(ctx, validLead())
	require.NoError(t, err)

	enquiry, err := enquiryService.Create(ctx, CreateEnquiryInput{
		LeadID:           lead.ID,
		PropertyInterest: "3BHK in Sunrise Towers",
	})
	require.NoError(t, err)

	require.NoError(t, leadService.Delete(ctx, lead.ID))

	fetched, err := enquiryService.GetByID(ctx, enquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, fetched.LeadID)
	assert.Nil(t, fetched.Lead)
}
