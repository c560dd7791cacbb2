package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huzi29/crmsystemdesign/internal/domain"
)

// InteractionService handles interaction CRUD including the back-link to
// the parent lead
type InteractionService struct {
	interactions domain.InteractionRepository
	leads        domain.LeadRepository
	users        domain.UserRepository
	logger       *slog.Logger
}

// NewInteractionService creates a new interaction service
func NewInteractionService(
	interactions domain.InteractionRepository,
	leads domain.LeadRepository,
	users domain.UserRepository,
	logger *slog.Logger,
) *InteractionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &InteractionService{
		interactions: interactions,
		leads:        leads,
		users:        users,
		logger:       logger,
	}
}

// CreateInteractionInput carries the interaction creation fields
type CreateInteractionInput struct {
	LeadID          string `json:"leadId"`
	Notes           string `json:"notes"`
	InteractionType string `json:"interactionType"`
	HandledByID     string `json:"handledBy"`
}

// Create validates and persists a new interaction. The repository
// appends the new id to the parent lead atomically, so a missing lead
// fails the whole operation.
func (s *InteractionService) Create(ctx context.Context, in CreateInteractionInput) (*domain.Interaction, error) {
	if in.LeadID == "" || in.Notes == "" || in.InteractionType == "" || in.HandledByID == "" {
		return nil, fmt.Errorf("leadId, notes, interactionType, handledBy is required: %w", domain.ErrValidation)
	}
	if !domain.IsValidInteractionType(in.InteractionType) {
		return nil, fmt.Errorf("invalid interactionType %q: %w", in.InteractionType, domain.ErrValidation)
	}

	interaction := &domain.Interaction{
		LeadID:          in.LeadID,
		Notes:           in.Notes,
		InteractionType: in.InteractionType,
		HandledByID:     in.HandledByID,
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, err
	}

	s.logger.Info("interaction created",
		slog.String("interaction_id", interaction.ID),
		slog.String("lead_id", interaction.LeadID),
		slog.String("type", interaction.InteractionType),
	)

	// The create response resolves relations like every other read, so
	// the dashboard can render it without a follow-up fetch.
	s.resolve(ctx, interaction)
	return interaction, nil
}

// GetAll returns every interaction with parent lead and handler resolved.
func (s *InteractionService) GetAll(ctx context.Context) ([]*domain.Interaction, error) {
	interactions, err := s.interactions.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, interaction := range interactions {
		s.resolve(ctx, interaction)
	}

	return interactions, nil
}

// GetByID returns a single interaction with the same population as GetAll.
func (s *InteractionService) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	interaction, err := s.interactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.resolve(ctx, interaction)
	return interaction, nil
}

// Update applies a partial update to the mutable interaction fields.
func (s *InteractionService) Update(ctx context.Context, id string, in domain.UpdateInteractionInput) (*domain.Interaction, error) {
	if in.InteractionType != nil && !domain.IsValidInteractionType(*in.InteractionType) {
		return nil, fmt.Errorf("invalid interactionType %q: %w", *in.InteractionType, domain.ErrValidation)
	}

	interaction, err := s.interactions.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.resolve(ctx, interaction)
	return interaction, nil
}

// Delete removes the interaction. The parent lead's id list keeps the
// stale entry; population skips it.
func (s *InteractionService) Delete(ctx context.Context, id string) error {
	return s.interactions.Delete(ctx, id)
}

func (s *InteractionService) resolve(ctx context.Context, interaction *domain.Interaction) {
	interaction.Lead = resolveLeadRef(ctx, s.leads, interaction.LeadID)
	interaction.HandledBy = resolveUserRef(ctx, s.users, interaction.HandledByID, true)
}
