package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-capture-service/internal/domain"
	"github.com/spec-kit/lead-capture-service/internal/events"
	"github.com/spec-kit/lead-capture-service/internal/repository"
	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// LeadCreateInput is the validated submission, before normalization.
type LeadCreateInput struct {
	Name        string
	Email       string
	Whatsapp    string
	City        string
	Level       string
	Goal        string
	Schedule    string
	Message     string
	Source      string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
}

// LeadListInput captures admin filter parameters.
type LeadListInput struct {
	Status string
	Search string
	Limit  int
	Offset int
}

const maxListLimit = 200

// LeadService implements the lead lifecycle and statistics operations.
type LeadService struct {
	leads      repository.LeadRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLeadService builds the service.
func NewLeadService(leads repository.LeadRepository, dispatcher events.Dispatcher, logger *zap.Logger) *LeadService {
	return &LeadService{leads: leads, dispatcher: dispatcher, logger: logger}
}

// CreateLead normalizes the submission, applies attribution defaults,
// persists the record and announces it to subscribers.
func (s *LeadService) CreateLead(ctx context.Context, input LeadCreateInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		Name:        strings.TrimSpace(input.Name),
		Whatsapp:    strings.TrimSpace(input.Whatsapp),
		Email:       optional(input.Email),
		City:        optional(input.City),
		Level:       optional(input.Level),
		Goal:        optional(input.Goal),
		Schedule:    optional(input.Schedule),
		Message:     optional(input.Message),
		Source:      orDefault(input.Source, domain.DefaultSource),
		UTMSource:   orDefault(input.UTMSource, domain.DefaultUTMSource),
		UTMMedium:   orDefault(input.UTMMedium, domain.DefaultUTMMedium),
		UTMCampaign: orDefault(input.UTMCampaign, domain.DefaultUTMCampaign),
		Status:      domain.LeadStatusNew,
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventLeadCreated, lead.ID, events.LeadCreatedPayload{
		Name:        lead.Name,
		Email:       lead.Email,
		Whatsapp:    lead.Whatsapp,
		City:        lead.City,
		Source:      lead.Source,
		UTMSource:   lead.UTMSource,
		UTMMedium:   lead.UTMMedium,
		UTMCampaign: lead.UTMCampaign,
	})

	return lead, nil
}

// GetLead fetches one lead.
func (s *LeadService) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead")
		}
		return nil, apperrors.MapError(err)
	}
	return lead, nil
}

// ListLeads applies the status/search filter with pagination. The returned
// total is the filtered count regardless of the page size.
func (s *LeadService) ListLeads(ctx context.Context, input LeadListInput) ([]domain.Lead, int64, LeadListInput, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}
	if input.Limit > maxListLimit {
		input.Limit = maxListLimit
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	filter := repository.LeadFilter{Limit: input.Limit, Offset: input.Offset}
	if input.Status != "" {
		status := domain.LeadStatus(input.Status)
		filter.Status = &status
	}
	if strings.TrimSpace(input.Search) != "" {
		search := input.Search
		filter.Search = &search
	}

	leads, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, 0, input, apperrors.MapError(err)
	}
	total, err := s.leads.Count(ctx, filter)
	if err != nil {
		return nil, 0, input, apperrors.MapError(err)
	}
	return leads, total, input, nil
}

// SetStatus applies a direct status set. Any of the three values is
// accepted; transition order is not enforced.
func (s *LeadService) SetStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("lead")
		}
		return apperrors.MapError(err)
	}

	if err := s.leads.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("lead")
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventLeadStatusChanged, id, events.LeadStatusChangedPayload{
		OldStatus: lead.Status,
		NewStatus: status,
	})
	return nil
}

// DeleteLead removes one lead permanently.
func (s *LeadService) DeleteLead(ctx context.Context, id int64) error {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("lead")
		}
		return apperrors.MapError(err)
	}

	if err := s.leads.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("lead")
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventLeadDeleted, id, events.LeadDeletedPayload{
		Name:     lead.Name,
		Whatsapp: lead.Whatsapp,
	})
	return nil
}

// Stats computes the dashboard aggregates.
func (s *LeadService) Stats(ctx context.Context) (*repository.LeadStats, error) {
	stats, err := s.leads.Stats(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

// StatsBySource groups counts by (source, utm_campaign), busiest first.
func (s *LeadService) StatsBySource(ctx context.Context) ([]repository.SourceStats, error) {
	stats, err := s.leads.StatsBySource(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func (s *LeadService) publish(ctx context.Context, eventType events.EventType, leadID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		LeadID:    leadID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// optional collapses empty and whitespace-only strings to absent.
func optional(val string) *string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// orDefault returns the trimmed value, or the attribution default when the
// field was absent or empty.
func orDefault(val, fallback string) string {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
