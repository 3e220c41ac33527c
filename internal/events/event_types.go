package events

import (
	"time"

	"github.com/spec-kit/lead-capture-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead.created"
	EventLeadStatusChanged EventType = "lead.status_changed"
	EventLeadDeleted       EventType = "lead.deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeadID    int64       `json:"lead_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload carries the captured record for the outbound relay.
type LeadCreatedPayload struct {
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Whatsapp    string  `json:"whatsapp"`
	City        *string `json:"city,omitempty"`
	Source      string  `json:"source"`
	UTMSource   string  `json:"utm_source"`
	UTMMedium   string  `json:"utm_medium"`
	UTMCampaign string  `json:"utm_campaign"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	OldStatus domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus `json:"new_status"`
}

// LeadDeletedPayload payload.
type LeadDeletedPayload struct {
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp"`
}
