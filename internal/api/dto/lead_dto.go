package dto

import (
	"strings"
	"time"
)

// CreateLeadRequest is the public submission payload. Empty optional
// strings are treated the same as absent fields.
type CreateLeadRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Whatsapp    string `json:"whatsapp" validate:"required,min=10,max=20,whatsapp"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Level       string `json:"level" validate:"omitempty,max=50"`
	Goal        string `json:"goal" validate:"omitempty,max=500"`
	Schedule    string `json:"schedule" validate:"omitempty,max=200"`
	Message     string `json:"message" validate:"omitempty,max=1000"`
	Source      string `json:"source" validate:"omitempty,max=50"`
	UTMSource   string `json:"utm_source" validate:"omitempty,max=100"`
	UTMMedium   string `json:"utm_medium" validate:"omitempty,max=100"`
	UTMCampaign string `json:"utm_campaign" validate:"omitempty,max=100"`
}

// Normalize strips surrounding whitespace so length and format rules run
// against the significant characters only.
func (r *CreateLeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Whatsapp = strings.TrimSpace(r.Whatsapp)
	r.City = strings.TrimSpace(r.City)
	r.Level = strings.TrimSpace(r.Level)
	r.Goal = strings.TrimSpace(r.Goal)
	r.Schedule = strings.TrimSpace(r.Schedule)
	r.Message = strings.TrimSpace(r.Message)
	r.Source = strings.TrimSpace(r.Source)
	r.UTMSource = strings.TrimSpace(r.UTMSource)
	r.UTMMedium = strings.TrimSpace(r.UTMMedium)
	r.UTMCampaign = strings.TrimSpace(r.UTMCampaign)
}

// LeadSummary echoes the created record.
type LeadSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp"`
}

// CreateLeadResponse returned on successful submission.
type CreateLeadResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Lead    LeadSummary `json:"lead"`
}

// LeadResponse is the full admin-facing lead row.
type LeadResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email"`
	Whatsapp    string    `json:"whatsapp"`
	City        *string   `json:"city"`
	Level       *string   `json:"level"`
	Goal        *string   `json:"goal"`
	Schedule    *string   `json:"schedule"`
	Message     *string   `json:"message"`
	Source      string    `json:"source"`
	UTMSource   string    `json:"utm_source"`
	UTMMedium   string    `json:"utm_medium"`
	UTMCampaign string    `json:"utm_campaign"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeadListResponse is the paginated admin list. Total reflects the filtered
// count, not the page size.
type LeadListResponse struct {
	Leads  []LeadResponse `json:"leads"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// UpdateStatusRequest body for the admin status PATCH.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
