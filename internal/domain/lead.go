package domain

import "time"

// LeadStatus enumerates triage states for captured leads.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
)

// LeadStatuses lists every valid status, in lifecycle order.
var LeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusConverted}

// ValidLeadStatus reports whether s is one of the enumerated statuses.
func ValidLeadStatus(s string) bool {
	for _, status := range LeadStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// Attribution defaults applied when the submission carries no tracking params.
const (
	DefaultSource      = "direct"
	DefaultUTMSource   = "direct"
	DefaultUTMMedium   = "none"
	DefaultUTMCampaign = "none"
)

// Lead is a prospect's submitted contact and attribution record.
type Lead struct {
	ID          int64
	Name        string
	Email       *string
	Whatsapp    string
	City        *string
	Level       *string
	Goal        *string
	Schedule    *string
	Message     *string
	Source      string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	Status      LeadStatus
	CreatedAt   time.Time
}
