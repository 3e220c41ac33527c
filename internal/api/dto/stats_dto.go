package dto

// StatusCounts breaks the lead total down by triage status.
type StatusCounts struct {
	New       int64 `json:"new"`
	Contacted int64 `json:"contacted"`
	Converted int64 `json:"converted"`
}

// DayCountResponse is one calendar day's submission count.
type DayCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsResponse mirrors the dashboard aggregate shape. Days without leads
// are omitted from last7Days.
type StatsResponse struct {
	Total     int64              `json:"total"`
	ByStatus  StatusCounts       `json:"byStatus"`
	Today     int64              `json:"today"`
	Last7Days []DayCountResponse `json:"last7Days"`
}

// SourceStatsResponse is one (source, campaign) attribution bucket.
type SourceStatsResponse struct {
	Source      string `json:"source"`
	UTMCampaign string `json:"utm_campaign"`
	Total       int64  `json:"total"`
	New         int64  `json:"new"`
	Contacted   int64  `json:"contacted"`
	Converted   int64  `json:"converted"`
}
