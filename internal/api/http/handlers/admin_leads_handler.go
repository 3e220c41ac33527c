package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-capture-service/internal/api/dto"
	"github.com/spec-kit/lead-capture-service/internal/domain"
	"github.com/spec-kit/lead-capture-service/internal/repository"
	"github.com/spec-kit/lead-capture-service/internal/service"
	"github.com/spec-kit/lead-capture-service/internal/validation"
	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// AdminLeadsHandler serves the admin triage surface.
type AdminLeadsHandler struct {
	service *service.LeadService
}

// NewAdminLeadsHandler constructs handler.
func NewAdminLeadsHandler(leadService *service.LeadService) *AdminLeadsHandler {
	return &AdminLeadsHandler{service: leadService}
}

// List GET /api/admin/leads?status=&search=&limit=&offset=.
func (h *AdminLeadsHandler) List(c *fiber.Ctx) error {
	input := service.LeadListInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  parseIntQuery(c.Query("limit"), 50),
		Offset: parseIntQuery(c.Query("offset"), 0),
	}
	if input.Status != "" {
		if err := validation.ValidateStatus(input.Status); err != nil {
			return err
		}
	}

	leads, total, applied, err := h.service.ListLeads(c.Context(), input)
	if err != nil {
		return err
	}

	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, leadResponse(&leads[i]))
	}
	return c.JSON(dto.LeadListResponse{
		Leads:  items,
		Total:  total,
		Limit:  applied.Limit,
		Offset: applied.Offset,
	})
}

// Get GET /api/admin/leads/:id.
func (h *AdminLeadsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	lead, err := h.service.GetLead(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(leadResponse(lead))
}

// UpdateStatus PATCH /api/admin/leads/:id/status.
func (h *AdminLeadsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validation.ValidateStatus(req.Status); err != nil {
		return err
	}

	if err := h.service.SetStatus(c.Context(), id, domain.LeadStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "status updated"})
}

// Delete DELETE /api/admin/leads/:id.
func (h *AdminLeadsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.service.DeleteLead(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "lead deleted"})
}

// Stats GET /api/admin/stats.
func (h *AdminLeadsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}

	days := make([]dto.DayCountResponse, 0, len(stats.Last7Days))
	for _, day := range stats.Last7Days {
		days = append(days, dto.DayCountResponse{Date: day.Date, Count: day.Count})
	}
	return c.JSON(dto.StatsResponse{
		Total: stats.Total,
		ByStatus: dto.StatusCounts{
			New:       stats.New,
			Contacted: stats.Contacted,
			Converted: stats.Converted,
		},
		Today:     stats.Today,
		Last7Days: days,
	})
}

// StatsBySource GET /api/admin/stats/sources.
func (h *AdminLeadsHandler) StatsBySource(c *fiber.Ctx) error {
	stats, err := h.service.StatsBySource(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SourceStatsResponse, 0, len(stats))
	for _, row := range stats {
		items = append(items, sourceStatsResponse(row))
	}
	return c.JSON(items)
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func leadResponse(lead *domain.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:          lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		Whatsapp:    lead.Whatsapp,
		City:        lead.City,
		Level:       lead.Level,
		Goal:        lead.Goal,
		Schedule:    lead.Schedule,
		Message:     lead.Message,
		Source:      lead.Source,
		UTMSource:   lead.UTMSource,
		UTMMedium:   lead.UTMMedium,
		UTMCampaign: lead.UTMCampaign,
		Status:      string(lead.Status),
		CreatedAt:   lead.CreatedAt,
	}
}

func sourceStatsResponse(row repository.SourceStats) dto.SourceStatsResponse {
	return dto.SourceStatsResponse{
		Source:      row.Source,
		UTMCampaign: row.UTMCampaign,
		Total:       row.Total,
		New:         row.New,
		Contacted:   row.Contacted,
		Converted:   row.Converted,
	}
}
