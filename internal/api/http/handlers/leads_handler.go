package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-capture-service/internal/api/dto"
	"github.com/spec-kit/lead-capture-service/internal/service"
	"github.com/spec-kit/lead-capture-service/internal/validation"
	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// LeadsHandler accepts public form submissions.
type LeadsHandler struct {
	service   *service.LeadService
	validator *validation.Validator
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService, v *validation.Validator) *LeadsHandler {
	return &LeadsHandler{service: leadService, validator: v}
}

// Create POST /api/leads.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if details := h.validator.Check(req); details != nil {
		return apperrors.NewValidationError("validation failed", details)
	}

	lead, err := h.service.CreateLead(c.Context(), service.LeadCreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Whatsapp:    req.Whatsapp,
		City:        req.City,
		Level:       req.Level,
		Goal:        req.Goal,
		Schedule:    req.Schedule,
		Message:     req.Message,
		Source:      req.Source,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.CreateLeadResponse{
		Success: true,
		Message: "Submission received! You'll get a WhatsApp message shortly.",
		Lead: dto.LeadSummary{
			ID:       lead.ID,
			Name:     lead.Name,
			Whatsapp: lead.Whatsapp,
		},
	})
}
