package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-capture-service/internal/api/dto"
	"github.com/spec-kit/lead-capture-service/internal/domain"
	"github.com/spec-kit/lead-capture-service/internal/service"
	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// CoursesHandler serves the public course catalog.
type CoursesHandler struct {
	service *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courseService *service.CourseService) *CoursesHandler {
	return &CoursesHandler{service: courseService}
}

// List GET /api/courses.
func (h *CoursesHandler) List(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, courseResponse(&courses[i]))
	}
	return c.JSON(items)
}

// Get GET /api/courses/:id.
func (h *CoursesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	course, err := h.service.GetCourse(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(courseResponse(course))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", []apperrors.FieldError{{
			Field:   "id",
			Message: "must be a positive integer",
		}})
	}
	return id, nil
}

func courseResponse(course *domain.Course) dto.CourseResponse {
	modules := make([]dto.ModuleResponse, 0, len(course.Modules))
	for _, m := range course.Modules {
		modules = append(modules, dto.ModuleResponse{
			ID:          m.ID,
			CourseID:    m.CourseID,
			Title:       m.Title,
			Description: m.Description,
			Order:       m.Order,
			Lessons:     m.Lessons,
		})
	}
	return dto.CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Price:       course.Price,
		Duration:    course.Duration,
		Lessons:     course.Lessons,
		Active:      course.Active,
		CreatedAt:   course.CreatedAt,
		Modules:     modules,
	}
}
