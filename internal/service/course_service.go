package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-capture-service/internal/domain"
	"github.com/spec-kit/lead-capture-service/internal/repository"
	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// CourseService serves the read-only catalog.
type CourseService struct {
	courses repository.CourseRepository
}

// NewCourseService builds the service.
func NewCourseService(courses repository.CourseRepository) *CourseService {
	return &CourseService{courses: courses}
}

// ListCourses returns active courses with their ordered modules.
func (s *CourseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.courses.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return courses, nil
}

// GetCourse returns one course with its modules.
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("course")
		}
		return nil, apperrors.MapError(err)
	}
	return course, nil
}
