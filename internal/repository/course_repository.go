package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-capture-service/internal/domain"
)

// CourseRepository reads the seeded course catalog.
type CourseRepository interface {
	ListActive(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	Count(ctx context.Context) (int64, error)
	InsertCourse(ctx context.Context, course *domain.Course) error
	InsertModule(ctx context.Context, module *domain.Module) error
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository instantiates repository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) ListActive(ctx context.Context) ([]domain.Course, error) {
	const query = `
        SELECT id, title, description, price, duration, lessons, active, created_at
        FROM courses WHERE active = TRUE ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Description,
			&course.Price,
			&course.Duration,
			&course.Lessons,
			&course.Active,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range courses {
		modules, err := r.listModules(ctx, courses[i].ID)
		if err != nil {
			return nil, err
		}
		courses[i].Modules = modules
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	const query = `
        SELECT id, title, description, price, duration, lessons, active, created_at
        FROM courses WHERE id=$1`

	var course domain.Course
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.Duration,
		&course.Lessons,
		&course.Active,
		&course.CreatedAt,
	); err != nil {
		return nil, err
	}

	modules, err := r.listModules(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	course.Modules = modules
	return &course, nil
}

func (r *courseRepository) listModules(ctx context.Context, courseID int64) ([]domain.Module, error) {
	const query = `
        SELECT id, course_id, title, description, module_order, lessons, created_at
        FROM modules WHERE course_id=$1 ORDER BY module_order`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanModules(rows)
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *courseRepository) InsertCourse(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (title, description, price, duration, lessons, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		course.Title,
		course.Description,
		course.Price,
		course.Duration,
		course.Lessons,
		course.Active,
	).Scan(&course.ID, &course.CreatedAt)
}

func (r *courseRepository) InsertModule(ctx context.Context, module *domain.Module) error {
	const query = `
        INSERT INTO modules (course_id, title, description, module_order, lessons)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		module.CourseID,
		module.Title,
		module.Description,
		module.Order,
		module.Lessons,
	).Scan(&module.ID, &module.CreatedAt)
}

func scanModules(rows pgx.Rows) ([]domain.Module, error) {
	var result []domain.Module
	for rows.Next() {
		var module domain.Module
		if err := rows.Scan(
			&module.ID,
			&module.CourseID,
			&module.Title,
			&module.Description,
			&module.Order,
			&module.Lessons,
			&module.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, module)
	}
	return result, rows.Err()
}
