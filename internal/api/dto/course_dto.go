package dto

import "time"

// ModuleResponse is one ordered module within a course.
type ModuleResponse struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"module_order"`
	Lessons     int    `json:"lessons"`
}

// CourseResponse is a catalog course with its nested modules.
type CourseResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Duration    int              `json:"duration"`
	Lessons     int              `json:"lessons"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	Modules     []ModuleResponse `json:"modules"`
}
