package domain

import "time"

// Course is read-only catalog data seeded at startup.
type Course struct {
	ID          int64
	Title       string
	Description string
	Price       float64
	Duration    int
	Lessons     int
	Active      bool
	CreatedAt   time.Time
	Modules     []Module
}

// Module belongs to exactly one course and is ordered within it.
type Module struct {
	ID          int64
	CourseID    int64
	Title       string
	Description string
	Order       int
	Lessons     int
	CreatedAt   time.Time
}
