// Package model contains the core domain types shared across all layers.
package model

import "time"

// Course is a course on a user's personal list. It is either created
// manually or produced by a Canvas import, in which case CanvasCourseID
// carries the remote identifier used for duplicate detection on re-import.
type Course struct {
	ID             string
	UserID         string
	Name           string
	Code           string
	Instructor     string
	Description    string
	CanvasCourseID string // Empty for manually created courses.
	IsImported     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelongsTo reports whether the course is owned by the given user.
func (c Course) BelongsTo(userID string) bool {
	return c.UserID == userID
}

// CreateCourseData is the input to course creation.
type CreateCourseData struct {
	UserID         string
	Name           string
	Code           string
	Instructor     string
	Description    string
	CanvasCourseID string
	IsImported     bool
}

// UpdateCourseData is the input to a partial course update. Nil fields are
// left unchanged.
type UpdateCourseData struct {
	Name        *string
	Code        *string
	Instructor  *string
	Description *string
}
