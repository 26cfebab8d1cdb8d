package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coursepanel/coursepanel/internal/domain/model"
	"github.com/coursepanel/coursepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CourseStore = (*CourseRepo)(nil)

// CourseRepo is the SQLite implementation of the CourseStore port interface.
// The UNIQUE (user_id, code) index enforces per-user course code uniqueness;
// violations surface as model.ErrCourseCodeExists.
type CourseRepo struct {
	db *DB
}

// NewCourseRepo creates a new CourseRepo backed by the given DB.
func NewCourseRepo(db *DB) *CourseRepo {
	return &CourseRepo{db: db}
}

const courseColumns = `id, user_id, name, code, instructor, description, canvas_course_id, is_imported, created_at, updated_at`

// Create inserts a new course with a generated id and fresh timestamps.
func (r *CourseRepo) Create(ctx context.Context, data model.CreateCourseData) (model.Course, error) {
	now := time.Now().UTC()
	course := model.Course{
		ID:             uuid.NewString(),
		UserID:         data.UserID,
		Name:           data.Name,
		Code:           data.Code,
		Instructor:     data.Instructor,
		Description:    data.Description,
		CanvasCourseID: data.CanvasCourseID,
		IsImported:     data.IsImported,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	const query = `INSERT INTO courses (` + courseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query,
		course.ID,
		course.UserID,
		course.Name,
		course.Code,
		course.Instructor,
		course.Description,
		nullIfEmpty(course.CanvasCourseID),
		course.IsImported,
		course.CreatedAt.Format(time.RFC3339),
		course.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return model.Course{}, fmt.Errorf("create course %q: %w", course.Code, model.ErrCourseCodeExists)
		}
		return model.Course{}, fmt.Errorf("create course %q: %w", course.Code, err)
	}

	return course, nil
}

// FindByID retrieves a course by id. Returns nil, nil when it does not exist.
func (r *CourseRepo) FindByID(ctx context.Context, id string) (*model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`

	course, err := scanCourse(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", id, err)
	}

	return course, nil
}

// FindByUserID returns the user's courses, newest first.
func (r *CourseRepo) FindByUserID(ctx context.Context, userID string) ([]model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE user_id = ? ORDER BY created_at DESC, id`

	rows, err := r.db.Reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

// FindByCodeAndUser retrieves a course by (code, user). Returns nil, nil when
// the user has no course with that code.
func (r *CourseRepo) FindByCodeAndUser(ctx context.Context, code, userID string) (*model.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE code = ? AND user_id = ?`

	course, err := scanCourse(r.db.Reader.QueryRowContext(ctx, query, code, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course by code %q: %w", code, err)
	}

	return course, nil
}

// Update applies the non-nil fields of updates and refreshes updated_at.
func (r *CourseRepo) Update(ctx context.Context, id string, updates model.UpdateCourseData) (model.Course, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC().Format(time.RFC3339)}

	if updates.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *updates.Name)
	}
	if updates.Code != nil {
		set = append(set, "code = ?")
		args = append(args, *updates.Code)
	}
	if updates.Instructor != nil {
		set = append(set, "instructor = ?")
		args = append(args, *updates.Instructor)
	}
	if updates.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *updates.Description)
	}
	args = append(args, id)

	query := "UPDATE courses SET " + strings.Join(set, ", ") + " WHERE id = ?"

	result, err := r.db.Writer.ExecContext(ctx, query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return model.Course{}, fmt.Errorf("update course %s: %w", id, model.ErrCourseCodeExists)
		}
		return model.Course{}, fmt.Errorf("update course %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Course{}, fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.Course{}, fmt.Errorf("update course %s: %w", id, model.ErrCourseNotFound)
	}

	course, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if course == nil {
		return model.Course{}, fmt.Errorf("update course %s: %w", id, model.ErrCourseNotFound)
	}

	return *course, nil
}

// Delete removes a course by id.
func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM courses WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete course %s: %w", id, model.ErrCourseNotFound)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(s scanner) (*model.Course, error) {
	var course model.Course
	var canvasCourseID sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(
		&course.ID,
		&course.UserID,
		&course.Name,
		&course.Code,
		&course.Instructor,
		&course.Description,
		&canvasCourseID,
		&course.IsImported,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	course.CanvasCourseID = canvasCourseID.String

	course.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	course.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &course, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
