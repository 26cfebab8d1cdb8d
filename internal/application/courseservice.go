// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"

	"github.com/coursepanel/coursepanel/internal/domain/model"
	"github.com/coursepanel/coursepanel/internal/domain/port/driven"
)

// CourseService implements manual course CRUD with ownership checks and
// per-user course code uniqueness. Every accessor takes the caller's user id
// and treats a course owned by someone else as nonexistent.
type CourseService struct {
	courses driven.CourseStore
}

// NewCourseService creates a CourseService backed by the given store.
func NewCourseService(courses driven.CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// Create adds a course to the user's list. Returns model.ErrCourseCodeExists
// when the user already has a course with the same code. The explicit lookup
// here is a friendlier first line of defense; the store's unique index is
// the real guarantee under concurrency.
func (s *CourseService) Create(ctx context.Context, data model.CreateCourseData) (model.Course, error) {
	existing, err := s.courses.FindByCodeAndUser(ctx, data.Code, data.UserID)
	if err != nil {
		return model.Course{}, err
	}
	if existing != nil {
		return model.Course{}, fmt.Errorf("code %q: %w", data.Code, model.ErrCourseCodeExists)
	}

	return s.courses.Create(ctx, data)
}

// ListForUser returns the user's courses, newest first.
func (s *CourseService) ListForUser(ctx context.Context, userID string) ([]model.Course, error) {
	return s.courses.FindByUserID(ctx, userID)
}

// GetByID returns the course only when it exists and belongs to the caller.
// A course owned by another user reads as model.ErrCourseNotFound so the
// API never reveals that the id exists.
func (s *CourseService) GetByID(ctx context.Context, id, userID string) (model.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if course == nil || !course.BelongsTo(userID) {
		return model.Course{}, model.ErrCourseNotFound
	}

	return *course, nil
}

// Update applies a partial update after an ownership check. Changing the
// code re-checks uniqueness against the user's other courses.
func (s *CourseService) Update(ctx context.Context, id, userID string, updates model.UpdateCourseData) (model.Course, error) {
	course, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return model.Course{}, err
	}

	if updates.Code != nil && *updates.Code != course.Code {
		existing, err := s.courses.FindByCodeAndUser(ctx, *updates.Code, userID)
		if err != nil {
			return model.Course{}, err
		}
		if existing != nil {
			return model.Course{}, fmt.Errorf("code %q: %w", *updates.Code, model.ErrCourseCodeExists)
		}
	}

	return s.courses.Update(ctx, id, updates)
}

// Delete removes the course after an ownership check.
func (s *CourseService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.courses.Delete(ctx, id)
}
