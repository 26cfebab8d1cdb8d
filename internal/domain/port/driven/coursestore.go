// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"

	"github.com/coursepanel/coursepanel/internal/domain/model"
)

// CourseStore defines the driven port for course persistence. The underlying
// store enforces (user_id, code) uniqueness; Create returns
// model.ErrCourseCodeExists on violation. This database-level constraint is
// the authoritative guard -- service-layer duplicate checks are an
// optimization, not the source of truth.
type CourseStore interface {
	Create(ctx context.Context, data model.CreateCourseData) (model.Course, error)

	// FindByID returns nil, nil when no course with the given id exists.
	FindByID(ctx context.Context, id string) (*model.Course, error)

	// FindByUserID returns the user's courses ordered by creation time,
	// newest first.
	FindByUserID(ctx context.Context, userID string) ([]model.Course, error)

	// FindByCodeAndUser returns nil, nil when the user has no course with
	// the given code.
	FindByCodeAndUser(ctx context.Context, code, userID string) (*model.Course, error)

	// Update applies the non-nil fields of updates and refreshes updated_at.
	// Returns model.ErrCourseNotFound when the id does not exist.
	Update(ctx context.Context, id string, updates model.UpdateCourseData) (model.Course, error)

	// Delete returns model.ErrCourseNotFound when the id does not exist.
	Delete(ctx context.Context, id string) error
}
