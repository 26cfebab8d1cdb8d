package driven

import (
	"context"

	"github.com/coursepanel/coursepanel/internal/domain/model"
)

// CanvasClient defines the driven port for the Canvas LMS REST API.
// All failures surface as *model.CanvasAPIError except VerifyToken, which
// maps an authentication rejection to model.ErrInvalidCredentials.
type CanvasClient interface {
	// VerifyToken probes GET /api/v1/users/self with the given token.
	// Returns model.ErrInvalidCredentials when Canvas rejects it.
	VerifyToken(ctx context.Context, domain, token string) error

	// ListActiveCourses fetches the user's active-enrollment courses,
	// following Link-header pagination to exhaustion. All-or-nothing: a
	// failure on any page discards everything already fetched.
	ListActiveCourses(ctx context.Context, cred model.CanvasCredential) ([]model.CanvasCourse, error)

	// ListUpcomingAssignments fetches a single page of upcoming assignments
	// for the given Canvas course.
	ListUpcomingAssignments(ctx context.Context, cred model.CanvasCredential, canvasCourseID int64) ([]model.CanvasAssignment, error)
}
