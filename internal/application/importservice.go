package application

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/coursepanel/coursepanel/internal/domain/model"
	"github.com/coursepanel/coursepanel/internal/domain/port/driven"
)

// importedInstructor is the placeholder instructor on imported courses;
// Canvas course listings do not carry an instructor name.
const importedInstructor = "Canvas Import"

// ImportService orchestrates the Canvas course import flow: fetch the full
// remote course set, diff it against the user's already-imported courses,
// and create local records for the net-new selections, collecting per-item
// outcomes into an ImportReport.
type ImportService struct {
	canvas  driven.CanvasClient
	courses driven.CourseStore
	creds   driven.CredentialStore
}

// NewImportService creates an ImportService with all required dependencies.
func NewImportService(canvas driven.CanvasClient, courses driven.CourseStore, creds driven.CredentialStore) *ImportService {
	return &ImportService{canvas: canvas, courses: courses, creds: creds}
}

// ListRemoteCourses returns the user's active Canvas courses across all
// pages. Requires a connected Canvas account.
func (s *ImportService) ListRemoteCourses(ctx context.Context, userID string) ([]model.CanvasCourse, error) {
	cred, err := s.creds.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.canvas.ListActiveCourses(ctx, cred)
}

// ListUpcomingAssignments returns one page of upcoming assignments for a
// Canvas course.
func (s *ImportService) ListUpcomingAssignments(ctx context.Context, userID string, canvasCourseID int64) ([]model.CanvasAssignment, error) {
	cred, err := s.creds.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.canvas.ListUpcomingAssignments(ctx, cred, canvasCourseID)
}

// ImportAssignments is a stub: assignments have no local model yet.
func (s *ImportService) ImportAssignments(ctx context.Context, userID string, canvasCourseID int64, assignmentIDs []int64) error {
	return model.ErrNotImplemented
}

// ImportSelected imports the selected Canvas courses for the user.
//
// The remote fetch is all-or-nothing: any Canvas failure aborts with no
// partial report. Selected ids not present in the remote set are dropped
// silently. From there each candidate is handled in API order and in
// isolation -- already-imported courses are skipped, store failures are
// recorded and the loop continues. The call errors with *ImportFailedError
// only when it imported nothing but skipped or failed something, so retrying
// after a partial success is safe and imports nothing twice.
func (s *ImportService) ImportSelected(ctx context.Context, userID string, selectedIDs []int64) (model.ImportReport, error) {
	start := time.Now()

	report := model.ImportReport{
		Imported: []model.Course{},
		Skipped:  []model.SkippedCourse{},
		Failed:   []model.FailedCourse{},
	}

	cred, err := s.creds.Get(ctx, userID)
	if err != nil {
		return report, err
	}

	remote, err := s.canvas.ListActiveCourses(ctx, cred)
	if err != nil {
		return report, err
	}

	selected := make(map[int64]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	existing, err := s.courses.FindByUserID(ctx, userID)
	if err != nil {
		return report, err
	}

	alreadyImported := make(map[string]bool, len(existing))
	for _, course := range existing {
		if course.CanvasCourseID != "" {
			alreadyImported[course.CanvasCourseID] = true
		}
	}

	for _, rc := range remote {
		if !selected[rc.ID] {
			continue
		}

		canvasID := strconv.FormatInt(rc.ID, 10)
		if alreadyImported[canvasID] {
			report.Skipped = append(report.Skipped, model.SkippedCourse{
				CanvasCourseID: rc.ID,
				Name:           rc.Name,
				Code:           rc.CourseCode,
				Reason:         model.SkipReasonAlreadyImported,
			})
			continue
		}

		course, err := s.courses.Create(ctx, model.CreateCourseData{
			UserID:         userID,
			Name:           rc.Name,
			Code:           rc.CourseCode,
			Instructor:     importedInstructor,
			CanvasCourseID: canvasID,
			IsImported:     true,
		})
		if err != nil {
			// One bad course must not block the rest of the batch.
			report.Failed = append(report.Failed, model.FailedCourse{
				CanvasCourseID: rc.ID,
				Name:           rc.Name,
				Code:           rc.CourseCode,
				Error:          err.Error(),
			})
			continue
		}

		report.Imported = append(report.Imported, course)
		alreadyImported[canvasID] = true
	}

	slog.Info("canvas import complete",
		"user_id", userID,
		"selected", len(selectedIDs),
		"imported", len(report.Imported),
		"skipped", len(report.Skipped),
		"failed", len(report.Failed),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if len(report.Imported) == 0 && (len(report.Skipped) > 0 || len(report.Failed) > 0) {
		return report, &model.ImportFailedError{
			Skipped: len(report.Skipped),
			Failed:  len(report.Failed),
		}
	}

	return report, nil
}
