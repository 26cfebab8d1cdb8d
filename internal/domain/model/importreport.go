package model

// ImportOutcomeReason values used in skipped entries.
const SkipReasonAlreadyImported = "Already imported"

// SkippedCourse is a selected Canvas course that was not imported because it
// already exists locally.
type SkippedCourse struct {
	CanvasCourseID int64
	Name           string
	Code           string
	Reason         string
}

// FailedCourse is a selected Canvas course whose local creation failed. The
// failure is recorded and the rest of the batch continues.
type FailedCourse struct {
	CanvasCourseID int64
	Name           string
	Code           string
	Error          string
}

// ImportReport is the outcome of one import attempt, partitioned into the
// courses that were created, the ones skipped as duplicates, and the ones
// whose creation failed.
type ImportReport struct {
	Imported []Course
	Skipped  []SkippedCourse
	Failed   []FailedCourse
}
