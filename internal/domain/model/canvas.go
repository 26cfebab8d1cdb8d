package model

import "time"

// CanvasCredential is a user's decrypted Canvas connection: the normalized
// base URL of the Canvas instance and the personal access token. Tokens only
// exist in plaintext in memory; the store layer persists them encrypted.
type CanvasCredential struct {
	UserID      string
	Domain      string
	AccessToken string
	UpdatedAt   time.Time
}

// CanvasCourse is a course as returned by the Canvas REST API. It is
// ephemeral: fetched, shown to the user for selection, and optionally turned
// into a local Course by the import service. Never persisted as-is.
type CanvasCourse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	CourseCode      string `json:"course_code"`
	EnrollmentState string `json:"enrollment_state"`
}

// CanvasAssignment is an assignment as returned by the Canvas REST API.
type CanvasAssignment struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	PointsTotal float64    `json:"points_possible"`
	HTMLURL     string     `json:"html_url"`
}
