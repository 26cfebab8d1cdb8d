package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/coursepanel/coursepanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeValidationError writes a 400 with per-field validation messages.
func writeValidationError(w http.ResponseWriter, messages []string) {
	writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:  "validation failed",
		Fields: messages,
	})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// validationErrorResponse carries per-field validation failures.
type validationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CourseResponse is the JSON representation of a course.
type CourseResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Instructor     string `json:"instructor"`
	Description    string `json:"description"`
	CanvasCourseID string `json:"canvas_course_id,omitempty"`
	IsImported     bool   `json:"is_imported"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`

	// Populated only on the single-course detail endpoint.
	DescriptionHTML string `json:"description_html,omitempty"`
}

// CanvasStatusResponse reports the caller's Canvas connection state.
type CanvasStatusResponse struct {
	Connected bool   `json:"connected"`
	Domain    string `json:"domain,omitempty"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

// toCourseResponse converts a domain Course to its JSON representation.
func toCourseResponse(course model.Course) CourseResponse {
	return CourseResponse{
		ID:             course.ID,
		Name:           course.Name,
		Code:           course.Code,
		Instructor:     course.Instructor,
		Description:    course.Description,
		CanvasCourseID: course.CanvasCourseID,
		IsImported:     course.IsImported,
		CreatedAt:      course.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      course.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
