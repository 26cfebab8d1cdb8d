package httphandler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateCourseRequest is the JSON body for course creation.
type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"required,max=20"`
	Instructor  string `json:"instructor" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func (r *CreateCourseRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	r.Instructor = strings.TrimSpace(r.Instructor)
	r.Description = strings.TrimSpace(r.Description)
}

// UpdateCourseRequest is the JSON body for a partial course update. Absent
// fields are left unchanged.
type UpdateCourseRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Code        *string `json:"code" validate:"omitempty,min=1,max=20"`
	Instructor  *string `json:"instructor" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r *UpdateCourseRequest) trim() {
	for _, field := range []*string{r.Name, r.Code, r.Instructor, r.Description} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// ConnectCanvasRequest is the JSON body for connecting a Canvas account.
type ConnectCanvasRequest struct {
	Domain      string `json:"domain" validate:"required"`
	AccessToken string `json:"access_token" validate:"required"`
}

func (r *ConnectCanvasRequest) trim() {
	r.Domain = strings.TrimSpace(r.Domain)
	r.AccessToken = strings.TrimSpace(r.AccessToken)
}

// ImportCoursesRequest is the JSON body for the course import endpoint. An
// empty selection is allowed and yields an empty report.
type ImportCoursesRequest struct {
	CourseIDs []int64 `json:"course_ids"`
}

// ImportAssignmentsRequest is the JSON body for the assignment import stub.
type ImportAssignmentsRequest struct {
	AssignmentIDs []int64 `json:"assignment_ids"`
}

// validateRequest runs struct validation and flattens the result into
// human-readable per-field messages.
func validateRequest(req any) []string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	ok := false
	if verrs, ok = err.(validator.ValidationErrors); !ok {
		return []string{"invalid request"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}

	return msgs
}
