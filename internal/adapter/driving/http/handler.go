// Package httphandler is the HTTP driving adapter serving the JSON REST API.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coursepanel/coursepanel/internal/application"
	"github.com/coursepanel/coursepanel/internal/domain/model"
)

// Pinger is the slice of the database the health endpoint needs.
type Pinger interface {
	Ping() error
}

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	courses       *application.CourseService
	canvasAccount *application.CanvasAccountService
	importer      *application.ImportService
	db            Pinger
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	courses *application.CourseService,
	canvasAccount *application.CanvasAccountService,
	importer *application.ImportService,
	db Pinger,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		courses:       courses,
		canvasAccount: canvasAccount,
		importer:      importer,
		db:            db,
		logger:        logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with identity, CORS, logging, and recovery middleware.
func NewServeMux(h *Handler, corsOrigin string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/courses", h.CreateCourse)
	mux.HandleFunc("GET /api/v1/courses", h.ListCourses)
	mux.HandleFunc("GET /api/v1/courses/{id}", h.GetCourse)
	mux.HandleFunc("PUT /api/v1/courses/{id}", h.UpdateCourse)
	mux.HandleFunc("DELETE /api/v1/courses/{id}", h.DeleteCourse)

	mux.HandleFunc("POST /api/v1/canvas/connect", h.ConnectCanvas)
	mux.HandleFunc("DELETE /api/v1/canvas/disconnect", h.DisconnectCanvas)
	mux.HandleFunc("GET /api/v1/canvas/status", h.CanvasStatus)
	mux.HandleFunc("GET /api/v1/canvas/courses", h.ListCanvasCourses)
	mux.HandleFunc("POST /api/v1/canvas/import-courses", h.ImportCanvasCourses)
	mux.HandleFunc("GET /api/v1/canvas/courses/{id}/assignments", h.ListCanvasAssignments)
	mux.HandleFunc("POST /api/v1/canvas/courses/{id}/import-assignments", h.ImportCanvasAssignments)

	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = identityMiddleware(wrapped)
	wrapped = corsMiddleware(corsOrigin, wrapped)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// CreateCourse adds a course to the caller's list.
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.trim()

	if msgs := validateRequest(req); len(msgs) > 0 {
		writeValidationError(w, msgs)
		return
	}

	course, err := h.courses.Create(r.Context(), model.CreateCourseData{
		UserID:      user,
		Name:        req.Name,
		Code:        req.Code,
		Instructor:  req.Instructor,
		Description: req.Description,
	})
	if err != nil {
		h.writeServiceError(w, err, "create course")
		return
	}

	writeJSON(w, http.StatusCreated, toCourseResponse(course))
}

// ListCourses returns all of the caller's courses, newest first.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	courses, err := h.courses.ListForUser(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, err, "list courses")
		return
	}

	resp := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, toCourseResponse(course))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetCourse returns a single owned course, with the description rendered to
// sanitized HTML.
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	course, err := h.courses.GetByID(r.Context(), r.PathValue("id"), user)
	if err != nil {
		h.writeServiceError(w, err, "get course")
		return
	}

	resp := toCourseResponse(course)
	resp.DescriptionHTML = RenderMarkdown(course.Description)

	writeJSON(w, http.StatusOK, resp)
}

// UpdateCourse applies a partial update to an owned course.
func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.trim()

	if msgs := validateRequest(req); len(msgs) > 0 {
		writeValidationError(w, msgs)
		return
	}

	course, err := h.courses.Update(r.Context(), r.PathValue("id"), user, model.UpdateCourseData{
		Name:        req.Name,
		Code:        req.Code,
		Instructor:  req.Instructor,
		Description: req.Description,
	})
	if err != nil {
		h.writeServiceError(w, err, "update course")
		return
	}

	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

// DeleteCourse removes an owned course.
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.courses.Delete(r.Context(), r.PathValue("id"), user); err != nil {
		h.writeServiceError(w, err, "delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health reports service and database status.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Database: "connected",
		Time:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.db.Ping(); err != nil {
		h.logger.Error("health check db ping failed", "error", err)
		resp.Status = "error"
		resp.Database = "disconnected"
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeServiceError maps domain errors to HTTP status codes. Unrecognized
// errors are logged and surface as opaque 500s.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, op string) {
	var canvasErr *model.CanvasAPIError
	var importErr *model.ImportFailedError

	switch {
	case errors.Is(err, model.ErrCourseNotFound):
		writeError(w, http.StatusNotFound, "course not found")
	case errors.Is(err, model.ErrCourseCodeExists):
		writeError(w, http.StatusConflict, "course code already exists")
	case errors.Is(err, model.ErrCredentialsNotFound):
		writeError(w, http.StatusNotFound, "canvas is not connected")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid canvas credentials")
	case errors.Is(err, model.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, "not implemented")
	case errors.As(err, &importErr):
		writeError(w, http.StatusUnprocessableEntity, importErr.Error())
	case errors.As(err, &canvasErr):
		h.logger.Error("canvas api failure", "op", op, "url", canvasErr.URL, "status", canvasErr.StatusCode, "error", err)
		writeError(w, http.StatusBadGateway, "canvas api error: "+canvasErr.Error())
	default:
		h.logger.Error("internal error", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
