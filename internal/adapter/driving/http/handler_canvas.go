package httphandler

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ConnectCanvas verifies and stores the caller's Canvas domain and access
// token. A failed verification leaves any prior credential untouched.
func (h *Handler) ConnectCanvas(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ConnectCanvasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.trim()

	if msgs := validateRequest(req); len(msgs) > 0 {
		writeValidationError(w, msgs)
		return
	}

	if err := h.canvasAccount.Connect(r.Context(), user, req.Domain, req.AccessToken); err != nil {
		h.writeServiceError(w, err, "connect canvas")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "canvas connected"})
}

// DisconnectCanvas removes the caller's Canvas credential. Idempotent.
func (h *Handler) DisconnectCanvas(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.canvasAccount.Disconnect(r.Context(), user); err != nil {
		h.writeServiceError(w, err, "disconnect canvas")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CanvasStatus reports whether the caller has a Canvas connection.
func (h *Handler) CanvasStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	connected, domain, err := h.canvasAccount.Status(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, err, "canvas status")
		return
	}

	writeJSON(w, http.StatusOK, CanvasStatusResponse{Connected: connected, Domain: domain})
}

// ListCanvasCourses returns the caller's active Canvas courses across all
// pages of the remote listing.
func (h *Handler) ListCanvasCourses(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	courses, err := h.importer.ListRemoteCourses(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, err, "list canvas courses")
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

// ImportCanvasCourses imports the selected Canvas courses and returns the
// imported set. Skips and per-item failures only surface through the error
// message when nothing at all was imported.
func (h *Handler) ImportCanvasCourses(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ImportCoursesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.importer.ImportSelected(r.Context(), user, req.CourseIDs)
	if err != nil {
		h.writeServiceError(w, err, "import canvas courses")
		return
	}

	resp := make([]CourseResponse, 0, len(report.Imported))
	for _, course := range report.Imported {
		resp = append(resp, toCourseResponse(course))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListCanvasAssignments returns one page of upcoming assignments for a
// Canvas course.
func (h *Handler) ListCanvasAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	canvasCourseID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid canvas course id")
		return
	}

	assignments, err := h.importer.ListUpcomingAssignments(r.Context(), user, canvasCourseID)
	if err != nil {
		h.writeServiceError(w, err, "list canvas assignments")
		return
	}

	writeJSON(w, http.StatusOK, assignments)
}

// ImportCanvasAssignments is not implemented; assignments have no local
// model yet.
func (h *Handler) ImportCanvasAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	canvasCourseID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid canvas course id")
		return
	}

	var req ImportAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.importer.ImportAssignments(r.Context(), user, canvasCourseID, req.AssignmentIDs); err != nil {
		h.writeServiceError(w, err, "import canvas assignments")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
