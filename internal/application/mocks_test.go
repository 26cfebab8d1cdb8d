package application_test

import (
	"context"
	"fmt"
	"strconv"

	"github.com/coursepanel/coursepanel/internal/domain/model"
)

// --- Mock implementations of the driven ports ---

// mockCourseStore is an in-memory CourseStore. failCreateCodes makes Create
// fail for specific course codes to exercise per-item failure paths.
type mockCourseStore struct {
	courses         []model.Course
	nextID          int
	failCreateCodes map[string]error
	createCalls     int
}

func (m *mockCourseStore) Create(_ context.Context, data model.CreateCourseData) (model.Course, error) {
	m.createCalls++

	if err, ok := m.failCreateCodes[data.Code]; ok {
		return model.Course{}, err
	}

	for _, c := range m.courses {
		if c.UserID == data.UserID && c.Code == data.Code {
			return model.Course{}, fmt.Errorf("code %q: %w", data.Code, model.ErrCourseCodeExists)
		}
	}

	m.nextID++
	course := model.Course{
		ID:             "course-" + strconv.Itoa(m.nextID),
		UserID:         data.UserID,
		Name:           data.Name,
		Code:           data.Code,
		Instructor:     data.Instructor,
		Description:    data.Description,
		CanvasCourseID: data.CanvasCourseID,
		IsImported:     data.IsImported,
	}
	m.courses = append(m.courses, course)
	return course, nil
}

func (m *mockCourseStore) FindByID(_ context.Context, id string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.ID == id {
			course := c
			return &course, nil
		}
	}
	return nil, nil
}

func (m *mockCourseStore) FindByUserID(_ context.Context, userID string) ([]model.Course, error) {
	var out []model.Course
	for _, c := range m.courses {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseStore) FindByCodeAndUser(_ context.Context, code, userID string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.UserID == userID && c.Code == code {
			course := c
			return &course, nil
		}
	}
	return nil, nil
}

func (m *mockCourseStore) Update(_ context.Context, id string, updates model.UpdateCourseData) (model.Course, error) {
	for i, c := range m.courses {
		if c.ID != id {
			continue
		}
		if updates.Name != nil {
			m.courses[i].Name = *updates.Name
		}
		if updates.Code != nil {
			m.courses[i].Code = *updates.Code
		}
		if updates.Instructor != nil {
			m.courses[i].Instructor = *updates.Instructor
		}
		if updates.Description != nil {
			m.courses[i].Description = *updates.Description
		}
		return m.courses[i], nil
	}
	return model.Course{}, model.ErrCourseNotFound
}

func (m *mockCourseStore) Delete(_ context.Context, id string) error {
	for i, c := range m.courses {
		if c.ID == id {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return model.ErrCourseNotFound
}

// mockCredentialStore is an in-memory CredentialStore with call tracking.
type mockCredentialStore struct {
	creds    map[string]model.CanvasCredential
	setCalls int
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{creds: map[string]model.CanvasCredential{}}
}

func (m *mockCredentialStore) Set(_ context.Context, userID, domain, token string) error {
	m.setCalls++
	m.creds[userID] = model.CanvasCredential{UserID: userID, Domain: domain, AccessToken: token}
	return nil
}

func (m *mockCredentialStore) Get(_ context.Context, userID string) (model.CanvasCredential, error) {
	cred, ok := m.creds[userID]
	if !ok {
		return model.CanvasCredential{}, model.ErrCredentialsNotFound
	}
	return cred, nil
}

func (m *mockCredentialStore) Clear(_ context.Context, userID string) error {
	delete(m.creds, userID)
	return nil
}

// mockCanvasClient returns canned data or errors.
type mockCanvasClient struct {
	verifyErr      error
	verifiedDomain string
	verifiedToken  string

	courses    []model.CanvasCourse
	coursesErr error

	assignments    []model.CanvasAssignment
	assignmentsErr error
}

func (m *mockCanvasClient) VerifyToken(_ context.Context, domain, token string) error {
	m.verifiedDomain = domain
	m.verifiedToken = token
	return m.verifyErr
}

func (m *mockCanvasClient) ListActiveCourses(_ context.Context, _ model.CanvasCredential) ([]model.CanvasCourse, error) {
	if m.coursesErr != nil {
		return nil, m.coursesErr
	}
	return m.courses, nil
}

func (m *mockCanvasClient) ListUpcomingAssignments(_ context.Context, _ model.CanvasCredential, _ int64) ([]model.CanvasAssignment, error) {
	if m.assignmentsErr != nil {
		return nil, m.assignmentsErr
	}
	return m.assignments, nil
}
