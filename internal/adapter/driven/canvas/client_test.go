package canvas_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canvasadapter "github.com/coursepanel/coursepanel/internal/adapter/driven/canvas"
	"github.com/coursepanel/coursepanel/internal/domain/model"
)

// newTestClient creates a Client backed by the given httptest handler and a
// credential pointing at it.
func newTestClient(t *testing.T, handler http.Handler) (*canvasadapter.Client, model.CanvasCredential) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := canvasadapter.NewClientWithHTTPClient(server.Client())
	cred := model.CanvasCredential{
		UserID:      "user-1",
		Domain:      server.URL,
		AccessToken: "test-token",
	}

	return client, cred
}

func courseJSON(id int64, name, code string) model.CanvasCourse {
	return model.CanvasCourse{ID: id, Name: name, CourseCode: code, EnrollmentState: "active"}
}

func TestListActiveCourses_SinglePage(t *testing.T) {
	courses := []model.CanvasCourse{
		courseJSON(101, "Object Oriented Design", "CS3500"),
		courseJSON(102, "Algorithms", "CS3000"),
	}

	var gotAuth, gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(courses)
	})

	client, cred := newTestClient(t, handler)
	result, err := client.ListActiveCourses(context.Background(), cred)

	require.NoError(t, err)
	assert.Equal(t, courses, result)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Contains(t, gotQuery, "enrollment_state=active")
}

func TestListActiveCourses_FollowsNextLink(t *testing.T) {
	page1 := []model.CanvasCourse{courseJSON(1, "One", "C1")}
	page2 := []model.CanvasCourse{courseJSON(2, "Two", "C2")}

	var page2Query string
	mux := http.NewServeMux()
	var serverURL string
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			page2Query = r.URL.RawQuery
			json.NewEncoder(w).Encode(page2)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(
			`<%s/api/v1/courses?page=2&per_page=100>; rel="next", <%s/api/v1/courses?page=2>; rel="last"`,
			serverURL, serverURL,
		))
		json.NewEncoder(w).Encode(page1)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	serverURL = server.URL

	client := canvasadapter.NewClientWithHTTPClient(server.Client())
	cred := model.CanvasCredential{Domain: server.URL, AccessToken: "test-token"}

	result, err := client.ListActiveCourses(context.Background(), cred)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, int64(2), result[1].ID)
	// Follow-up requests use the next link verbatim; the filter is already
	// baked into it and must not be re-applied.
	assert.NotContains(t, page2Query, "enrollment_state")
}

func TestListActiveCourses_FailureMidPaginationDiscardsAll(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, `{"errors":[{"message":"rate limited"}]}`, http.StatusForbidden)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/courses?page=2>; rel="next"`, serverURL))
		json.NewEncoder(w).Encode([]model.CanvasCourse{courseJSON(1, "One", "C1")})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	serverURL = server.URL

	client := canvasadapter.NewClientWithHTTPClient(server.Client())
	cred := model.CanvasCredential{Domain: server.URL, AccessToken: "test-token"}

	result, err := client.ListActiveCourses(context.Background(), cred)

	assert.Nil(t, result, "partially fetched pages are discarded")
	var apiErr *model.CanvasAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "rate limited")
}

func TestListActiveCourses_EmptyListing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]model.CanvasCourse{})
	})

	client, cred := newTestClient(t, handler)
	result, err := client.ListActiveCourses(context.Background(), cred)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestVerifyToken_Accepted(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"id": 7, "name": "Student"})
	})

	client, cred := newTestClient(t, handler)
	err := client.VerifyToken(context.Background(), cred.Domain, "good-token")

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/users/self", gotPath)
}

func TestVerifyToken_Rejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":[{"message":"Invalid access token."}]}`, http.StatusUnauthorized)
	})

	client, cred := newTestClient(t, handler)
	err := client.VerifyToken(context.Background(), cred.Domain, "bad-token")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestListUpcomingAssignments_SinglePageOnly(t *testing.T) {
	assignments := []model.CanvasAssignment{
		{ID: 900, Name: "Problem Set 3", PointsTotal: 100},
	}

	var requests int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/api/v1/courses/101/assignments", r.URL.Path)
		assert.Equal(t, "upcoming", r.URL.Query().Get("bucket"))
		// Even when Canvas advertises a next page, assignment listing
		// stays shallow.
		w.Header().Set("Link", `<http://example.invalid/page2>; rel="next"`)
		json.NewEncoder(w).Encode(assignments)
	})

	client, cred := newTestClient(t, handler)
	result, err := client.ListUpcomingAssignments(context.Background(), cred, 101)

	require.NoError(t, err)
	assert.Equal(t, assignments, result)
	assert.Equal(t, 1, requests)
}

func TestListActiveCourses_MalformedBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	})

	client, cred := newTestClient(t, handler)
	_, err := client.ListActiveCourses(context.Background(), cred)

	var apiErr *model.CanvasAPIError
	assert.ErrorAs(t, err, &apiErr)
}
