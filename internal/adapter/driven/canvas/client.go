// Package canvas implements the CanvasClient port against the Canvas LMS
// REST API.
package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/time/rate"

	"github.com/coursepanel/coursepanel/internal/domain/model"
	"github.com/coursepanel/coursepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CanvasClient = (*Client)(nil)

// maxErrorBody caps how much of an error response body is captured into a
// CanvasAPIError.
const maxErrorBody = 512

// Client implements the driven.CanvasClient port with plain HTTP:
//  1. httpcache (ETag-based conditional request caching)
//  2. x/time/rate (per-process request limiter, Canvas throttles aggressively)
//  3. bearer-token auth with the per-user personal access token
//
// Unlike a single-tenant API client, Client holds no credential itself; the
// caller passes the user's CanvasCredential into each call.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Canvas API client allowing at most rps requests per
// second across all users served by this process.
func NewClient(rps float64) *Client {
	return &Client{
		http: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and no
// rate limiting. This constructor is intended for testing against an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

// VerifyToken probes the who-am-I endpoint with the supplied token. Any
// non-2xx response means Canvas rejected the pair and the connect attempt
// must not be persisted.
func (c *Client) VerifyToken(ctx context.Context, domain, token string) error {
	url := domain + "/api/v1/users/self"

	resp, err := c.do(ctx, url, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("verify token against %s: status %d: %w", domain, resp.StatusCode, model.ErrInvalidCredentials)
	}

	return nil
}

// ListActiveCourses fetches all of the user's active-enrollment courses. The
// enrollment filter rides only on the first request; every later request
// uses the previous response's rel="next" Link URL verbatim, which already
// carries the filter. The loop ends when no next link is present. A failure
// on any page aborts the whole call and discards pages already fetched.
func (c *Client) ListActiveCourses(ctx context.Context, cred model.CanvasCredential) ([]model.CanvasCourse, error) {
	url := cred.Domain + "/api/v1/courses?enrollment_state=active&per_page=100"

	var all []model.CanvasCourse
	for url != "" {
		var page []model.CanvasCourse
		next, err := c.getJSON(ctx, url, cred.AccessToken, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		url = next
	}

	if all == nil {
		all = []model.CanvasCourse{}
	}

	return all, nil
}

// ListUpcomingAssignments fetches a single page of upcoming assignments for
// the given Canvas course. Assignment listing is shallow: one page is enough
// for the dashboard preview, and assignment import is not implemented.
func (c *Client) ListUpcomingAssignments(ctx context.Context, cred model.CanvasCredential, canvasCourseID int64) ([]model.CanvasAssignment, error) {
	url := fmt.Sprintf("%s/api/v1/courses/%d/assignments?bucket=upcoming", cred.Domain, canvasCourseID)

	var assignments []model.CanvasAssignment
	if _, err := c.getJSON(ctx, url, cred.AccessToken, &assignments); err != nil {
		return nil, err
	}

	if assignments == nil {
		assignments = []model.CanvasAssignment{}
	}

	return assignments, nil
}

// getJSON issues an authenticated GET, decodes the JSON body into out, and
// returns the rel="next" pagination URL ("" when this was the last page).
func (c *Client) getJSON(ctx context.Context, url, token string, out any) (string, error) {
	resp, err := c.do(ctx, url, token)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &model.CanvasAPIError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", &model.CanvasAPIError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nextLink(resp.Header.Get("Link")), nil
}

// do sends one rate-limited, bearer-authenticated GET. Transport-level
// failures come back as *model.CanvasAPIError.
func (c *Client) do(ctx context.Context, url, token string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &model.CanvasAPIError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &model.CanvasAPIError{URL: url, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &model.CanvasAPIError{URL: url, Err: err}
	}

	return resp, nil
}
