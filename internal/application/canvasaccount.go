package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/coursepanel/coursepanel/internal/domain/model"
	"github.com/coursepanel/coursepanel/internal/domain/port/driven"
)

// CanvasAccountService manages a user's Canvas connection: the credential
// vault plus the connect-time verification probe. Connecting is atomic -- a
// failed probe leaves any previously stored credential untouched.
type CanvasAccountService struct {
	creds  driven.CredentialStore
	canvas driven.CanvasClient
}

// NewCanvasAccountService creates a CanvasAccountService.
func NewCanvasAccountService(creds driven.CredentialStore, canvas driven.CanvasClient) *CanvasAccountService {
	return &CanvasAccountService{creds: creds, canvas: canvas}
}

// Connect normalizes the domain, verifies the token against Canvas, and only
// then encrypts and stores the pair, overwriting any prior credential.
// Returns model.ErrInvalidCredentials when the probe is rejected; nothing is
// written in that case.
func (s *CanvasAccountService) Connect(ctx context.Context, userID, domain, token string) error {
	if strings.TrimSpace(domain) == "" || strings.TrimSpace(token) == "" {
		return errors.New("canvas domain and access token are required")
	}

	normalized := NormalizeCanvasDomain(domain)

	if err := s.canvas.VerifyToken(ctx, normalized, token); err != nil {
		return err
	}

	if err := s.creds.Set(ctx, userID, normalized, token); err != nil {
		return err
	}

	slog.Info("canvas connected", "user_id", userID, "domain", normalized)
	return nil
}

// Disconnect removes the user's credential. Idempotent.
func (s *CanvasAccountService) Disconnect(ctx context.Context, userID string) error {
	if err := s.creds.Clear(ctx, userID); err != nil {
		return err
	}

	slog.Info("canvas disconnected", "user_id", userID)
	return nil
}

// Credentials returns the user's decrypted credential, or
// model.ErrCredentialsNotFound when disconnected.
func (s *CanvasAccountService) Credentials(ctx context.Context, userID string) (model.CanvasCredential, error) {
	return s.creds.Get(ctx, userID)
}

// Status reports whether the user is connected and, if so, to which domain.
func (s *CanvasAccountService) Status(ctx context.Context, userID string) (bool, string, error) {
	cred, err := s.creds.Get(ctx, userID)
	if errors.Is(err, model.ErrCredentialsNotFound) {
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}

	return true, cred.Domain, nil
}

// NormalizeCanvasDomain canonicalizes a user-entered Canvas domain: strips a
// leading http:// or https://, drops trailing slashes, and re-prepends
// https://. "school.instructure.com" and "https://school.instructure.com/"
// both normalize to "https://school.instructure.com".
func NormalizeCanvasDomain(domain string) string {
	normalized := strings.TrimSpace(domain)
	normalized = strings.TrimPrefix(normalized, "http://")
	normalized = strings.TrimPrefix(normalized, "https://")
	normalized = strings.TrimRight(normalized, "/")
	return "https://" + normalized
}
