package driven

import (
	"context"

	"github.com/coursepanel/coursepanel/internal/domain/model"
)

// CredentialStore defines the driven port for Canvas credential persistence.
// The adapter layer owns encryption; this interface operates on plaintext
// tokens at the domain boundary. A user's domain and token are a single
// atomic state: both set when connected, both absent when disconnected.
type CredentialStore interface {
	// Set stores or replaces the user's credential. The token is encrypted
	// before write.
	Set(ctx context.Context, userID, domain, token string) error

	// Get returns the user's credential with the token decrypted. Returns
	// model.ErrCredentialsNotFound when the user has never connected or has
	// disconnected.
	Get(ctx context.Context, userID string) (model.CanvasCredential, error)

	// Clear removes the user's credential. Idempotent.
	Clear(ctx context.Context, userID string) error
}
