package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/coursepanel/coursepanel/internal/domain/model"
	"github.com/coursepanel/coursepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port
// interface. Access tokens are encrypted with AES-256-GCM before write and
// decrypted after read; domains are stored in the clear.
type CredentialRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key, required at construction.
}

// NewCredentialRepo creates a new CredentialRepo. key must be 32 bytes for
// AES-256-GCM; there is no keyless mode -- the composition root fails fast
// when no key is configured.
func NewCredentialRepo(db *DB, key []byte) (*CredentialRepo, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("credential encryption key must be 32 bytes, got %d", len(key))
	}
	return &CredentialRepo{db: db, key: key}, nil
}

// Set stores or replaces the user's Canvas credential. The token is
// encrypted; domain and token are written together in one statement so the
// connected state stays atomic.
func (r *CredentialRepo) Set(ctx context.Context, userID, domain, token string) error {
	encrypted, err := r.encrypt(token)
	if err != nil {
		return err
	}

	const query = `INSERT INTO canvas_credentials (user_id, domain, access_token, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET domain = excluded.domain, access_token = excluded.access_token, updated_at = excluded.updated_at`

	_, err = r.db.Writer.ExecContext(ctx, query, userID, domain, encrypted, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set canvas credential: %w", err)
	}
	return nil
}

// Get retrieves the user's credential with the token decrypted. Returns
// model.ErrCredentialsNotFound when the row is absent or either field is
// NULL (disconnected state).
func (r *CredentialRepo) Get(ctx context.Context, userID string) (model.CanvasCredential, error) {
	const query = `SELECT domain, access_token, updated_at FROM canvas_credentials WHERE user_id = ?`

	var domain, encrypted sql.NullString
	var updatedAt string
	err := r.db.Reader.QueryRowContext(ctx, query, userID).Scan(&domain, &encrypted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CanvasCredential{}, model.ErrCredentialsNotFound
	}
	if err != nil {
		return model.CanvasCredential{}, fmt.Errorf("get canvas credential: %w", err)
	}
	if !domain.Valid || !encrypted.Valid {
		return model.CanvasCredential{}, model.ErrCredentialsNotFound
	}

	cred := model.CanvasCredential{
		UserID: userID,
		Domain: domain.String,
	}

	cred.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.CanvasCredential{}, fmt.Errorf("parse updated_at: %w", err)
	}

	token, err := r.decrypt(encrypted.String)
	if err != nil {
		// Tokens stored before encryption was introduced are raw plaintext.
		// Hand them back as-is instead of hard-failing; the user can
		// reconnect to re-encrypt.
		slog.Warn("canvas token not decryptable, treating as legacy plaintext", "user_id", userID)
		cred.AccessToken = encrypted.String
		return cred, nil
	}

	cred.AccessToken = token
	return cred, nil
}

// Clear nulls out the user's domain and token in one statement. A no-op when
// the user never connected.
func (r *CredentialRepo) Clear(ctx context.Context, userID string) error {
	const query = `UPDATE canvas_credentials SET domain = NULL, access_token = NULL, updated_at = ? WHERE user_id = ?`

	_, err := r.db.Writer.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), userID)
	if err != nil {
		return fmt.Errorf("clear canvas credential: %w", err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
