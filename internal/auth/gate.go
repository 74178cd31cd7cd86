// Package auth implements the session gate: registration and sign-in
// against the locally stored credential map.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/marvus-creator/Malvyn/internal/common"
	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/service"
)

// Verifier turns passwords into stored credentials and checks them.
// It exists so credential verification can be swapped without touching
// the rest of the gate.
type Verifier interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
}

// BcryptVerifier is the default Verifier.
type BcryptVerifier struct{}

// Hash produces a bcrypt hash of the password.
func (BcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare checks a password against a stored bcrypt hash.
func (BcryptVerifier) Compare(stored, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return common.ErrInvalidCredentials
	}
	return nil
}

// Gate maps credential pairs to stored user profiles. The rest of the
// application only sees the signed-in user's display name.
type Gate struct {
	storage  service.Storage
	verifier Verifier
}

// NewGate creates a session gate. A nil verifier defaults to bcrypt.
func NewGate(storage service.Storage, verifier Verifier) *Gate {
	if verifier == nil {
		verifier = BcryptVerifier{}
	}
	return &Gate{storage: storage, verifier: verifier}
}

// Register stores a new user profile keyed by email and signs the user
// in. All fields are required; a duplicate email is rejected.
func (g *Gate) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return fmt.Errorf("%w: name, email, and password are all required", common.ErrValidation)
	}

	users, err := g.storage.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if _, exists := users[email]; exists {
		return fmt.Errorf("%s: %w", email, common.ErrDuplicateUser)
	}

	hash, err := g.verifier.Hash(password)
	if err != nil {
		return err
	}

	users[email] = model.UserProfile{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := g.storage.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	if err := g.storage.SaveCurrentUser(ctx, name); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	slog.Debug("registered user", "email", email)
	return nil
}

// SignIn checks the credential pair and starts a session. A mismatch
// returns ErrInvalidCredentials and changes no state.
func (g *Gate) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	users, err := g.storage.LoadUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load users: %w", err)
	}

	user, exists := users[email]
	if !exists {
		return "", common.ErrInvalidCredentials
	}
	if err := g.verifier.Compare(user.PasswordHash, password); err != nil {
		return "", err
	}

	if err := g.storage.SaveCurrentUser(ctx, user.Name); err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}

	return user.Name, nil
}

// SignOut clears the current session. Signing out with no session is a
// no-op.
func (g *Gate) SignOut(ctx context.Context) error {
	if err := g.storage.SaveCurrentUser(ctx, ""); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user's display name, or "" when
// nobody is signed in.
func (g *Gate) CurrentUser(ctx context.Context) (string, error) {
	return g.storage.LoadCurrentUser(ctx)
}
