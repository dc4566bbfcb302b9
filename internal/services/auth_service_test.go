package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/innovatex/hub/internal/models"
	"github.com/innovatex/hub/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return session, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	for id, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func newTestAuthService(expiry time.Duration) (*AuthService, *fakeUserRepo, *fakeSessionRepo) {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	return NewAuthService(userRepo, sessionRepo, "test-secret", expiry), userRepo, sessionRepo
}

func TestAuth_RegisterLoginAuthenticate(t *testing.T) {
	svc, _, _ := newTestAuthService(time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     "startup",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)

	resp, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	resolved, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "student"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "alice@example.com", Password: "secret456", Role: "investor"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuth_RegisterInvalidRole(t *testing.T) {
	svc, _, _ := newTestAuthService(time.Hour)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Eve", Email: "eve@example.com", Password: "secret123", Role: "wizard"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "student"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_AuthenticateMissingToken(t *testing.T) {
	svc, _, _ := newTestAuthService(time.Hour)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_AuthenticateGarbageToken(t *testing.T) {
	svc, _, _ := newTestAuthService(time.Hour)

	_, err := svc.Authenticate(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_AuthenticateExpiredToken(t *testing.T) {
	svc, _, _ := newTestAuthService(-time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "student"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Logout revokes the session, so the still-unexpired token stops working.
func TestAuth_AuthenticateRevokedSession(t *testing.T) {
	svc, _, _ := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "student"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_AuthenticateDeletedUser(t *testing.T) {
	svc, userRepo, _ := newTestAuthService(time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "student"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	delete(userRepo.users, user.ID)

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuth_LogoutAll(t *testing.T) {
	svc, _, sessionRepo := newTestAuthService(time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Role: "student"})
	require.NoError(t, err)

	first, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, second.Token))

	assert.Empty(t, sessionRepo.sessions)
	_, err = svc.Authenticate(ctx, first.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
