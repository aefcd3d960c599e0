package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplecore/hrms-backend-go/internal/domain/auth"
	"github.com/peoplecore/hrms-backend-go/internal/domain/user"
	"github.com/peoplecore/hrms-backend-go/internal/pkg/jwt"
)

type stubUserRepo struct {
	users map[string]user.User
}

func (s *stubUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	s.users[u.ID] = u
	return u, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) List(ctx context.Context, organizationID string) ([]user.User, error) {
	var out []user.User
	for _, u := range s.users {
		if u.OrganizationID == organizationID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) error {
	u, ok := s.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	s.users[id] = u
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, u user.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	s.users[u.ID] = u
	return nil
}

func newTestService(t *testing.T, users ...user.User) auth.AuthService {
	t.Helper()
	repo := &stubUserRepo{users: map[string]user.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "168h")
	return NewAuthService(repo, jwtService)
}

func testUser(t *testing.T, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	employeeID := "emp-1"
	return user.User{
		ID:             "user-1",
		OrganizationID: "org-1",
		EmployeeID:     &employeeID,
		Email:          "jane@example.com",
		PasswordHash:   string(hash),
		FullName:       "Jane Doe",
		Role:           user.RoleHR,
		IsActive:       true,
	}
}

func TestLogin(t *testing.T) {
	u := testUser(t, "s3cret-pass")
	svc := newTestService(t, u)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "HR", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t, testUser(t, "s3cret-pass"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, testUser(t, "s3cret-pass"))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})

	// Same error as a wrong password so account existence is not leaked.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	u := testUser(t, "s3cret-pass")
	u.IsActive = false
	svc := newTestService(t, u)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestService(t, testUser(t, "s3cret-pass"))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// The presented token is revoked on rotation and cannot be replayed.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService(t, testUser(t, "s3cret-pass"))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := newTestService(t, testUser(t, "s3cret-pass"))

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newTestService(t, testUser(t, "s3cret-pass"))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
