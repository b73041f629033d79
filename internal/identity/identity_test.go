package identity

import (
	"context"
	"fmt"
	"testing"

	"github.com/h108777/ThreatMap/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[string]*model.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*model.User)}
}

func (r *fakeRepo) getByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (r *fakeRepo) insert(_ context.Context, user *model.User) error {
	r.users[user.Email] = user
	return nil
}

func testService() *Service {
	return &Service{
		users: newFakeRepo(),
		cfg:   Config{ProjectID: "threatmap-test", JWTSecret: "test-secret", TokenTTLMinutes: 5},
	}
}

func TestCreateAndVerifyUser(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "alice@example.com", "hunter22", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.NotEqual(t, "hunter22", created.PasswordHash)

	verified, err := svc.VerifyUser(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.UID, verified.UID)
}

func TestVerifyUserRejectsWrongPassword(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice@example.com", "hunter22", "Alice")
	require.NoError(t, err)

	_, err = svc.VerifyUser(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUserUnknownEmail(t *testing.T) {
	svc := testService()

	_, err := svc.VerifyUser(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice@example.com", "hunter22", "Alice")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "alice@example.com", "other", "Alice Again")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testService()

	user := model.NewUser("uid-123", "alice@example.com", "Alice")
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.UID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	svc := testService()

	token, err := svc.IssueToken(model.NewUser("uid-123", "alice@example.com", "Alice"))
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	require.Error(t, err)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
		{"project_id": "threatmap", "jwt_secret": "s3cret", "token_ttl_minutes": 30}
	`)
	require.NoError(t, err)
	assert.Equal(t, "threatmap", cfg.ProjectID)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 30, cfg.TokenTTLMinutes)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig("")
	require.Error(t, err)

	_, err = ParseConfig("not json")
	require.Error(t, err)

	_, err = ParseConfig(`{"project_id": "threatmap"}`)
	require.Error(t, err, "missing jwt_secret must fail")
}
