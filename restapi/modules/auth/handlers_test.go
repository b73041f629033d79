package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/h108777/ThreatMap/internal/identity"
	"github.com/h108777/ThreatMap/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeProvider struct {
	user      *model.User
	verifyErr error
	createErr error
}

func (f fakeProvider) CreateUser(_ context.Context, _, _, _ string) (*model.User, error) {
	return f.user, f.createErr
}

func (f fakeProvider) VerifyUser(_ context.Context, _, _ string) (*model.User, error) {
	return f.user, f.verifyErr
}

func (f fakeProvider) IssueToken(_ *model.User) (string, error) {
	return "signed-token", nil
}

func readAll(t *testing.T, res *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestLoginUser(t *testing.T) {
	app := fiber.New()
	app.Post("/login-user", LoginUser(fakeProvider{
		user: &model.User{UID: "uid-1", Email: "alice@example.com", Name: "Alice"},
	}))

	res := postJSON(t, app, "/login-user", `{"email": "alice@example.com", "password": "hunter22"}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := readAll(t, res)
	assert.Equal(t, "uid-1", gjson.Get(body, "uid").String())
	assert.Equal(t, "alice@example.com", gjson.Get(body, "email").String())
	assert.Equal(t, "signed-token", gjson.Get(body, "token").String())
}

func TestLoginUserMissingFields(t *testing.T) {
	app := fiber.New()
	app.Post("/login-user", LoginUser(fakeProvider{}))

	res := postJSON(t, app, "/login-user", `{"email": "alice@example.com"}`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLoginUserInvalidCredentials(t *testing.T) {
	app := fiber.New()
	app.Post("/login-user", LoginUser(fakeProvider{verifyErr: identity.ErrInvalidCredentials}))

	res := postJSON(t, app, "/login-user", `{"email": "alice@example.com", "password": "wrong"}`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateUser(t *testing.T) {
	app := fiber.New()
	app.Post("/create-user", CreateUser(fakeProvider{
		user: &model.User{UID: "uid-1", Email: "alice@example.com", Name: "Alice"},
	}))

	res := postJSON(t, app, "/create-user", `{"email": "alice@example.com", "password": "hunter22", "name": "Alice"}`)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := readAll(t, res)
	assert.Equal(t, "uid-1", gjson.Get(body, "uid").String())
	assert.False(t, gjson.Get(body, "token").Exists())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app := fiber.New()
	app.Post("/create-user", CreateUser(fakeProvider{createErr: identity.ErrUserExists}))

	res := postJSON(t, app, "/create-user", `{"email": "alice@example.com", "password": "hunter22", "name": "Alice"}`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestCreateUserMissingFields(t *testing.T) {
	app := fiber.New()
	app.Post("/create-user", CreateUser(fakeProvider{}))

	res := postJSON(t, app, "/create-user", `{"email": "alice@example.com", "password": "hunter22"}`)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
