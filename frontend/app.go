// Package frontend implements the browser-facing service: it authenticates
// users against the backend identity endpoints and proxies the dashboard data
// routes, verifying the session token on every request.
package frontend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/h108777/ThreatMap/internal/identity"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const sessionCookie = "session_token"

// Config holds the frontend service settings.
type Config struct {
	BackendURL string
	JWTSecret  string
}

// App is the frontend proxy service.
type App struct {
	cfg Config
	cli *http.Client
	log *zap.SugaredLogger
}

// NewApp builds the frontend Fiber app with its session-guarded routes.
func NewApp(cfg Config, zlog *zap.Logger) *fiber.App {
	a := &App{
		cfg: cfg,
		cli: &http.Client{Timeout: 30 * time.Second},
		log: zlog.Sugar(),
	}

	app := fiber.New(fiber.Config{
		AppName: "ThreatMap Frontend v1.0",
	})

	app.Use(fiberrecover.New())
	app.Use(logger.New())

	app.Get("/", a.RequireSession, a.Index)
	app.Get("/login", a.LoginPage)
	app.Post("/login", a.Login)
	app.Get("/signup", a.SignupPage)
	app.Post("/signup", a.Signup)
	app.Get("/logout", a.Logout)

	app.Get("/api/cves", a.RequireSession, a.Proxy("/cves"))
	app.Get("/api/sources", a.RequireSession, a.Proxy("/sources"))
	app.Get("/api/analysis", a.RequireSession, a.Proxy("/analysis/summary"))

	return app
}

// RequireSession verifies the session token signature and expiry on every
// request; the session is never trusted without re-verification.
func (a *App) RequireSession(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return c.Redirect("/login", fiber.StatusFound)
	}

	claims, err := identity.ParseToken(a.cfg.JWTSecret, token)
	if err != nil {
		clearSessionCookie(c)
		return c.Redirect("/login", fiber.StatusFound)
	}

	c.Locals("uid", claims.UID)
	c.Locals("email", claims.Email)
	c.Locals("name", claims.Name)
	return c.Next()
}

// Index serves the dashboard shell.
func (a *App) Index(c *fiber.Ctx) error {
	name, _ := c.Locals("name").(string)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(dashboardPage(name))
}

// LoginPage serves the login form.
func (a *App) LoginPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(loginPage(""))
}

// Login forwards the credentials to the backend and stores the issued token
// in the session cookie.
func (a *App) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	body, status, err := a.post("/login-user", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		a.log.Errorw("login request failed", "error", err)
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(loginPage("Authentication failed"))
	}

	if status != http.StatusOK {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = "Invalid credentials"
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(loginPage(msg))
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    gjson.GetBytes(body, "token").String(),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.Redirect("/", fiber.StatusFound)
}

// SignupPage serves the signup form.
func (a *App) SignupPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(signupPage(""))
}

// Signup forwards account creation to the backend.
func (a *App) Signup(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	if password != confirm {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(signupPage("Passwords do not match"))
	}

	body, status, err := a.post("/create-user", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		a.log.Errorw("signup request failed", "error", err)
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(signupPage("Account creation failed"))
	}

	if status != http.StatusOK {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = "Failed to create account"
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(signupPage(msg))
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// Logout clears the session cookie.
func (a *App) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusFound)
}

// Proxy forwards exactly one backend call and relays status and body.
func (a *App) Proxy(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := a.cli.Get(a.cfg.BackendURL + path)
		if err != nil {
			a.log.Errorw("backend request failed", "path", path, "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Backend unavailable"})
		}
		defer res.Body.Close()

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Backend unavailable"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(res.StatusCode).Send(body)
	}
}

func (a *App) post(path string, payload map[string]string) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	res, err := a.cli.Post(a.cfg.BackendURL+path, fiber.MIMEApplicationJSON, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("backend call %s failed: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, res.StatusCode, nil
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
