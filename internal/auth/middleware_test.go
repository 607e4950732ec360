package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/floapi"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

var errNoSession = errors.New("no session")

type fakeSessions map[string]*domain.Session

func (f fakeSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, errNoSession
}

func newGuardedApp(tm *TokenManager, sessions fakeSessions) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	mw := NewAuthMiddleware(tm, sessions, errNoSession)
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.Email + "|" + floapi.TokenFromContext(c.UserContext()))
	})
	return app
}

func TestMiddlewareAcceptsLiveSession(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newGuardedApp(tm, fakeSessions{
		"s1": {ID: "s1", OperatorID: "op", Email: "ops@flo.io", UpstreamToken: "up"},
	})
	token, _, err := tm.GenerateToken("op", "s1", time.Time{})
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	if string(body[:n]) != "ops@flo.io|up" {
		t.Fatalf("unexpected body %q", body[:n])
	}
}

func TestMiddlewareRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	other := NewTokenManager("other", time.Hour)
	app := newGuardedApp(tm, fakeSessions{"s1": {ID: "s1", OperatorID: "op"}})

	gone, _, _ := tm.GenerateToken("op", "missing", time.Time{})
	forged, _, _ := other.GenerateToken("op", "s1", time.Time{})
	expired, _, _ := tm.GenerateToken("op", "s1", time.Now().Add(-time.Minute))
	mismatch, _, _ := tm.GenerateToken("someone-else", "s1", time.Time{})

	cases := map[string]string{
		"no header":      "",
		"wrong scheme":   "Basic abc",
		"unknown sess":   "Bearer " + gone,
		"forged":         "Bearer " + forged,
		"expired":        "Bearer " + expired,
		"other operator": "Bearer " + mismatch,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.StatusCode)
			}
		})
	}
}
