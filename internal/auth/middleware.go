package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/floapi"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated operator.
type Principal struct {
	OperatorID    string `json:"operatorId"`
	Email         string `json:"email"`
	SessionID     string `json:"sessionId"`
	UpstreamToken string `json:"-"`
}

// SessionLoader loads live sessions by id.
type SessionLoader interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions SessionLoader
	notFound error
}

// NewAuthMiddleware constructs middleware. notFound is the loader's sentinel
// for unknown or expired sessions.
func NewAuthMiddleware(tokens *TokenManager, sessions SessionLoader, notFound error) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, notFound: notFound}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	sess, err := m.sessions.Get(c.UserContext(), claims.SessionID)
	if err != nil {
		if m.notFound != nil && errors.Is(err, m.notFound) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.MapError(err)
	}
	if sess.OperatorID != claims.OperatorID {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{
		OperatorID:    sess.OperatorID,
		Email:         sess.Email,
		SessionID:     sess.ID,
		UpstreamToken: sess.UpstreamToken,
	}
	c.Locals(principalKey, principal)
	c.SetUserContext(floapi.WithToken(c.UserContext(), sess.UpstreamToken))
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated operator.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
