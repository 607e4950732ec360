package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/flo-mobility/admin-console/internal/auth"
	"github.com/flo-mobility/admin-console/internal/daterange"
	"github.com/flo-mobility/admin-console/internal/events"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

func actorFrom(c *fiber.Ctx) (events.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return events.Actor{}, apperrors.NewUnauthorized("operator required")
	}
	return events.Actor{OperatorID: principal.OperatorID, Email: principal.Email}, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// queryValues copies the request's query string into url.Values.
func queryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

func requestRange(c *fiber.Ctx, now func() time.Time) (daterange.Range, error) {
	return daterange.Parse(c.Query("startDate"), c.Query("endDate"), now())
}

func pathParam(c *fiber.Ctx, name string) (string, error) {
	v, err := url.PathUnescape(c.Params(name))
	if err != nil || strings.TrimSpace(v) == "" {
		return "", apperrors.NewValidationError(name+" is required", nil)
	}
	return v, nil
}
