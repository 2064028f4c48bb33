package httpapi

import (
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/labstack/echo/v4"
)

// subjectContextKey is where the guard stores the verified principal ID.
const subjectContextKey = "subjectID"

const bearerPrefix = "Bearer "

// requireAuth is the request guard: the single choke point in front of every
// protected route. It demands an Authorization header of exactly
// "Bearer <token>" with a valid access-kind token, and stores the verified
// subject on the context. Every failure produces the same 401; the reason
// only reaches server-side logs.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || token == "" {
			s.logger.Warn(ctx, "request rejected", "reason", "missing or malformed bearer header")
			return common.ErrInvalidToken
		}

		userID, err := auth.GetUserIDFromToken(token, auth.KindAccess, s.jwtSecret)
		if err != nil {
			s.logger.Warn(ctx, "request rejected", "reason", "token verification failed")
			return common.ErrInvalidToken
		}

		c.Set(subjectContextKey, userID)
		return next(c)
	}
}

// subjectID returns the principal ID resolved by requireAuth. It is empty
// only if the guard was not applied, which is a routing bug.
func subjectID(c echo.Context) string {
	id, _ := c.Get(subjectContextKey).(string)
	return id
}
