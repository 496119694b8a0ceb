package middleware

import (
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const (
	AdminSessionKey = "admin_user"
	AdminLocalsKey  = "admin"
	adminCookieName = "resume_admin"
)

// NewSessionStore keeps admin sessions in fiber's in-memory storage behind an
// HTTP-only cookie.
func NewSessionStore(ttl time.Duration, secure bool) *session.Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + adminCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
	})
}

// AdminAuth rejects requests that do not carry a logged-in admin session and
// exposes the admin username through c.Locals(AdminLocalsKey).
func AdminAuth(store *session.Store, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Warn("cannot load admin session", zap.Error(err))
			return unauthorized(c)
		}
		user, ok := sess.Get(AdminSessionKey).(string)
		if !ok || user == "" {
			return unauthorized(c)
		}
		c.Locals(AdminLocalsKey, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusUnauthorized,
		Message: "admin login required",
	})
}
