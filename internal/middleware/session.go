package middleware

import (
	"github.com/deppfellow/hbnb-api/internal/repository"
	"github.com/labstack/echo/v4"
)

// SessionKey is the Echo context key of the request's storage session.
const SessionKey = "storage_session"

type SessionMiddleware struct {
	storage repository.Storage
}

func NewSessionMiddleware(storage repository.Storage) *SessionMiddleware {
	return &SessionMiddleware{storage: storage}
}

// Open starts a storage session for the request and closes it once the
// handler returns, whatever the outcome. Unsaved writes are discarded.
func (sm *SessionMiddleware) Open() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sm.storage.Session(c.Request().Context())
			defer func() {
				if err := sess.Close(); err != nil {
					GetLogger(c).Error().Err(err).Msg("failed to close storage session")
				}
			}()

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// GetSession returns the request's storage session, or nil when Open did not
// run.
func GetSession(c echo.Context) repository.Session {
	if sess, ok := c.Get(SessionKey).(repository.Session); ok {
		return sess
	}
	return nil
}
