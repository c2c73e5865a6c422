package api

import (
	"net/http"

	"DrishtiGPT-Learning-Backend/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "drishti_session"
	sessionKey    = "session"
)

// SessionMiddleware attaches the learner's session to the request, starting a new one
// when the cookie is missing or the session expired.
func SessionMiddleware(sessions *repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		sc, created := sessions.GetOrCreate(id)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sc.ID, 0, "/", "", false, true)
		}
		c.Set(sessionKey, sc)
		c.Next()
	}
}

func currentSession(c *gin.Context) *repository.SessionContext {
	return c.MustGet(sessionKey).(*repository.SessionContext)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
