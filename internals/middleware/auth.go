package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"librarium/internals/auth"
	"librarium/internals/models"
	"librarium/internals/service"
)

const currentUserKey = "currentUser"

type Auth struct {
	gateway  *auth.Gateway
	accounts *service.AccountService
	log      *logrus.Logger
}

func NewAuth(gateway *auth.Gateway, accounts *service.AccountService, log *logrus.Logger) *Auth {
	return &Auth{gateway: gateway, accounts: accounts, log: log}
}

// RequireAuth validates the Authorization bearer token and stashes the
// authenticated user in the request context. Any failure answers 401.
func (m *Auth) RequireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "authorization token required"})
		return
	}

	login, err := m.gateway.Verify(c.Request.Context(), tokenString)
	if err != nil {
		m.log.WithError(err).Debug("token rejected")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "token expired or invalid"})
		return
	}

	user, err := m.accounts.UserByLogin(c.Request.Context(), login)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "could not validate credentials"})
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// RequireAdmin rejects authenticated users without the admin flag. It must
// run after RequireAuth.
func RequireAdmin(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil || !user.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "not authorized to access this resource"})
		return
	}
	c.Next()
}

// CurrentUser returns the user set by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
