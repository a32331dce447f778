package httpapi

import (
	"context"
	"net/http"
	"strings"

	"moderation-controlplane/pkg/errutil"
	"moderation-controlplane/services/admin"
	"moderation-controlplane/services/service"

	"github.com/gin-gonic/gin"
)

// ServiceAuthenticator resolves an API key to its owning client service.
type ServiceAuthenticator interface {
	Authenticate(ctx context.Context, plaintext string) (*service.WebService, error)
}

// AdminAuthenticator resolves a session token to an admin user, enforcing the
// allowed roles.
type AdminAuthenticator interface {
	Authenticate(ctx context.Context, token string, roles ...admin.Role) (*admin.User, error)
}

const (
	ctxKeyService   = "auth.service"
	ctxKeyAdminUser = "auth.admin_user"

	headerAPIKey = "X-API-Key"
)

// Error renders the last collected error after the handler chain ran.
// BaseError carries its own HTTP mapping; anything else is an internal error.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil {
			return
		}

		if v, ok := err.Err.(errutil.BaseError); ok {
			c.JSON(v.Code.HTTPStatus(), v.JSON())
			return
		}
		c.JSON(http.StatusInternalServerError, errutil.BaseError{
			Code:    errutil.StatusInternal,
			Message: "internal error",
		}.JSON())
	}
}

// APIKeyAuth authenticates the calling client service from the X-API-Key
// header and stores the owning service on the context.
func APIKeyAuth(keys ServiceAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		plaintext := c.GetHeader(headerAPIKey)
		if plaintext == "" {
			abort(c, errutil.Unauthorized("missing api key"))
			return
		}

		svc, err := keys.Authenticate(c.Request.Context(), plaintext)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(ctxKeyService, svc)
		c.Next()
	}
}

// AdminAuth authenticates a Bearer session token and enforces the allowed
// roles for the route. An empty role list admits any active admin.
func AdminAuth(admins AdminAuthenticator, roles ...admin.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abort(c, errutil.Unauthorized("missing bearer token"))
			return
		}

		user, err := admins.Authenticate(c.Request.Context(), token, roles...)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(ctxKeyAdminUser, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func callerService(c *gin.Context) *service.WebService {
	v, _ := c.Get(ctxKeyService)
	svc, _ := v.(*service.WebService)
	return svc
}
