package fakeapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamkibet/bitedash-app-sub000/entity"
	"github.com/iamkibet/bitedash-app-sub000/pkg/resp"
	"github.com/iamkibet/bitedash-app-sub000/utils"
)

// authRequired checks the bearer token and (if given) enforces a role,
// mirroring the real backend's middleware.
func (s *Server) authRequired(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}
		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), s.Secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		if !entity.Role(claims.Role).Valid() {
			resp.Forbidden(c, "forbidden")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.Forbidden(c, "forbidden")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("userId")
	if id, ok := v.(uint); ok {
		return id
	}
	return 0
}

func currentRole(c *gin.Context) string {
	v, _ := c.Get("role")
	if r, ok := v.(string); ok {
		return r
	}
	return ""
}
