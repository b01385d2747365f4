package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware trusts an HS256 bearer token minted by the identity
// service: `sub` is the caller id, `role` one of customer/provider/admin.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		sub, err := claims.GetSubject()
		role := booking.Role(stringClaim(claims, "role"))
		if err != nil || sub == "" || !role.Valid() {
			httperr.Unauthorized(c, "invalid_token_payload", "Token is missing subject or role.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, sub)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, name string) string {
	v, _ := claims[name].(string)
	return v
}

// RequireRole aborts with 403 unless the caller has one of roles.
func RequireRole(roles ...booking.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role := Identity(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "Not allowed for this role.")
		c.Abort()
	}
}

// Identity returns the caller set by AuthMiddleware.
func Identity(c *gin.Context) (string, booking.Role) {
	return c.GetString(ContextUserID), roleOf(c)
}

func roleOf(c *gin.Context) booking.Role {
	v, ok := c.Get(ContextUserRole)
	if !ok {
		return ""
	}
	role, _ := v.(booking.Role)
	return role
}
