package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/pkg/response"
)

const principalKey = "principal"

// Auth validates an HS256 bearer token and stores its subject as the
// principal user id. Tokens are issued elsewhere.
func Auth(secret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, apperr.Unauthorized("Authentication credentials were not provided"))
			c.Abort()
			return
		}

		claims := jwt.RegisteredClaims{}
		_, err := parser.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || claims.Subject == "" {
			response.Error(c, apperr.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(principalKey, claims.Subject)
		c.Next()
	}
}

// Principal returns the authenticated user id, or "" when unauthenticated
func Principal(c *gin.Context) string {
	return c.GetString(principalKey)
}
