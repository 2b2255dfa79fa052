package identity

import (
	"net/http"
	"strings"

	dmn "github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextAuthorClaims is the key used to store author claims in the Gin context.
	ContextAuthorClaims = "authorClaims"
)

// Authoriz rejects requests without a valid bearer token and stores the
// decoded claims under ContextAuthorClaims.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextAuthorClaims, claims)
		c.Next()
	}
}

// Claims returns the author claims stored by Authoriz.
func Claims(c *gin.Context) (*dmn.Claims, bool) {
	v, ok := c.Get(ContextAuthorClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dmn.Claims)
	return claims, ok
}
