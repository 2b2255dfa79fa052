package i

import "github.com/gin-gonic/gin"

// Controller registers a group of HTTP handlers on the router.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
