package server

import "github.com/gin-gonic/gin"

// Registrar is a common interface for all HTTP service registrars.
// Each service attaches its routes to the authenticated /api group.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}
