package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/middleware"
)

// Registrar ties the profile service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profile service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes to the authenticated API group.
func (r *Registrar) Register(rg *gin.RouterGroup) {
	svc := NewProfileService(r.appCtx)

	rg.GET("/profiles/me", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		p, err := svc.GetMe(c.Request.Context(), userID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	rg.POST("/profiles", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var input UpsertInput
		if err := c.ShouldBindJSON(&input); err != nil {
			httperr.Abort(c, httperr.Validation("malformed profile body"))
			return
		}

		p, err := svc.Upsert(c.Request.Context(), userID, input)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	rg.DELETE("/profiles/me", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		if err := svc.SoftDelete(c.Request.Context(), userID); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	rg.POST("/blocks", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var body struct {
			TargetID uint64 `json:"targetId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, httperr.Validation("targetId is required"))
			return
		}

		if err := svc.Block(c.Request.Context(), userID, body.TargetID); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blocked": true})
	})

	rg.POST("/reports", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var body struct {
			TargetID uint64 `json:"targetId" binding:"required"`
			Reason   string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, httperr.Validation("targetId is required"))
			return
		}

		if err := svc.Report(c.Request.Context(), userID, body.TargetID, body.Reason); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reported": true})
	})
}
