package swipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/middleware"
)

// Registrar ties the swipe service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the swipe service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the swipe routes to the authenticated API group.
func (r *Registrar) Register(rg *gin.RouterGroup) {
	svc := NewSwipeService(r.appCtx)

	rg.POST("/swipes", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var body struct {
			TargetID  uint64 `json:"targetId" binding:"required"`
			Direction string `json:"direction" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, httperr.Validation("targetId and direction are required"))
			return
		}

		result, err := svc.RecordSwipe(c.Request.Context(), userID, body.TargetID, body.Direction)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	rg.GET("/likes/count", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		count, err := svc.CountLikedYou(c.Request.Context(), userID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	})
}
