package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/middleware"
)

// Registrar ties the feed service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the feed service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the recommendation route to the authenticated API group.
func (r *Registrar) Register(rg *gin.RouterGroup) {
	svc := NewFeedService(r.appCtx)

	rg.GET("/recommendations", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		var pageToken *string
		if token := c.Query("pageToken"); token != "" {
			pageToken = &token
		}

		recs, nextToken, err := svc.GetRecommendations(c.Request.Context(), userID, pageToken)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		// body is the bare candidate array; the cursor travels out-of-band
		if nextToken != nil {
			c.Header("X-Next-Page-Token", *nextToken)
		}
		c.JSON(http.StatusOK, recs)
	})
}
