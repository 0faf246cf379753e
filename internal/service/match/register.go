package match

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/middleware"
)

// Registrar ties the match service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the match service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the match list route to the authenticated API group.
func (r *Registrar) Register(rg *gin.RouterGroup) {
	svc := NewMatchService(r.appCtx)

	rg.GET("/matches", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)

		entries, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	})
}
