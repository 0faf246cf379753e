package chat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sparkdate/spark-backend/internal/app"
	"github.com/sparkdate/spark-backend/internal/httperr"
	"github.com/sparkdate/spark-backend/internal/middleware"
)

// Registrar ties the chat service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the chat service.
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the message thread routes to the authenticated API group.
func (r *Registrar) Register(rg *gin.RouterGroup) {
	svc := NewChatService(r.appCtx)

	rg.GET("/matches/:id/messages", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		matchID, err := parseMatchID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		messages, err := svc.ListMessages(c.Request.Context(), userID, matchID)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, messages)
	})

	rg.POST("/matches/:id/messages", func(c *gin.Context) {
		userID, _ := middleware.CurrentUserID(c)
		matchID, err := parseMatchID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		var body struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, httperr.Validation("content is required"))
			return
		}

		message, err := svc.SendMessage(c.Request.Context(), userID, matchID, body.Content)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		c.JSON(http.StatusCreated, message)
	})
}

func parseMatchID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httperr.NotFound("match not found")
	}
	return id, nil
}
