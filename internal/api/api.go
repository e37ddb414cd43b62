package api

import (
	"net/http"
	fraudHandler "voicebot-server/internal/fraudcall/handler"
	gameHandler "voicebot-server/internal/gamecall/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router       *gin.RouterGroup
	fraudHandler fraudHandler.Handler
	gameHandler  gameHandler.Handler
}

func New(router *gin.RouterGroup, fraudHandler fraudHandler.Handler, gameHandler gameHandler.Handler) API {
	return API{
		router:       router,
		fraudHandler: fraudHandler,
		gameHandler:  gameHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		phoneGroup := apiGroup.Group("/phone")

		fraudGroup := phoneGroup.Group("/fraud")
		fraudGroup.POST("/answer", a.fraudHandler.HandleAnswerCall)
		fraudGroup.GET("/answer", a.fraudHandler.HandleAnswerCall)
		fraudGroup.GET("/media-stream", a.fraudHandler.HandleMediaStream)

		gameGroup := phoneGroup.Group("/game")
		gameGroup.POST("/answer", a.gameHandler.HandleAnswerCall)
		gameGroup.GET("/answer", a.gameHandler.HandleAnswerCall)
		gameGroup.GET("/media-stream", a.gameHandler.HandleMediaStream)

		apiGroup.GET("/cases", a.fraudHandler.HandleListCases)
		apiGroup.POST("/cases", a.fraudHandler.HandleCreateCase)
		apiGroup.GET("/results", a.fraudHandler.HandleListResults)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
