package router

import (
	"DrishtiGPT-Learning-Backend/internal/api"
	"DrishtiGPT-Learning-Backend/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(handler *api.AssistantHandler, sessions *repository.SessionRepository, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowHeaders = append(config.AllowHeaders, "Content-Type")
	r.Use(cors.New(config))

	r.SetHTMLTemplate(api.Templates())

	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	withSession := r.Group("/", api.SessionMiddleware(sessions))
	withSession.GET("/", handler.IndexHandler)

	apiV1 := withSession.Group("/api/v1")
	{
		apiV1.GET("/videos", handler.ListVideosHandler)
		apiV1.POST("/summary", handler.SummaryHandler)
		apiV1.POST("/quiz", handler.StartQuizHandler)
		apiV1.GET("/quiz", handler.GetQuizHandler)
		apiV1.PUT("/quiz/answers/:index", handler.SelectAnswerHandler)
		apiV1.POST("/quiz/submit", handler.SubmitQuizHandler)
		apiV1.POST("/quiz/reset", handler.ResetQuizHandler)
		apiV1.POST("/doubt", handler.AskDoubtHandler)
		apiV1.DELETE("/session", handler.EndSessionHandler)
	}

	return r
}
