package v1

import (
	"net/http"
	"time"

	"github.com/gfdmit/kanban/internal/auth"
	gql "github.com/gfdmit/kanban/internal/handlers/http/v1/graphql"
	"github.com/gfdmit/kanban/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func New(svc *service.Service, ident auth.Identity) (*gin.Engine, error) {
	var (
		router = gin.New()
	)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300 * time.Second,
	}))

	gqlHandler, err := gql.New(svc)
	if err != nil {
		return nil, err
	}

	h := &handlers{svc: svc}

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.Use(gin.Logger())

		apiGroup.GET("/ping", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		apiGroup.Any("/graphql", gin.WrapH(gqlHandler))

		authGroup := apiGroup.Group("")
		{
			authGroup.Use(RequireUser(ident))

			authGroup.GET("/boards", h.listBoards)
			authGroup.POST("/boards", h.createBoard)
			authGroup.GET("/boards/:id", h.getBoard)
			authGroup.PUT("/boards/:id", h.updateBoard)
			authGroup.DELETE("/boards/:id", h.deleteBoard)
			authGroup.POST("/boards/:id/columns", h.createColumn)

			authGroup.POST("/columns/:id/move", h.moveColumn)
			authGroup.DELETE("/columns/:id", h.deleteColumn)

			authGroup.POST("/tasks", h.createTask)
			authGroup.GET("/tasks/:id", h.getTask)
			authGroup.PUT("/tasks/:id", h.updateTask)
			authGroup.POST("/tasks/:id/move", h.moveTask)
			authGroup.DELETE("/tasks/:id", h.deleteTask)
			authGroup.POST("/tasks/:id/comments", h.addComment)
			authGroup.POST("/tasks/:id/time", h.logTime)

			authGroup.GET("/users", h.listUsers)
		}
	}

	return router, nil
}
