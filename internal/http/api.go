package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-api/internal/auth"
	"todo-api/internal/service"
)

// Handler wires HTTP routes to domain services. It is built once at startup
// and carries every dependency a route needs.
type Handler struct {
	users   service.UserService
	todos   service.TodoService
	tokens  *auth.TokenManager
	limiter *LoginLimiter
	logger  *logrus.Logger
}

// NewEngine returns a gin engine with panic recovery that only honours
// forwarding headers from the given proxy addresses or CIDRs.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	return router, nil
}

func NewHandler(users service.UserService, todos service.TodoService, tokens *auth.TokenManager, limiter *LoginLimiter, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	registerJSONFieldNames()
	return &Handler{
		users:   users,
		todos:   todos,
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestIDMiddleware(), h.accessLogMiddleware(), corsMiddleware())

	router.GET("/healthy", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Healthy"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("", h.register)
		authGroup.POST("/token", h.loginRateLimit(), h.loginForAccessToken)
		authGroup.GET("/me", h.requireAuth(), h.me)
	}

	todos := router.Group("/Todos", h.requireAuth())
	{
		todos.GET("", h.listTodos)
		todos.GET("/:id", h.getTodo)
		todos.POST("", h.createTodo)
		todos.PUT("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}
