package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/redis/go-redis/v9"

	"github.com/EmirBoz/resume-app/internal/auth"
)

// RegisterRoutes 注册业务路由。
func RegisterRoutes(
	router *gin.Engine,
	schema *graphql.Schema,
	authenticator *auth.Authenticator,
	authService *auth.Service,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	wsAllowedOrigins []string,
) {
	graphqlHandler := NewGraphQLHandler(schema, authenticator, logger)
	wsHandler := NewWsHandler(redisClient, authService, logger, wsAllowedOrigins)

	// GET 同样放行，方便 introspection 工具调试。
	router.POST("/graphql", graphqlHandler.Handle)
	router.GET("/graphql", graphqlHandler.Handle)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)
	}
}
