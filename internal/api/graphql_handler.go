package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"github.com/EmirBoz/resume-app/internal/api/middleware"
	"github.com/EmirBoz/resume-app/internal/auth"
	"github.com/EmirBoz/resume-app/internal/graph"
)

// GraphQLHandler 把 GraphQL 执行器挂到 Gin 上。
// 每个请求先解析一次 Authorization 头：令牌有效则把身份放进上下文，
// 无效或缺失则保持匿名，由具体字段决定是否拒绝。
type GraphQLHandler struct {
	handler       *handler.Handler
	authenticator *auth.Authenticator
	logger        *slog.Logger
}

// NewGraphQLHandler 构造 GraphQL 处理器。
func NewGraphQLHandler(schema *graphql.Schema, authenticator *auth.Authenticator, logger *slog.Logger) *GraphQLHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphQLHandler{
		handler: handler.New(&handler.Config{
			Schema:   schema,
			Pretty:   false,
			GraphiQL: false,
		}),
		authenticator: authenticator,
		logger:        logger,
	}
}

// Handle 注入请求上下文后委托给 GraphQL 执行器。
func (h *GraphQLHandler) Handle(c *gin.Context) {
	ctx := graph.WithClientIP(c.Request.Context(), c.ClientIP())

	if token := bearerToken(c); token != "" {
		user, err := h.authenticator.Identify(ctx, token)
		switch {
		case err == nil:
			ctx = graph.WithIdentity(ctx, user)
		case errors.Is(err, auth.ErrUnauthenticated):
			// 无效令牌按匿名处理，交给字段级闸门拒绝。
		default:
			middleware.LoggerFromContext(c).Error("identify request failed", slog.Any("error", err))
		}
	}

	h.handler.ContextHandler(ctx, c.Writer, c.Request)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
