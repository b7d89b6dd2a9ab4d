package graph

import (
	"context"

	"github.com/EmirBoz/resume-app/internal/database"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	clientIPKey contextKey = "clientIP"
)

// WithIdentity 把已验证的用户写入上下文。传输层每个请求解析一次
// Authorization 头，解析失败时不写入（保持匿名）。
func WithIdentity(ctx context.Context, user *database.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFrom 取出当前请求的用户身份，匿名请求返回 nil。
func IdentityFrom(ctx context.Context) *database.User {
	if user, ok := ctx.Value(identityKey).(*database.User); ok {
		return user
	}
	return nil
}

// WithClientIP 记录客户端地址，登录限流使用。
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFrom 取出客户端地址。
func ClientIPFrom(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip
	}
	return ""
}
