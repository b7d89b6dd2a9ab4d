package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/EmirBoz/resume-app/internal/resume"
)

// UpdateChannel 是简历更新事件的 Redis Pub/Sub 频道，
// WebSocket 端订阅该频道向前端推送。
const UpdateChannel = "resume:updates"

// RedisNotifier 把最新简历视图发布到 Redis。
// 发布失败只记日志，不影响写入本身。
type RedisNotifier struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewRedisNotifier 构造通知器。
func NewRedisNotifier(client redis.UniversalClient, logger *slog.Logger) *RedisNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisNotifier{client: client, logger: logger}
}

// PublishResumeUpdate 实现 Publisher。
func (n *RedisNotifier) PublishResumeUpdate(ctx context.Context, data resume.Data) {
	payload, err := json.Marshal(data)
	if err != nil {
		n.logger.Error("encode resume update failed", slog.Any("error", err))
		return
	}
	if err := n.client.Publish(ctx, UpdateChannel, payload).Err(); err != nil {
		n.logger.Warn("publish resume update failed", slog.Any("error", err))
	}
}
