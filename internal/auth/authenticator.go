package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/EmirBoz/resume-app/internal/database"
)

// 登录失败统一返回 ErrInvalidCredentials，不区分“用户不存在”与
// “密码错误”，避免泄露账号是否存在。
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// Authenticator 处理登录与令牌到身份的解析，是所有变更操作的闸门。
type Authenticator struct {
	db      *database.Manager
	service *Service
	redis   redis.UniversalClient
	logger  *slog.Logger

	adminUsername string
	adminPassword string

	rateLimitPerHour int
	lockThreshold    int
	lockTTL          time.Duration
}

// NewAuthenticator 构造认证器。redisClient 可为 nil（关闭限流）。
func NewAuthenticator(
	db *database.Manager,
	service *Service,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	adminUsername string,
	adminPassword string,
	rateLimitPerHour int,
	lockThreshold int,
	lockTTL time.Duration,
) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		db:               db,
		service:          service,
		redis:            redisClient,
		logger:           logger,
		adminUsername:    adminUsername,
		adminPassword:    adminPassword,
		rateLimitPerHour: rateLimitPerHour,
		lockThreshold:    lockThreshold,
		lockTTL:          lockTTL,
	}
}

// LoginResult 封装登录成功后的令牌与用户信息。
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      database.User
}

// Login 校验口令并签发令牌。
// 首次使用配置的管理员口令登录且该账号尚不存在时，惰性创建账号。
func (a *Authenticator) Login(ctx context.Context, clientIP, username, password string) (*LoginResult, error) {
	logger := a.logger.With(slog.String("username", username))

	if err := a.checkLoginThrottle(ctx, clientIP, username); err != nil {
		return nil, err
	}

	db, err := a.db.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var user database.User
	err = db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if username == a.adminUsername && password == a.adminPassword {
			created, createErr := a.createBootstrapAdmin(ctx, db, username, password)
			if createErr != nil {
				return nil, createErr
			}
			user = *created
			logger.Info("bootstrap admin created", slog.Uint64("user_id", uint64(user.ID)))
			break
		}
		logger.Info("login failed: user not found")
		a.recordLoginFailure(ctx, username)
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("login query: %w", err)
	}

	if !a.service.CheckPasswordHash(password, user.PasswordHash) {
		logger.Info("login failed: password mismatch", slog.Uint64("user_id", uint64(user.ID)))
		a.recordLoginFailure(ctx, username)
		return nil, ErrInvalidCredentials
	}

	a.clearLoginFailures(ctx, username)

	token, expiresAt, err := a.service.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	logger.Info("login succeeded", slog.Uint64("user_id", uint64(user.ID)))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Identify 解析 Bearer 令牌并加载对应用户；任何失败都视为未认证。
func (a *Authenticator) Identify(ctx context.Context, token string) (*database.User, error) {
	claims, err := a.service.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	db, err := a.db.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("identify: %w", err)
	}

	var user database.User
	if err := db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

func (a *Authenticator) createBootstrapAdmin(ctx context.Context, db *gorm.DB, username, password string) (*database.User, error) {
	hashed, err := a.service.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	user := database.User{Username: username, PasswordHash: hashed}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		// 并发的首次登录可能已抢先创建，回查一次。
		var existing database.User
		if lookupErr := db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("create bootstrap admin: %w", err)
	}
	return &user, nil
}

// 速率限制：每 IP+用户名 每小时 N 次；连续失败达到阈值后短暂锁定。
// Redis 不可用时放行，限流只是加固而非正确性前提。
func (a *Authenticator) checkLoginThrottle(ctx context.Context, clientIP, username string) error {
	if a.redis == nil {
		return nil
	}

	key := "rate:login:" + clientIP + ":" + strings.ToLower(username) + ":" + time.Now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, a.redis, key, time.Hour)
	if err != nil {
		count = 0
	}
	if a.rateLimitPerHour > 0 && count > int64(a.rateLimitPerHour) {
		return ErrRateLimited
	}

	lockKey := "lock:login:" + strings.ToLower(username)
	if ttl, err := a.redis.TTL(ctx, lockKey).Result(); err == nil && ttl > 0 {
		return ErrRateLimited
	}
	return nil
}

func (a *Authenticator) recordLoginFailure(ctx context.Context, username string) {
	if a.redis == nil {
		return
	}

	failKey := "lock:login:fail:" + strings.ToLower(username)
	count, err := incrWithTTL(ctx, a.redis, failKey, a.lockTTL)
	if err != nil {
		return
	}
	if a.lockThreshold > 0 && count >= int64(a.lockThreshold) {
		_ = a.redis.Set(ctx, "lock:login:"+strings.ToLower(username), "1", a.lockTTL).Err()
	}
}

func (a *Authenticator) clearLoginFailures(ctx context.Context, username string) {
	if a.redis == nil {
		return
	}
	_ = a.redis.Del(ctx, "lock:login:fail:"+strings.ToLower(username)).Err()
}

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
