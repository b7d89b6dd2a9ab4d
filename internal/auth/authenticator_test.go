package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EmirBoz/resume-app/internal/database"
)

func newTestAuthenticator(t *testing.T, redisClient redis.UniversalClient) (*Authenticator, *gorm.DB) {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	service, err := NewService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := NewAuthenticator(
		database.NewManagerFromDB(db),
		service,
		redisClient,
		quiet,
		"admin",
		"admin123",
		10,
		5,
		15*time.Minute,
	)
	return a, db
}

func userCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&database.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	return count
}

func TestLogin_BootstrapAdminCreatedOnce(t *testing.T) {
	a, db := newTestAuthenticator(t, nil)
	ctx := context.Background()

	result, err := a.Login(ctx, "127.0.0.1", "admin", "admin123")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token on successful login")
	}
	if result.User.Username != "admin" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if userCount(t, db) != 1 {
		t.Fatalf("expected bootstrap admin created")
	}

	// 第二次登录走常规口令校验，不重复建号。
	if _, err := a.Login(ctx, "127.0.0.1", "admin", "admin123"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if got := userCount(t, db); got != 1 {
		t.Fatalf("expected exactly 1 user, got %d", got)
	}

	// 库里的口令是哈希而非明文。
	var user database.User
	if err := db.First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.PasswordHash == "admin123" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestLogin_UniformInvalidCredentials(t *testing.T) {
	a, db := newTestAuthenticator(t, nil)
	ctx := context.Background()

	// 未知用户与密码错误返回同一个错误，不泄露账号是否存在。
	_, unknownErr := a.Login(ctx, "127.0.0.1", "nobody", "whatever")
	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownErr)
	}

	if _, err := a.Login(ctx, "127.0.0.1", "admin", "admin123"); err != nil {
		t.Fatalf("bootstrap login: %v", err)
	}
	_, wrongErr := a.Login(ctx, "127.0.0.1", "admin", "wrong-password")
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("error messages must not distinguish cases: %q vs %q", unknownErr, wrongErr)
	}

	// 失败的登录不会创建用户。
	if got := userCount(t, db); got != 1 {
		t.Fatalf("expected 1 user, got %d", got)
	}
}

func TestLogin_WrongAdminPasswordDoesNotBootstrap(t *testing.T) {
	a, db := newTestAuthenticator(t, nil)
	ctx := context.Background()

	_, err := a.Login(ctx, "127.0.0.1", "admin", "not-the-configured-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if got := userCount(t, db); got != 0 {
		t.Fatalf("expected no users, got %d", got)
	}
}

func TestLogin_RedisUnavailableDegradesOpen(t *testing.T) {
	// 指向一个必然连不上的地址：限流应当放行而非拒绝登录。
	dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", DialTimeout: 50 * time.Millisecond})
	defer dead.Close()

	a, _ := newTestAuthenticator(t, dead)
	if _, err := a.Login(context.Background(), "127.0.0.1", "admin", "admin123"); err != nil {
		t.Fatalf("expected login to succeed with redis down, got %v", err)
	}
}

func TestIdentify(t *testing.T) {
	a, _ := newTestAuthenticator(t, nil)
	ctx := context.Background()

	result, err := a.Login(ctx, "127.0.0.1", "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := a.Identify(ctx, result.Token)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if user.ID != result.User.ID || user.Username != "admin" {
		t.Fatalf("unexpected identity: %+v", user)
	}

	if _, err := a.Identify(ctx, "garbage-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
