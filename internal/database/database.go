package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EmirBoz/resume-app/internal/config"
)

// Manager 持有数据库连接并负责按需重连。
// 进程启动时显式 Connect 一次，之后每次取用前检查连接健康状况，
// 不健康则重建，替代“全局已连接”布尔量。
type Manager struct {
	dsn string

	mu sync.Mutex
	db *gorm.DB
}

// NewManager 构造尚未连接的 Manager。
func NewManager(cfg config.DatabaseConfig) *Manager {
	return &Manager{dsn: cfg.DSN()}
}

// NewManagerFromDB 用已有连接构造 Manager，测试中配合 sqlite 使用。
func NewManagerFromDB(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Connect 建立 PostgreSQL 连接并配置连接池。
func (m *Manager) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectLocked()
}

func (m *Manager) connectLocked() error {
	db, err := gorm.Open(postgres.Open(m.dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap db: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m.db = db
	return nil
}

// DB 返回一个健康的连接；缓存连接失效时尝试重连一次。
func (m *Manager) DB(ctx context.Context) (*gorm.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		if err := m.pingLocked(ctx); err == nil {
			return m.db, nil
		}
	}

	if m.dsn == "" {
		return nil, fmt.Errorf("database connection is not available")
	}
	if err := m.connectLocked(); err != nil {
		return nil, fmt.Errorf("reconnect database: %w", err)
	}
	return m.db, nil
}

func (m *Manager) pingLocked(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate 同步表结构。
func (m *Manager) AutoMigrate() error {
	if m.db == nil {
		return fmt.Errorf("database connection is not available")
	}
	if err := m.db.AutoMigrate(&User{}, &ResumeDocument{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close 释放底层连接。
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	m.db = nil
	return sqlDB.Close()
}
