package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。管理员账号在首次登录时惰性创建。
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64"`
	PasswordHash string `gorm:"size:255"`
}

// ResumeDocument 表示一份简历文档，每个用户至多一份。
// OwnerID 为空表示文档尚未被任何管理员认领（bootstrap 默认文档）。
// 各个分区以 JSONB 存储，历史数据可能带有旧字段名，读取时统一规整。
type ResumeDocument struct {
	gorm.Model
	OwnerID      *uint          `gorm:"index"`
	PersonalInfo datatypes.JSON `gorm:"type:jsonb"`
	Work         datatypes.JSON `gorm:"type:jsonb"`
	Education    datatypes.JSON `gorm:"type:jsonb"`
	Skills       datatypes.JSON `gorm:"type:jsonb"`
	Projects     datatypes.JSON `gorm:"type:jsonb"`
	Social       datatypes.JSON `gorm:"type:jsonb"`
}
