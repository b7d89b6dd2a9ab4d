package resume

import (
	"strings"

	"github.com/google/uuid"
)

// 各类子资源的 id 前缀，便于排查数据来源。
const (
	WorkIDPrefix      = "work-"
	EducationIDPrefix = "edu-"
	ProjectIDPrefix   = "proj-"
)

// EnsureID 保证子资源持有稳定 id：已有非空 id 原样保留，
// 否则生成带类型前缀的新 id。前端依赖 id 做列表 diff，不能改写已有值。
func EnsureID(id, prefix string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return prefix + uuid.NewString()
}

// EnsureWorkIDs 为整组工作经历补齐 id，每次整组覆盖保存前都要执行。
func EnsureWorkIDs(items []WorkExperience) []WorkExperience {
	for i := range items {
		items[i].ID = EnsureID(items[i].ID, WorkIDPrefix)
	}
	return items
}

// EnsureEducationIDs 为整组教育经历补齐 id。
func EnsureEducationIDs(items []Education) []Education {
	for i := range items {
		items[i].ID = EnsureID(items[i].ID, EducationIDPrefix)
	}
	return items
}

// EnsureProjectIDs 为整组项目补齐 id。
func EnsureProjectIDs(items []Project) []Project {
	for i := range items {
		items[i].ID = EnsureID(items[i].ID, ProjectIDPrefix)
	}
	return items
}
