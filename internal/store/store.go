package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/EmirBoz/resume-app/internal/database"
	"github.com/EmirBoz/resume-app/internal/resume"
)

// Publisher 在每次成功写入后收到最新的简历视图，用于推送给订阅端。
type Publisher interface {
	PublishResumeUpdate(ctx context.Context, data resume.Data)
}

// Store 负责定位简历文档并应用变更。
//
// 文档归属规则：
//   - 公开读取在库为空时播种一份无主文档；
//   - 已认证的首次写入会“认领”这份无主文档（owner_id 从 NULL 一次性
//     置为写入者，条件更新保证并发下只有一个赢家）；
//   - 认领失败（已被他人抢先）则为写入者新建一份空文档。
type Store struct {
	db        *database.Manager
	logger    *slog.Logger
	publisher Publisher
}

// New 构造 Store。publisher 可为 nil（不推送更新）。
func New(db *database.Manager, logger *slog.Logger, publisher Publisher) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger, publisher: publisher}
}

// GetResumeData 返回规整后的简历视图，库为空时先播种。
func (s *Store) GetResumeData(ctx context.Context) (resume.Data, error) {
	doc, err := s.ResolveForRead(ctx)
	if err != nil {
		return resume.Data{}, err
	}
	return s.Present(doc), nil
}

// ResolveForRead 返回唯一的简历文档；不存在则创建带占位内容的无主文档。
func (s *Store) ResolveForRead(ctx context.Context) (*database.ResumeDocument, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var doc database.ResumeDocument
	err = db.WithContext(ctx).Order("id asc").First(&doc).Error
	switch {
	case err == nil:
		return &doc, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.seedDocument(ctx, db)
	default:
		return nil, fmt.Errorf("load resume document: %w", err)
	}
}

// resolveForWrite 定位写入目标：本人文档 → 认领无主文档 → 新建。
func (s *Store) resolveForWrite(ctx context.Context, userID uint) (*gorm.DB, *database.ResumeDocument, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return nil, nil, err
	}

	var doc database.ResumeDocument
	err = db.WithContext(ctx).Where("owner_id = ?", userID).First(&doc).Error
	if err == nil {
		return db, &doc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("load owned document: %w", err)
	}

	err = db.WithContext(ctx).Where("owner_id IS NULL").Order("id asc").First(&doc).Error
	switch {
	case err == nil:
		// 条件更新充当 compare-and-set：owner_id 仍为 NULL 才能认领，
		// 并发首次写入时只有一个请求能成功。
		res := db.WithContext(ctx).
			Model(&database.ResumeDocument{}).
			Where("id = ? AND owner_id IS NULL", doc.ID).
			Update("owner_id", userID)
		if res.Error != nil {
			return nil, nil, fmt.Errorf("adopt document: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			doc.OwnerID = &userID
			s.logger.Info("ownerless resume document adopted",
				slog.Uint64("document_id", uint64(doc.ID)),
				slog.Uint64("user_id", uint64(userID)),
			)
			return db, &doc, nil
		}
		// 被其他身份抢先认领，为当前用户另建一份。
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, fmt.Errorf("load ownerless document: %w", err)
	}

	created, err := s.createEmptyDocument(ctx, db, userID)
	if err != nil {
		return nil, nil, err
	}
	return db, created, nil
}

// UpdatePersonalInfo 将 partial 浅合并到现有 personalInfo 上并持久化。
// partial 里未出现的字段保持原值。
func (s *Store) UpdatePersonalInfo(ctx context.Context, userID uint, partial map[string]any) (resume.PersonalInfo, error) {
	db, doc, err := s.resolveForWrite(ctx, userID)
	if err != nil {
		return resume.PersonalInfo{}, err
	}

	current := map[string]any{}
	if len(doc.PersonalInfo) > 0 {
		_ = json.Unmarshal(doc.PersonalInfo, &current)
	}
	for key, value := range partial {
		current[key] = value
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return resume.PersonalInfo{}, fmt.Errorf("encode personal info: %w", err)
	}
	doc.PersonalInfo = datatypes.JSON(merged)

	if err := s.save(ctx, db, doc); err != nil {
		return resume.PersonalInfo{}, err
	}
	return resume.NormalizePersonalInfo(merged), nil
}

// UpdateWork 整组覆盖工作经历，保存前补齐缺失的 id。
func (s *Store) UpdateWork(ctx context.Context, userID uint, items []resume.WorkExperience) ([]resume.WorkExperience, error) {
	items = resume.EnsureWorkIDs(items)
	if err := s.replaceSection(ctx, userID, items, func(doc *database.ResumeDocument, raw datatypes.JSON) {
		doc.Work = raw
	}); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateEducation 整组覆盖教育经历，保存前补齐缺失的 id。
func (s *Store) UpdateEducation(ctx context.Context, userID uint, items []resume.Education) ([]resume.Education, error) {
	items = resume.EnsureEducationIDs(items)
	if err := s.replaceSection(ctx, userID, items, func(doc *database.ResumeDocument, raw datatypes.JSON) {
		doc.Education = raw
	}); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateProjects 整组覆盖项目列表，保存前补齐缺失的 id。
func (s *Store) UpdateProjects(ctx context.Context, userID uint, items []resume.Project) ([]resume.Project, error) {
	items = resume.EnsureProjectIDs(items)
	if err := s.replaceSection(ctx, userID, items, func(doc *database.ResumeDocument, raw datatypes.JSON) {
		doc.Projects = raw
	}); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateSkills 整组覆盖技能列表。
func (s *Store) UpdateSkills(ctx context.Context, userID uint, items []string) ([]string, error) {
	if items == nil {
		items = []string{}
	}
	if err := s.replaceSection(ctx, userID, items, func(doc *database.ResumeDocument, raw datatypes.JSON) {
		doc.Skills = raw
	}); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateSocial 整组覆盖社交链接（无 id 概念）。
func (s *Store) UpdateSocial(ctx context.Context, userID uint, items []resume.SocialLink) ([]resume.SocialLink, error) {
	if err := s.replaceSection(ctx, userID, items, func(doc *database.ResumeDocument, raw datatypes.JSON) {
		doc.Social = raw
	}); err != nil {
		return nil, err
	}
	return items, nil
}

// snapshot 是导出载荷：对外可见的全部分区加导出时间。
type snapshot struct {
	PersonalInfo resume.PersonalInfo     `json:"personalInfo"`
	Work         []resume.WorkExperience `json:"work"`
	Education    []resume.Education      `json:"education"`
	Skills       []string                `json:"skills"`
	Projects     []resume.Project        `json:"projects"`
	Social       []resume.SocialLink     `json:"social"`
	ExportedAt   string                  `json:"exportedAt"`
}

// Export 序列化当前文档为 JSON 快照。优先本人文档，其次无主文档。
func (s *Store) Export(ctx context.Context, userID uint) (string, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return "", err
	}

	var doc database.ResumeDocument
	err = db.WithContext(ctx).Where("owner_id = ?", userID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.WithContext(ctx).Order("id asc").First(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
	}
	if err != nil {
		return "", fmt.Errorf("load document for export: %w", err)
	}

	payload := snapshot{
		PersonalInfo: resume.NormalizePersonalInfo(doc.PersonalInfo),
		Work:         resume.NormalizeWork(doc.Work),
		Education:    resume.NormalizeEducation(doc.Education),
		Skills:       resume.NormalizeSkills(doc.Skills),
		Projects:     resume.NormalizeProjects(doc.Projects),
		Social:       resume.NormalizeSocial(doc.Social),
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// Import 解析快照并覆盖载荷中出现的分区；未出现的分区保持原值。
// 只做 JSON 解析级校验，内部形状的偏差交给读侧适配器消化。
func (s *Store) Import(ctx context.Context, userID uint, payload string) (resume.Data, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return resume.Data{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	db, doc, err := s.resolveForWrite(ctx, userID)
	if err != nil {
		return resume.Data{}, err
	}

	assign := func(target *datatypes.JSON, keys ...string) {
		for _, key := range keys {
			if raw, ok := fields[key]; ok && string(raw) != "null" {
				*target = datatypes.JSON(raw)
				return
			}
		}
	}

	assign(&doc.PersonalInfo, "personalInfo")
	assign(&doc.Work, "work", "workExperience")
	assign(&doc.Education, "education")
	assign(&doc.Skills, "skills")
	assign(&doc.Projects, "projects")
	assign(&doc.Social, "social", "socialLinks")

	if err := s.save(ctx, db, doc); err != nil {
		return resume.Data{}, err
	}
	return s.Present(doc), nil
}

// ClearAndReseed 清空全部简历文档并重新播种，管理用途。
func (s *Store) ClearAndReseed(ctx context.Context) (resume.Data, error) {
	db, err := s.db.DB(ctx)
	if err != nil {
		return resume.Data{}, err
	}

	if err := db.WithContext(ctx).Where("1 = 1").Delete(&database.ResumeDocument{}).Error; err != nil {
		return resume.Data{}, fmt.Errorf("clear resume documents: %w", err)
	}

	doc, err := s.seedDocument(ctx, db)
	if err != nil {
		return resume.Data{}, err
	}
	return s.Present(doc), nil
}

// Present 把存储形态转换为规整后的对外视图。
func (s *Store) Present(doc *database.ResumeDocument) resume.Data {
	userID := ""
	if doc.OwnerID != nil {
		userID = strconv.FormatUint(uint64(*doc.OwnerID), 10)
	}

	return resume.Data{
		ID:           strconv.FormatUint(uint64(doc.ID), 10),
		UserID:       userID,
		PersonalInfo: resume.NormalizePersonalInfo(doc.PersonalInfo),
		Work:         resume.NormalizeWork(doc.Work),
		Education:    resume.NormalizeEducation(doc.Education),
		Skills:       resume.NormalizeSkills(doc.Skills),
		Projects:     resume.NormalizeProjects(doc.Projects),
		Social:       resume.NormalizeSocial(doc.Social),
		CreatedAt:    doc.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    doc.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Store) replaceSection(ctx context.Context, userID uint, items any, apply func(*database.ResumeDocument, datatypes.JSON)) error {
	db, doc, err := s.resolveForWrite(ctx, userID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode section: %w", err)
	}
	apply(doc, datatypes.JSON(raw))

	return s.save(ctx, db, doc)
}

// save 持久化整份文档（单行写入，依赖数据库自身的原子性），
// 成功后把最新视图广播给订阅端。
func (s *Store) save(ctx context.Context, db *gorm.DB, doc *database.ResumeDocument) error {
	if err := db.WithContext(ctx).Save(doc).Error; err != nil {
		return fmt.Errorf("save resume document: %w", err)
	}
	if s.publisher != nil {
		s.publisher.PublishResumeUpdate(ctx, s.Present(doc))
	}
	return nil
}

func (s *Store) seedDocument(ctx context.Context, db *gorm.DB) (*database.ResumeDocument, error) {
	seed := resume.Seed()

	doc := database.ResumeDocument{
		PersonalInfo: mustJSON(seed.PersonalInfo),
		Work:         mustJSON(seed.Work),
		Education:    mustJSON(seed.Education),
		Skills:       mustJSON(seed.Skills),
		Projects:     mustJSON(seed.Projects),
		Social:       mustJSON(seed.Social),
	}

	if err := db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("seed resume document: %w", err)
	}
	s.logger.Info("seeded default resume document", slog.Uint64("document_id", uint64(doc.ID)))
	return &doc, nil
}

func (s *Store) createEmptyDocument(ctx context.Context, db *gorm.DB, userID uint) (*database.ResumeDocument, error) {
	doc := database.ResumeDocument{
		OwnerID:      &userID,
		PersonalInfo: datatypes.JSON([]byte("{}")),
		Work:         datatypes.JSON([]byte("[]")),
		Education:    datatypes.JSON([]byte("[]")),
		Skills:       datatypes.JSON([]byte("[]")),
		Projects:     datatypes.JSON([]byte("[]")),
		Social:       datatypes.JSON([]byte("[]")),
	}

	if err := db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("create resume document: %w", err)
	}
	s.logger.Info("created empty resume document",
		slog.Uint64("document_id", uint64(doc.ID)),
		slog.Uint64("user_id", uint64(userID)),
	)
	return &doc, nil
}

func mustJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(data)
}
