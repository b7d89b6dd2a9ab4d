package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EmirBoz/resume-app/internal/database"
	"github.com/EmirBoz/resume-app/internal/resume"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()

	// 每个测试使用独立的共享内存库，互不串扰。
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.ResumeDocument{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(database.NewManagerFromDB(db), quiet, nil), db
}

func documentCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&database.ResumeDocument{}).Count(&count).Error; err != nil {
		t.Fatalf("count documents: %v", err)
	}
	return count
}

func TestGetResumeData_SeedsExactlyOnce(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	first, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same document across reads, got %q then %q", first.ID, second.ID)
	}
	if got := documentCount(t, db); got != 1 {
		t.Fatalf("expected 1 document, got %d", got)
	}
	if first.UserID != "" {
		t.Fatalf("expected seeded document to be ownerless, got owner %q", first.UserID)
	}
	if first.PersonalInfo.Name == "" {
		t.Fatalf("expected seeded personal info, got empty name")
	}
}

func TestFirstWriteAdoptsOwnerlessDocument(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	seeded, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("seed read: %v", err)
	}

	if _, err := st.UpdateSkills(ctx, 1, []string{"Go"}); err != nil {
		t.Fatalf("first write: %v", err)
	}

	var doc database.ResumeDocument
	if err := db.First(&doc).Error; err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.OwnerID == nil || *doc.OwnerID != 1 {
		t.Fatalf("expected document adopted by user 1, got %v", doc.OwnerID)
	}

	// 认领的是原有文档而不是新建的。
	updated, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("read after adopt: %v", err)
	}
	if updated.ID != seeded.ID {
		t.Fatalf("expected adopted document %q, got %q", seeded.ID, updated.ID)
	}
	if got := documentCount(t, db); got != 1 {
		t.Fatalf("expected 1 document after adoption, got %d", got)
	}
}

func TestSecondUserGetsFreshDocument(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	if _, err := st.UpdateSkills(ctx, 1, []string{"Go"}); err != nil {
		t.Fatalf("user 1 write: %v", err)
	}
	if _, err := st.UpdateSkills(ctx, 2, []string{"Rust"}); err != nil {
		t.Fatalf("user 2 write: %v", err)
	}

	if got := documentCount(t, db); got != 2 {
		t.Fatalf("expected 2 documents, got %d", got)
	}

	var docs []database.ResumeDocument
	if err := db.Order("id asc").Find(&docs).Error; err != nil {
		t.Fatalf("load documents: %v", err)
	}
	if docs[0].OwnerID == nil || *docs[0].OwnerID != 1 {
		t.Fatalf("expected first document owned by user 1, got %v", docs[0].OwnerID)
	}
	if docs[1].OwnerID == nil || *docs[1].OwnerID != 2 {
		t.Fatalf("expected second document owned by user 2, got %v", docs[1].OwnerID)
	}
}

func TestUpdatePersonalInfo_ShallowMerge(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	seeded, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("seed read: %v", err)
	}
	if seeded.PersonalInfo.Email == "" {
		t.Fatalf("seed must carry an email for this test")
	}

	info, err := st.UpdatePersonalInfo(ctx, 1, map[string]any{"name": "Changed Name"})
	if err != nil {
		t.Fatalf("update personal info: %v", err)
	}

	if info.Name != "Changed Name" {
		t.Fatalf("expected updated name, got %q", info.Name)
	}
	// 未出现在 partial 里的字段保持原值。
	if info.Email != seeded.PersonalInfo.Email {
		t.Fatalf("expected email retained as %q, got %q", seeded.PersonalInfo.Email, info.Email)
	}

	stored, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored.PersonalInfo.Name != "Changed Name" || stored.PersonalInfo.Email != seeded.PersonalInfo.Email {
		t.Fatalf("merge not persisted: %+v", stored.PersonalInfo)
	}
}

func TestUpdateWork_ReplacesListAndKeepsIDs(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	first, err := st.UpdateWork(ctx, 1, []resume.WorkExperience{
		{Company: "Acme", Title: "Engineer", Start: "2021"},
		{ID: "work-fixed", Company: "Beta", Title: "Developer", Start: "2019"},
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if !strings.HasPrefix(first[0].ID, resume.WorkIDPrefix) {
		t.Fatalf("expected generated work id, got %q", first[0].ID)
	}
	if first[1].ID != "work-fixed" {
		t.Fatalf("expected caller id preserved, got %q", first[1].ID)
	}

	// 原样重存不改写 id。
	second, err := st.UpdateWork(ctx, 1, first)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if second[0].ID != first[0].ID || second[1].ID != first[1].ID {
		t.Fatalf("ids changed across re-save: %v vs %v", first, second)
	}

	// 整组覆盖：传入单条后旧的种子条目全部消失。
	replaced, err := st.UpdateWork(ctx, 1, first[:1])
	if err != nil {
		t.Fatalf("replace update: %v", err)
	}
	if len(replaced) != 1 {
		t.Fatalf("expected single entry after replace, got %d", len(replaced))
	}
	data, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data.Work) != 1 || data.Work[0].ID != first[0].ID {
		t.Fatalf("replace not persisted: %+v", data.Work)
	}
}

func TestUpdateSkills_NilBecomesEmptyList(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	skills, err := st.UpdateSkills(ctx, 1, nil)
	if err != nil {
		t.Fatalf("update skills: %v", err)
	}
	if skills == nil || len(skills) != 0 {
		t.Fatalf("expected empty list, got %v", skills)
	}

	data, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data.Skills) != 0 {
		t.Fatalf("expected empty skills persisted, got %v", data.Skills)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	if _, err := st.UpdateSkills(ctx, 1, []string{"Go", "Rust"}); err != nil {
		t.Fatalf("prepare document: %v", err)
	}

	payload, err := st.Export(ctx, 1)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(payload, `"exportedAt"`) {
		t.Fatalf("expected exportedAt in payload: %s", payload)
	}

	imported, err := st.Import(ctx, 2, payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.UserID != "2" {
		t.Fatalf("expected import into user 2 document, got owner %q", imported.UserID)
	}
	if got := documentCount(t, db); got != 2 {
		t.Fatalf("expected fresh document for importer, got %d documents", got)
	}

	source, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if !reflect.DeepEqual(imported.Skills, source.Skills) {
		t.Fatalf("skills mismatch after round trip: %v vs %v", imported.Skills, source.Skills)
	}
	if !reflect.DeepEqual(imported.PersonalInfo, source.PersonalInfo) {
		t.Fatalf("personal info mismatch after round trip")
	}
	if !reflect.DeepEqual(imported.Work, source.Work) {
		t.Fatalf("work mismatch after round trip")
	}
}

func TestImport_LegacyKeys(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	data, err := st.Import(ctx, 1, `{"workExperience":[{"position":"Developer","startDate":"2020"}],"socialLinks":[{"platform":"github","url":"https://github.com/x"}]}`)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(data.Work) != 1 || data.Work[0].Title != "Developer" || data.Work[0].Start != "2020" {
		t.Fatalf("legacy work keys not surfaced: %+v", data.Work)
	}
	if len(data.Social) != 1 || data.Social[0].Name != "github" {
		t.Fatalf("legacy social keys not surfaced: %+v", data.Social)
	}
}

func TestImport_PartialPayloadKeepsOtherSections(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	seeded, err := st.GetResumeData(ctx)
	if err != nil {
		t.Fatalf("seed read: %v", err)
	}

	data, err := st.Import(ctx, 1, `{"skills":["Only Skill"]}`)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if !reflect.DeepEqual(data.Skills, []string{"Only Skill"}) {
		t.Fatalf("expected skills replaced, got %v", data.Skills)
	}
	if !reflect.DeepEqual(data.Work, seeded.Work) {
		t.Fatalf("expected work untouched by partial import")
	}
}

func TestImport_MalformedPayload(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	_, err := st.Import(ctx, 1, "{not json")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	// 解析失败不得产生任何文档。
	if got := documentCount(t, db); got != 0 {
		t.Fatalf("expected no documents after failed import, got %d", got)
	}
}

func TestClearAndReseed(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	if _, err := st.UpdateSkills(ctx, 1, []string{"Go"}); err != nil {
		t.Fatalf("user 1 write: %v", err)
	}
	if _, err := st.UpdateSkills(ctx, 2, []string{"Rust"}); err != nil {
		t.Fatalf("user 2 write: %v", err)
	}

	data, err := st.ClearAndReseed(ctx)
	if err != nil {
		t.Fatalf("clear and reseed: %v", err)
	}

	if got := documentCount(t, db); got != 1 {
		t.Fatalf("expected single seeded document, got %d", got)
	}
	if data.UserID != "" {
		t.Fatalf("expected reseeded document to be ownerless, got %q", data.UserID)
	}
	if data.PersonalInfo.Name == "" {
		t.Fatalf("expected seed content restored")
	}
}
