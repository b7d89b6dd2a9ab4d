package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EmirBoz/resume-app/internal/auth"
	"github.com/EmirBoz/resume-app/internal/database"
	"github.com/EmirBoz/resume-app/internal/graph"
	"github.com/EmirBoz/resume-app/internal/store"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.ResumeDocument{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	manager := database.NewManagerFromDB(db)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	service, err := auth.NewService("api-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	authenticator := auth.NewAuthenticator(manager, service, nil, quiet, "admin", "admin123", 10, 5, time.Minute)

	resolver := graph.NewResolver(store.New(manager, quiet, nil), authenticator, quiet)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}

	// ws 路由只在真正建连时使用 redis，这里给一个必然连不上的客户端即可。
	deadRedis := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", DialTimeout: 50 * time.Millisecond})
	t.Cleanup(func() { _ = deadRedis.Close() })

	router := NewRouter(quiet)
	RegisterRoutes(router, &schema, authenticator, service, deadRedis, quiet, nil)
	return router
}

func postGraphQL(t *testing.T, router *gin.Engine, query, token string) map[string]interface{} {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return decoded
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGraphQL_PublicQuery(t *testing.T) {
	router := newTestServer(t)

	resp := postGraphQL(t, router, `{ getResumeData { id personalInfo { name } } }`, "")
	if resp["errors"] != nil {
		t.Fatalf("unexpected errors: %v", resp["errors"])
	}
	data := resp["data"].(map[string]interface{})["getResumeData"].(map[string]interface{})
	if data["id"] == "" {
		t.Fatalf("expected document id in response")
	}
}

func TestGraphQL_MutationRequiresBearerToken(t *testing.T) {
	router := newTestServer(t)

	resp := postGraphQL(t, router, `mutation { updateSkills(input: ["Go"]) }`, "")
	errs, ok := resp["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Fatalf("expected graphql errors, got %v", resp)
	}
	message := errs[0].(map[string]interface{})["message"]
	if message != "unauthenticated" {
		t.Fatalf("expected unauthenticated, got %v", message)
	}
}

func TestGraphQL_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	router := newTestServer(t)

	// 无效令牌不致 5xx，仅被字段级闸门拒绝。
	resp := postGraphQL(t, router, `mutation { updateSkills(input: ["Go"]) }`, "not-a-token")
	errs, ok := resp["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		t.Fatalf("expected graphql errors, got %v", resp)
	}
}

func TestGraphQL_LoginThenMutate(t *testing.T) {
	router := newTestServer(t)

	loginResp := postGraphQL(t, router, `mutation { login(username: "admin", password: "admin123") { token } }`, "")
	if loginResp["errors"] != nil {
		t.Fatalf("login failed: %v", loginResp["errors"])
	}
	token := loginResp["data"].(map[string]interface{})["login"].(map[string]interface{})["token"].(string)
	if token == "" {
		t.Fatalf("expected token")
	}

	resp := postGraphQL(t, router, `mutation { updateSkills(input: ["Go", "Rust"]) }`, token)
	if resp["errors"] != nil {
		t.Fatalf("authenticated mutation failed: %v", resp["errors"])
	}

	read := postGraphQL(t, router, `{ getResumeData { skills } }`, "")
	skills := read["data"].(map[string]interface{})["getResumeData"].(map[string]interface{})["skills"].([]interface{})
	if len(skills) != 2 || skills[0] != "Go" || skills[1] != "Rust" {
		t.Fatalf("unexpected skills: %v", skills)
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/graphql", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		if got := bearerToken(c); got != tc.want {
			t.Fatalf("header %q: expected %q, got %q", tc.header, tc.want, got)
		}
	}
}
