package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/EmirBoz/resume-app/internal/auth"
	"github.com/EmirBoz/resume-app/internal/database"
	"github.com/EmirBoz/resume-app/internal/metrics"
	"github.com/EmirBoz/resume-app/internal/resume"
	"github.com/EmirBoz/resume-app/internal/store"
)

// 对外暴露的错误信息保持简短统一，细节只进服务端日志。
var (
	errUnauthenticated = errors.New("unauthenticated")
)

// Resolver 聚合 GraphQL 字段所需的依赖。
// 除 login 外的所有 Mutation 都先过认证闸门，再触达文档存储。
type Resolver struct {
	store  *store.Store
	auth   *auth.Authenticator
	logger *slog.Logger
}

// NewResolver 构造 Resolver。
func NewResolver(st *store.Store, authenticator *auth.Authenticator, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: st, auth: authenticator, logger: logger}
}

// NewSchema 组装查询与变更两棵字段树。
func NewSchema(r *Resolver) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "OK", nil
				},
			},
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.track("me", r.resolveMe),
			},
			"getResumeData": &graphql.Field{
				Type:    graphql.NewNonNull(resumeDataType),
				Resolve: r.track("getResumeData", r.resolveGetResumeData),
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.track("login", r.resolveLogin),
			},
			"updatePersonalInfo": &graphql.Field{
				Type: graphql.NewNonNull(personalInfoType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(personalInfoInput)},
				},
				Resolve: r.track("updatePersonalInfo", r.resolveUpdatePersonalInfo),
			},
			"updateWorkExperience": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(workExperienceType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(workExperienceInput)))},
				},
				Resolve: r.track("updateWorkExperience", r.resolveUpdateWorkExperience),
			},
			"updateEducation": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(educationType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(educationInput)))},
				},
				Resolve: r.track("updateEducation", r.resolveUpdateEducation),
			},
			"updateSkills": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
				},
				Resolve: r.track("updateSkills", r.resolveUpdateSkills),
			},
			"updateProjects": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(projectType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(projectInput)))},
				},
				Resolve: r.track("updateProjects", r.resolveUpdateProjects),
			},
			"updateSocialLinks": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(socialLinkType))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(socialLinkInput)))},
				},
				Resolve: r.track("updateSocialLinks", r.resolveUpdateSocialLinks),
			},
			"resetResumeData": &graphql.Field{
				Type:    graphql.NewNonNull(resumeDataType),
				Resolve: r.track("resetResumeData", r.resolveResetResumeData),
			},
			"exportData": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: r.track("exportData", r.resolveExportData),
			},
			"importData": &graphql.Field{
				Type: graphql.NewNonNull(resumeDataType),
				Args: graphql.FieldConfigArgument{
					"data": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.track("importData", r.resolveImportData),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// track 包一层指标采集，按操作名统计成功与失败次数。
func (r *Resolver) track(operation string, fn func(graphql.ResolveParams) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		result, err := fn(p)
		metrics.ObserveGraphQLOperation(operation, err)
		return result, err
	}
}

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	user := IdentityFrom(p.Context)
	if user == nil {
		return nil, nil
	}
	return presentUser(user), nil
}

func (r *Resolver) resolveGetResumeData(p graphql.ResolveParams) (interface{}, error) {
	data, err := r.store.GetResumeData(p.Context)
	if err != nil {
		r.logger.Error("get resume data failed", slog.Any("error", err))
		return nil, errors.New("failed to fetch resume data")
	}
	return data, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	password, _ := p.Args["password"].(string)

	result, err := r.auth.Login(p.Context, ClientIPFrom(p.Context), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return nil, auth.ErrInvalidCredentials
		case errors.Is(err, auth.ErrRateLimited):
			return nil, auth.ErrRateLimited
		default:
			r.logger.Error("login failed", slog.Any("error", err))
			return nil, errors.New("authentication failed")
		}
	}

	return map[string]interface{}{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt.UTC().Format(time.RFC3339),
		"user":      presentUser(&result.User),
	}, nil
}

func (r *Resolver) resolveUpdatePersonalInfo(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	partial, _ := p.Args["input"].(map[string]interface{})
	info, err := r.store.UpdatePersonalInfo(p.Context, user.ID, partial)
	if err != nil {
		return nil, r.mutationError("update personal info", err)
	}
	return info, nil
}

func (r *Resolver) resolveUpdateWorkExperience(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	var items []resume.WorkExperience
	if err := decodeInput(p.Args["input"], &items); err != nil {
		return nil, r.mutationError("update work experience", err)
	}

	stored, err := r.store.UpdateWork(p.Context, user.ID, items)
	if err != nil {
		return nil, r.mutationError("update work experience", err)
	}
	return stored, nil
}

func (r *Resolver) resolveUpdateEducation(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	var items []resume.Education
	if err := decodeInput(p.Args["input"], &items); err != nil {
		return nil, r.mutationError("update education", err)
	}

	stored, err := r.store.UpdateEducation(p.Context, user.ID, items)
	if err != nil {
		return nil, r.mutationError("update education", err)
	}
	return stored, nil
}

func (r *Resolver) resolveUpdateSkills(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	var items []string
	if err := decodeInput(p.Args["input"], &items); err != nil {
		return nil, r.mutationError("update skills", err)
	}

	stored, err := r.store.UpdateSkills(p.Context, user.ID, items)
	if err != nil {
		return nil, r.mutationError("update skills", err)
	}
	return stored, nil
}

func (r *Resolver) resolveUpdateProjects(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	var items []resume.Project
	if err := decodeInput(p.Args["input"], &items); err != nil {
		return nil, r.mutationError("update projects", err)
	}

	stored, err := r.store.UpdateProjects(p.Context, user.ID, items)
	if err != nil {
		return nil, r.mutationError("update projects", err)
	}
	return stored, nil
}

func (r *Resolver) resolveUpdateSocialLinks(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	var items []resume.SocialLink
	if err := decodeInput(p.Args["input"], &items); err != nil {
		return nil, r.mutationError("update social links", err)
	}

	stored, err := r.store.UpdateSocial(p.Context, user.ID, items)
	if err != nil {
		return nil, r.mutationError("update social links", err)
	}
	return stored, nil
}

// resolveResetResumeData 管理操作：清空全部文档并重新播种。
func (r *Resolver) resolveResetResumeData(p graphql.ResolveParams) (interface{}, error) {
	if _, err := r.requireIdentity(p); err != nil {
		return nil, err
	}

	data, err := r.store.ClearAndReseed(p.Context)
	if err != nil {
		return nil, r.mutationError("reset resume data", err)
	}
	return data, nil
}

func (r *Resolver) resolveExportData(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	snapshot, err := r.store.Export(p.Context, user.ID)
	if err != nil {
		return nil, r.mutationError("export data", err)
	}
	return snapshot, nil
}

func (r *Resolver) resolveImportData(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.requireIdentity(p)
	if err != nil {
		return nil, err
	}

	payload, _ := p.Args["data"].(string)
	data, err := r.store.Import(p.Context, user.ID, payload)
	if err != nil {
		return nil, r.mutationError("import data", err)
	}
	return data, nil
}

// requireIdentity 是变更操作的认证闸门：身份缺失立即中止，
// 不触达文档存储。
func (r *Resolver) requireIdentity(p graphql.ResolveParams) (*database.User, error) {
	user := IdentityFrom(p.Context)
	if user == nil {
		return nil, errUnauthenticated
	}
	return user, nil
}

// mutationError 把存储层错误映射为对客户端安全的简短信息。
func (r *Resolver) mutationError(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrParse):
		return errors.New("invalid json data")
	case errors.Is(err, store.ErrNotFound):
		return errors.New("no resume data found")
	default:
		r.logger.Error(op+" failed", slog.Any("error", err))
		return fmt.Errorf("failed to %s", op)
	}
}

func presentUser(user *database.User) map[string]interface{} {
	return map[string]interface{}{
		"id":        fmt.Sprintf("%d", user.ID),
		"username":  user.Username,
		"createdAt": user.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt": user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// decodeInput 通过一次 JSON 往返把 graphql-go 的泛型参数
// （[]interface{}/map[string]interface{}）转成领域类型。
func decodeInput(v any, target any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}
