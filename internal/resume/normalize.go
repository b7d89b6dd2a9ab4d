package resume

import (
	"encoding/json"
	"fmt"
)

// 读侧形状适配器。
//
// 存量文档（尤其是经由导入写入的）可能带有历史字段名：
// work 里的 position/startDate/endDate、education 里的 institution、
// project 里的 name/technologies/url、social 里的 platform、
// personalInfo 里的 phone/website，以及对象形式的 skills 条目。
// 这里把所有可接受的形状统一映射到 types.go 中的规范字段。
// 规则：规范字段存在则优先，缺失时回落到旧别名；所有函数均为
// 纯函数且不会失败，字段缺失一律退化为空串/空列表/nil。

// NormalizeWork decodes a stored work section into canonical entries.
func NormalizeWork(raw []byte) []WorkExperience {
	entries := decodeList(raw)
	items := make([]WorkExperience, 0, len(entries))
	for _, m := range entries {
		items = append(items, WorkExperience{
			ID:          pickString(m, "id", "_id"),
			Company:     pickString(m, "company"),
			Link:        pickString(m, "link"),
			Badges:      toStringList(m["badges"]),
			Title:       pickString(m, "title", "position"),
			Start:       pickString(m, "start", "startDate"),
			End:         pickNullableString(m, "end", "endDate"),
			Description: pickString(m, "description"),
		})
	}
	return items
}

// NormalizeEducation decodes a stored education section into canonical entries.
func NormalizeEducation(raw []byte) []Education {
	entries := decodeList(raw)
	items := make([]Education, 0, len(entries))
	for _, m := range entries {
		items = append(items, Education{
			ID:     pickString(m, "id", "_id"),
			School: pickString(m, "school", "institution"),
			Degree: pickString(m, "degree"),
			Start:  pickNullableString(m, "start", "startDate"),
			End:    pickNullableString(m, "end", "endDate"),
		})
	}
	return items
}

// NormalizeSkills flattens a stored skills section into plain strings.
// 旧版本把技能存成 {name, level, category} 对象，这里统一拍平；
// 输出长度与输入一致，绝不产生空洞。
func NormalizeSkills(raw []byte) []string {
	var entries []any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &entries)
	}

	skills := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch v := entry.(type) {
		case string:
			skills = append(skills, v)
		case map[string]any:
			if s := pickString(v, "name", "category", "level"); s != "" {
				skills = append(skills, s)
			} else {
				skills = append(skills, fmt.Sprintf("%v", v))
			}
		default:
			skills = append(skills, fmt.Sprintf("%v", v))
		}
	}
	return skills
}

// NormalizeProjects decodes a stored projects section into canonical entries.
func NormalizeProjects(raw []byte) []Project {
	entries := decodeList(raw)
	items := make([]Project, 0, len(entries))
	for _, m := range entries {
		items = append(items, Project{
			ID:          pickString(m, "id", "_id"),
			Title:       pickString(m, "title", "name"),
			TechStack:   toStringList(firstPresent(m, "techStack", "technologies")),
			Description: pickString(m, "description"),
			Link:        deriveProjectLink(m),
		})
	}
	return items
}

// NormalizeSocial decodes a stored social section into canonical entries.
func NormalizeSocial(raw []byte) []SocialLink {
	entries := decodeList(raw)
	items := make([]SocialLink, 0, len(entries))
	for _, m := range entries {
		items = append(items, SocialLink{
			Name: pickString(m, "name", "platform"),
			URL:  pickString(m, "url"),
			Icon: pickString(m, "icon", "platform"),
		})
	}
	return items
}

// NormalizePersonalInfo decodes a stored personalInfo section.
func NormalizePersonalInfo(raw []byte) PersonalInfo {
	var m map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &m)
	}

	return PersonalInfo{
		Name:               pickString(m, "name"),
		Initials:           pickString(m, "initials"),
		Location:           pickString(m, "location"),
		LocationLink:       pickString(m, "locationLink", "location"),
		About:              pickString(m, "about"),
		Summary:            pickString(m, "summary"),
		AvatarURL:          pickString(m, "avatarUrl"),
		PersonalWebsiteURL: pickString(m, "personalWebsiteUrl", "website"),
		Email:              pickString(m, "email"),
		Tel:                pickString(m, "tel", "phone"),
	}
}

// deriveProjectLink 推导项目外链：显式 link 对象原样保留，
// 旧式 url 字段合成 {label, href}，两者皆无则为 nil。
func deriveProjectLink(m map[string]any) *ProjectLink {
	if linkMap, ok := m["link"].(map[string]any); ok {
		return &ProjectLink{
			Label: pickString(linkMap, "label"),
			Href:  pickString(linkMap, "href"),
		}
	}

	url := pickString(m, "url")
	if url == "" {
		return nil
	}
	label := pickString(m, "name", "title")
	if label == "" {
		label = "View Project"
	}
	return &ProjectLink{Label: label, Href: url}
}

func decodeList(raw []byte) []map[string]any {
	var entries []map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &entries)
	}
	return entries
}

// pickString 依序取第一个非空字符串值，规范字段名排在最前。
func pickString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// pickNullableString 与 pickString 类似，但所有候选字段都缺失或为
// null 时返回 nil（例如在职经历的 end）。
func pickNullableString(m map[string]any, keys ...string) *string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func toStringList(v any) []string {
	entries, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if s, ok := entry.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprintf("%v", entry))
	}
	return out
}
