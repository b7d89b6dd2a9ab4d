package resume

// PersonalInfo 简历头部的标量字段，更新时按字段浅合并。
type PersonalInfo struct {
	Name               string `json:"name"`
	Initials           string `json:"initials"`
	Location           string `json:"location"`
	LocationLink       string `json:"locationLink"`
	About              string `json:"about"`
	Summary            string `json:"summary"`
	AvatarURL          string `json:"avatarUrl"`
	PersonalWebsiteURL string `json:"personalWebsiteUrl"`
	Email              string `json:"email"`
	Tel                string `json:"tel"`
}

// WorkExperience 单条工作经历。End 为空表示至今。
type WorkExperience struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Link        string   `json:"link"`
	Badges      []string `json:"badges"`
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         *string  `json:"end"`
	Description string   `json:"description"`
}

// Education 单条教育经历。
type Education struct {
	ID     string  `json:"id"`
	School string  `json:"school"`
	Degree string  `json:"degree"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
}

// ProjectLink 项目外链。
type ProjectLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Project 单个项目条目。
type Project struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	TechStack   []string     `json:"techStack"`
	Description string       `json:"description"`
	Link        *ProjectLink `json:"link,omitempty"`
}

// SocialLink 社交链接。
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// Data 是对外呈现的规整后简历视图。
type Data struct {
	ID           string           `json:"id"`
	UserID       string           `json:"userId"`
	PersonalInfo PersonalInfo     `json:"personalInfo"`
	Work         []WorkExperience `json:"work"`
	Education    []Education      `json:"education"`
	Skills       []string         `json:"skills"`
	Projects     []Project        `json:"projects"`
	Social       []SocialLink     `json:"social"`
	CreatedAt    string           `json:"createdAt"`
	UpdatedAt    string           `json:"updatedAt"`
}
