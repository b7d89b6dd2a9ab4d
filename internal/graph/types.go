package graph

import "github.com/graphql-go/graphql"

// GraphQL 输出与输入类型，与前端 Apollo 查询保持一致。

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"username":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"token":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"expiresAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"user":      &graphql.Field{Type: graphql.NewNonNull(userType)},
	},
})

var personalInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PersonalInfo",
	Fields: graphql.Fields{
		"name":               &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"initials":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"location":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"locationLink":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"about":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"summary":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"avatarUrl":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"personalWebsiteUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":              &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"tel":                &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var workExperienceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "WorkExperience",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"company":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"link":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"badges":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"start":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"end":         &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var educationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Education",
	Fields: graphql.Fields{
		"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"school": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"degree": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"start":  &graphql.Field{Type: graphql.String},
		"end":    &graphql.Field{Type: graphql.String},
	},
})

var projectLinkType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProjectLink",
	Fields: graphql.Fields{
		"label": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"href":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var projectType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Project",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"techStack":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"link":        &graphql.Field{Type: projectLinkType},
	},
})

var socialLinkType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SocialLink",
	Fields: graphql.Fields{
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"url":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"icon": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var resumeDataType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ResumeData",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"personalInfo": &graphql.Field{Type: graphql.NewNonNull(personalInfoType)},
		"work":         &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(workExperienceType)))},
		"education":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(educationType)))},
		"skills":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		"projects":     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(projectType)))},
		"social":       &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(socialLinkType)))},
		"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"updatedAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var personalInfoInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PersonalInfoInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":               &graphql.InputObjectFieldConfig{Type: graphql.String},
		"initials":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"location":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"locationLink":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"about":              &graphql.InputObjectFieldConfig{Type: graphql.String},
		"summary":            &graphql.InputObjectFieldConfig{Type: graphql.String},
		"avatarUrl":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"personalWebsiteUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email":              &graphql.InputObjectFieldConfig{Type: graphql.String},
		"tel":                &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var workExperienceInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "WorkExperienceInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"id":          &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"company":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"link":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"badges":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"start":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"end":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var educationInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "EducationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"id":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"school": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"degree": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"start":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"end":    &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var projectLinkInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProjectLinkInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"label": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"href":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var projectInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProjectInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"id":          &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"techStack":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"link":        &graphql.InputObjectFieldConfig{Type: projectLinkInput},
	},
})

var socialLinkInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SocialLinkInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"url":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"icon": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})
