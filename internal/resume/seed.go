package resume

// Seed 返回首次公开读取时落库的占位简历内容。
// 管理员登录后可在后台覆盖全部分区。
func Seed() Data {
	internEnd := "2019/09"

	return Data{
		PersonalInfo: PersonalInfo{
			Name:               "Emir Boz",
			Initials:           "EB",
			Location:           "İstanbul, Turkey",
			LocationLink:       "https://www.google.com/maps/place/İstanbul",
			About:              "A proactive Frontend Developer with 3+ years of experience in building scalable and user-friendly web applications. Passionate about continuous learning and exploring modern technologies to deliver high-quality solutions.",
			Summary:            "I specialize in creating scalable and user-friendly applications using TypeScript and Angular. While my primary focus is frontend, I continuously explore other technologies such as React, Java Spring Boot, and .NET to become a more versatile engineer. I am passionate about solving complex challenges and contributing to impactful projects.",
			AvatarURL:          "/profile.jpeg",
			PersonalWebsiteURL: "",
			Email:              "emirrbozz@gmail.com",
			Tel:                "+90 505 411 14 80",
		},
		Work: []WorkExperience{
			{
				ID:      "1",
				Company: "Vodafone via Pia",
				Link:    "https://vodafone.com.tr",
				Badges:  []string{"Hybrid", "Agile", "Angular", "Angular Material", "TypeScript"},
				Title:   "Software Developer | Vodafone Next",
				Start:   "2022/03",
				End:     nil,
				Description: "Contributed as a Frontend Developer to Vodafone Next, a large-scale customer and sales management platform built on a microservice-based digital interaction framework.\n" +
					"\n- Worked across multiple integrated modules including CRM, OmniChannel, BackOffice, Product Catalog, Partner Portal, and Common libraries.\n" +
					"- Developed and optimized customer lifecycle management flows in the CRM module.\n" +
					"- Enhanced the OmniChannel checkout and order orchestration system with dynamic rendering and step-based workflows.\n" +
					"- Implemented role-based access control using Keycloak.\n" +
					"\nTechnologies: Angular, TypeScript, Angular Material, RxJS, Keycloak, Camunda, REST APIs, Microservice architecture",
			},
			{
				ID:      "2",
				Company: "Turk Telecom",
				Link:    "https://www.turktelekom.com.tr",
				Badges:  []string{"On Site", "C/C++"},
				Title:   "Intern Engineer",
				Start:   "2019/06",
				End:     &internEnd,
				Description: "Completed an internship in the Network Management Systems department, gaining practical exposure to large-scale telecommunication infrastructure and operations.\n" +
					"\n- Assisted in monitoring and analyzing network performance metrics.\n" +
					"- Worked with simulation tools such as Cisco Packet Tracer to design and configure basic network topologies.\n" +
					"- Collaborated with engineers to document processes around telecom-grade network architectures.",
			},
		},
		Education: []Education{
			{
				ID:     "1",
				School: "Gebze Technical University",
				Degree: "Bachelor's Degree in Electronics Engineering",
			},
		},
		Skills: []string{
			"Angular / Angular Material",
			"React / Next.js",
			"TypeScript",
			"JavaScript (ES6+)",
			"HTML5 / CSS3 / SCSS",
			"Tailwind CSS",
			"Design Systems",
			"Node.js (learning)",
			"Java Spring Boot (learning)",
			".NET (learning)",
			"PostgreSQL",
			"MongoDB",
			"Git / GitHub / Bitbucket",
			"Jira / Agile Methodologies",
			"RESTful APIs",
			"CI/CD basics",
		},
		Projects: []Project{
			{
				ID:    "1",
				Title: "CV/Resume Web Application",
				TechStack: []string{
					"Angular 20",
					"Tailwind CSS",
					"SCSS",
					"Angular Signals",
					"GraphQL (Apollo Client)",
					"jsPDF",
					"html2canvas",
				},
				Description: "A minimalist, print-friendly single-page CV/Resume app built with Angular 20.\n" +
					"Features include dynamic data with GraphQL, PDF export, and a custom UI component library for consistent design.",
				Link: &ProjectLink{
					Label: "GitHub Repository",
					Href:  "https://github.com/EmirBoz",
				},
			},
		},
		Social: []SocialLink{
			{Name: "GitHub", URL: "https://github.com/EmirBoz", Icon: "github"},
			{Name: "LinkedIn", URL: "https://www.linkedin.com/in/emir-boz/", Icon: "linkedin"},
		},
	}
}
