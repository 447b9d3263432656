//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultHonorsLabel is the label given to a new education honors grouping
const DefaultHonorsLabel = "荣誉"

// DefaultCustomSectionTitle is the title of a section created without one
const DefaultCustomSectionTitle = "自定义模块"

// NewID returns a fresh random identifier
func NewID() string {
	return uuid.NewString()
}

// NewCustomItem returns an empty custom section line
func NewCustomItem() CustomItem {
	return CustomItem{ID: NewID()}
}

// NewPosition returns an empty position with one editable highlight row
func NewPosition() Position {
	return Position{
		ID:         NewID(),
		Highlights: []string{""},
	}
}

// NewWorkEntry returns an empty work entry holding one empty position
func NewWorkEntry() WorkEntry {
	return WorkEntry{
		ID:        NewID(),
		Positions: []Position{NewPosition()},
	}
}

// NewEducationEntry returns an empty education entry with the default honors label
func NewEducationEntry() EducationEntry {
	return EducationEntry{
		ID:          NewID(),
		HonorsLabel: DefaultHonorsLabel,
		Honors:      []string{},
		Courses:     []string{},
		Highlights:  []string{},
	}
}

// NewProjectEntry returns an empty project with one editable highlight row
func NewProjectEntry() ProjectEntry {
	return ProjectEntry{
		ID:         NewID(),
		Highlights: []string{""},
	}
}

// NewAwardEntry returns an empty award
func NewAwardEntry() AwardEntry {
	return AwardEntry{
		ID:         NewID(),
		Highlights: []string{},
	}
}

// NewCertificateEntry returns an empty certificate
func NewCertificateEntry() CertificateEntry {
	return CertificateEntry{ID: NewID()}
}

// NewAffiliationEntry returns an empty affiliation
func NewAffiliationEntry() AffiliationEntry {
	return AffiliationEntry{
		ID:         NewID(),
		Highlights: []string{},
	}
}

// NewSection returns a visible section of the given type with one placeholder
// entry (skills sections start empty). Unknown types become custom sections.
func NewSection(sectionType SectionType, title string) Section {
	if !sectionType.IsValid() {
		sectionType = SectionCustom
	}
	if title == "" && sectionType == SectionCustom {
		title = DefaultCustomSectionTitle
	}

	section := Section{
		ID:      NewID(),
		Type:    sectionType,
		Title:   title,
		Visible: true,
	}

	switch sectionType {
	case SectionWork:
		section.WorkEntries = []WorkEntry{NewWorkEntry()}
	case SectionEducation:
		section.EducationEntries = []EducationEntry{NewEducationEntry()}
	case SectionProject:
		section.ProjectEntries = []ProjectEntry{NewProjectEntry()}
	case SectionAwards:
		section.AwardEntries = []AwardEntry{NewAwardEntry()}
	case SectionCerts:
		section.CertificateEntries = []CertificateEntry{NewCertificateEntry()}
	case SectionAffiliations:
		section.AffiliationEntries = []AffiliationEntry{NewAffiliationEntry()}
	case SectionSkills:
		section.SkillGroups = []SkillGroup{}
		section.Languages = []Language{}
		section.Interests = []string{}
	default:
		section.Items = []CustomItem{NewCustomItem()}
	}

	return section
}

// NewEmptySection returns a visible section of the given type whose content
// slice is present but empty. Importers fill it entry by entry.
func NewEmptySection(sectionType SectionType, title string) Section {
	section := NewSection(sectionType, title)
	section.Title = title
	switch section.Type {
	case SectionWork:
		section.WorkEntries = []WorkEntry{}
	case SectionEducation:
		section.EducationEntries = []EducationEntry{}
	case SectionProject:
		section.ProjectEntries = []ProjectEntry{}
	case SectionAwards:
		section.AwardEntries = []AwardEntry{}
	case SectionCerts:
		section.CertificateEntries = []CertificateEntry{}
	case SectionAffiliations:
		section.AffiliationEntries = []AffiliationEntry{}
	case SectionSkills:
		// skills sections already start empty
	default:
		section.Items = []CustomItem{}
	}
	return section
}

// Now returns the current instant at the millisecond precision used for
// persisted timestamps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewDefaultDocument returns the example resume used on first run and as the
// reset target.
func NewDefaultDocument() Document {
	return Document{
		Personal: Personal{
			Name:   "张三",
			Email:  "zhangsan@email.com",
			Phone:  "138-0000-0000",
			URL:    "https://zhangsan.dev",
			Titles: []string{"产品经理", "数据分析师"},
			Location: Location{
				City:   "上海",
				Region: "浦东新区",
			},
			Profiles: []Profile{
				{Network: "LinkedIn", Username: "zhangsan", URL: "https://linkedin.com/in/zhangsan"},
				{Network: "GitHub", Username: "zhangsan", URL: "https://github.com/zhangsan"},
			},
			Summary: "5年互联网产品经验，擅长从用户洞察到落地上线的全流程推进。具备跨团队协同与数据驱动迭代能力。",
		},
		Sections: []Section{
			{
				ID:      NewID(),
				Type:    SectionWork,
				Title:   "工作经历",
				Visible: true,
				WorkEntries: []WorkEntry{
					{
						ID:           NewID(),
						Organization: "XX科技有限公司",
						Location:     "上海",
						URL:          "https://example.com",
						Positions: []Position{
							{
								ID:        NewID(),
								Title:     "高级产品经理",
								StartDate: "2022-03",
								EndDate:   PresentToken,
								Highlights: []string{
									"负责核心功能规划、需求管理与项目推进，推动关键模块月活提升 28%",
									"主导跨部门协作流程优化，将产品迭代周期从 6 周缩短至 4 周",
									"建立数据看板体系，实现核心业务指标的实时监控与分析",
								},
							},
						},
					},
					{
						ID:           NewID(),
						Organization: "YY互联网公司",
						Location:     "北京",
						Positions: []Position{
							{
								ID:        NewID(),
								Title:     "产品经理",
								StartDate: "2019-06",
								EndDate:   "2022-02",
								Highlights: []string{
									"负责电商增长产品线，主导新用户获取策略，实现获客成本降低 15%",
									"设计并推动会员体系改版，会员留存率提升 12%",
								},
							},
						},
					},
				},
			},
			{
				ID:      NewID(),
				Type:    SectionEducation,
				Title:   "教育背景",
				Visible: true,
				EducationEntries: []EducationEntry{
					{
						ID:          NewID(),
						Institution: "XX大学",
						Location:    "北京",
						StudyType:   "本科",
						Area:        "信息管理与信息系统",
						StartDate:   "2015-09",
						EndDate:     "2019-06",
						HonorsLabel: DefaultHonorsLabel,
						Honors:      []string{"优秀毕业生", "国家奖学金"},
						Courses:     []string{},
						Highlights:  []string{"学生会主席", "ACM 程序设计竞赛省赛银奖"},
					},
				},
			},
			{
				ID:      NewID(),
				Type:    SectionProject,
				Title:   "项目经历",
				Visible: true,
				ProjectEntries: []ProjectEntry{
					{
						ID:          NewID(),
						Name:        "智能推荐系统改版",
						Affiliation: "XX科技有限公司",
						StartDate:   "2023-01",
						EndDate:     "2023-06",
						Highlights: []string{
							"主导推荐算法策略重构与 AB 实验，核心转化率提升 15%",
							"沉淀指标看板体系，实现业务数据的可视化监控",
						},
					},
				},
			},
			{
				ID:      NewID(),
				Type:    SectionSkills,
				Title:   "技能",
				Visible: true,
				SkillGroups: []SkillGroup{
					{Category: "产品工具", Skills: []string{"Axure", "Figma", "Sketch", "Xmind"}},
					{Category: "数据分析", Skills: []string{"SQL", "Python", "Excel", "Tableau"}},
					{Category: "项目管理", Skills: []string{"Jira", "Confluence", "飞书", "敏捷开发"}},
				},
				Languages: []Language{
					{Language: "中文", Fluency: "母语"},
					{Language: "英语", Fluency: "流利"},
				},
				Interests: []string{},
			},
			{
				ID:      NewID(),
				Type:    SectionCerts,
				Title:   "证书",
				Visible: true,
				CertificateEntries: []CertificateEntry{
					{
						ID:     NewID(),
						Name:   "PMP 项目管理专业人士",
						Issuer: "PMI",
						Date:   "2023-06",
					},
				},
			},
		},
		UpdatedAt: Now(),

		ShowPhoto:    false,
		ShowName:     true,
		ShowEmail:    true,
		ShowPhone:    true,
		ShowURL:      true,
		ShowProfiles: true,
		ShowAddress:  true,
		ShowTitle:    true,
		ShowSummary:  true,
	}
}
