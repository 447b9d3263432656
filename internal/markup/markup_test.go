package markup

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contentOf drops what the text format cannot carry: ids and urls
func contentOf(sections []types.Section) []types.Section {
	out := make([]types.Section, len(sections))
	for i, section := range sections {
		s := section.Clone()
		s.ID = ""
		for w := range s.WorkEntries {
			s.WorkEntries[w].ID, s.WorkEntries[w].URL = "", ""
			for p := range s.WorkEntries[w].Positions {
				s.WorkEntries[w].Positions[p].ID = ""
			}
		}
		for e := range s.EducationEntries {
			s.EducationEntries[e].ID, s.EducationEntries[e].URL = "", ""
		}
		for p := range s.ProjectEntries {
			s.ProjectEntries[p].ID, s.ProjectEntries[p].URL = "", ""
		}
		for a := range s.AwardEntries {
			s.AwardEntries[a].ID, s.AwardEntries[a].URL = "", ""
		}
		for c := range s.CertificateEntries {
			s.CertificateEntries[c].ID, s.CertificateEntries[c].URL = "", ""
		}
		for a := range s.AffiliationEntries {
			s.AffiliationEntries[a].ID, s.AffiliationEntries[a].URL = "", ""
		}
		for n := range s.Items {
			s.Items[n].ID = ""
		}
		out[i] = s
	}
	return out
}

func fullDocument() types.Document {
	doc := types.NewDefaultDocument()
	doc.Personal.Summary = "第一行\n第二行"
	doc.Sections = []types.Section{
		{
			Type: types.SectionWork, Title: "工作经历", Visible: true,
			WorkEntries: []types.WorkEntry{{
				Organization: "ACME", Location: "上海",
				Positions: []types.Position{
					{Title: "高级工程师", StartDate: "2022-03", EndDate: types.PresentToken, Highlights: []string{"重构计费", "带团队"}},
					{Title: "工程师", StartDate: "2019-06", EndDate: "2022-02", Highlights: []string{"写接口", "修缺陷"}},
				},
			}},
		},
		{
			Type: types.SectionEducation, Title: "教育背景", Visible: true,
			EducationEntries: []types.EducationEntry{{
				Institution: "XX大学", Location: "北京", StudyType: "本科", Area: "计算机",
				StartDate: "2015-09", EndDate: "2019-06",
				HonorsLabel: "奖学金", Honors: []string{"国家奖学金", "校一等"},
				Courses:    []string{"算法", "操作系统"},
				Highlights: []string{"学生会主席"},
			}},
		},
		{
			Type: types.SectionProject, Title: "项目经历", Visible: true,
			ProjectEntries: []types.ProjectEntry{
				{Name: "推荐系统", Affiliation: "ACME", StartDate: "2023-01", EndDate: "2023-06", Highlights: []string{"转化率提升"}},
				{Name: "个人博客", StartDate: "2020-01", EndDate: "", Highlights: []string{"静态站点"}},
			},
		},
		{
			Type: types.SectionSkills, Title: "专业技能", Visible: true,
			SkillGroups: []types.SkillGroup{{Category: "后端", Skills: []string{"Go", "SQL"}}, {Category: "空组", Skills: []string{}}},
			Languages:   []types.Language{{Language: "中文", Fluency: "母语"}, {Language: "英语", Fluency: "流利"}},
			Interests:   []string{"跑步", "围棋"},
		},
		{
			Type: types.SectionCerts, Title: "证书", Visible: true,
			CertificateEntries: []types.CertificateEntry{{Name: "PMP", Issuer: "PMI", Date: "2023-06", CertID: "123"}},
		},
		{
			Type: types.SectionAwards, Title: "奖项", Visible: true,
			AwardEntries: []types.AwardEntry{{Title: "最佳新人", Issuer: "ACME", Location: "上海", Date: "2020", Highlights: []string{"全公司一人"}}},
		},
		{
			Type: types.SectionAffiliations, Title: "社团活动", Visible: true,
			AffiliationEntries: []types.AffiliationEntry{{Organization: "开源社", Position: "会长", Location: "北京", StartDate: "2016", EndDate: "2018", Highlights: []string{"组织活动"}}},
		},
		{
			Type: types.SectionCustom, Title: "其他", Visible: true,
			Items: []types.CustomItem{{Text: "第一条"}, {Text: "第二条"}},
		},
	}
	return doc
}

func TestRoundTrip_PreservesGrammarContent(t *testing.T) {
	doc := fullDocument()

	imported, err := Import(Export(doc))
	require.NoError(t, err)

	assert.Equal(t, contentOf(doc.Sections), contentOf(imported.Sections))
	for _, section := range imported.Sections {
		assert.True(t, section.Visible)
		assert.NotEmpty(t, section.ID)
	}

	assert.Equal(t, doc.Personal.Name, imported.Personal.Name)
	assert.Equal(t, doc.Personal.Email, imported.Personal.Email)
	assert.Equal(t, doc.Personal.Phone, imported.Personal.Phone)
	assert.Equal(t, doc.Personal.URL, imported.Personal.URL)
	assert.Equal(t, doc.Personal.Titles, imported.Personal.Titles)
	assert.Equal(t, doc.Personal.Location, imported.Personal.Location)
	assert.Equal(t, doc.Personal.Summary, imported.Personal.Summary)
	assert.Equal(t, []types.Profile{}, imported.Personal.Profiles)
	assert.True(t, doc.UpdatedAt.Equal(imported.UpdatedAt))
}

func TestRoundTrip_WorkPositionsAndHighlights(t *testing.T) {
	doc := types.NewDefaultDocument()
	doc.Sections = []types.Section{{
		ID: "w", Type: types.SectionWork, Title: "工作经历", Visible: true,
		WorkEntries: []types.WorkEntry{{
			ID: "e", Organization: "ACME", Location: "上海",
			Positions: []types.Position{
				{ID: "p1", Title: "Lead", StartDate: "2022-03", EndDate: types.PresentToken, Highlights: []string{"a", "b"}},
				{ID: "p2", Title: "Dev", StartDate: "2019-06", EndDate: "2022-02", Highlights: []string{"c", "d"}},
			},
		}},
	}}

	imported, err := Import(Export(doc))
	require.NoError(t, err)
	require.Len(t, imported.Sections, 1)

	section := imported.Sections[0]
	assert.Equal(t, types.SectionWork, section.Type)
	require.Len(t, section.WorkEntries, 1)
	entry := section.WorkEntries[0]
	assert.NotEqual(t, "e", entry.ID, "ids are regenerated")
	require.Len(t, entry.Positions, 2)
	assert.Equal(t, "Lead", entry.Positions[0].Title)
	assert.Equal(t, "2022-03", entry.Positions[0].StartDate)
	assert.Equal(t, types.PresentToken, entry.Positions[0].EndDate)
	assert.Equal(t, []string{"a", "b"}, entry.Positions[0].Highlights)
	assert.Equal(t, "Dev", entry.Positions[1].Title)
	assert.Equal(t, []string{"c", "d"}, entry.Positions[1].Highlights)
}

func TestRoundTrip_DefaultDocument(t *testing.T) {
	doc := types.NewDefaultDocument()

	imported, err := Import(Export(doc))
	require.NoError(t, err)

	assert.Equal(t, contentOf(doc.Sections), contentOf(imported.Sections))
	assert.Equal(t, doc.ShowPhoto, imported.ShowPhoto)
	assert.Equal(t, doc.ShowAddress, imported.ShowAddress)
	assert.Equal(t, doc.ShowPhone, imported.ShowPhone)
	assert.Equal(t, doc.ShowTitle, imported.ShowTitle)
}

func TestRoundTrip_EmptyDateTails(t *testing.T) {
	doc := types.NewDefaultDocument()
	doc.Sections = []types.Section{
		{
			Type: types.SectionWork, Title: "Work", Visible: true,
			WorkEntries: []types.WorkEntry{{
				Organization: "Solo",
				Positions: []types.Position{
					{Title: "none", Highlights: []string{"x"}},
					{Title: "start", StartDate: "2020", Highlights: []string{"y"}},
					{Title: "end", EndDate: "2021", Highlights: []string{"z"}},
				},
			}},
		},
		{
			Type: types.SectionEducation, Title: "Education", Visible: true,
			EducationEntries: []types.EducationEntry{{
				Institution: "U", Area: "Math", HonorsLabel: types.DefaultHonorsLabel,
				Honors: []string{}, Courses: []string{}, Highlights: []string{},
			}},
		},
	}

	imported, err := Import(Export(doc))
	require.NoError(t, err)
	assert.Equal(t, contentOf(doc.Sections), contentOf(imported.Sections))
}

func TestRoundTrip_ProjectPartialDates(t *testing.T) {
	tests := []struct {
		name    string
		project types.ProjectEntry
	}{
		{"end only", types.ProjectEntry{Name: "Blog", EndDate: "2023-06", Highlights: []string{"static"}}},
		{"start only", types.ProjectEntry{Name: "Blog", StartDate: "2022-01", Highlights: []string{"static"}}},
		{"both", types.ProjectEntry{Name: "Blog", StartDate: "2022-01", EndDate: "2023-06", Highlights: []string{"static"}}},
		{"neither", types.ProjectEntry{Name: "Blog", Highlights: []string{"static"}}},
		{"affiliation end only", types.ProjectEntry{Name: "Blog", Affiliation: "Lab", EndDate: "2023-06", Highlights: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := types.NewDefaultDocument()
			doc.Sections = []types.Section{{
				Type: types.SectionProject, Title: "项目", Visible: true,
				ProjectEntries: []types.ProjectEntry{tt.project},
			}}

			imported, err := Import(Export(doc))
			require.NoError(t, err)
			assert.Equal(t, contentOf(doc.Sections), contentOf(imported.Sections))
		})
	}
}

func TestExport_OmitsHiddenSectionsAndBlankHighlights(t *testing.T) {
	doc := types.NewDefaultDocument()
	doc.Sections = []types.Section{
		{Type: types.SectionCustom, Title: "Hidden", Visible: false, Items: []types.CustomItem{{Text: "secret"}}},
		{Type: types.SectionProject, Title: "Projects", Visible: true, ProjectEntries: []types.ProjectEntry{
			{Name: "P", Highlights: []string{"", "kept", "   "}},
		}},
	}

	out := Export(doc)

	assert.NotContains(t, out, "Hidden")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "## Projects\n\n### P\n\n- kept\n")
	assert.True(t, strings.HasPrefix(out, "---\ntype: resume\n"))
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestExport_SummaryAsBlockquote(t *testing.T) {
	doc := types.NewDefaultDocument()
	doc.Personal.Name = "李四"
	doc.Personal.Summary = "one\ntwo"
	doc.Sections = []types.Section{}

	out := Export(doc)

	assert.Contains(t, out, "# 李四\n\n> one\n> two\n")
}

func TestImport_MissingFrontmatter(t *testing.T) {
	for _, text := range []string{
		"",
		"# Name\n\n## 工作经历\n",
		"\n---\ntype: resume\n---\n",
		"---\ntype: resume\n",
	} {
		imported, err := Import(text)
		assert.Nil(t, imported)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.ErrorIs(t, err, ErrMissingFrontmatter)
	}
}

func TestImport_WrongType(t *testing.T) {
	imported, err := Import("---\ntype: letter\nname: x\n---\n\n## 工作经历\n")
	assert.Nil(t, imported)
	assert.ErrorIs(t, err, ErrNotResume)
	assert.Contains(t, err.Error(), "could not parse resume")
}

func TestImport_InvalidMetadata(t *testing.T) {
	imported, err := Import("---\ntype: [unterminated\n---\n")
	assert.Nil(t, imported)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "invalid metadata", parseErr.Reason)
}

func TestImport_FlagDefaultsAndCRLF(t *testing.T) {
	text := "---\r\ntype: resume\r\nname: 王五\r\n---\r\n\r\n## 其他\r\n\r\n- 一\r\n- 二\r\n"

	imported, err := Import(text)
	require.NoError(t, err)

	assert.Equal(t, "王五", imported.Personal.Name)
	assert.Equal(t, []string{}, imported.Personal.Titles)
	assert.False(t, imported.ShowPhoto)
	assert.True(t, imported.ShowAddress)
	assert.True(t, imported.ShowPhone)
	assert.True(t, imported.ShowTitle)
	assert.False(t, imported.UpdatedAt.IsZero())

	require.Len(t, imported.Sections, 1)
	section := imported.Sections[0]
	assert.Equal(t, types.SectionCustom, section.Type)
	require.Len(t, section.Items, 2)
	assert.Equal(t, "一", section.Items[0].Text)
	assert.Equal(t, "二", section.Items[1].Text)
}

func TestImport_SkipsUnmatchedLines(t *testing.T) {
	text := `---
type: resume
---

stray text before any section

## Work

random paragraph
### ACME · NYC
not a meta line
**Dev** | 2020 - 2021
- shipped
also ignored

## Empty
`
	imported, err := Import(text)
	require.NoError(t, err)
	require.Len(t, imported.Sections, 2)

	work := imported.Sections[0]
	require.Len(t, work.WorkEntries, 1)
	assert.Equal(t, "ACME", work.WorkEntries[0].Organization)
	assert.Equal(t, "NYC", work.WorkEntries[0].Location)
	require.Len(t, work.WorkEntries[0].Positions, 1)
	assert.Equal(t, []string{"shipped"}, work.WorkEntries[0].Positions[0].Highlights)

	empty := imported.Sections[1]
	assert.Equal(t, types.SectionCustom, empty.Type)
	assert.Equal(t, "Empty", empty.Title)
	assert.Equal(t, []types.CustomItem{}, empty.Items)
}

func TestImport_EmptySkillValues(t *testing.T) {
	text := "---\ntype: resume\n---\n\n## Skills\n\n- **Go**：\n- **语言**：粤语\n"

	imported, err := Import(text)
	require.NoError(t, err)
	require.Len(t, imported.Sections, 1)

	skills := imported.Sections[0]
	assert.Equal(t, []types.SkillGroup{{Category: "Go", Skills: []string{}}}, skills.SkillGroups)
	assert.Equal(t, []types.Language{{Language: "粤语"}}, skills.Languages)
	assert.Equal(t, []string{}, skills.Interests)
}

func TestRoundTrip_EducationHighlightWithColonStaysHighlight(t *testing.T) {
	doc := types.NewDefaultDocument()
	doc.Sections = []types.Section{{
		Type: types.SectionEducation, Title: "教育", Visible: true,
		EducationEntries: []types.EducationEntry{{
			Institution: "U", HonorsLabel: types.DefaultHonorsLabel,
			Honors: []string{}, Courses: []string{}, Highlights: []string{"GPA：3.9", "负责：社团招新"},
		}},
	}}

	imported, err := Import(Export(doc))
	require.NoError(t, err)
	assert.Equal(t, contentOf(doc.Sections), contentOf(imported.Sections))
}

func TestImport_EducationLabeledLines(t *testing.T) {
	text := "---\ntype: resume\n---\n\n## 教育\n\n### U\n\n**BS** | 2018 - 2022\n\n" +
		"- **奖学金**：一等，二等\n- **课程**：算法\n- **备注**：not honors after the first line\n"

	imported, err := Import(text)
	require.NoError(t, err)

	entry := imported.Sections[0].EducationEntries[0]
	assert.Equal(t, "奖学金", entry.HonorsLabel)
	assert.Equal(t, []string{"一等", "二等"}, entry.Honors)
	assert.Equal(t, []string{"算法"}, entry.Courses)
	assert.Equal(t, []string{"**备注**：not honors after the first line"}, entry.Highlights)
}

func TestImportedDocument_MergesOverDefaults(t *testing.T) {
	defaults := types.NewDefaultDocument()
	defaults.ShowSummary = false
	defaults.Photo = &types.Photo{Src: "data:image/png;base64,AA", Visible: true}

	imported := &Imported{
		Personal:  types.Personal{Name: "新", Titles: []string{}, Profiles: []types.Profile{}},
		Sections:  []types.Section{types.NewSection(types.SectionCustom, "")},
		ShowPhoto: true,
		UpdatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	before := time.Now().Add(-time.Second)
	doc := imported.Document(defaults)

	assert.Equal(t, "新", doc.Personal.Name)
	assert.Empty(t, doc.Personal.Email, "personal info is replaced wholesale")
	assert.Len(t, doc.Sections, 1)
	assert.True(t, doc.ShowPhoto)
	assert.False(t, doc.ShowAddress)
	assert.False(t, doc.ShowSummary, "fields outside the import come from defaults")
	require.NotNil(t, doc.Photo)
	assert.True(t, doc.UpdatedAt.After(before))

	doc.Sections[0].Title = "changed"
	assert.NotEqual(t, "changed", imported.Sections[0].Title)
}

func TestInferSectionType(t *testing.T) {
	tests := []struct {
		title string
		want  types.SectionType
	}{
		{"工作经历", types.SectionWork},
		{"Work Experience", types.SectionWork},
		{"教育背景", types.SectionEducation},
		{"EDUCATION", types.SectionEducation},
		{"学历", types.SectionEducation},
		{"项目经历", types.SectionProject},
		{"Projects", types.SectionProject},
		{"专业技能", types.SectionSkills},
		{"技术栈", types.SectionSkills},
		{"证书", types.SectionCerts},
		{"Certifications", types.SectionCerts},
		{"奖项", types.SectionAwards},
		{"荣誉", types.SectionAwards},
		{"社团活动", types.SectionAffiliations},
		{"Affiliations", types.SectionAffiliations},
		{"其他", types.SectionCustom},
		{"", types.SectionCustom},
		{"工作项目", types.SectionWork},
		{"项目技能", types.SectionProject},
		{"Work Awards", types.SectionWork},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, InferSectionType(tt.title))
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
	}{
		{"2020 - 2021", "2020", "2021"},
		{" - ", "", ""},
		{"-", "", ""},
		{"", "", ""},
		{"2020 -", "2020", ""},
		{"- 2021", "", "2021"},
		{"2020", "2020", ""},
		{"2020-01 - present", "2020-01", "present"},
	}
	for _, tt := range tests {
		start, end := parseRange(tt.in)
		assert.Equal(t, tt.start, start, tt.in)
		assert.Equal(t, tt.end, end, tt.in)
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, lineSection, classify("## 工作").kind)
	assert.Equal(t, lineSection, classify("##").kind)
	assert.Equal(t, lineEntry, classify("### ACME").kind)
	assert.Equal(t, lineBold, classify("**Dev** | 2020 - 2021").kind)
	assert.Equal(t, lineItalic, classify("*ACME* | 2020 - 2021").kind)
	assert.Equal(t, lineList, classify("- item").kind)
	assert.Equal(t, lineText, classify("# Name").kind)
	assert.Equal(t, lineText, classify("####").kind)
}
