package markup

import (
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// sectionKeywords is checked in order; the first family with a keyword
// contained in the title wins
var sectionKeywords = []struct {
	sectionType types.SectionType
	keywords    []string
}{
	// no bare "经历": it would claim "项目经历" for work ahead of project
	{types.SectionWork, []string{"工作", "work"}},
	{types.SectionEducation, []string{"教育", "education", "学历"}},
	{types.SectionProject, []string{"项目", "project"}},
	{types.SectionSkills, []string{"技能", "skills", "技术"}},
	{types.SectionCerts, []string{"证书", "cert", "认证"}},
	{types.SectionAwards, []string{"奖项", "award", "荣誉"}},
	{types.SectionAffiliations, []string{"社团", "affiliation", "活动"}},
}

// InferSectionType guesses a section type from its heading text
func InferSectionType(title string) types.SectionType {
	lower := strings.ToLower(title)
	for _, family := range sectionKeywords {
		for _, keyword := range family.keywords {
			if strings.Contains(lower, keyword) {
				return family.sectionType
			}
		}
	}
	return types.SectionCustom
}
