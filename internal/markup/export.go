// Package markup converts resume documents to and from Markdown with a YAML
// metadata block.
//
// The grammar does not escape user text. Fields containing a leading "## "
// or "### ", "**", " | ", " · " or " - " between dates can come back from
// Import split or relabeled.
package markup

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-editor/internal/types"
	"gopkg.in/yaml.v3"
)

// Labels and separators used inside section bodies
const (
	LanguagesLabel = "语言"
	InterestsLabel = "兴趣"
	CoursesLabel   = "课程"
	ListSeparator  = "，"
	labelSeparator = "："
)

// DocumentType is the discriminator written into every metadata block
const DocumentType = "resume"

// frontmatter is the YAML metadata block. Only the visibility flags the
// body cannot express are carried.
type frontmatter struct {
	Type        string          `yaml:"type"`
	Name        string          `yaml:"name"`
	Email       string          `yaml:"email"`
	Phone       string          `yaml:"phone"`
	URL         string          `yaml:"url"`
	Titles      []string        `yaml:"titles"`
	Location    *types.Location `yaml:"location,omitempty"`
	Summary     string          `yaml:"summary"`
	ShowPhoto   *bool           `yaml:"showPhoto"`
	ShowAddress *bool           `yaml:"showAddress"`
	ShowPhone   *bool           `yaml:"showPhone"`
	ShowTitle   *bool           `yaml:"showTitle"`
	UpdatedAt   string          `yaml:"updatedAt"`
}

// Export renders doc as a metadata block followed by a Markdown body.
// Hidden sections are left out.
func Export(doc types.Document) string {
	var md strings.Builder

	md.WriteString("---\n")
	md.WriteString(exportFrontmatter(doc))
	md.WriteString("---\n\n")

	fmt.Fprintf(&md, "# %s\n\n", doc.Personal.Name)
	if doc.Personal.Summary != "" {
		for _, line := range strings.Split(doc.Personal.Summary, "\n") {
			fmt.Fprintf(&md, "> %s\n", line)
		}
		md.WriteString("\n")
	}

	for _, section := range doc.Sections {
		if !section.Visible {
			continue
		}
		fmt.Fprintf(&md, "## %s\n\n", section.Title)
		md.WriteString(exportSection(section))
	}

	return strings.TrimSpace(md.String()) + "\n"
}

func exportFrontmatter(doc types.Document) string {
	personal := doc.Personal
	meta := frontmatter{
		Type:        DocumentType,
		Name:        personal.Name,
		Email:       personal.Email,
		Phone:       personal.Phone,
		URL:         personal.URL,
		Titles:      personal.Titles,
		Summary:     personal.Summary,
		ShowPhoto:   &doc.ShowPhoto,
		ShowAddress: &doc.ShowAddress,
		ShowPhone:   &doc.ShowPhone,
		ShowTitle:   &doc.ShowTitle,
	}
	if meta.Titles == nil {
		meta.Titles = []string{}
	}
	if !personal.Location.IsZero() {
		location := personal.Location
		meta.Location = &location
	}
	if !doc.UpdatedAt.IsZero() {
		meta.UpdatedAt = doc.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "type: " + DocumentType + "\n"
	}
	_ = enc.Close()
	return buf.String()
}

func exportSection(section types.Section) string {
	switch section.Type {
	case types.SectionWork:
		return exportWork(section.WorkEntries)
	case types.SectionEducation:
		return exportEducation(section.EducationEntries)
	case types.SectionProject:
		return exportProjects(section.ProjectEntries)
	case types.SectionSkills:
		return exportSkills(section)
	case types.SectionAwards:
		return exportAwards(section.AwardEntries)
	case types.SectionCerts:
		return exportCertificates(section.CertificateEntries)
	case types.SectionAffiliations:
		return exportAffiliations(section.AffiliationEntries)
	default:
		return exportCustom(section.Items)
	}
}

// joinPair writes "a<sep>b", or just "a" when b is empty
func joinPair(a, sep, b string) string {
	if b == "" {
		return a
	}
	return a + sep + b
}

func dateRange(start, end string) string {
	return start + " - " + end
}

func writeHighlights(md *strings.Builder, highlights []string) {
	for _, highlight := range highlights {
		if strings.TrimSpace(highlight) != "" {
			fmt.Fprintf(md, "- %s\n", highlight)
		}
	}
}

func exportWork(entries []types.WorkEntry) string {
	var md strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&md, "### %s\n\n", joinPair(entry.Organization, " · ", entry.Location))
		for _, position := range entry.Positions {
			fmt.Fprintf(&md, "**%s** | %s\n\n", position.Title, dateRange(position.StartDate, position.EndDate))
			writeHighlights(&md, position.Highlights)
			md.WriteString("\n")
		}
	}
	return md.String()
}

func exportEducation(entries []types.EducationEntry) string {
	var md strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&md, "### %s\n\n", joinPair(entry.Institution, " · ", entry.Location))
		degree := joinPair(entry.StudyType, " - ", entry.Area)
		fmt.Fprintf(&md, "**%s** | %s\n\n", degree, dateRange(entry.StartDate, entry.EndDate))

		if len(entry.Honors) > 0 {
			label := entry.HonorsLabel
			if label == "" {
				label = types.DefaultHonorsLabel
			}
			fmt.Fprintf(&md, "- **%s**%s%s\n", label, labelSeparator, strings.Join(entry.Honors, ListSeparator))
		}
		if len(entry.Courses) > 0 {
			fmt.Fprintf(&md, "- **%s**%s%s\n", CoursesLabel, labelSeparator, strings.Join(entry.Courses, ListSeparator))
		}
		writeHighlights(&md, entry.Highlights)
		md.WriteString("\n")
	}
	return md.String()
}

func exportProjects(entries []types.ProjectEntry) string {
	var md strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&md, "### %s\n\n", entry.Name)

		switch {
		case entry.Affiliation != "":
			fmt.Fprintf(&md, "*%s* | %s\n\n", entry.Affiliation, dateRange(entry.StartDate, entry.EndDate))
		case entry.StartDate == "" && entry.EndDate != "":
			// a bare "- end" would read back as a list item
			fmt.Fprintf(&md, "| %s\n\n", dateRange(entry.StartDate, entry.EndDate))
		case entry.StartDate != "":
			fmt.Fprintf(&md, "%s\n\n", dateRange(entry.StartDate, entry.EndDate))
		}

		writeHighlights(&md, entry.Highlights)
		md.WriteString("\n")
	}
	return md.String()
}

func exportSkills(section types.Section) string {
	var md strings.Builder

	if len(section.Languages) > 0 {
		pairs := make([]string, len(section.Languages))
		for i, language := range section.Languages {
			pairs[i] = fmt.Sprintf("%s (%s)", language.Language, language.Fluency)
		}
		fmt.Fprintf(&md, "- **%s**%s%s\n", LanguagesLabel, labelSeparator, strings.Join(pairs, ListSeparator))
	}
	for _, group := range section.SkillGroups {
		fmt.Fprintf(&md, "- **%s**%s%s\n", group.Category, labelSeparator, strings.Join(group.Skills, ListSeparator))
	}
	if len(section.Interests) > 0 {
		fmt.Fprintf(&md, "- **%s**%s%s\n", InterestsLabel, labelSeparator, strings.Join(section.Interests, ListSeparator))
	}

	md.WriteString("\n")
	return md.String()
}

func exportAwards(entries []types.AwardEntry) string {
	var md strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&md, "### %s | %s\n\n", entry.Title, entry.Date)
		fmt.Fprintf(&md, "*%s*", entry.Issuer)
		if entry.Location != "" {
			fmt.Fprintf(&md, " · %s", entry.Location)
		}
		md.WriteString("\n\n")
		writeHighlights(&md, entry.Highlights)
		md.WriteString("\n")
	}
	return md.String()
}

func exportCertificates(entries []types.CertificateEntry) string {
	var md strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&md, "### %s | %s\n\n", entry.Name, entry.Date)
		fmt.Fprintf(&md, "*%s*", entry.Issuer)
		if entry.CertID != "" {
			fmt.Fprintf(&md, " · ID: %s", entry.CertID)
		}
		md.WriteString("\n\n")
	}
	return md.String()
}

func exportAffiliations(entries []types.AffiliationEntry) string {
	var md strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&md, "### %s\n\n", joinPair(entry.Organization, " · ", entry.Location))
		fmt.Fprintf(&md, "**%s** | %s\n\n", entry.Position, dateRange(entry.StartDate, entry.EndDate))
		writeHighlights(&md, entry.Highlights)
		md.WriteString("\n")
	}
	return md.String()
}

func exportCustom(items []types.CustomItem) string {
	var md strings.Builder
	for _, item := range items {
		if strings.TrimSpace(item.Text) != "" {
			fmt.Fprintf(&md, "- %s\n", item.Text)
		}
	}
	md.WriteString("\n")
	return md.String()
}
