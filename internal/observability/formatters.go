// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-editor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// timeLayout formats timestamps in listings
	timeLayout = "2006-01-02 15:04"
)

// Printer handles formatted output for the CLI
type Printer struct {
	out      io.Writer
	location *time.Location
}

// NewPrinter creates a new Printer that writes to the given writer and shows
// times in the local zone
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, location: time.Local}
}

// WithLocation returns a copy of p that shows times in loc
func (p *Printer) WithLocation(loc *time.Location) *Printer {
	cp := *p
	cp.location = loc
	return &cp
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintVersions outputs the version list, marking the active record with "*".
func (p *Printer) PrintVersions(metas []types.VersionMeta) {
	if len(metas) == 0 {
		return
	}

	var sb strings.Builder
	for i, meta := range metas {
		marker := " "
		if meta.IsActive {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s  [%s]\n", marker, truncate(meta.Name, 30), meta.Kind))
		sb.WriteString(fmt.Sprintf("    id:      %s\n", meta.ID))
		sb.WriteString(fmt.Sprintf("    updated: %s", meta.UpdatedAt.In(p.location).Format(timeLayout)))
		if i < len(metas)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox(fmt.Sprintf("VERSIONS (%d)", len(metas)), sb.String())
}

// PrintDocumentSummary outputs the personal block and a per-section count.
func (p *Printer) PrintDocumentSummary(doc types.Document) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Personal.Name))
	if len(doc.Personal.Titles) > 0 {
		sb.WriteString(fmt.Sprintf("Titles:   %s\n", strings.Join(doc.Personal.Titles, " / ")))
	}
	if doc.Personal.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Personal.Email))
	}
	if doc.Personal.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", doc.Personal.Phone))
	}
	if doc.Photo != nil {
		sb.WriteString(fmt.Sprintf("Photo:    %s\n", visibility(doc.ShowPhoto)))
	}
	if !doc.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Updated:  %s\n", doc.UpdatedAt.In(p.location).Format(timeLayout)))
	}

	if len(doc.Sections) > 0 {
		sb.WriteString(fmt.Sprintf("\nSections (%d):\n", len(doc.Sections)))
		for _, section := range doc.Sections {
			line := fmt.Sprintf("  • %s (%s, %d)", section.Title, section.Type, entryCount(section))
			if !section.Visible {
				line += " hidden"
			}
			sb.WriteString(line + "\n")
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHighlights outputs up to maxItemsToShow highlights under title.
func (p *Printer) PrintHighlights(title string, highlights []string) {
	if len(highlights) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(highlights), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(highlights[i], 50)))
	}
	if len(highlights) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(highlights)-maxItemsToShow))
	}

	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

func visibility(shown bool) string {
	if shown {
		return "shown"
	}
	return "hidden"
}

func entryCount(section types.Section) int {
	switch section.Type {
	case types.SectionWork:
		return len(section.WorkEntries)
	case types.SectionEducation:
		return len(section.EducationEntries)
	case types.SectionProject:
		return len(section.ProjectEntries)
	case types.SectionAwards:
		return len(section.AwardEntries)
	case types.SectionCerts:
		return len(section.CertificateEntries)
	case types.SectionAffiliations:
		return len(section.AffiliationEntries)
	case types.SectionSkills:
		return len(section.SkillGroups) + len(section.Languages) + len(section.Interests)
	default:
		return len(section.Items)
	}
}
