package markup

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/resume-editor/internal/types"
	"gopkg.in/yaml.v3"
)

var frontmatterBlock = regexp.MustCompile(`(?s)\A---\n(.*?)\n---(?:\n|\z)`)

// Imported is the part of a document that survives export: personal info,
// the visible sections and the exported visibility flags.
type Imported struct {
	Personal    types.Personal
	Sections    []types.Section
	ShowPhoto   bool
	ShowAddress bool
	ShowPhone   bool
	ShowTitle   bool
	UpdatedAt   time.Time
}

// Import parses text produced by Export. It fails with a *ParseError and no
// partial result when the metadata block is missing, unreadable or not
// tagged as a resume. Body lines that fit no pattern are skipped.
func Import(text string) (*Imported, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	m := frontmatterBlock.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, &ParseError{Reason: "missing metadata", Cause: ErrMissingFrontmatter}
	}

	var meta frontmatter
	if err := yaml.Unmarshal([]byte(text[m[2]:m[3]]), &meta); err != nil {
		return nil, &ParseError{Reason: "invalid metadata", Cause: err}
	}
	if meta.Type != DocumentType {
		return nil, &ParseError{Reason: "wrong document type", Cause: ErrNotResume}
	}

	imported := &Imported{
		Personal: types.Personal{
			Name:     meta.Name,
			Email:    meta.Email,
			Phone:    meta.Phone,
			URL:      meta.URL,
			Titles:   meta.Titles,
			Profiles: []types.Profile{},
			Summary:  meta.Summary,
		},
		Sections:    parseBody(text[m[1]:]),
		ShowPhoto:   flag(meta.ShowPhoto, false),
		ShowAddress: flag(meta.ShowAddress, true),
		ShowPhone:   flag(meta.ShowPhone, true),
		ShowTitle:   flag(meta.ShowTitle, true),
		UpdatedAt:   types.Now(),
	}
	if imported.Personal.Titles == nil {
		imported.Personal.Titles = []string{}
	}
	if meta.Location != nil {
		imported.Personal.Location = *meta.Location
	}
	if t, err := time.Parse(time.RFC3339Nano, meta.UpdatedAt); err == nil {
		imported.UpdatedAt = t.UTC()
	}

	return imported, nil
}

func flag(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// Document merges the import over defaults. Personal info and sections are
// replaced wholesale, the exported flags are applied and the result is
// stamped with the current time.
func (i *Imported) Document(defaults types.Document) types.Document {
	doc := defaults.Clone()
	doc.Personal = i.Personal.Clone()
	doc.Sections = make([]types.Section, len(i.Sections))
	for n, section := range i.Sections {
		doc.Sections[n] = section.Clone()
	}
	doc.ShowPhoto = i.ShowPhoto
	doc.ShowAddress = i.ShowAddress
	doc.ShowPhone = i.ShowPhone
	doc.ShowTitle = i.ShowTitle
	doc.UpdatedAt = types.Now()
	return doc
}
