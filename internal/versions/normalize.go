package versions

import (
	"strings"
	"time"

	"github.com/jonathan/resume-editor/internal/logging"
	"github.com/jonathan/resume-editor/internal/overlay"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// Default version names
const (
	DraftName    = "当前草稿"
	UntitledName = "未命名版本"
)

// Normalize repairs a decoded store: every document is overlaid onto the
// defaults, blank names are replaced, a draft is synthesized when missing
// and a dangling active pointer falls back to the draft.
func Normalize(raw RawStore, now time.Time) types.VersionStore {
	n := normalizer{now: now, newID: types.NewID, log: logging.Discard()}
	return n.store(raw)
}

// NormalizeDocument overlays a generic document onto the default document
// and returns the typed result
func NormalizeDocument(value map[string]any, now time.Time) types.Document {
	n := normalizer{now: now, newID: types.NewID, log: logging.Discard()}
	return n.document(value)
}

type normalizer struct {
	now   time.Time
	newID func() string
	log   logrus.FieldLogger
}

func (n normalizer) store(raw RawStore) types.VersionStore {
	versions := make([]types.VersionRecord, 0, len(raw.Versions)+1)
	seen := make(map[string]bool, len(raw.Versions))
	hasDraft := false

	for _, r := range raw.Versions {
		record := types.VersionRecord{
			ID:        r.ID,
			Name:      strings.TrimSpace(r.Name),
			Kind:      r.Kind,
			Resume:    n.document(r.Resume),
			CreatedAt: r.CreatedAt.UTC(),
			UpdatedAt: r.UpdatedAt.UTC(),
		}

		if record.ID == "" || seen[record.ID] {
			record.ID = n.newID()
			n.log.WithField("version_id", record.ID).Warn("reassigned missing or duplicate version id")
		}
		seen[record.ID] = true

		if !record.Kind.IsValid() {
			record.Kind = types.VersionSnapshot
		}
		if record.Kind == types.VersionDraft {
			if hasDraft {
				record.Kind = types.VersionSnapshot
				n.log.WithField("version_id", record.ID).Warn("demoted extra draft to snapshot")
			}
			hasDraft = true
		}

		if record.Name == "" {
			record.Name = defaultName(record.Kind)
		}
		versions = append(versions, record)
	}

	if !hasDraft {
		draft := n.draft(n.defaultDocument())
		versions = append([]types.VersionRecord{draft}, versions...)
		n.log.WithField("version_id", draft.ID).Info("synthesized missing draft")
	}

	result := types.VersionStore{
		SchemaVersion:   types.SchemaVersion,
		ActiveVersionID: raw.ActiveVersionID,
		Versions:        versions,
	}
	if result.IndexOf(raw.ActiveVersionID) < 0 {
		draft, _ := result.Draft()
		result.ActiveVersionID = draft.ID
		n.log.WithFields(logrus.Fields{
			"dangling_id": raw.ActiveVersionID,
			"draft_id":    draft.ID,
		}).Debug("active pointer repaired")
	}
	return result
}

func (n normalizer) draft(doc types.Document) types.VersionRecord {
	return types.VersionRecord{
		ID:        n.newID(),
		Name:      DraftName,
		Kind:      types.VersionDraft,
		Resume:    doc,
		CreatedAt: n.now,
		UpdatedAt: n.now,
	}
}

func (n normalizer) defaultDocument() types.Document {
	doc := types.NewDefaultDocument()
	doc.UpdatedAt = n.now
	return doc
}

// typed converts a typed document into its generic form and normalizes it.
// Nil top-level lists count as empty rather than missing. The result shares
// no memory with doc.
func (n normalizer) typed(doc types.Document) types.Document {
	doc.Sections = nonNil(doc.Sections)
	doc.Personal.Titles = nonNil(doc.Personal.Titles)
	doc.Personal.Profiles = nonNil(doc.Personal.Profiles)

	value, err := overlay.ToMap(doc)
	if err != nil {
		n.log.WithError(err).Warn("document could not be encoded; keeping a copy as is")
		return doc.Clone()
	}
	return n.document(value)
}

func (n normalizer) document(value map[string]any) types.Document {
	defaults, err := overlay.ToMap(n.defaultDocument())
	if err != nil {
		n.log.WithError(err).Error("default document could not be encoded")
		return n.defaultDocument()
	}

	value = dropBadTimestamp(value)
	if conformed, ok := overlay.Conform(value, types.Document{}).(map[string]any); ok {
		value = conformed
	} else {
		n.log.Warn("document is not an object; using defaults")
		value = map[string]any{}
	}
	filled, _ := overlay.Fill(value, defaults).(map[string]any)
	sections := overlay.Slice(filled, "sections")
	for i, section := range sections {
		sections[i] = fillSection(section)
	}

	var doc types.Document
	if err := overlay.Decode(filled, &doc); err != nil {
		n.log.WithError(err).Error("document could not be decoded after repair; replaced with defaults")
		return n.defaultDocument()
	}

	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = n.now
	}
	doc.UpdatedAt = doc.UpdatedAt.UTC()
	if doc.Sections == nil {
		doc.Sections = []types.Section{}
	}
	for i := range doc.Sections {
		fixSection(&doc.Sections[i])
	}
	return doc
}

// dropBadTimestamp removes an updatedAt that cannot be parsed so the
// default fills it instead
func dropBadTimestamp(value map[string]any) map[string]any {
	raw, ok := value["updatedAt"].(string)
	if !ok {
		return value
	}
	if _, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return value
	}
	out := make(map[string]any, len(value))
	for key, v := range value {
		if key != "updatedAt" {
			out[key] = v
		}
	}
	return out
}

// fillSection overlays one section onto an empty section of the same type,
// then overlays each of its entries onto a fresh entry
func fillSection(item any) any {
	m, ok := item.(map[string]any)
	if !ok {
		return overlay.Clone(item)
	}

	sectionType := types.SectionType(overlay.String(m, "type"))
	if !sectionType.IsValid() {
		sectionType = types.SectionCustom
	}

	filled, _ := overlay.Fill(m, mustMap(types.NewEmptySection(sectionType, ""))).(map[string]any)

	key, entry := contentTemplate(sectionType)
	if entries := overlay.Slice(filled, key); key != "" && entries != nil {
		filled[key] = overlay.FillEach(entries, entry)
	}
	if sectionType == types.SectionWork {
		for _, e := range overlay.Slice(filled, key) {
			workEntry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if positions := overlay.Slice(workEntry, "positions"); positions != nil {
				workEntry["positions"] = overlay.FillEach(positions, func(map[string]any) map[string]any {
					return mustMap(types.NewPosition())
				})
			}
		}
	}
	return filled
}

// contentTemplate names the entry list a section type owns and returns the
// per-entry defaults for it
func contentTemplate(sectionType types.SectionType) (string, func(map[string]any) map[string]any) {
	switch sectionType {
	case types.SectionWork:
		return "workEntries", func(map[string]any) map[string]any {
			return mustMap(types.NewWorkEntry())
		}
	case types.SectionEducation:
		return "educationEntries", func(map[string]any) map[string]any {
			return mustMap(types.NewEducationEntry())
		}
	case types.SectionProject:
		return "projectEntries", func(map[string]any) map[string]any {
			return mustMap(types.NewProjectEntry())
		}
	case types.SectionAwards:
		return "awardEntries", func(map[string]any) map[string]any {
			return mustMap(types.NewAwardEntry())
		}
	case types.SectionCerts:
		return "certificateEntries", func(map[string]any) map[string]any {
			return mustMap(types.NewCertificateEntry())
		}
	case types.SectionAffiliations:
		return "affiliationEntries", func(map[string]any) map[string]any {
			return mustMap(types.NewAffiliationEntry())
		}
	case types.SectionCustom:
		return "items", func(map[string]any) map[string]any {
			return mustMap(types.NewCustomItem())
		}
	}
	return "", nil
}

func mustMap(v any) map[string]any {
	m, err := overlay.ToMap(v)
	if err != nil {
		return map[string]any{}
	}
	return m
}

// fixSection enforces that exactly the content matching the section type
// is present
func fixSection(section *types.Section) {
	if !section.Type.IsValid() {
		section.Type = types.SectionCustom
	}

	work, education, project := section.WorkEntries, section.EducationEntries, section.ProjectEntries
	awards, certs, affiliations := section.AwardEntries, section.CertificateEntries, section.AffiliationEntries
	groups, languages, interests, items := section.SkillGroups, section.Languages, section.Interests, section.Items

	*section = types.Section{
		ID:      section.ID,
		Type:    section.Type,
		Title:   section.Title,
		Visible: section.Visible,
	}

	switch section.Type {
	case types.SectionWork:
		section.WorkEntries = nonNil(work)
		for i := range section.WorkEntries {
			section.WorkEntries[i].Positions = nonNil(section.WorkEntries[i].Positions)
		}
	case types.SectionEducation:
		section.EducationEntries = nonNil(education)
	case types.SectionProject:
		section.ProjectEntries = nonNil(project)
	case types.SectionAwards:
		section.AwardEntries = nonNil(awards)
	case types.SectionCerts:
		section.CertificateEntries = nonNil(certs)
	case types.SectionAffiliations:
		section.AffiliationEntries = nonNil(affiliations)
	case types.SectionSkills:
		section.SkillGroups = nonNil(groups)
		section.Languages = nonNil(languages)
		section.Interests = nonNil(interests)
	default:
		section.Items = nonNil(items)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func defaultName(kind types.VersionKind) string {
	if kind == types.VersionDraft {
		return DraftName
	}
	return UntitledName
}
