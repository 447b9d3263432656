package markup

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// lineKind is the structural role of one trimmed body line
type lineKind int

const (
	lineText lineKind = iota
	lineSection
	lineEntry
	lineBold
	lineItalic
	lineList
)

var (
	sectionLine = regexp.MustCompile(`^##(?: (.*))?$`)
	entryLine   = regexp.MustCompile(`^###(?: (.*))?$`)
	boldLine    = regexp.MustCompile(`^\*\*(.*?)\*\*(.*)$`)
	italicLine  = regexp.MustCompile(`^\*(.*?)\*(.*)$`)
	listLine    = regexp.MustCompile(`^- (.+)$`)
)

// line is a classified body line. text is the heading, list or emphasized
// content; tail is whatever follows the closing emphasis marker.
type line struct {
	kind lineKind
	text string
	tail string
}

func classify(raw string) line {
	trimmed := strings.TrimSpace(raw)
	if m := sectionLine.FindStringSubmatch(trimmed); m != nil {
		return line{kind: lineSection, text: strings.TrimSpace(m[1])}
	}
	if m := entryLine.FindStringSubmatch(trimmed); m != nil {
		return line{kind: lineEntry, text: strings.TrimSpace(m[1])}
	}
	if m := listLine.FindStringSubmatch(trimmed); m != nil {
		return line{kind: lineList, text: strings.TrimSpace(m[1])}
	}
	if m := boldLine.FindStringSubmatch(trimmed); m != nil {
		return line{kind: lineBold, text: m[1], tail: m[2]}
	}
	if m := italicLine.FindStringSubmatch(trimmed); m != nil {
		return line{kind: lineItalic, text: m[1], tail: m[2]}
	}
	return line{kind: lineText, text: trimmed}
}

// state is a position in the body grammar
type state int

const (
	// awaitSection skips everything up to the first "## " heading
	awaitSection state = iota
	// awaitEntry skips everything up to the next "### " heading
	awaitEntry
	// awaitMeta expects the bold or italic line that follows an entry heading
	awaitMeta
	// collectItems gathers list lines for the current entry or section
	collectItems
)

func (s state) String() string {
	switch s {
	case awaitSection:
		return "awaitSection"
	case awaitEntry:
		return "awaitEntry"
	case awaitMeta:
		return "awaitMeta"
	case collectItems:
		return "collectItems"
	}
	return "unknown"
}

// grammar parses the body of one section type. Entry-less grammars
// (skills, custom) never see begin or meta.
type grammar interface {
	hasEntries() bool
	begin(heading string)
	meta(l line) bool
	item(text string)
	build(section *types.Section)
}

// parser is the body state machine. Each state has one transition function
// that consumes a line and returns the next state.
type parser struct {
	state    state
	sections []types.Section
	title    string
	current  grammar
}

var transitions = [...]func(*parser, line) state{
	awaitSection: (*parser).inAwaitSection,
	awaitEntry:   (*parser).inAwaitEntry,
	awaitMeta:    (*parser).inAwaitMeta,
	collectItems: (*parser).inCollectItems,
}

func parseBody(body string) []types.Section {
	p := &parser{state: awaitSection}
	for _, raw := range strings.Split(body, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p.state = transitions[p.state](p, classify(raw))
	}
	p.closeSection()
	if p.sections == nil {
		return []types.Section{}
	}
	return p.sections
}

// openSection finishes the current section and starts one for the heading
func (p *parser) openSection(title string) state {
	p.closeSection()
	p.title = title
	p.current = newGrammar(InferSectionType(title))
	if p.current.hasEntries() {
		return awaitEntry
	}
	return collectItems
}

func (p *parser) closeSection() {
	if p.current == nil {
		return
	}
	section := types.NewEmptySection(InferSectionType(p.title), p.title)
	p.current.build(&section)
	p.sections = append(p.sections, section)
	p.current = nil
}

func (p *parser) openEntry(heading string) state {
	p.current.begin(heading)
	return awaitMeta
}

func (p *parser) inAwaitSection(l line) state {
	if l.kind == lineSection {
		return p.openSection(l.text)
	}
	return awaitSection
}

func (p *parser) inAwaitEntry(l line) state {
	switch l.kind {
	case lineSection:
		return p.openSection(l.text)
	case lineEntry:
		return p.openEntry(l.text)
	}
	return awaitEntry
}

func (p *parser) inAwaitMeta(l line) state {
	switch l.kind {
	case lineSection:
		return p.openSection(l.text)
	case lineEntry:
		return p.openEntry(l.text)
	case lineList:
		p.current.item(l.text)
		return collectItems
	}
	if p.current.meta(l) {
		return collectItems
	}
	return awaitMeta
}

func (p *parser) inCollectItems(l line) state {
	switch l.kind {
	case lineSection:
		return p.openSection(l.text)
	case lineEntry:
		if p.current.hasEntries() {
			return p.openEntry(l.text)
		}
		return collectItems
	case lineList:
		p.current.item(l.text)
		return collectItems
	}
	// a further bold line after highlights opens another work position
	if l.kind == lineBold && p.current.hasEntries() {
		p.current.meta(l)
	}
	return collectItems
}

func newGrammar(sectionType types.SectionType) grammar {
	switch sectionType {
	case types.SectionWork:
		return &workGrammar{}
	case types.SectionEducation:
		return &educationGrammar{}
	case types.SectionProject:
		return &projectGrammar{}
	case types.SectionSkills:
		return &skillsGrammar{}
	case types.SectionAwards:
		return &awardsGrammar{}
	case types.SectionCerts:
		return &certsGrammar{}
	case types.SectionAffiliations:
		return &affiliationsGrammar{}
	default:
		return &customGrammar{}
	}
}

// splitPair splits "a<sep>b" at the first separator. A dangling separator
// left by trimming yields one side: "a ·" is a, "· b" is b.
func splitPair(s, sep string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, sep); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):])
	}
	bare := strings.TrimSpace(sep)
	switch {
	case strings.HasSuffix(s, " "+bare):
		return strings.TrimSpace(strings.TrimSuffix(s, bare)), ""
	case strings.HasPrefix(s, bare+" "):
		return "", strings.TrimSpace(strings.TrimPrefix(s, bare))
	}
	return s, ""
}

// parseRange reads "start - end" where either side may be empty
func parseRange(s string) (string, string) {
	s = strings.TrimSpace(s)
	switch {
	case s == "-" || s == "":
		return "", ""
	case strings.Contains(s, " - "):
		return splitPair(s, " - ")
	case strings.HasPrefix(s, "- "):
		return "", strings.TrimSpace(s[2:])
	case strings.HasSuffix(s, " -"):
		return strings.TrimSpace(s[:len(s)-2]), ""
	}
	return s, ""
}

// rangeTail reads the " | start - end" that follows an emphasized title
func rangeTail(tail string) (string, string) {
	tail = strings.TrimSpace(tail)
	if !strings.HasPrefix(tail, "|") {
		return "", ""
	}
	return parseRange(strings.TrimPrefix(tail, "|"))
}

// dotTail reads the " · value" that follows an italic issuer, dropping prefix
func dotTail(tail, prefix string) string {
	tail = strings.TrimSpace(tail)
	if !strings.HasPrefix(tail, "·") {
		return ""
	}
	value := strings.TrimSpace(strings.TrimPrefix(tail, "·"))
	return strings.TrimSpace(strings.TrimPrefix(value, prefix))
}

// labeledLine is list content of the form "**label**：values"
var labeledLine = regexp.MustCompile(`^\*\*(.*?)\*\*` + labelSeparator + `(.*)$`)

// labeled splits "**label**：values" list content
func labeled(text string) (string, string, bool) {
	m := labeledLine.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

func splitList(values string) []string {
	if strings.TrimSpace(values) == "" {
		return []string{}
	}
	parts := strings.Split(values, ListSeparator)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

type workGrammar struct {
	entries []types.WorkEntry
}

func (g *workGrammar) hasEntries() bool { return true }

func (g *workGrammar) begin(heading string) {
	organization, location := splitPair(heading, " · ")
	g.entries = append(g.entries, types.WorkEntry{
		ID:           types.NewID(),
		Organization: organization,
		Location:     location,
		Positions:    []types.Position{},
	})
}

func (g *workGrammar) meta(l line) bool {
	if l.kind != lineBold || len(g.entries) == 0 {
		return false
	}
	start, end := rangeTail(l.tail)
	entry := &g.entries[len(g.entries)-1]
	entry.Positions = append(entry.Positions, types.Position{
		ID:         types.NewID(),
		Title:      strings.TrimSpace(l.text),
		StartDate:  start,
		EndDate:    end,
		Highlights: []string{},
	})
	return true
}

func (g *workGrammar) item(text string) {
	if len(g.entries) == 0 {
		return
	}
	entry := &g.entries[len(g.entries)-1]
	if len(entry.Positions) == 0 {
		return
	}
	position := &entry.Positions[len(entry.Positions)-1]
	position.Highlights = append(position.Highlights, text)
}

func (g *workGrammar) build(section *types.Section) {
	if g.entries != nil {
		section.WorkEntries = g.entries
	}
}

type educationGrammar struct {
	entries []types.EducationEntry
	// items counts list lines seen for the current entry
	items int
}

func (g *educationGrammar) hasEntries() bool { return true }

func (g *educationGrammar) begin(heading string) {
	institution, location := splitPair(heading, " · ")
	g.entries = append(g.entries, types.EducationEntry{
		ID:          types.NewID(),
		Institution: institution,
		Location:    location,
		HonorsLabel: types.DefaultHonorsLabel,
		Honors:      []string{},
		Courses:     []string{},
		Highlights:  []string{},
	})
	g.items = 0
}

func (g *educationGrammar) meta(l line) bool {
	if l.kind != lineBold || len(g.entries) == 0 {
		return false
	}
	entry := &g.entries[len(g.entries)-1]
	entry.StudyType, entry.Area = splitPair(l.text, " - ")
	entry.StartDate, entry.EndDate = rangeTail(l.tail)
	return true
}

// item reads the bold-labeled honors and courses lines and highlights. Only
// the first list line of an entry can be honors, since export writes it
// first.
func (g *educationGrammar) item(text string) {
	if len(g.entries) == 0 {
		return
	}
	entry := &g.entries[len(g.entries)-1]
	first := g.items == 0
	g.items++

	if label, values, ok := labeled(text); ok {
		switch {
		case label == CoursesLabel:
			entry.Courses = splitList(values)
			return
		case first && label != "":
			entry.HonorsLabel = label
			entry.Honors = splitList(values)
			return
		}
	}
	entry.Highlights = append(entry.Highlights, text)
}

func (g *educationGrammar) build(section *types.Section) {
	if g.entries != nil {
		section.EducationEntries = g.entries
	}
}

type projectGrammar struct {
	entries []types.ProjectEntry
}

func (g *projectGrammar) hasEntries() bool { return true }

func (g *projectGrammar) begin(heading string) {
	g.entries = append(g.entries, types.ProjectEntry{
		ID:         types.NewID(),
		Name:       heading,
		Highlights: []string{},
	})
}

// meta accepts the italic affiliation line or a bare date range, which is
// written "| - end" when only the end is known
func (g *projectGrammar) meta(l line) bool {
	if len(g.entries) == 0 {
		return false
	}
	entry := &g.entries[len(g.entries)-1]
	switch l.kind {
	case lineItalic:
		entry.Affiliation = strings.TrimSpace(l.text)
		entry.StartDate, entry.EndDate = rangeTail(l.tail)
		return true
	case lineText:
		if strings.HasPrefix(l.text, "|") {
			entry.StartDate, entry.EndDate = rangeTail(l.text)
			return true
		}
		entry.StartDate, entry.EndDate = parseRange(l.text)
		return true
	}
	return false
}

func (g *projectGrammar) item(text string) {
	if len(g.entries) == 0 {
		return
	}
	entry := &g.entries[len(g.entries)-1]
	entry.Highlights = append(entry.Highlights, text)
}

func (g *projectGrammar) build(section *types.Section) {
	if g.entries != nil {
		section.ProjectEntries = g.entries
	}
}

type awardsGrammar struct {
	entries []types.AwardEntry
}

func (g *awardsGrammar) hasEntries() bool { return true }

func (g *awardsGrammar) begin(heading string) {
	title, date := splitPair(heading, " | ")
	g.entries = append(g.entries, types.AwardEntry{
		ID:         types.NewID(),
		Title:      title,
		Date:       date,
		Highlights: []string{},
	})
}

func (g *awardsGrammar) meta(l line) bool {
	if l.kind != lineItalic || len(g.entries) == 0 {
		return false
	}
	entry := &g.entries[len(g.entries)-1]
	entry.Issuer = strings.TrimSpace(l.text)
	entry.Location = dotTail(l.tail, "")
	return true
}

func (g *awardsGrammar) item(text string) {
	if len(g.entries) == 0 {
		return
	}
	entry := &g.entries[len(g.entries)-1]
	entry.Highlights = append(entry.Highlights, text)
}

func (g *awardsGrammar) build(section *types.Section) {
	if g.entries != nil {
		section.AwardEntries = g.entries
	}
}

type certsGrammar struct {
	entries []types.CertificateEntry
}

func (g *certsGrammar) hasEntries() bool { return true }

func (g *certsGrammar) begin(heading string) {
	name, date := splitPair(heading, " | ")
	g.entries = append(g.entries, types.CertificateEntry{
		ID:   types.NewID(),
		Name: name,
		Date: date,
	})
}

func (g *certsGrammar) meta(l line) bool {
	if l.kind != lineItalic || len(g.entries) == 0 {
		return false
	}
	entry := &g.entries[len(g.entries)-1]
	entry.Issuer = strings.TrimSpace(l.text)
	entry.CertID = dotTail(l.tail, "ID:")
	return true
}

// item ignores list lines; certificates have no highlights
func (g *certsGrammar) item(string) {}

func (g *certsGrammar) build(section *types.Section) {
	if g.entries != nil {
		section.CertificateEntries = g.entries
	}
}

type affiliationsGrammar struct {
	entries []types.AffiliationEntry
}

func (g *affiliationsGrammar) hasEntries() bool { return true }

func (g *affiliationsGrammar) begin(heading string) {
	organization, location := splitPair(heading, " · ")
	g.entries = append(g.entries, types.AffiliationEntry{
		ID:           types.NewID(),
		Organization: organization,
		Location:     location,
		Highlights:   []string{},
	})
}

func (g *affiliationsGrammar) meta(l line) bool {
	if l.kind != lineBold || len(g.entries) == 0 {
		return false
	}
	entry := &g.entries[len(g.entries)-1]
	entry.Position = strings.TrimSpace(l.text)
	entry.StartDate, entry.EndDate = rangeTail(l.tail)
	return true
}

func (g *affiliationsGrammar) item(text string) {
	if len(g.entries) == 0 {
		return
	}
	entry := &g.entries[len(g.entries)-1]
	entry.Highlights = append(entry.Highlights, text)
}

func (g *affiliationsGrammar) build(section *types.Section) {
	if g.entries != nil {
		section.AffiliationEntries = g.entries
	}
}

var languagePair = regexp.MustCompile(`^(.*?) \((.*)\)$`)

type skillsGrammar struct {
	groups    []types.SkillGroup
	languages []types.Language
	interests []string
}

func (g *skillsGrammar) hasEntries() bool { return false }
func (g *skillsGrammar) begin(string)     {}
func (g *skillsGrammar) meta(line) bool   { return false }

func (g *skillsGrammar) item(text string) {
	category, values, ok := labeled(text)
	if !ok {
		return
	}

	switch category {
	case LanguagesLabel:
		for _, value := range splitList(values) {
			if value == "" {
				continue
			}
			if pair := languagePair.FindStringSubmatch(value); pair != nil {
				g.languages = append(g.languages, types.Language{
					Language: strings.TrimSpace(pair[1]),
					Fluency:  strings.TrimSpace(pair[2]),
				})
				continue
			}
			g.languages = append(g.languages, types.Language{Language: value})
		}
	case InterestsLabel:
		g.interests = append(g.interests, splitList(values)...)
	default:
		g.groups = append(g.groups, types.SkillGroup{Category: category, Skills: splitList(values)})
	}
}

func (g *skillsGrammar) build(section *types.Section) {
	if g.groups != nil {
		section.SkillGroups = g.groups
	}
	if g.languages != nil {
		section.Languages = g.languages
	}
	if g.interests != nil {
		section.Interests = g.interests
	}
}

type customGrammar struct {
	items []types.CustomItem
}

func (g *customGrammar) hasEntries() bool { return false }
func (g *customGrammar) begin(string)     {}
func (g *customGrammar) meta(line) bool   { return false }

func (g *customGrammar) item(text string) {
	g.items = append(g.items, types.CustomItem{ID: types.NewID(), Text: text})
}

func (g *customGrammar) build(section *types.Section) {
	if g.items != nil {
		section.Items = g.items
	}
}
