//nolint:revive // types is a standard Go package name pattern
package types

// Clone returns a deep copy of the document. Nil slices stay nil and empty
// slices stay empty so a clone compares equal to its source.
func (d Document) Clone() Document {
	out := d
	out.Personal = d.Personal.Clone()
	if d.Photo != nil {
		photo := *d.Photo
		out.Photo = &photo
	}
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, section := range d.Sections {
			out.Sections[i] = section.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the personal block
func (p Personal) Clone() Personal {
	out := p
	out.Titles = cloneStrings(p.Titles)
	out.Profiles = cloneSlice(p.Profiles)
	return out
}

// Clone returns a deep copy of the section and its content
func (s Section) Clone() Section {
	out := s
	out.WorkEntries = cloneEach(s.WorkEntries, WorkEntry.Clone)
	out.EducationEntries = cloneEach(s.EducationEntries, EducationEntry.Clone)
	out.ProjectEntries = cloneEach(s.ProjectEntries, ProjectEntry.Clone)
	out.AwardEntries = cloneEach(s.AwardEntries, AwardEntry.Clone)
	out.CertificateEntries = cloneSlice(s.CertificateEntries)
	out.AffiliationEntries = cloneEach(s.AffiliationEntries, AffiliationEntry.Clone)
	out.SkillGroups = cloneEach(s.SkillGroups, SkillGroup.Clone)
	out.Languages = cloneSlice(s.Languages)
	out.Interests = cloneStrings(s.Interests)
	out.Items = cloneSlice(s.Items)
	return out
}

// Clone returns a deep copy of the work entry
func (w WorkEntry) Clone() WorkEntry {
	out := w
	out.Positions = cloneEach(w.Positions, Position.Clone)
	return out
}

// Clone returns a deep copy of the position
func (p Position) Clone() Position {
	out := p
	out.Highlights = cloneStrings(p.Highlights)
	return out
}

// Clone returns a deep copy of the education entry
func (e EducationEntry) Clone() EducationEntry {
	out := e
	out.Honors = cloneStrings(e.Honors)
	out.Courses = cloneStrings(e.Courses)
	out.Highlights = cloneStrings(e.Highlights)
	return out
}

// Clone returns a deep copy of the project entry
func (p ProjectEntry) Clone() ProjectEntry {
	out := p
	out.Highlights = cloneStrings(p.Highlights)
	return out
}

// Clone returns a deep copy of the award entry
func (a AwardEntry) Clone() AwardEntry {
	out := a
	out.Highlights = cloneStrings(a.Highlights)
	return out
}

// Clone returns a deep copy of the affiliation entry
func (a AffiliationEntry) Clone() AffiliationEntry {
	out := a
	out.Highlights = cloneStrings(a.Highlights)
	return out
}

// Clone returns a deep copy of the skill group
func (g SkillGroup) Clone() SkillGroup {
	out := g
	out.Skills = cloneStrings(g.Skills)
	return out
}

func cloneStrings(in []string) []string {
	return cloneSlice(in)
}

// cloneSlice copies a slice of values that hold no references
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, item := range in {
		out[i] = clone(item)
	}
	return out
}
