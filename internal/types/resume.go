// Package types provides type definitions for structured data used throughout the resume-editor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SectionType tags which content variant a section carries
type SectionType string

// Section types. The set is closed; anything else normalizes to SectionCustom.
const (
	SectionWork         SectionType = "work"
	SectionEducation    SectionType = "education"
	SectionProject      SectionType = "project"
	SectionSkills       SectionType = "skills"
	SectionCerts        SectionType = "certs"
	SectionAwards       SectionType = "awards"
	SectionAffiliations SectionType = "affiliations"
	SectionCustom       SectionType = "custom"
)

// SectionTypes lists every section type in canonical order
var SectionTypes = []SectionType{
	SectionWork,
	SectionEducation,
	SectionProject,
	SectionSkills,
	SectionCerts,
	SectionAwards,
	SectionAffiliations,
	SectionCustom,
}

// IsValid reports whether t is one of the known section types
func (t SectionType) IsValid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PresentToken marks an end date as ongoing
const PresentToken = "present"

// Document is the complete resume: personal info, ordered sections, optional
// photo and the per-field visibility toggles.
type Document struct {
	Personal  Personal  `json:"personal"`
	Sections  []Section `json:"sections"`
	Photo     *Photo    `json:"photo,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`

	ShowPhoto    bool `json:"showPhoto"`
	ShowName     bool `json:"showName"`
	ShowEmail    bool `json:"showEmail"`
	ShowPhone    bool `json:"showPhone"`
	ShowURL      bool `json:"showUrl"`
	ShowProfiles bool `json:"showProfiles"`
	ShowAddress  bool `json:"showAddress"`
	ShowTitle    bool `json:"showTitle"`
	ShowSummary  bool `json:"showSummary"`
}

// Personal holds the header block of the resume
type Personal struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	URL      string    `json:"url"`
	Titles   []string  `json:"titles"`
	Location Location  `json:"location"`
	Profiles []Profile `json:"profiles"`
	Summary  string    `json:"summary"`
}

// Location is a free-text postal location
type Location struct {
	City    string `json:"city" yaml:"city,omitempty"`
	Region  string `json:"region" yaml:"region,omitempty"`
	Country string `json:"country" yaml:"country,omitempty"`
}

// IsZero reports whether no location field is set
func (l Location) IsZero() bool {
	return l.City == "" && l.Region == "" && l.Country == ""
}

// Profile is a social or professional network handle
type Profile struct {
	Network  string `json:"network"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

// Photo is an opaque image payload produced by the crop collaborator
type Photo struct {
	Src      string `json:"src"`
	CropMeta string `json:"cropMeta,omitempty"`
	Visible  bool   `json:"visible"`
}

// Section is one titled block of the resume. Only the content slice matching
// Type is meaningful; the others stay nil.
type Section struct {
	ID      string      `json:"id"`
	Type    SectionType `json:"type"`
	Title   string      `json:"title"`
	Visible bool        `json:"visible"`

	WorkEntries        []WorkEntry        `json:"workEntries,omitempty"`
	EducationEntries   []EducationEntry   `json:"educationEntries,omitempty"`
	ProjectEntries     []ProjectEntry     `json:"projectEntries,omitempty"`
	AwardEntries       []AwardEntry       `json:"awardEntries,omitempty"`
	CertificateEntries []CertificateEntry `json:"certificateEntries,omitempty"`
	AffiliationEntries []AffiliationEntry `json:"affiliationEntries,omitempty"`
	SkillGroups        []SkillGroup       `json:"skillGroups,omitempty"`
	Languages          []Language         `json:"languages,omitempty"`
	Interests          []string           `json:"interests,omitempty"`
	Items              []CustomItem       `json:"items,omitempty"`
}

// WorkEntry is one employer with one or more positions held there
type WorkEntry struct {
	ID           string     `json:"id"`
	Organization string     `json:"organization"`
	Location     string     `json:"location"`
	URL          string     `json:"url"`
	Positions    []Position `json:"positions"`
}

// Position is a role within a WorkEntry; several model promotions
type Position struct {
	ID         string   `json:"id"`
	Title      string   `json:"position"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Highlights []string `json:"highlights"`
}

// EducationEntry is one degree or program
type EducationEntry struct {
	ID          string   `json:"id"`
	Institution string   `json:"institution"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	StudyType   string   `json:"studyType"`
	Area        string   `json:"area"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	HonorsLabel string   `json:"honorsLabel"`
	Honors      []string `json:"honors"`
	Courses     []string `json:"courses"`
	Highlights  []string `json:"highlights"`
}

// ProjectEntry is a project, optionally tied to an organization
type ProjectEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Affiliation string   `json:"affiliation"`
	URL         string   `json:"url"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Highlights  []string `json:"highlights"`
}

// AwardEntry is an award or honor
type AwardEntry struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Issuer     string   `json:"issuer"`
	Location   string   `json:"location"`
	URL        string   `json:"url"`
	Date       string   `json:"date"`
	Highlights []string `json:"highlights"`
}

// CertificateEntry is a professional certificate
type CertificateEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	URL    string `json:"url"`
	Date   string `json:"date"`
	CertID string `json:"certId"`
}

// AffiliationEntry is a membership or leadership role
type AffiliationEntry struct {
	ID           string   `json:"id"`
	Organization string   `json:"organization"`
	Position     string   `json:"position"`
	Location     string   `json:"location"`
	URL          string   `json:"url"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Highlights   []string `json:"highlights"`
}

// SkillGroup is a named category of skills
type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Language is a spoken language with a fluency label
type Language struct {
	Language string `json:"language"`
	Fluency  string `json:"fluency"`
}

// CustomItem is one free-text line of a custom section
type CustomItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
