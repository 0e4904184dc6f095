package domain

import (
	"errors"
	"fmt"
	"strings"

	"portfolio-generator/internal/section"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// CreatedAtLayout is the day-first timestamp stored in registry entries.
const CreatedAtLayout = "02/01/2006 15:04"

var ErrUnknownProfileField = errors.New("unknown profile field")

// Design is the pair of theme colors applied to the rendered document.
type Design struct {
	Primary   string `json:"cor_principal"`
	Secondary string `json:"cor_secundaria"`
}

func DefaultDesign() Design {
	return Design{Primary: "#3498db", Secondary: "#ecf0f1"}
}

// WithDefaults fills empty colors from DefaultDesign.
func (d Design) WithDefaults() Design {
	def := DefaultDesign()
	if d.Primary == "" {
		d.Primary = def.Primary
	}
	if d.Secondary == "" {
		d.Secondary = def.Secondary
	}
	return d
}

// NormalizeColor parses a hex color ("#3498db", "3498DB", "#fff") and returns
// it as lowercase #rrggbb.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", fmt.Errorf("invalid color %q: want #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// Profile is the data collected by the form. JSON keys match the draft and
// registry documents.
type Profile struct {
	Name      string `json:"nome"`
	Title     string `json:"titulo"`
	Bio       string `json:"bio"`
	Phone     string `json:"telefone"`
	Email     string `json:"email"`
	Location  string `json:"local"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`

	SkillsFrontend     string   `json:"habilidades_frontend"`
	SkillsBackend      string   `json:"habilidades_backend"`
	SkillsSoft         string   `json:"habilidades_soft"`
	SkillsFrontendList []string `json:"habilidades_frontend_list"`
	SkillsBackendList  []string `json:"habilidades_backend_list"`
	SkillsSoftList     []string `json:"habilidades_soft_list"`

	PhotoPath *string `json:"photo_path"`

	Education  []section.Record `json:"formacao"`
	Experience []section.Record `json:"experiencia"`

	// First education and experience entries, kept flat for documents
	// written before sections were repeatable.
	EducationCourse      string `json:"formacao_curso,omitempty"`
	EducationInstitution string `json:"formacao_instituicao,omitempty"`
	EducationPeriod      string `json:"formacao_periodo,omitempty"`
	EducationDescription string `json:"formacao_descricao,omitempty"`
	ExperienceRole       string `json:"exp_cargo,omitempty"`
	ExperienceCompany    string `json:"exp_empresa,omitempty"`
	ExperiencePeriod     string `json:"exp_periodo,omitempty"`
	ExperienceSummary    string `json:"exp_resumo,omitempty"`
}

// Portfolio is a finalized profile as stored in the registry.
type Portfolio struct {
	Profile
	CreatedAt string `json:"data_criacao"`
	Design    Design `json:"design_config"`
}

// ParseSkills splits a comma-separated list, trimming every item and keeping
// order. Blank input gives an empty list; blank items in between are kept.
func ParseSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, item := range parts {
		out[i] = strings.TrimSpace(item)
	}
	return out
}

// DeriveSkills recomputes the skill lists from the raw inputs.
func (p *Profile) DeriveSkills() {
	p.SkillsFrontendList = ParseSkills(p.SkillsFrontend)
	p.SkillsBackendList = ParseSkills(p.SkillsBackend)
	p.SkillsSoftList = ParseSkills(p.SkillsSoft)
}

// Photo returns the photo path or "".
func (p Profile) Photo() string {
	if p.PhotoPath == nil {
		return ""
	}
	return *p.PhotoPath
}

func (p *Profile) SetPhoto(path string) {
	if path == "" {
		p.PhotoPath = nil
		return
	}
	p.PhotoPath = &path
}

// SetSections stores the section lists and mirrors their first entries into
// the flat fields.
func (p *Profile) SetSections(education, experience []section.Record) {
	p.Education = education
	p.Experience = experience

	var edu, exp section.Record
	if len(education) > 0 {
		edu = education[0]
	}
	if len(experience) > 0 {
		exp = experience[0]
	}
	p.EducationCourse = edu["curso"]
	p.EducationInstitution = edu["instituicao"]
	p.EducationPeriod = edu["periodo"]
	p.EducationDescription = edu["descricao"]
	p.ExperienceRole = exp["cargo"]
	p.ExperienceCompany = exp["empresa"]
	p.ExperiencePeriod = exp["periodo"]
	p.ExperienceSummary = exp["resumo"]
}

// EducationRecords returns the education list, falling back to the flat
// fields of older documents.
func (p Profile) EducationRecords() []section.Record {
	if len(p.Education) > 0 {
		return p.Education
	}
	rec := section.Record{
		"curso":       p.EducationCourse,
		"instituicao": p.EducationInstitution,
		"periodo":     p.EducationPeriod,
		"descricao":   p.EducationDescription,
	}
	if rec.Blank() {
		return nil
	}
	return []section.Record{rec}
}

// ExperienceRecords is EducationRecords for experience.
func (p Profile) ExperienceRecords() []section.Record {
	if len(p.Experience) > 0 {
		return p.Experience
	}
	rec := section.Record{
		"cargo":   p.ExperienceRole,
		"empresa": p.ExperienceCompany,
		"periodo": p.ExperiencePeriod,
		"resumo":  p.ExperienceSummary,
	}
	if rec.Blank() {
		return nil
	}
	return []section.Record{rec}
}

func (p *Profile) fieldRef(key string) *string {
	switch key {
	case "nome":
		return &p.Name
	case "titulo":
		return &p.Title
	case "bio":
		return &p.Bio
	case "telefone":
		return &p.Phone
	case "email":
		return &p.Email
	case "local":
		return &p.Location
	case "linkedin":
		return &p.LinkedIn
	case "instagram":
		return &p.Instagram
	case "habilidades_frontend":
		return &p.SkillsFrontend
	case "habilidades_backend":
		return &p.SkillsBackend
	case "habilidades_soft":
		return &p.SkillsSoft
	}
	return nil
}

// Field returns a scalar or raw skill field by its document key.
func (p Profile) Field(key string) (string, error) {
	ref := (&p).fieldRef(key)
	if ref == nil {
		return "", fmt.Errorf("%s: %w", key, ErrUnknownProfileField)
	}
	return *ref, nil
}

// SetField assigns a scalar or raw skill field by its document key.
func (p *Profile) SetField(key, value string) error {
	ref := p.fieldRef(key)
	if ref == nil {
		return fmt.Errorf("%s: %w", key, ErrUnknownProfileField)
	}
	*ref = value
	return nil
}

// TrimFields trims every scalar and raw skill field.
func (p *Profile) TrimFields() {
	for _, key := range ScalarKeys {
		ref := p.fieldRef(key)
		*ref = strings.TrimSpace(*ref)
	}
}

// ScalarKeys lists the document keys accepted by Field and SetField.
var ScalarKeys = []string{
	"nome", "titulo", "bio", "telefone", "email", "local", "linkedin", "instagram",
	"habilidades_frontend", "habilidades_backend", "habilidades_soft",
}

// SkillCount is the number of skills in one category.
type SkillCount struct {
	Category string
	Count    int
}

// SkillCounts returns the categories that have at least one skill.
func (p Profile) SkillCounts() []SkillCount {
	all := []SkillCount{
		{Category: "Frontend", Count: len(p.SkillsFrontendList)},
		{Category: "Backend", Count: len(p.SkillsBackendList)},
		{Category: "Soft", Count: len(p.SkillsSoftList)},
	}
	out := make([]SkillCount, 0, len(all))
	for _, c := range all {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Badges returns up to five skill tags for compact display: three frontend
// then two backend.
func (p Profile) Badges() []string {
	out := []string{}
	out = append(out, head(p.SkillsFrontendList, 3)...)
	out = append(out, head(p.SkillsBackendList, 2)...)
	return head(out, 5)
}

func head(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
