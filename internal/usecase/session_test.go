package usecase

import (
	"path/filepath"
	"testing"
	"time"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/section"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsEmpty(t *testing.T) {
	s := newSessionEnv(t).session()

	v := s.Draft()
	assert.Equal(t, domain.DefaultDesign(), v.Design)
	require.Len(t, v.Sections[section.Education.Name], 1)
	require.Len(t, v.Sections[section.Experience.Name], 1)
}

func TestAdvanceCollectsForm(t *testing.T) {
	env := newSessionEnv(t)
	s := env.session()

	require.NoError(t, s.SetFields(map[string]string{
		"nome":                 "  Ana Souza ",
		"email":                "ana@x.com",
		"habilidades_frontend": "HTML, CSS , React",
	}))

	edu, err := s.Entries(section.Education.Name)
	require.NoError(t, err)
	first := edu[0].ID
	second, err := s.AddEntry(section.Education.Name)
	require.NoError(t, err)
	_, err = s.AddEntry(section.Education.Name)
	require.NoError(t, err)
	require.NoError(t, s.SetEntryField(section.Education.Name, second, "curso", "X"))
	require.NoError(t, s.SetEntryField(section.Education.Name, first, "periodo", "   "))

	require.NoError(t, s.Advance())

	saved, ok := env.drafts.Load()
	require.True(t, ok)
	assert.Equal(t, "Ana Souza", saved.Name)
	assert.Equal(t, []string{"HTML", "CSS", "React"}, saved.SkillsFrontendList)
	assert.Equal(t, []string{}, saved.SkillsBackendList)
	require.Len(t, saved.Education, 1)
	assert.Equal(t, "X", saved.Education[0]["curso"])
	assert.Equal(t, "X", saved.EducationCourse)
	assert.Empty(t, saved.Experience)

	// the form keeps its blank entries for further editing
	edu, err = s.Entries(section.Education.Name)
	require.NoError(t, err)
	assert.Len(t, edu, 3)
}

func TestNewSessionRestoresDraft(t *testing.T) {
	env := newSessionEnv(t)
	s := env.session()
	require.NoError(t, s.SetField("nome", "Ana"))
	id, err := s.AddEntry(section.Experience.Name)
	require.NoError(t, err)
	require.NoError(t, s.SetEntryField(section.Experience.Name, id, "cargo", "Dev"))
	require.NoError(t, s.Advance())

	restored := env.session()
	name, err := restored.Field("nome")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	exp, err := restored.Entries(section.Experience.Name)
	require.NoError(t, err)
	require.Len(t, exp, 1)
	assert.Equal(t, "Dev", exp[0].Values["cargo"])
}

func TestSectionOperationsValidateKind(t *testing.T) {
	s := newSessionEnv(t).session()

	_, err := s.AddEntry("projetos")
	require.ErrorIs(t, err, ErrUnknownSection)
	require.ErrorIs(t, s.RemoveEntry("projetos", "x"), ErrUnknownSection)
	require.ErrorIs(t, s.SetEntryField("projetos", "x", "curso", "y"), ErrUnknownSection)
	_, err = s.Entries("projetos")
	require.ErrorIs(t, err, ErrUnknownSection)

	require.NoError(t, s.RemoveEntry(section.Education.Name, "missing"))
	err = s.SetEntryField(section.Education.Name, "missing", "curso", "y")
	require.ErrorIs(t, err, section.ErrUnknownEntry)

	require.ErrorIs(t, s.SetField("idade", "30"), domain.ErrUnknownProfileField)
}

func TestSetFieldsIsAllOrNothing(t *testing.T) {
	s := newSessionEnv(t).session()
	require.NoError(t, s.SetField("nome", "Ana"))

	err := s.SetFields(map[string]string{"nome": "Bia", "idade": "30"})
	require.ErrorIs(t, err, domain.ErrUnknownProfileField)

	name, _ := s.Field("nome")
	assert.Equal(t, "Ana", name)
}

func TestSetEntryFieldsIsAllOrNothing(t *testing.T) {
	s := newSessionEnv(t).session()
	entries, err := s.Entries("experiencia")
	require.NoError(t, err)
	id := entries[0].ID

	err = s.SetEntryFields("experiencia", id, map[string]string{"cargo": "Dev", "salario": "1"})
	require.ErrorIs(t, err, section.ErrUnknownField)
	entries, _ = s.Entries("experiencia")
	assert.Empty(t, entries[0].Values["cargo"])

	require.NoError(t, s.SetEntryFields("experiencia", id, map[string]string{"cargo": "Dev"}))
	entries, _ = s.Entries("experiencia")
	assert.Equal(t, "Dev", entries[0].Values["cargo"])

	err = s.SetEntryFields("projetos", id, map[string]string{"cargo": "Dev"})
	require.ErrorIs(t, err, ErrUnknownSection)
}

func TestSetPhoto(t *testing.T) {
	env := newSessionEnv(t)
	s := env.session()

	_, ok := s.SetPhoto("/home/ana/cv.pdf")
	assert.False(t, ok)
	assert.Nil(t, s.Draft().Profile.PhotoPath)

	stored, ok := s.SetPhoto("/home/ana/foto.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(env.dir, "uploads", "foto.png"), stored)
	assert.Equal(t, stored, s.Draft().Profile.Photo())

	s.ClearPhoto()
	assert.Nil(t, s.Draft().Profile.PhotoPath)
}

func TestSetDesign(t *testing.T) {
	s := newSessionEnv(t).session()

	require.NoError(t, s.SetDesign("E74C3C", "#FFF"))
	assert.Equal(t, domain.Design{Primary: "#e74c3c", Secondary: "#ffffff"}, s.Design())

	err := s.SetDesign("vermelho", "#fff")
	require.ErrorIs(t, err, ErrInvalidColor)
	assert.Equal(t, "#e74c3c", s.Design().Primary)
}

func TestFinalizeRegistersPortfolio(t *testing.T) {
	env := newSessionEnv(t)
	s := env.session()
	s.now = func() time.Time { return time.Date(2025, 3, 9, 14, 5, 0, 0, time.UTC) }

	require.NoError(t, s.SetFields(map[string]string{"nome": "Ana", "email": "ana@x.com"}))
	require.NoError(t, s.SetDesign("#e74c3c", "#ffffff"))
	entry, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, "09/03/2025 14:05", entry.CreatedAt)

	got, err := env.registry.Find("ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "#e74c3c", got.Design.Primary)
	assert.Equal(t, "09/03/2025 14:05", got.CreatedAt)

	require.NoError(t, s.SetField("nome", "Ana Souza"))
	_, err = s.Finalize()
	require.NoError(t, err)
	list := s.Portfolios()
	require.Len(t, list, 1)
	assert.Equal(t, "Ana Souza", list[0].Name)
}

func TestLoadPortfolio(t *testing.T) {
	env := newSessionEnv(t)
	entry := domain.Portfolio{
		Profile: domain.Profile{
			Name:  "Bia",
			Email: "bia@x.com",
			Education: []section.Record{
				{"curso": "Design", "instituicao": "UFPE"},
				{"curso": "Artes"},
			},
		},
		Design: domain.Design{Primary: "#112233"},
	}
	require.NoError(t, env.registry.Upsert(entry))

	s := env.session()
	_, err := s.LoadPortfolio("nobody@x.com")
	require.Error(t, err)

	_, err = s.LoadPortfolio("bia@x.com")
	require.NoError(t, err)

	v := s.Draft()
	assert.Equal(t, "Bia", v.Profile.Name)
	assert.Equal(t, domain.Design{Primary: "#112233", Secondary: "#ecf0f1"}, v.Design)
	require.Len(t, v.Sections[section.Education.Name], 2)
	assert.Equal(t, "Artes", v.Sections[section.Education.Name][1].Values["curso"])
	require.Len(t, v.Sections[section.Experience.Name], 1)

	saved, ok := env.drafts.Load()
	require.True(t, ok)
	assert.Equal(t, "bia@x.com", saved.Email)
}

func TestReset(t *testing.T) {
	s := newSessionEnv(t).session()
	require.NoError(t, s.SetField("nome", "Ana"))
	require.NoError(t, s.SetDesign("#000", "#fff"))
	s.SetLastResult(Result{PDFPath: "out.pdf"})

	s.Reset()

	v := s.Draft()
	assert.Empty(t, v.Profile.Name)
	assert.Equal(t, domain.DefaultDesign(), v.Design)
	_, ok := s.LastResult()
	assert.False(t, ok)
}

func TestSnapshotDoesNotWrite(t *testing.T) {
	env := newSessionEnv(t)
	s := env.session()
	require.NoError(t, s.SetField("habilidades_soft", "Comunicação, Liderança"))

	snap := s.Snapshot()
	assert.Equal(t, []string{"Comunicação", "Liderança"}, snap.Profile.SkillsSoftList)

	_, ok := env.drafts.Load()
	assert.False(t, ok)
}
