package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/model"
	"portfolio-generator/internal/section"
	"portfolio-generator/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolios_registrados.json")
	return NewRegistry(store.New(path, model.ShapeList, nil), nil), path
}

func portfolio(email, name string) domain.Portfolio {
	return domain.Portfolio{
		Profile: domain.Profile{Email: email, Name: name},
		Design:  domain.DefaultDesign(),
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	reg, _ := newRegistry(t)
	require.NoError(t, reg.Upsert(portfolio("a@x", "A")))
	require.NoError(t, reg.Upsert(portfolio("b@x", "B")))

	require.NoError(t, reg.Upsert(portfolio("b@x", "B2")))

	got := reg.List()
	require.Len(t, got, 2)
	assert.Equal(t, "a@x", got[0].Email)
	assert.Equal(t, "b@x", got[1].Email)
	assert.Equal(t, "B2", got[1].Name)
}

func TestUpsertReplacementKeepsPosition(t *testing.T) {
	reg, _ := newRegistry(t)
	for _, e := range []string{"a@x", "b@x", "c@x"} {
		require.NoError(t, reg.Upsert(portfolio(e, e)))
	}

	require.NoError(t, reg.Upsert(portfolio("a@x", "first again")))

	got := reg.List()
	require.Len(t, got, 3)
	assert.Equal(t, "first again", got[0].Name)
	assert.Equal(t, "c@x", got[2].Email)
}

func TestUpsertNewEmailAppends(t *testing.T) {
	reg, _ := newRegistry(t)
	require.NoError(t, reg.Upsert(portfolio("a@x", "A")))
	require.NoError(t, reg.Upsert(portfolio("c@x", "C")))

	got := reg.List()
	require.Len(t, got, 2)
	assert.Equal(t, "c@x", got[1].Email)
}

func TestUpsertEmptyEmailNeverMatches(t *testing.T) {
	reg, _ := newRegistry(t)
	require.NoError(t, reg.Upsert(portfolio("", "first")))
	require.NoError(t, reg.Upsert(portfolio("", "second")))

	require.Len(t, reg.List(), 2)
	_, err := reg.Find("")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertPreservesForeignEntries(t *testing.T) {
	reg, path := newRegistry(t)
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"email": "old@x", "nome": "Old", "campo_antigo": "kept"}
	]`), 0o644))

	require.NoError(t, reg.Upsert(portfolio("new@x", "New")))

	raw := store.New(path, model.ShapeList, nil).LoadItems()
	require.Len(t, raw, 2)
	assert.Equal(t, "kept", raw[0].(map[string]interface{})["campo_antigo"])
	assert.Equal(t, "new@x", raw[1].(map[string]interface{})["email"])
}

func TestUpsertOnMalformedRegistryStartsFresh(t *testing.T) {
	reg, path := newRegistry(t)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	require.NoError(t, reg.Upsert(portfolio("a@x", "A")))
	require.Len(t, reg.List(), 1)
}

func TestUpsertKeepsEntriesListSkips(t *testing.T) {
	reg, path := newRegistry(t)
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"email": "a@x", "nome": "A"},
		{"email": "b@x", "formacao": "Engenharia"},
		"solto"
	]`), 0o644))

	got := reg.List()
	require.Len(t, got, 1)
	assert.Equal(t, "a@x", got[0].Email)

	require.NoError(t, reg.Upsert(portfolio("c@x", "C")))

	raw := store.New(path, model.ShapeList, nil).LoadItems()
	require.Len(t, raw, 4)
	assert.Equal(t, "Engenharia", raw[1].(map[string]interface{})["formacao"])
	assert.Equal(t, "solto", raw[2])
	assert.Equal(t, "c@x", raw[3].(map[string]interface{})["email"])

	emails := []string{}
	for _, p := range reg.List() {
		emails = append(emails, p.Email)
	}
	assert.Equal(t, []string{"a@x", "c@x"}, emails)
}

func TestUpsertReplacesEntryListSkips(t *testing.T) {
	reg, path := newRegistry(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"email": "b@x", "formacao": "Engenharia"}]`), 0o644))

	require.NoError(t, reg.Upsert(portfolio("b@x", "B")))

	got := reg.List()
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
}

func TestFind(t *testing.T) {
	reg, _ := newRegistry(t)
	p := portfolio("a@x", "A")
	p.Education = []section.Record{{"curso": "Computação"}}
	require.NoError(t, reg.Upsert(p))

	got, err := reg.Find("a@x")
	require.NoError(t, err)
	require.Equal(t, "Computação", got.Education[0]["curso"])

	_, err = reg.Find("z@x")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDraftRepoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio_data.json")
	drafts := NewDraftRepo(store.New(path, model.ShapeObject, nil), nil)

	_, ok := drafts.Load()
	require.False(t, ok)

	p := domain.Profile{Name: "Ana", SkillsFrontend: "HTML, CSS"}
	p.DeriveSkills()
	p.SetPhoto("/tmp/ana.png")
	require.NoError(t, drafts.Save(p))

	got, ok := drafts.Load()
	require.True(t, ok)
	require.Equal(t, "Ana", got.Name)
	require.Equal(t, []string{"HTML", "CSS"}, got.SkillsFrontendList)
	require.Equal(t, "/tmp/ana.png", got.Photo())
}

func TestDraftRepoUnreadableDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nome": 42}`), 0o644))

	_, ok := NewDraftRepo(store.New(path, model.ShapeObject, nil), nil).Load()
	require.False(t, ok)
}

func TestJobsRepoWithoutPoolIsNoop(t *testing.T) {
	repo := NewJobsRepo(nil)
	require.NoError(t, repo.Save(context.Background(), &domain.GenerationJob{}))

	jobs, err := repo.Recent(context.Background(), "a@x", 5)
	require.NoError(t, err)
	require.Empty(t, jobs)
}
