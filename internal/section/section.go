// Package section models repeatable form sections: an ordered, growable list
// of like-shaped records such as education or work experience entries.
package section

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrUnknownEntry = errors.New("unknown entry")
)

// Field describes one input of a section entry.
type Field struct {
	Name      string
	Label     string
	Multiline bool
}

// Kind is the declarative description of a repeatable section.
type Kind struct {
	Name   string
	Title  string
	Fields []Field
}

var Education = Kind{
	Name:  "formacao",
	Title: "🎓 Formação Acadêmica",
	Fields: []Field{
		{Name: "curso", Label: "Curso/Grau:"},
		{Name: "instituicao", Label: "Instituição:"},
		{Name: "periodo", Label: "Período (Ex: 2025-2028):"},
		{Name: "descricao", Label: "Descrição (Ênfase, etc.):", Multiline: true},
	},
}

var Experience = Kind{
	Name:  "experiencia",
	Title: "💼 Experiência Profissional",
	Fields: []Field{
		{Name: "cargo", Label: "Cargo:"},
		{Name: "empresa", Label: "Empresa/Local:"},
		{Name: "periodo", Label: "Período (Ex: Março 2025 - Presente):"},
		{Name: "resumo", Label: "Resumo das Responsabilidades:", Multiline: true},
	},
}

// Kinds lists every repeatable section in form order.
var Kinds = []Kind{Education, Experience}

func (k Kind) HasField(name string) bool {
	for _, f := range k.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ID addresses an entry independently of its display position.
type ID string

// Record is the persisted form of an entry: field name to value.
type Record map[string]string

// Blank reports whether every field is empty after trimming.
func (r Record) Blank() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Entry is a snapshot of one entry at its current display position.
type Entry struct {
	ID       ID     `json:"id"`
	Position int    `json:"position"`
	Values   Record `json:"values"`
}

// Model holds the entries of one section. It is not safe for concurrent use.
type Model struct {
	kind   Kind
	order  []ID
	values map[ID]Record
}

// New returns a model holding a single blank entry.
func New(kind Kind) *Model {
	m := &Model{kind: kind, values: map[ID]Record{}}
	m.Add()
	return m
}

func (m *Model) Len() int { return len(m.order) }

func (m *Model) blank() Record {
	r := make(Record, len(m.kind.Fields))
	for _, f := range m.kind.Fields {
		r[f.Name] = ""
	}
	return r
}

// Add appends a blank entry and returns its id.
func (m *Model) Add() ID {
	id := ID(uuid.NewString())
	m.order = append(m.order, id)
	m.values[id] = m.blank()
	return id
}

// Remove deletes the entry. Unknown ids are ignored. Survivors keep their ids
// and relative order; positions close the gap.
func (m *Model) Remove(id ID) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.order = append(m.order[:i], m.order[i+1:]...)
	delete(m.values, id)
}

func (m *Model) index(id ID) int {
	for i, v := range m.order {
		if v == id {
			return i
		}
	}
	return -1
}

// Position returns the current display position of id.
func (m *Model) Position(id ID) (int, bool) {
	i := m.index(id)
	return i, i >= 0
}

func (m *Model) Set(id ID, field, value string) error {
	if !m.kind.HasField(field) {
		return fmt.Errorf("%s.%s: %w", m.kind.Name, field, ErrUnknownField)
	}
	rec, ok := m.values[id]
	if !ok {
		return fmt.Errorf("%s entry %s: %w", m.kind.Name, id, ErrUnknownEntry)
	}
	rec[field] = value
	return nil
}

// SetAll writes every value of values into the entry, or nothing when the
// entry or any field is unknown.
func (m *Model) SetAll(id ID, values map[string]string) error {
	rec, ok := m.values[id]
	if !ok {
		return fmt.Errorf("%s entry %s: %w", m.kind.Name, id, ErrUnknownEntry)
	}
	for field := range values {
		if !m.kind.HasField(field) {
			return fmt.Errorf("%s.%s: %w", m.kind.Name, field, ErrUnknownField)
		}
	}
	for field, value := range values {
		rec[field] = value
	}
	return nil
}

func (m *Model) Get(id ID, field string) (string, error) {
	if !m.kind.HasField(field) {
		return "", fmt.Errorf("%s.%s: %w", m.kind.Name, field, ErrUnknownField)
	}
	rec, ok := m.values[id]
	if !ok {
		return "", fmt.Errorf("%s entry %s: %w", m.kind.Name, id, ErrUnknownEntry)
	}
	return rec[field], nil
}

// Entries returns copies of all entries in display order.
func (m *Model) Entries() []Entry {
	out := make([]Entry, 0, len(m.order))
	for i, id := range m.order {
		vals := make(Record, len(m.kind.Fields))
		for k, v := range m.values[id] {
			vals[k] = v
		}
		out = append(out, Entry{ID: id, Position: i, Values: vals})
	}
	return out
}

// ToList returns trimmed records in display order. With dropEmpty, entries
// whose fields are all blank are left out.
func (m *Model) ToList(dropEmpty bool) []Record {
	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		rec := make(Record, len(m.kind.Fields))
		for _, f := range m.kind.Fields {
			rec[f.Name] = strings.TrimSpace(m.values[id][f.Name])
		}
		if dropEmpty && rec.Blank() {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FromList replaces every entry with the given records, in order. Keys that
// are not fields of the kind are ignored. An empty input leaves one blank
// entry so the section is never shown empty.
func (m *Model) FromList(records []Record) {
	m.order = nil
	m.values = map[ID]Record{}
	for _, r := range records {
		id := m.Add()
		for _, f := range m.kind.Fields {
			m.values[id][f.Name] = strings.TrimSpace(r[f.Name])
		}
	}
	if len(m.order) == 0 {
		m.Add()
	}
}
