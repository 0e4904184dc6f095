package tui

import (
	"fmt"
	"strings"

	"portfolio-generator/internal/model"
	"portfolio-generator/internal/section"
	"portfolio-generator/internal/usecase"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// slot is one focusable input of the form: a profile field, or a field of a
// section entry when entry is set.
type slot struct {
	page      int
	key       string
	label     string
	kind      string
	entry     section.ID
	position  int
	multiline bool

	line textinput.Model
	area textarea.Model
}

func newSlot(page int, key, label string, multiline bool, value string) slot {
	s := slot{page: page, key: key, label: label, multiline: multiline}
	if multiline {
		s.area = textarea.New()
		s.area.ShowLineNumbers = false
		s.area.CharLimit = 2000
		s.area.SetWidth(70)
		s.area.SetHeight(3)
		s.area.SetValue(value)
		s.area.Blur()
		return s
	}
	s.line = textinput.New()
	s.line.Cursor.Style = cursorStyle
	s.line.CharLimit = 256
	s.line.Width = 70
	s.line.SetValue(value)
	return s
}

func (s *slot) Value() string {
	if s.multiline {
		return s.area.Value()
	}
	return s.line.Value()
}

func (s *slot) focus() tea.Cmd {
	if s.multiline {
		return s.area.Focus()
	}
	s.line.PromptStyle = focusedStyle
	s.line.TextStyle = focusedStyle
	return s.line.Focus()
}

func (s *slot) blur() {
	if s.multiline {
		s.area.Blur()
		return
	}
	s.line.Blur()
	s.line.PromptStyle = noStyle
	s.line.TextStyle = noStyle
}

func (s *slot) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if s.multiline {
		s.area, cmd = s.area.Update(msg)
	} else {
		s.line, cmd = s.line.Update(msg)
	}
	return cmd
}

func (s *slot) view() string {
	if s.multiline {
		return s.area.View()
	}
	return s.line.View()
}

type formModel struct {
	session *usecase.Session
	slots   []slot
	// focus == len(slots) selects the advance button.
	focus int
	photo string
	note  string
	err   error
}

func newFormModel(s *usecase.Session) formModel {
	m := formModel{session: s}
	m.build()
	if len(m.slots) > 0 {
		m.slots[0].focus()
	}
	return m
}

// build recreates the inputs from the session, keeping the focus index.
func (m *formModel) build() {
	draft := m.session.Draft()
	m.photo = draft.Profile.Photo()
	m.slots = m.slots[:0]
	for page, sec := range model.ProfileForm {
		if sec.Repeatable != nil {
			kind := *sec.Repeatable
			for _, e := range draft.Sections[kind.Name] {
				for _, f := range kind.Fields {
					sl := newSlot(page, f.Name, f.Label, f.Multiline, e.Values[f.Name])
					sl.kind, sl.entry, sl.position = kind.Name, e.ID, e.Position
					m.slots = append(m.slots, sl)
				}
			}
			continue
		}
		for _, f := range sec.Fields {
			var value string
			if f.Key == model.PhotoKey {
				value = m.photo
			} else {
				value, _ = draft.Profile.Field(f.Key)
			}
			m.slots = append(m.slots, newSlot(page, f.Key, f.Label, f.Kind == model.InputText, value))
		}
	}
	if m.focus > len(m.slots) {
		m.focus = len(m.slots)
	}
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) current() *slot {
	if m.focus < len(m.slots) {
		return &m.slots[m.focus]
	}
	return nil
}

func (m *formModel) setFocus(i int) tea.Cmd {
	n := len(m.slots) + 1
	m.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range m.slots {
		if j == m.focus {
			cmd = m.slots[j].focus()
			continue
		}
		m.slots[j].blur()
	}
	return cmd
}

func (m formModel) page() int {
	if s := m.current(); s != nil {
		return s.page
	}
	return len(model.ProfileForm) - 1
}

// jumpPage focuses the first input of the page delta pages away.
func (m *formModel) jumpPage(delta int) tea.Cmd {
	target := m.page() + delta
	if target < 0 || target >= len(model.ProfileForm) {
		return nil
	}
	for i, s := range m.slots {
		if s.page == target {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.submitPhoto()
			return m, switchTo(screenWelcome)
		case "tab", "down":
			if s := m.current(); key.String() == "down" && s != nil && s.multiline {
				break
			}
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			if s := m.current(); key.String() == "up" && s != nil && s.multiline {
				break
			}
			return m, m.setFocus(m.focus - 1)
		case "pgdown":
			return m, m.jumpPage(1)
		case "pgup":
			return m, m.jumpPage(-1)
		case "ctrl+n":
			return m, m.addEntry()
		case "ctrl+d":
			return m, m.removeEntry()
		case "ctrl+s":
			return m, m.advance()
		case "enter":
			if m.current() == nil {
				return m, m.advance()
			}
		}
	}

	s := m.current()
	if s == nil {
		return m, nil
	}
	cmd := s.update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.store(s)
	}
	return m, cmd
}

// store writes the input back to the session. The photo is only applied on
// leaving the form since it has to be copied.
func (m *formModel) store(s *slot) {
	var err error
	switch {
	case s.entry != "":
		err = m.session.SetEntryField(s.kind, s.entry, s.key, s.Value())
	case s.key == model.PhotoKey:
		return
	default:
		err = m.session.SetField(s.key, s.Value())
	}
	m.err = err
}

func (m *formModel) addEntry() tea.Cmd {
	sec := model.ProfileForm[m.page()]
	if sec.Repeatable == nil {
		m.note = "Posicione o cursor em Formação ou Experiência para adicionar."
		return nil
	}
	id, err := m.session.AddEntry(sec.Repeatable.Name)
	if err != nil {
		m.err = err
		return nil
	}
	m.note = ""
	m.build()
	for i, s := range m.slots {
		if s.entry == id {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m *formModel) removeEntry() tea.Cmd {
	s := m.current()
	if s == nil || s.entry == "" {
		return nil
	}
	kind, id, page := s.kind, s.entry, s.page
	if err := m.session.RemoveEntry(kind, id); err != nil {
		m.err = err
		return nil
	}
	entries, err := m.session.Entries(kind)
	if err == nil && len(entries) == 0 {
		// keep one block on screen
		_, err = m.session.AddEntry(kind)
	}
	m.err = err
	m.build()
	for i, sl := range m.slots {
		if sl.page == page {
			return m.setFocus(i)
		}
	}
	return m.setFocus(m.focus)
}

func (m *formModel) submitPhoto() {
	for i := range m.slots {
		s := &m.slots[i]
		if s.key != model.PhotoKey || s.entry != "" {
			continue
		}
		value := strings.TrimSpace(s.Value())
		if value == m.photo {
			return
		}
		if value == "" {
			m.session.ClearPhoto()
			m.photo = ""
			return
		}
		stored, ok := m.session.SetPhoto(value)
		if !ok {
			m.note = "Foto ignorada: o arquivo não é uma imagem válida."
			return
		}
		m.photo = stored
		return
	}
}

func (m *formModel) advance() tea.Cmd {
	m.submitPhoto()
	if err := m.session.Advance(); err != nil {
		m.err = err
	}
	return switchTo(screenDesign)
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Formulário do Portfólio") + "\n")

	page := m.page()
	tabs := make([]string, 0, len(model.ProfileForm))
	for i, sec := range model.ProfileForm {
		if i == page {
			tabs = append(tabs, activeTab.Render(sec.Title))
			continue
		}
		tabs = append(tabs, tabStyle.Render(sec.Title))
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	lastEntry := section.ID("")
	for i := range m.slots {
		s := &m.slots[i]
		if s.page != page {
			continue
		}
		if s.entry != "" && s.entry != lastEntry {
			b.WriteString(entryStyle.Render(fmt.Sprintf("Entrada %d", s.position+1)) +
				blurredStyle.Render("  (ctrl+d remove)") + "\n")
			lastEntry = s.entry
		}
		b.WriteString(fmt.Sprintf(" %s\n %s\n\n", blurredStyle.Render(s.label), s.view()))
	}

	b.WriteString("\n " + button("Avançar", m.focus == len(m.slots)) + "\n\n")
	if m.note != "" {
		b.WriteString(noteStyle.Render(m.note) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.err)) + "\n")
	}
	b.WriteString(helpStyle.Render("tab: próximo • pgup/pgdown: seção • ctrl+n: nova entrada • ctrl+d: remover entrada • ctrl+s: avançar • esc: voltar"))
	return b.String()
}
