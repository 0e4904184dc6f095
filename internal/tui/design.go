package tui

import (
	"fmt"
	"strings"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/usecase"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var designLabels = []string{
	"Cor Principal (Fundo de Seções):",
	"Cor Secundária (Texto/Detalhe):",
}

type designModel struct {
	session    *usecase.Session
	inputs     []textinput.Model
	focusIndex int
	err        error
}

func newDesignModel(s *usecase.Session) designModel {
	d := s.Design().WithDefaults()
	m := designModel{session: s, inputs: make([]textinput.Model, 2)}
	for i, v := range []string{d.Primary, d.Secondary} {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 7
		t.Placeholder = "#rrggbb"
		t.SetValue(v)
		if i == 0 {
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		}
		m.inputs[i] = t
	}
	return m
}

func (m designModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m designModel) Update(msg tea.Msg) (designModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch s := key.String(); s {
		case "esc":
			return m, switchTo(screenForm)
		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.save()
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}
			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}
			return m, tea.Batch(cmds...)
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

// save stores the colors, registers the portfolio and moves on to generation.
func (m *designModel) save() tea.Cmd {
	if err := m.session.SetDesign(m.inputs[0].Value(), m.inputs[1].Value()); err != nil {
		m.err = err
		return nil
	}
	if _, err := m.session.Finalize(); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return switchTo(screenGenerate)
}

func (m designModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("🎨 Personalize o Design do seu Portfólio") + "\n")
	b.WriteString(blurredStyle.Render("Escolha as cores principais que serão usadas no cabeçalho, caixas de texto e botões.") + "\n\n")

	for i, in := range m.inputs {
		sw := blurredStyle.Render("(cor inválida)")
		if hex, err := domain.NormalizeColor(in.Value()); err == nil {
			sw = swatch(hex)
		}
		b.WriteString(fmt.Sprintf(" %s\n %s  %s\n\n", blurredStyle.Render(designLabels[i]), in.View(), sw))
	}

	b.WriteString("\n " + button("Gerar Portfólio PDF", m.focusIndex == len(m.inputs)) + "\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.err)) + "\n")
	}
	b.WriteString(helpStyle.Render("tab: navegar • enter: confirmar • esc: voltar ao formulário"))
	return b.String()
}
