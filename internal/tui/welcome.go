package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title  string
	action string
}

type welcomeModel struct {
	items  []menuItem
	cursor int
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []menuItem{
		{title: "Começar Agora", action: "new"},
		{title: "Continuar Rascunho", action: "resume"},
		{title: "Ver Lista de Portfólios", action: "list"},
		{title: "Sair", action: "quit"},
	}}
}

func (m welcomeModel) Update(msg tea.Msg, deps Deps) (welcomeModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "enter":
		switch m.items[m.cursor].action {
		case "new":
			deps.Session.Reset()
			return m, switchTo(screenForm)
		case "resume":
			return m, switchTo(screenForm)
		case "list":
			return m, switchTo(screenPortfolios)
		case "quit":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m welcomeModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + headerStyle.Render("Crie seu Portfólio Profissional em Minutos") + "\n")
	b.WriteString(blurredStyle.Render("Preencha seus dados, personalize o design e gere um PDF pronto para impressionar recrutadores.") + "\n\n")
	for i, it := range m.items {
		line := fmt.Sprintf("%d. %s", i+1, it.title)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString(itemStyle.Render(line) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: navegar • enter: selecionar • q: sair"))
	return b.String()
}
