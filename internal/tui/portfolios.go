package tui

import (
	"fmt"
	"strings"

	"portfolio-generator/internal/usecase"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type cardItem struct {
	card usecase.Card
}

func (i cardItem) Title() string {
	name := i.card.Name
	if name == "" {
		name = "Sem nome"
	}
	title := i.card.Profile.Title
	if title == "" {
		title = "Sem título"
	}
	return fmt.Sprintf("%s · %s", name, title)
}

func (i cardItem) Description() string {
	parts := []string{}
	email := i.card.Email
	if email == "" {
		email = "Sem email"
	}
	parts = append(parts, "📧 "+email)
	if i.card.Education != "" {
		parts = append(parts, "🎓 "+i.card.Education)
	}
	if len(i.card.Badges) > 0 {
		parts = append(parts, strings.Join(i.card.Badges, ", "))
	}
	created := i.card.CreatedAt
	if created == "" {
		created = "Data desconhecida"
	}
	parts = append(parts, "📅 "+created)
	return strings.Join(parts, " | ")
}

func (i cardItem) FilterValue() string {
	return i.card.Name + " " + i.card.Email
}

type portfoliosModel struct {
	deps  Deps
	list  list.Model
	empty bool
}

func newPortfoliosModel(deps Deps, width, height int) portfoliosModel {
	cards := deps.Cards.Build(deps.Session.Portfolios())
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = cardItem{card: c}
	}

	if width == 0 || height == 0 {
		width, height = 80, 24
	}
	h, v := docStyle.GetFrameSize()
	l := list.New(items, list.NewDefaultDelegate(), width-h, height-v)
	l.Title = "📋 Portfólios Registrados"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return portfoliosModel{deps: deps, list: l, empty: len(cards) == 0}
}

func (m portfoliosModel) Update(msg tea.Msg) (portfoliosModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "esc", "q":
			return m, switchTo(screenWelcome)
		case "enter":
			if i, ok := m.list.SelectedItem().(cardItem); ok {
				m.deps.Session.LoadEntry(i.card.Portfolio)
				return m, switchTo(screenForm)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m portfoliosModel) View() string {
	if m.empty {
		return docStyle.Render(headerStyle.Render("📋 Portfólios Registrados") + "\n\n" +
			"Nenhum portfólio registrado ainda.\nCrie seu primeiro portfólio!\n\n" +
			helpStyle.Render("esc: voltar ao início"))
	}
	view := m.list.View()
	if i, ok := m.list.SelectedItem().(cardItem); ok && i.card.ChartPath != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, blurredStyle.Render("Gráfico: "+i.card.ChartPath))
	}
	return docStyle.Render(view + "\n" + helpStyle.Render("enter: carregar • /: filtrar • esc: voltar"))
}
