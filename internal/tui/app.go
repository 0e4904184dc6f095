// Package tui is the terminal front end of the portfolio wizard. Every screen
// works on the same usecase.Session.
package tui

import (
	"context"

	"portfolio-generator/internal/domain"
	"portfolio-generator/internal/usecase"

	tea "github.com/charmbracelet/bubbletea"
)

type Generator interface {
	Process(ctx context.Context, snap usecase.Snapshot) (usecase.Result, error)
}

type CardBuilder interface {
	Build(entries []domain.Portfolio) []usecase.Card
}

// Deps are the collaborators shared by the screens.
type Deps struct {
	Session   *usecase.Session
	Runner    *usecase.Runner
	Generator Generator
	Cards     CardBuilder
	// Open shows a generated file to the user.
	Open func(path string) error
}

type screen int

const (
	screenWelcome screen = iota
	screenForm
	screenDesign
	screenGenerate
	screenPortfolios
)

type switchScreenMsg struct{ to screen }

func switchTo(s screen) tea.Cmd {
	return func() tea.Msg { return switchScreenMsg{to: s} }
}

// App routes messages to the active screen.
type App struct {
	deps   Deps
	screen screen
	width  int
	height int

	welcome    welcomeModel
	form       formModel
	design     designModel
	generate   generateModel
	portfolios portfoliosModel
}

func New(deps Deps) *App {
	return &App{deps: deps, screen: screenWelcome, welcome: newWelcomeModel()}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case switchScreenMsg:
		return a, a.enter(msg.to)
	}

	var cmd tea.Cmd
	switch a.screen {
	case screenWelcome:
		a.welcome, cmd = a.welcome.Update(msg, a.deps)
	case screenForm:
		a.form, cmd = a.form.Update(msg)
	case screenDesign:
		a.design, cmd = a.design.Update(msg)
	case screenGenerate:
		a.generate, cmd = a.generate.Update(msg)
	case screenPortfolios:
		a.portfolios, cmd = a.portfolios.Update(msg)
	}
	return a, cmd
}

// enter rebuilds the target screen from the session so it shows current data.
func (a *App) enter(s screen) tea.Cmd {
	a.screen = s
	switch s {
	case screenWelcome:
		a.welcome = newWelcomeModel()
	case screenForm:
		a.form = newFormModel(a.deps.Session)
		return a.form.Init()
	case screenDesign:
		a.design = newDesignModel(a.deps.Session)
		return a.design.Init()
	case screenGenerate:
		a.generate = newGenerateModel(a.deps)
		return a.generate.Init()
	case screenPortfolios:
		a.portfolios = newPortfoliosModel(a.deps, a.width, a.height)
	}
	return nil
}

func (a *App) View() string {
	switch a.screen {
	case screenForm:
		return a.form.View()
	case screenDesign:
		return a.design.View()
	case screenGenerate:
		return a.generate.View()
	case screenPortfolios:
		return a.portfolios.View()
	}
	return a.welcome.View()
}
