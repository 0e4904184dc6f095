package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-generator/internal/usecase"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type taskDoneMsg usecase.TaskEvent

type generateState int

const (
	genIdle generateState = iota
	genRunning
	genDone
	genFailed
)

type generateModel struct {
	deps    Deps
	spinner spinner.Model
	state   generateState
	result  usecase.Result
	err     error
	note    string
}

func newGenerateModel(deps Deps) generateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedStyle
	return generateModel{deps: deps, spinner: s}
}

func (m generateModel) Init() tea.Cmd { return nil }

// waitForTask blocks on the runner's next event.
func waitForTask(r *usecase.Runner) tea.Cmd {
	return func() tea.Msg {
		return taskDoneMsg(<-r.Events())
	}
}

func (m generateModel) start() (generateModel, tea.Cmd) {
	gen, session := m.deps.Generator, m.deps.Session
	snap := session.Snapshot()
	_, err := m.deps.Runner.Submit(context.Background(), func(ctx context.Context) (usecase.Result, error) {
		res, err := gen.Process(ctx, snap)
		if err == nil {
			session.SetLastResult(res)
		}
		return res, err
	})
	if err != nil {
		if errors.Is(err, usecase.ErrBusy) {
			m.note = "Uma geração já está em andamento."
			return m, nil
		}
		m.state, m.err = genFailed, err
		return m, nil
	}
	m.state, m.err, m.note = genRunning, nil, ""
	return m, tea.Batch(m.spinner.Tick, waitForTask(m.deps.Runner))
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		if msg.Err != nil {
			m.state, m.err = genFailed, msg.Err
			return m, nil
		}
		m.state, m.result = genDone, msg.Result
		return m, nil

	case spinner.TickMsg:
		if m.state != genRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "g":
			if m.state == genIdle || m.state == genFailed {
				return m.start()
			}
		case "o":
			if m.state == genDone && m.deps.Open != nil {
				if err := m.deps.Open(m.result.PDFPath); err != nil {
					m.note = fmt.Sprintf("Não foi possível abrir o PDF: %v", err)
				}
			}
		case "esc", "b":
			if m.state != genRunning {
				return m, switchTo(screenWelcome)
			}
		}
	}
	return m, nil
}

func (m generateModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + headerStyle.Render("✅ Portfólio Pronto!") + "\n\n")

	switch m.state {
	case genIdle:
		b.WriteString(" Seu portfólio em PDF está pronto para ser gerado.\n\n")
		b.WriteString(" " + button("Gerar e Salvar PDF", true) + "\n")
	case genRunning:
		b.WriteString(fmt.Sprintf(" %s Aguarde, gerando seu portfólio...\n", m.spinner.View()))
	case genDone:
		b.WriteString(successStyle.Render(fmt.Sprintf(" ✓ Portfólio salvo com sucesso em: %s", m.result.PDFPath)) + "\n")
		if m.result.PreviewPath != "" {
			b.WriteString(blurredStyle.Render(fmt.Sprintf(" Pré-visualização: %s", m.result.PreviewPath)) + "\n")
		}
		for _, w := range m.result.Warnings {
			b.WriteString(noteStyle.Render(" ! "+w) + "\n")
		}
		b.WriteString("\n " + button("Abrir Portfólio (o)", true) + "\n")
	case genFailed:
		b.WriteString(errorStyle.Render(fmt.Sprintf(" ✗ Erro ao gerar PDF: %v", m.err)) + "\n\n")
		b.WriteString(" " + button("Tentar Novamente", true) + "\n")
	}

	if m.note != "" {
		b.WriteString("\n" + noteStyle.Render(m.note) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter: gerar • o: abrir PDF • esc: voltar ao início"))
	return b.String()
}
