// Package tui is the terminal screen: a company picker on top and the quote
// of the selected company below it.
package tui

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quotepicker/stocks/internal/display"
	"github.com/quotepicker/stocks/internal/quote"
)

// Styles.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	companyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	gainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	alertStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// Selector is the part of the controller the screen drives.
type Selector interface {
	Select(index int)
	Refresh()
}

// Messages.
type busyMsg bool

type renderMsg struct {
	state display.State
	logo  []byte
}

type alertMsg string

type companiesMsg []quote.Company

type Model struct {
	sel Selector

	companies []quote.Company
	cursor    int
	selected  int

	state   display.State
	logo    []byte
	busy    bool
	alert   string
	spinner spinner.Model
}

func NewModel(sel Selector) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = dimStyle
	return Model{
		sel:     sel,
		state:   display.Zeroed(),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// alerts stay until the next key press
		m.alert = ""

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.companies)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.companies) == 0 {
				return m, nil
			}
			m.selected = m.cursor
			return m, selectCmd(m.sel, m.cursor)
		case "r":
			return m, refreshCmd(m.sel)
		}

	case companiesMsg:
		m.companies = msg
		m.cursor, m.selected = 0, 0

	case busyMsg:
		m.busy = bool(msg)
		if m.busy {
			return m, m.spinner.Tick
		}

	case renderMsg:
		m.state = msg.state
		m.logo = msg.logo

	case alertMsg:
		m.alert = string(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// selectCmd hands the selection to the controller off the UI goroutine.
func selectCmd(sel Selector, index int) tea.Cmd {
	return func() tea.Msg {
		sel.Select(index)
		return nil
	}
}

func refreshCmd(sel Selector) tea.Cmd {
	return func() tea.Msg {
		sel.Refresh()
		return nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stocks in focus"))
	b.WriteString("\n\n")

	if len(m.companies) == 0 {
		b.WriteString(dimStyle.Render("  no companies loaded"))
		b.WriteString("\n")
	}
	for i, c := range m.companies {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(panelStyle.Render(m.quoteView()))
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString(alertStyle.Render(m.alert))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("↑/↓ move • enter select • r refresh • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) quoteView() string {
	var b strings.Builder

	b.WriteString(companyStyle.Render(m.state.Company))
	if m.busy {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString(priceStyle.Render(m.state.Price))
	b.WriteString("\n")
	b.WriteString(changeStyle(m.state.Color).Render(m.state.Change))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Logo: " + logoInfo(m.logo)))
	return b.String()
}

func changeStyle(c display.Color) lipgloss.Style {
	switch c {
	case display.Up:
		return gainStyle
	case display.Down:
		return lossStyle
	default:
		return priceStyle
	}
}

// logoInfo describes the logo image; terminals cannot show the PNG itself.
func logoInfo(logo []byte) string {
	if len(logo) == 0 {
		return "-"
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(logo))
	if err != nil {
		return fmt.Sprintf("%d bytes", len(logo))
	}
	return fmt.Sprintf("%dx%d %s", cfg.Width, cfg.Height, format)
}
