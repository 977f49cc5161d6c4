package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quotepicker/stocks/internal/display"
	"github.com/quotepicker/stocks/internal/quote"
)

// Renderer forwards controller output into a running bubbletea program.
type Renderer struct {
	program *tea.Program
}

func NewRenderer(p *tea.Program) *Renderer {
	return &Renderer{program: p}
}

func (r *Renderer) SetBusy(busy bool) {
	r.program.Send(busyMsg(busy))
}

func (r *Renderer) Render(state display.State, logo []byte) {
	r.program.Send(renderMsg{state: state, logo: logo})
}

func (r *Renderer) Alert(message string) {
	r.program.Send(alertMsg(message))
}

// SetCompanies fills the picker once the directory is loaded.
func (r *Renderer) SetCompanies(companies []quote.Company) {
	r.program.Send(companiesMsg(companies))
}
