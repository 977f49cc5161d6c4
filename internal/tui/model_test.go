package tui

import (
	"bytes"
	"image"
	"image/png"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/quotepicker/stocks/internal/display"
	"github.com/quotepicker/stocks/internal/quote"
)

type fakeSelector struct {
	mu        sync.Mutex
	selected  []int
	refreshes int
}

func (f *fakeSelector) Select(index int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = append(f.selected, index)
}

func (f *fakeSelector) Refresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
}

var companies = companiesMsg{
	{Name: "Apple Inc.", Symbol: "AAPL"},
	{Name: "Microsoft Corporation", Symbol: "MSFT"},
	{Name: "Tesla, Inc.", Symbol: "TSLA"},
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SelectCompany(t *testing.T) {
	sel := &fakeSelector{}
	m := NewModel(sel)
	m, _ = update(t, m, companies)

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, key("down")) // stays on the last row
	require.Equal(t, 2, m.cursor)

	m, _ = update(t, m, key("up"))
	require.Equal(t, 1, m.cursor)

	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	require.Nil(t, cmd())
	require.Equal(t, []int{1}, sel.selected)
	require.Equal(t, 1, m.selected)
}

func TestModel_EnterWithoutCompanies(t *testing.T) {
	sel := &fakeSelector{}
	m := NewModel(sel)

	_, cmd := update(t, m, key("enter"))
	require.Nil(t, cmd)
	require.Empty(t, sel.selected)
}

func TestModel_Refresh(t *testing.T) {
	sel := &fakeSelector{}
	m := NewModel(sel)

	_, cmd := update(t, m, key("r"))
	require.NotNil(t, cmd)
	cmd()
	require.Equal(t, 1, sel.refreshes)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(&fakeSelector{})
	_, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}

func TestModel_RenderAndAlert(t *testing.T) {
	m := NewModel(&fakeSelector{})
	m, _ = update(t, m, companies)
	require.Contains(t, m.View(), "Apple Inc. (AAPL)")
	require.True(t, m.state.IsZeroed())

	m, cmd := update(t, m, busyMsg(true))
	require.True(t, m.busy)
	require.NotNil(t, cmd)

	state := display.State{Company: "Tesla, Inc. (TSLA)", Price: "250.1 $", Change: "3.4 $ ↗", Color: display.Up}
	m, _ = update(t, m, renderMsg{state: state})
	m, _ = update(t, m, busyMsg(false))
	require.False(t, m.busy)

	view := m.View()
	require.Contains(t, view, "Tesla, Inc. (TSLA)")
	require.Contains(t, view, "250.1 $")
	require.Contains(t, view, "3.4 $ ↗")

	m, _ = update(t, m, alertMsg("Network error"))
	require.Contains(t, m.View(), "Network error")

	// any key dismisses the alert
	m, _ = update(t, m, key("down"))
	require.NotContains(t, m.View(), "Network error")
}

func TestModel_CompaniesResetCursor(t *testing.T) {
	m := NewModel(&fakeSelector{})
	m, _ = update(t, m, companies)
	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, companiesMsg([]quote.Company{{Name: "Apple Inc.", Symbol: "AAPL"}}))
	require.Zero(t, m.cursor)
	require.Zero(t, m.selected)
}

func TestChangeStyle(t *testing.T) {
	require.Equal(t, gainStyle, changeStyle(display.Up))
	require.Equal(t, lossStyle, changeStyle(display.Down))
	require.Equal(t, priceStyle, changeStyle(display.Neutral))
}

func TestLogoInfo(t *testing.T) {
	require.Equal(t, "-", logoInfo(nil))
	require.Equal(t, "4 bytes", logoInfo([]byte("junk")))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.Equal(t, "3x2 png", logoInfo(buf.Bytes()))
}
