package controller

import "github.com/quotepicker/stocks/internal/display"

// Multi fans renderer calls out to several renderers in order.
type Multi []Renderer

func (m Multi) SetBusy(busy bool) {
	for _, r := range m {
		r.SetBusy(busy)
	}
}

func (m Multi) Render(state display.State, logo []byte) {
	for _, r := range m {
		r.Render(state, logo)
	}
}

func (m Multi) Alert(message string) {
	for _, r := range m {
		r.Alert(message)
	}
}
