package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/quotepicker/stocks/internal/display"
)

type displayResponse struct {
	display.State
	Busy    bool `json:"busy"`
	HasLogo bool `json:"has_logo"`
}

type companyResponse struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type companyRow struct {
	companyResponse
	Selected bool
}

type DashboardData struct {
	State     display.State
	Busy      bool
	HasLogo   bool
	Companies []companyRow
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Snapshot()

	data := DashboardData{
		State:   snap.State,
		Busy:    snap.Busy,
		HasLogo: len(snap.Logo) > 0,
	}
	for i, c := range s.source.Companies() {
		data.Companies = append(data.Companies, companyRow{
			companyResponse: companyResponse{Index: i, Name: c.Name, Symbol: c.Symbol},
			Selected:        i == snap.Selected,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.dashboard.Execute(w, data); err != nil {
		s.logger.Error("execute template", "error", err)
	}
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Snapshot()
	writeJSON(w, http.StatusOK, displayResponse{
		State:   snap.State,
		Busy:    snap.Busy,
		HasLogo: len(snap.Logo) > 0,
	})
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	companies := s.source.Companies()
	out := make([]companyResponse, 0, len(companies))
	for i, c := range companies {
		out = append(out, companyResponse{Index: i, Name: c.Name, Symbol: c.Symbol})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	index, ok := s.parseIndex(w, r)
	if !ok {
		return
	}
	s.source.Select(index)
	writeJSON(w, http.StatusAccepted, map[string]int{"index": index})
}

func (s *Server) handleSelectForm(w http.ResponseWriter, r *http.Request) {
	index, ok := s.parseIndex(w, r)
	if !ok {
		return
	}
	s.source.Select(index)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	logo := s.source.Snapshot().Logo
	if len(logo) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(logo); err != nil {
		s.logger.Error("write logo", "error", err)
	}
}

// parseIndex reads the "index" parameter and checks it against the directory.
func (s *Server) parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "index must be an integer"})
		return 0, false
	}
	if index < 0 || index >= len(s.source.Companies()) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no company at index"})
		return 0, false
	}
	return index, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
