// Package server exposes the timetable converter behind a small HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/uclan-tools/timetable-ics/applog"
	"github.com/uclan-tools/timetable-ics/config"
	"github.com/uclan-tools/timetable-ics/timetable"
)

// Server handles HTTP requests for calendar generation. All state is
// request-local; one Server instance serves concurrent requests without
// additional synchronisation.
type Server struct {
	cfg       *config.Config
	generator *timetable.Generator
	mux       *http.ServeMux
}

// generateRequest is the body of POST /api/generate-ics. A nil
// ReminderMinutes means the configured default.
type generateRequest struct {
	HTML            string `json:"html"`
	ReminderMinutes *int   `json:"reminderMinutes"`
}

// NewServer constructs a Server for the given configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	s := &Server{
		cfg:       cfg,
		generator: timetable.NewGenerator(loc),
		mux:       http.NewServeMux(),
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the server on the configured address.
func (s *Server) ListenAndServe() error {
	applog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
	return http.ListenAndServe(s.cfg.Listen, s.Handler())
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/generate-ics", s.handleGenerateICS)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleGenerateICS converts one timetable page into a downloadable ICS
// file. Bad input (empty HTML, no event cells) yields 400; anything
// unexpected during parsing or serialisation yields 500. There is no
// partial output - the response is all-or-nothing even though individual
// malformed events are dropped internally.
func (s *Server) handleGenerateICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	reminder := s.cfg.ReminderMinutes
	if req.ReminderMinutes != nil {
		reminder = *req.ReminderMinutes
	}

	result, err := s.generator.Generate(req.HTML, reminder)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, timetable.ErrEmptyInput) || errors.Is(err, timetable.ErrNoEvents) {
			status = http.StatusBadRequest
		} else {
			applog.Error("calendar generation failed", err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	applog.Info("calendar generated",
		"events", result.Events,
		"occurrences", result.Occurrences,
		"warnings", len(result.Warnings),
	)

	filename := fmt.Sprintf("uclan_timetable-%s.ics", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Timetable-Warnings", fmt.Sprint(len(result.Warnings)))
	w.Write([]byte(result.ICS))
}
