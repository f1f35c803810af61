package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adamlipecz/pico-automation-hat/proto"
)

// Commander executes one protocol command line to completion and returns
// the response text. Both the Controller and a bare Session satisfy it.
type Commander interface {
	Exec(line string) string
}

// Server handles incoming HTTP requests by translating them to protocol
// commands against the board session
type Server struct {
	Logger    *slog.Logger
	Commander Commander
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/relay/{n}", s.handleRelay)
	mux.HandleFunc("POST /api/output/{n}", s.handleOutput)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// exec runs a command and maps its response onto HTTP: OK becomes 200,
// ERR becomes 400 with the message as JSON.
func (s *Server) exec(w http.ResponseWriter, command string) {
	response := s.Commander.Exec(command)

	if rest, found := strings.CutPrefix(response, proto.Err+" "); found {
		s.sendError(w, rest, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	type OKResponse struct {
		Status string `json:"status"`
	}
	json.NewEncoder(w).Encode(OKResponse{Status: "ok"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleStatus returns the STATUS snapshot. The session already renders it
// as a JSON object, so the body is passed through verbatim.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	response := s.Commander.Exec(proto.KwStatus)
	if rest, found := strings.CutPrefix(response, proto.Err+" "); found {
		s.Logger.Error("STATUS failed", "error", rest)
		s.sendError(w, rest, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(response))
}

// handleRelay switches one relay. Body: {"on": true}
func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	type RelayRequest struct {
		On bool `json:"on"`
	}
	var req RelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := "OFF"
	if req.On {
		state = "ON"
	}
	s.exec(w, fmt.Sprintf("RELAY %s %s", r.PathValue("n"), state))
}

// handleOutput sets one output's PWM percentage. Body: {"percent": 50}
func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	type OutputRequest struct {
		Percent int `json:"percent"`
	}
	var req OutputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Percent < 0 || req.Percent > 100 {
		s.sendError(w, "percent must be between 0 and 100", http.StatusBadRequest)
		return
	}

	s.exec(w, fmt.Sprintf("OUTPUT %s %d", r.PathValue("n"), req.Percent))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.exec(w, proto.KwReset)
}
