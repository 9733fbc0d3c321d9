package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/definance/dexgate/internal/domain"
)

const maxBodySize = 64 << 10

// ReadinessResponse is returned by the readiness endpoints
type ReadinessResponse struct {
	Wallet    domain.WalletSignals `json:"wallet"`
	Readiness domain.Readiness     `json:"readiness"`
}

type managementRequest struct {
	Active *bool `json:"active"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.controller.Settings())
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.readiness())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.controller.Refresh(r.Context())
	writeJSON(w, http.StatusAccepted, s.readiness())
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	var signals domain.WalletSignals
	if err := decodeBody(w, r, &signals); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if signals.Account != "" && !domain.IsValidAddress(signals.Account) {
		writeError(w, http.StatusBadRequest, "INVALID_ACCOUNT", fmt.Sprintf("invalid account address %q", signals.Account))
		return
	}

	s.controller.UpdateWallet(r.Context(), signals)
	writeJSON(w, http.StatusOK, s.readiness())
}

func (s *Server) handleManagement(w http.ResponseWriter, r *http.Request) {
	var req managementRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if req.Active == nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "active is required")
		return
	}

	s.controller.ToggleAdminManagement(*req.Active)
	writeJSON(w, http.StatusOK, s.readiness())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	initial := s.controller.Snapshot()
	s.hub.Serve(w, r, Event{Type: EventReadiness, Reason: initial.Reason, Update: &initial})
}

func (s *Server) readiness() ReadinessResponse {
	snap := s.controller.Snapshot()
	return ReadinessResponse{
		Wallet:    snap.Wallet,
		Readiness: snap.Readiness,
	}
}

// Helper functions

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
