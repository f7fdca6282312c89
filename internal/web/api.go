package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/huangsam/soccerboard/core"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/schema"
)

// errBadRequest marks query parameter problems.
var errBadRequest = errors.New("bad request")

// feedErrors are failures of the upstream feed rather than of this server.
var feedErrors = []error{
	schema.ErrSourceUnavailable,
	schema.ErrSchemaMismatch,
	schema.ErrMalformedRecord,
	schema.ErrInvalidTimestamp,
	schema.ErrInvalidResultCode,
}

// statusFor maps an error to the HTTP status returned to the client.
func statusFor(err error) int {
	if errors.Is(err, errBadRequest) || errors.Is(err, core.ErrTeamRequired) {
		return http.StatusBadRequest
	}
	for _, target := range feedErrors {
		if errors.Is(err, target) {
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// requestConfig clones the base config and applies the sort, limit and owner query parameters.
func (s *Server) requestConfig(r *http.Request) (*contract.Config, error) {
	cfg := s.cfg.Clone()
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: limit must be a number", errBadRequest)
		}
		limit = n
	}
	if err := contract.RevalidateQuery(cfg, q.Get("sort"), limit); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if owner := strings.TrimSpace(q.Get("owner")); owner != "" {
		cfg.OwnerFilter = owner
	}
	return cfg, nil
}

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		contract.LogWarn("Failed to encode API response", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, "{\"error\":%q}\n", "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeAPIError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	standings, _, err := core.GetStandingsResults(core.WithSuppressHeader(r.Context()), cfg, s.mgr)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if standings == nil {
		standings = []schema.TeamStanding{}
	}
	writeJSON(w, http.StatusOK, standings)
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	teams, _, err := core.GetTeamsResults(core.WithSuppressHeader(r.Context()), cfg, s.mgr)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if teams == nil {
		teams = []string{}
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleTeamResults(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	cfg.TeamID = mux.Vars(r)["id"]

	profile, _, err := core.GetTeamProfileResults(core.WithSuppressHeader(r.Context()), cfg, s.mgr)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	// Unknown teams are an empty list, not a 404
	if profile.Results == nil {
		profile.Results = []schema.TeamResultView{}
	}
	if profile.Daily == nil {
		profile.Daily = []schema.DailyOutcome{}
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCompetition(w http.ResponseWriter, r *http.Request) {
	view, _, err := core.GetCompetitionResults(core.WithSuppressHeader(r.Context()), s.cfg.Clone(), s.mgr)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if view.Series == nil {
		view.Series = []schema.DailyCount{}
	}
	writeJSON(w, http.StatusOK, view)
}
