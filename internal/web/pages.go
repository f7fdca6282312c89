package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	"github.com/huangsam/soccerboard/core"
	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/internal/outwriter"
	"github.com/huangsam/soccerboard/schema"
)

// pageBuilder produces the body of a dashboard page.
type pageBuilder func(r *http.Request) (templ.Component, error)

// pageHandler renders a page or a plain error with the mapped status.
func (s *Server) pageHandler(build pageBuilder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		component, err := build(r)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		templ.Handler(component).ServeHTTP(w, r)
	})
}

// page renders body inside the shared layout.
func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layout(title).Render(templ.WithChildren(ctx, body), w)
	})
}

// teamHref builds the page link for a team id, escaping each path segment.
func teamHref(id string) string {
	parts := strings.Split(id, schema.TeamSeparator)
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/team/" + strings.Join(parts, "/")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (s *Server) standingsPage(r *http.Request) (templ.Component, error) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		return nil, err
	}
	standings, _, err := core.GetStandingsResults(core.WithSuppressHeader(r.Context()), cfg, s.mgr)
	if err != nil {
		return nil, err
	}
	return page("Standings", standingsTable(standings, cfg)), nil
}

func standingsTable(standings []schema.TeamStanding, cfg *contract.Config) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<p>%d teams, sorted by %s</p>`, len(standings), templ.EscapeString(string(cfg.Sort)))
		if len(standings) == 0 {
			b.WriteString(`<p>No matches played.</p>`)
			_, err := io.WriteString(w, b.String())
			return err
		}
		b.WriteString(`<table><thead><tr><th>#</th><th>Team</th><th>W</th><th>D</th><th>L</th><th>Played</th><th>Win%</th></tr></thead><tbody>`)
		for i, st := range standings {
			fmt.Fprintf(&b, `<tr><td>%d</td><td><a href="%s">%s</a></td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>`,
				i+1, templ.EscapeString(teamHref(st.TeamID)), templ.EscapeString(st.TeamID),
				st.Wins, st.Draws, st.Losses, st.Played, contract.GetWinPctLabel(st, cfg.Precision))
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func (s *Server) teamPage(r *http.Request) (templ.Component, error) {
	cfg, err := s.requestConfig(r)
	if err != nil {
		return nil, err
	}
	cfg.TeamID = mux.Vars(r)["id"]

	profile, _, err := core.GetTeamProfileResults(core.WithSuppressHeader(r.Context()), cfg, s.mgr)
	if err != nil {
		return nil, err
	}
	return page(cfg.TeamID, teamProfile(profile, cfg)), nil
}

func teamProfile(profile schema.TeamProfile, cfg *contract.Config) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		now := cfg.Now()
		st := profile.Standing

		var b strings.Builder
		fmt.Fprintf(&b, `<p>Owner: %s, model: %s</p>`, templ.EscapeString(orDash(st.Owner)), templ.EscapeString(orDash(st.Team)))
		if len(profile.Results) == 0 {
			b.WriteString(`<p>No matches played.</p>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		fmt.Fprintf(&b, `<div class="metrics"><span>Wins: %d</span><span>Draws: %d</span><span>Losses: %d</span><span>Win rate: %s</span><span>Competing since: %s</span></div>`,
			st.Wins, st.Draws, st.Losses, contract.GetWinPctLabel(st, cfg.Precision),
			templ.EscapeString(contract.FormatTimeAgo(profile.CompetingSince, now)))
		b.WriteString(outcomeBarsSVG(profile.Daily))

		b.WriteString(`<table><thead><tr><th>#</th><th>Opponent</th><th>Side</th><th>Outcome</th><th>Played</th></tr></thead><tbody>`)
		for i, v := range profile.Results {
			side := "away"
			if v.Home {
				side = "home"
			}
			fmt.Fprintf(&b, `<tr><td>%d</td><td><a href="%s">%s</a></td><td>%s</td><td class="%s">%s</td><td title="%s">%s</td></tr>`,
				i+1, templ.EscapeString(teamHref(v.Opponent)), templ.EscapeString(v.Opponent), side,
				templ.EscapeString(string(v.Outcome)), templ.EscapeString(contract.GetPlainOutcome(v.Outcome)),
				v.Timestamp.In(now.Location()).Format(contract.DateTimeFormat),
				templ.EscapeString(contract.FormatTimeAgo(v.Timestamp, now)))
		}
		fmt.Fprintf(&b, `</tbody></table><p>Showing %d of %d matches</p>`, len(profile.Results), st.Played)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func (s *Server) competitionPage(r *http.Request) (templ.Component, error) {
	view, _, err := core.GetCompetitionResults(core.WithSuppressHeader(r.Context()), s.cfg.Clone(), s.mgr)
	if err != nil {
		return nil, err
	}
	return page("Competition", competitionView(view)), nil
}

func competitionView(view schema.CompetitionView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div class="metrics"><span>Matches played: %d</span><span>Live models: %d</span><span>%s</span></div>`,
			view.Summary.TotalMatches, view.Summary.DistinctTeams, templ.EscapeString(outwriter.CountdownLabel(view.Summary)))
		if len(view.Series) == 0 {
			b.WriteString(`<p>No matches played.</p>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(cumulativeAreaSVG(view.Series))
		b.WriteString(`<table><thead><tr><th>Date</th><th>Day</th><th>Matches</th><th>Cumulative</th></tr></thead><tbody>`)
		for _, d := range view.Series {
			fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%d</td><td>%d</td></tr>`,
				d.Date.Format(contract.DateFormat), d.Date.Weekday().String()[:3], d.Count, d.Cumulative)
		}
		b.WriteString(`</tbody></table>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
