package schema

import "strings"

// TeamSeparator splits the owner from the team name in a team identifier.
const TeamSeparator = "/"

// ParseTeamID splits "owner/team" on the first separator.
// Identifiers without a separator are returned as owner=id, team="" and ok=false,
// which callers treat as ErrMalformedIdentifier without failing.
func ParseTeamID(id string) (owner, team string, ok bool) {
	owner, team, ok = strings.Cut(id, TeamSeparator)
	if !ok {
		return id, "", false
	}
	return owner, team, true
}

// ValidateTeamID returns ErrMalformedIdentifier when the id has no owner/team separator.
func ValidateTeamID(id string) error {
	if _, _, ok := ParseTeamID(id); !ok {
		return &RecordError{Field: "team", Value: id, Err: ErrMalformedIdentifier}
	}
	return nil
}

// NewStanding returns a zeroed standing for the given team id.
func NewStanding(id string) TeamStanding {
	owner, team, _ := ParseTeamID(id)
	return TeamStanding{TeamID: id, Owner: owner, Team: team}
}

// OutcomeFor mirrors a result code to the perspective of the home or away side.
func OutcomeFor(r ResultCode, home bool) Outcome {
	switch r {
	case Draw:
		return OutcomeDraw
	case HomeWin:
		if home {
			return OutcomeWin
		}
		return OutcomeLoss
	default:
		if home {
			return OutcomeLoss
		}
		return OutcomeWin
	}
}
