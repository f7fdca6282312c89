package agg

import (
	"time"

	"github.com/huangsam/soccerboard/schema"
)

// DaysUntil returns the whole-day difference between the calendar dates of
// now and target, both taken in now's location. It is negative once target
// lies in the past.
func DaysUntil(now, target time.Time) int {
	loc := now.Location()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := target.In(loc).Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// Summarize computes the headline scalars of the competition.
// When clamp is set a passed season end shows zero days left; RawDaysLeft
// always keeps the signed value and SeasonEnded flags the overrun.
func Summarize(records []schema.MatchRecord, now, seasonEnd time.Time, clamp bool) (schema.CompetitionSummary, error) {
	if err := validateRecords(records); err != nil {
		return schema.CompetitionSummary{}, err
	}

	raw := DaysUntil(now, seasonEnd)
	summary := schema.CompetitionSummary{
		TotalMatches:  len(records),
		DistinctTeams: len(Teams(records)),
		SeasonEnd:     seasonEnd,
		DaysLeft:      raw,
		RawDaysLeft:   raw,
		SeasonEnded:   raw < 0,
	}
	if clamp && raw < 0 {
		summary.DaysLeft = 0
	}

	for _, r := range records {
		if summary.FirstMatch.IsZero() || r.Timestamp.Before(summary.FirstMatch) {
			summary.FirstMatch = r.Timestamp
		}
		if r.Timestamp.After(summary.LastMatch) {
			summary.LastMatch = r.Timestamp
		}
	}
	return summary, nil
}
