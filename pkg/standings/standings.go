// Package standings recomputes the per-category ranking from race results.
// Calculate is a pure function of its inputs and is cheap enough to run on
// every read.
package standings

import (
	"sort"

	"github.com/leoniltonftc/corrida/pkg/model"
)

const epochFloor = "1970-01-01T00:00:00.000Z"

// Standing is one team's computed rank entry.
type Standing struct {
	TeamID         string             `json:"teamId"`
	TeamName       string             `json:"teamName"`
	Skipper        string             `json:"skipper"`
	Crew           []model.CrewMember `json:"crew"`
	BestPosition   int                `json:"bestPosition"`
	LatestRaceTime string             `json:"latestRaceTime,omitempty"`
}

type tally struct {
	standing        Standing
	racesCount      int
	latestTimestamp string
}

// Calculate ranks the given teams by their recorded results. Teams are
// expected to be pre-filtered to one category by the caller. A team with no
// results does not appear in the output. There is no points system: the best
// single placement governs rank, more completed races break ties, and the
// team name breaks ties last.
func Calculate(results []model.Result, teams []model.Team) []Standing {
	tallies := make(map[string]*tally, len(teams))
	for _, team := range teams {
		tallies[team.ID] = &tally{
			standing: Standing{
				TeamID:   team.ID,
				TeamName: team.Name,
				Skipper:  team.Skipper,
				Crew:     team.Crew,
			},
			latestTimestamp: epochFloor,
		}
	}

	for _, result := range results {
		t, known := tallies[result.TeamID]
		if !known {
			continue
		}
		t.racesCount++
		if t.standing.BestPosition == 0 || result.Position < t.standing.BestPosition {
			t.standing.BestPosition = result.Position
		}
		// RFC3339 UTC timestamps order lexicographically
		if result.Timestamp > t.latestTimestamp {
			t.latestTimestamp = result.Timestamp
			t.standing.LatestRaceTime = result.FinishTime
		}
	}

	ranked := make([]*tally, 0, len(tallies))
	for _, team := range teams {
		if t := tallies[team.ID]; t.racesCount > 0 {
			ranked = append(ranked, t)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		// smaller position number is better; an unset position sorts last
		if a.standing.BestPosition != b.standing.BestPosition {
			if a.standing.BestPosition == 0 {
				return false
			}
			if b.standing.BestPosition == 0 {
				return true
			}
			return a.standing.BestPosition < b.standing.BestPosition
		}
		if a.racesCount != b.racesCount {
			return a.racesCount > b.racesCount
		}
		return a.standing.TeamName < b.standing.TeamName
	})

	out := make([]Standing, 0, len(ranked))
	for _, t := range ranked {
		out = append(out, t.standing)
	}
	return out
}

// ByCategory computes the standings of every category that has teams,
// keyed by category id, the way the admin and display surfaces consume them.
func ByCategory(doc model.Document) map[string][]Standing {
	byCategory := make(map[string][]Standing)
	for _, category := range doc.Categories {
		teams := doc.TeamsInCategory(category.ID)
		if len(teams) == 0 {
			continue
		}
		byCategory[category.ID] = Calculate(doc.ResultsForTeams(teams), teams)
	}
	return byCategory
}
