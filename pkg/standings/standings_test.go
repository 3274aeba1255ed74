package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoniltonftc/corrida/pkg/model"
)

func team(id, name string) model.Team {
	return model.Team{ID: id, Type: string(model.EntityTeam), Name: name}
}

func result(teamID string, position int, finishTime, timestamp string) model.Result {
	return model.Result{
		ID:         "result_" + teamID + finishTime,
		Type:       string(model.EntityResult),
		TeamID:     teamID,
		Position:   position,
		FinishTime: finishTime,
		Timestamp:  timestamp,
	}
}

func TestCalculate_BestPositionGovernsRank(t *testing.T) {
	teams := []model.Team{team("team_a", "Alpha"), team("team_b", "Beta")}
	results := []model.Result{
		result("team_a", 3, "00:47:12.3", "2024-06-01T10:00:00.000Z"),
		result("team_a", 5, "00:49:05.0", "2024-06-02T10:00:00.000Z"),
		result("team_b", 1, "00:44:58.1", "2024-06-01T10:05:00.000Z"),
	}

	ranked := Calculate(results, teams)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Beta", ranked[0].TeamName)
	assert.Equal(t, 1, ranked[0].BestPosition)
	assert.Equal(t, "Alpha", ranked[1].TeamName)
	assert.Equal(t, 3, ranked[1].BestPosition)
}

func TestCalculate_MoreRacesBreaksPositionTie(t *testing.T) {
	teams := []model.Team{team("team_a", "Alpha"), team("team_b", "Beta")}
	results := []model.Result{
		result("team_a", 2, "00:45:30.0", "2024-06-01T10:00:00.000Z"),
		result("team_b", 2, "00:45:41.7", "2024-06-01T10:01:00.000Z"),
		result("team_b", 4, "00:48:02.5", "2024-06-02T10:00:00.000Z"),
	}

	ranked := Calculate(results, teams)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Beta", ranked[0].TeamName)
	assert.Equal(t, "Alpha", ranked[1].TeamName)
}

func TestCalculate_NameBreaksFullTie(t *testing.T) {
	teams := []model.Team{team("team_z", "Zeta"), team("team_a", "Alpha")}
	results := []model.Result{
		result("team_z", 1, "00:44:00.0", "2024-06-01T10:00:00.000Z"),
		result("team_a", 1, "00:44:10.2", "2024-06-01T10:01:00.000Z"),
	}

	ranked := Calculate(results, teams)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Alpha", ranked[0].TeamName)
	assert.Equal(t, "Zeta", ranked[1].TeamName)
}

func TestCalculate_TeamsWithoutResultsAreExcluded(t *testing.T) {
	teams := []model.Team{team("team_a", "Alpha"), team("team_b", "Beta")}
	results := []model.Result{
		result("team_a", 1, "00:44:00.0", "2024-06-01T10:00:00.000Z"),
	}

	ranked := Calculate(results, teams)

	require.Len(t, ranked, 1)
	assert.Equal(t, "Alpha", ranked[0].TeamName)
}

func TestCalculate_LatestRaceTimeFollowsNewestTimestamp(t *testing.T) {
	teams := []model.Team{team("team_a", "Alpha")}
	// results arrive out of order; the newest timestamp wins
	results := []model.Result{
		result("team_a", 2, "00:50:12.0", "2024-06-03T10:00:00.000Z"),
		result("team_a", 1, "00:44:00.0", "2024-06-01T10:00:00.000Z"),
		result("team_a", 4, "00:52:33.9", "2024-06-02T10:00:00.000Z"),
	}

	ranked := Calculate(results, teams)

	require.Len(t, ranked, 1)
	assert.Equal(t, "00:50:12.0", ranked[0].LatestRaceTime)
	assert.Equal(t, 1, ranked[0].BestPosition)
}

func TestCalculate_IgnoresResultsOfUnknownTeams(t *testing.T) {
	teams := []model.Team{team("team_a", "Alpha")}
	results := []model.Result{
		result("team_a", 2, "00:45:30.0", "2024-06-01T10:00:00.000Z"),
		result("team_other_category", 1, "00:44:00.0", "2024-06-01T10:00:00.000Z"),
	}

	ranked := Calculate(results, teams)

	require.Len(t, ranked, 1)
	assert.Equal(t, "Alpha", ranked[0].TeamName)
}

func TestCalculate_IsDeterministic(t *testing.T) {
	teams := []model.Team{team("team_a", "Alpha"), team("team_b", "Beta"), team("team_c", "Gamma")}
	results := []model.Result{
		result("team_a", 1, "00:44:00.0", "2024-06-01T10:00:00.000Z"),
		result("team_b", 1, "00:44:05.1", "2024-06-01T10:01:00.000Z"),
		result("team_c", 1, "00:44:09.8", "2024-06-01T10:02:00.000Z"),
	}

	first := Calculate(results, teams)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(results, teams))
	}
}

func TestByCategory_GroupsTeamsByTheirCategory(t *testing.T) {
	doc := model.EmptyDocument()
	doc.Upsert(model.Category{ID: "cat_1", Name: "40 HP"})
	doc.Upsert(model.Category{ID: "cat_2", Name: "60 HP"})
	doc.Upsert(model.Team{ID: "team_a", Name: "Alpha", CategoryID: "cat_1"})
	doc.Upsert(model.Team{ID: "team_b", Name: "Beta", CategoryID: "cat_2"})
	doc.Upsert(result("team_a", 1, "00:44:00.0", "2024-06-01T10:00:00.000Z"))
	doc.Upsert(result("team_b", 2, "00:46:20.4", "2024-06-01T10:01:00.000Z"))

	byCategory := ByCategory(doc)

	require.Len(t, byCategory, 2)
	require.Len(t, byCategory["cat_1"], 1)
	assert.Equal(t, "Alpha", byCategory["cat_1"][0].TeamName)
	require.Len(t, byCategory["cat_2"], 1)
	assert.Equal(t, "Beta", byCategory["cat_2"][0].TeamName)
}
