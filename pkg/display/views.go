// Package display serves the read-only surfaces: public page, TV panel,
// OBS overlay, the live websocket feed and the CSV/report downloads. All of
// them are projections over the current document.
package display

import (
	"sort"

	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/standings"
)

const overlayMaxRows = 10

type RaceView struct {
	model.Race
	CategoryName string `json:"categoryName"`
}

type CategoryStandings struct {
	CategoryID   string               `json:"categoryId"`
	CategoryName string               `json:"categoryName"`
	Standings    []standings.Standing `json:"standings"`
}

// LiveView is the snapshot pushed to every display surface.
type LiveView struct {
	ChampionshipTitle string              `json:"championshipTitle"`
	Location          string              `json:"location"`
	Dates             string              `json:"dates,omitempty"`
	Organizer         string              `json:"organizer,omitempty"`
	ActiveRace        *RaceView           `json:"activeRace,omitempty"`
	Races             []RaceView          `json:"races"`
	Categories        []CategoryStandings `json:"categories"`
	OverlayEnabled    bool                `json:"overlayEnabled"`
	OverlayRace       *RaceView           `json:"overlayRace,omitempty"`
	OverlayStandings  []standings.Standing `json:"overlayStandings,omitempty"`
}

// BuildLiveView projects the document into what the displays render.
func BuildLiveView(doc model.Document, overlayEnabled bool) LiveView {
	view := LiveView{
		Races:          []RaceView{},
		Categories:     []CategoryStandings{},
		OverlayEnabled: overlayEnabled,
	}

	if settings, ok := doc.CurrentSettings(); ok {
		view.ChampionshipTitle = settings.ChampionshipTitle
		view.Location = settings.Location
		view.Dates = settings.Dates
		view.Organizer = settings.Organizer
	}

	for _, race := range doc.Races {
		view.Races = append(view.Races, raceView(doc, race))
	}

	if active, ok := doc.ActiveRace(); ok {
		rv := raceView(doc, active)
		view.ActiveRace = &rv
	}

	byCategory := standings.ByCategory(doc)
	for _, category := range doc.Categories {
		ranked, ok := byCategory[category.ID]
		if !ok {
			continue
		}
		view.Categories = append(view.Categories, CategoryStandings{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Standings:    ranked,
		})
	}

	if overlayEnabled {
		if race, ok := overlayRace(doc); ok {
			rv := raceView(doc, race)
			view.OverlayRace = &rv
			view.OverlayStandings = overlayStandings(doc, race)
		}
	}

	return view
}

func raceView(doc model.Document, race model.Race) RaceView {
	name := race.CategoryID
	if category, ok := doc.Category(race.CategoryID); ok {
		name = category.Name
	}
	return RaceView{Race: race, CategoryName: name}
}

// overlayRace picks what the OBS overlay shows: the active race if visible,
// otherwise the most recent finished one.
func overlayRace(doc model.Document) (model.Race, bool) {
	visible := []model.Race{}
	for _, race := range doc.Races {
		if race.ObsVisible {
			visible = append(visible, race)
		}
	}
	for _, race := range visible {
		if race.Status == model.RaceActive {
			return race, true
		}
	}
	finished := []model.Race{}
	for _, race := range visible {
		if race.Status == model.RaceFinished {
			finished = append(finished, race)
		}
	}
	if len(finished) == 0 {
		return model.Race{}, false
	}
	sort.SliceStable(finished, func(i, j int) bool {
		return finished[i].Date > finished[j].Date
	})
	return finished[0], true
}

func overlayStandings(doc model.Document, race model.Race) []standings.Standing {
	teams := doc.TeamsInCategory(race.CategoryID)
	ranked := standings.Calculate(doc.ResultsForTeams(teams), teams)
	if len(ranked) > overlayMaxRows {
		ranked = ranked[:overlayMaxRows]
	}
	return ranked
}
