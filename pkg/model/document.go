package model

// Document is the normalized in-memory representation of the whole event:
// settings history, categories, teams, races and results. Each collection
// keeps insertion order; records are keyed by their unique id.
type Document struct {
	Settings   []Settings `json:"settings"`
	Categories []Category `json:"categories"`
	Teams      []Team     `json:"teams"`
	Races      []Race     `json:"races"`
	Results    []Result   `json:"results"`
}

func EmptyDocument() Document {
	return Document{
		Settings:   []Settings{},
		Categories: []Category{},
		Teams:      []Team{},
		Races:      []Race{},
		Results:    []Result{},
	}
}

func upsertRecord[T Record](list []T, item T) []T {
	for i := range list {
		if list[i].RecordID() == item.RecordID() {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func removeRecord[T Record](list []T, id string) []T {
	kept := make([]T, 0, len(list))
	for _, item := range list {
		if item.RecordID() != id {
			kept = append(kept, item)
		}
	}
	return kept
}

func findRecord[T Record](list []T, id string) (T, bool) {
	for _, item := range list {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Get returns the record with the given id, if present. Absence is a normal
// outcome, not an error.
func (d Document) Get(t EntityType, id string) (Record, bool) {
	switch t {
	case EntitySettings:
		return asRecord(findRecord(d.Settings, id))
	case EntityCategory:
		return asRecord(findRecord(d.Categories, id))
	case EntityTeam:
		return asRecord(findRecord(d.Teams, id))
	case EntityRace:
		return asRecord(findRecord(d.Races, id))
	case EntityResult:
		return asRecord(findRecord(d.Results, id))
	}
	return nil, false
}

func asRecord[T Record](item T, ok bool) (Record, bool) {
	if !ok {
		return nil, false
	}
	return item, true
}

// Upsert appends the record when its id is absent, or replaces the existing
// record in place, preserving its position.
func (d *Document) Upsert(rec Record) {
	switch item := rec.(type) {
	case Settings:
		d.Settings = upsertRecord(d.Settings, item)
	case Category:
		d.Categories = upsertRecord(d.Categories, item)
	case Team:
		d.Teams = upsertRecord(d.Teams, item)
	case Race:
		d.Races = upsertRecord(d.Races, item)
	case Result:
		d.Results = upsertRecord(d.Results, item)
	}
}

// Remove deletes the record with the given id. Removing an absent id is a
// no-op.
func (d *Document) Remove(t EntityType, id string) {
	switch t {
	case EntitySettings:
		d.Settings = removeRecord(d.Settings, id)
	case EntityCategory:
		d.Categories = removeRecord(d.Categories, id)
	case EntityTeam:
		d.Teams = removeRecord(d.Teams, id)
	case EntityRace:
		d.Races = removeRecord(d.Races, id)
	case EntityResult:
		d.Results = removeRecord(d.Results, id)
	}
}

// CurrentSettings returns the most recently appended settings record. The
// settings history is append-only, so the last entry is the active one.
func (d Document) CurrentSettings() (Settings, bool) {
	if len(d.Settings) == 0 {
		return Settings{}, false
	}
	return d.Settings[len(d.Settings)-1], true
}

func (d Document) Category(id string) (Category, bool) { return findRecord(d.Categories, id) }
func (d Document) Team(id string) (Team, bool)         { return findRecord(d.Teams, id) }
func (d Document) Race(id string) (Race, bool)         { return findRecord(d.Races, id) }
func (d Document) Result(id string) (Result, bool)     { return findRecord(d.Results, id) }

// TeamsInCategory keeps the document's insertion order.
func (d Document) TeamsInCategory(categoryID string) []Team {
	teams := []Team{}
	for _, t := range d.Teams {
		if t.CategoryID == categoryID {
			teams = append(teams, t)
		}
	}
	return teams
}

// ResultsForTeams returns the results whose team is in the given set.
func (d Document) ResultsForTeams(teams []Team) []Result {
	ids := make(map[string]bool, len(teams))
	for _, t := range teams {
		ids[t.ID] = true
	}
	results := []Result{}
	for _, r := range d.Results {
		if ids[r.TeamID] {
			results = append(results, r)
		}
	}
	return results
}

func (d Document) ResultsForRace(raceID string) []Result {
	results := []Result{}
	for _, r := range d.Results {
		if r.RaceID == raceID {
			results = append(results, r)
		}
	}
	return results
}

// ActiveRace returns the race currently in active status, if any.
func (d Document) ActiveRace() (Race, bool) {
	for _, r := range d.Races {
		if r.Status == RaceActive {
			return r, true
		}
	}
	return Race{}, false
}

// Clone returns a deep copy. Mutating the copy never affects the original,
// which is what makes optimistic snapshots and rollback safe.
func (d Document) Clone() Document {
	out := Document{
		Settings:   append([]Settings{}, d.Settings...),
		Categories: append([]Category{}, d.Categories...),
		Teams:      make([]Team, 0, len(d.Teams)),
		Races:      make([]Race, 0, len(d.Races)),
		Results:    make([]Result, 0, len(d.Results)),
	}
	for _, t := range d.Teams {
		t.Crew = append([]CrewMember{}, t.Crew...)
		out.Teams = append(out.Teams, t)
	}
	for _, r := range d.Races {
		r.WindSpeed = cloneFloat(r.WindSpeed)
		r.Temperature = cloneFloat(r.Temperature)
		r.Rain = cloneFloat(r.Rain)
		r.Humidity = cloneInt(r.Humidity)
		out.Races = append(out.Races, r)
	}
	for _, r := range d.Results {
		r.ElapsedTimeMs = cloneInt64(r.ElapsedTimeMs)
		out.Results = append(out.Results, r)
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
