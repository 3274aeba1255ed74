package model

// EntityType discriminates the five record kinds held by a Document. The
// values match the `type` tag carried on the wire.
type EntityType string

const (
	EntitySettings EntityType = "settings"
	EntityCategory EntityType = "category"
	EntityTeam     EntityType = "team"
	EntityRace     EntityType = "race"
	EntityResult   EntityType = "result"
)

func (t EntityType) IsValid() bool {
	switch t {
	case EntitySettings, EntityCategory, EntityTeam, EntityRace, EntityResult:
		return true
	}
	return false
}

// Record is implemented by every entity stored in a Document.
type Record interface {
	RecordID() string
	Entity() EntityType
}

type Settings struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	ChampionshipTitle string `json:"championshipTitle"`
	Location          string `json:"location"`
	Dates             string `json:"dates,omitempty"`
	Organizer         string `json:"organizer,omitempty"`
	Description       string `json:"description,omitempty"`
	Timestamp         string `json:"timestamp"`
}

func (s Settings) RecordID() string   { return s.ID }
func (s Settings) Entity() EntityType { return EntitySettings }

type Category struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c Category) RecordID() string   { return c.ID }
func (c Category) Entity() EntityType { return EntityCategory }

// CrewFunction is one of the fixed on-board positions a crew member can hold.
type CrewFunction string

const (
	FunctionApoio      CrewFunction = "Apoio"
	FunctionBolineiro  CrewFunction = "Bolineiro"
	FunctionEstaMestre CrewFunction = "Estás Mestre"
	FunctionProeiro    CrewFunction = "Proeiro"
	FunctionTopoProa   CrewFunction = "Topo de Proa"
	FunctionTopoRe     CrewFunction = "Topo de Ré"
)

func CrewFunctions() []CrewFunction {
	return []CrewFunction{
		FunctionApoio,
		FunctionBolineiro,
		FunctionEstaMestre,
		FunctionProeiro,
		FunctionTopoProa,
		FunctionTopoRe,
	}
}

func (f CrewFunction) IsValid() bool {
	for _, known := range CrewFunctions() {
		if f == known {
			return true
		}
	}
	return false
}

type CrewMember struct {
	Name   string       `json:"name"`
	Funcao CrewFunction `json:"funcao"`
}

type Team struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	Name       string       `json:"name"`
	Cidade     string       `json:"cidade"`
	CategoryID string       `json:"categoryId"`
	Skipper    string       `json:"skipper"`
	Crew       []CrewMember `json:"crew"`
}

func (t Team) RecordID() string   { return t.ID }
func (t Team) Entity() EntityType { return EntityTeam }

type RaceStatus string

const (
	RaceScheduled RaceStatus = "scheduled"
	RaceActive    RaceStatus = "active"
	RaceFinished  RaceStatus = "finished"
)

type Race struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	CategoryID    string     `json:"categoryId"`
	Date          string     `json:"date"`
	Status        RaceStatus `json:"status"`
	StartTime     string     `json:"startTime,omitempty"`
	WindSpeed     *float64   `json:"windSpeed,omitempty"`
	WindDirection string     `json:"windDirection,omitempty"`
	Temperature   *float64   `json:"temperature,omitempty"`
	Rain          *float64   `json:"rain,omitempty"`
	Humidity      *int       `json:"humidity,omitempty"`
	ObsVisible    bool       `json:"obsVisible"`
	Timestamp     string     `json:"timestamp"`
}

func (r Race) RecordID() string   { return r.ID }
func (r Race) Entity() EntityType { return EntityRace }

type Result struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	RaceID        string `json:"raceId"`
	TeamID        string `json:"teamId"`
	Position      int    `json:"position"`
	FinishTime    string `json:"finishTime,omitempty"`
	ElapsedTimeMs *int64 `json:"elapsedTimeMs,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Timestamp     string `json:"timestamp"`
}

func (r Result) RecordID() string   { return r.ID }
func (r Result) Entity() EntityType { return EntityResult }
