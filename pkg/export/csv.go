// Package export renders read-only snapshots of the document as CSV files
// and printable reports. Pure formatting, no feedback into the core.
package export

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/standings"
)

// excel needs the BOM to pick up the encoding
const utf8BOM = "\uFEFF"

func renderCSV(header table.Row, rowFn func(t table.Writer)) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.AppendHeader(header)
	rowFn(t)
	t.RenderCSV()
	return []byte(b.String())
}

// StandingsCSV exports the overall classification, category by category in
// document order.
func StandingsCSV(doc model.Document) []byte {
	byCategory := standings.ByCategory(doc)
	return renderCSV(
		table.Row{"categoria", "posicao", "equipe", "popeiro", "tripulacao", "ultimo_tempo_registrado", "melhor_posicao_obtida"},
		func(t table.Writer) {
			for _, category := range doc.Categories {
				for i, s := range byCategory[category.ID] {
					latest := s.LatestRaceTime
					if latest == "" {
						latest = "N/A"
					}
					t.AppendRow(table.Row{category.Name, i + 1, s.TeamName, s.Skipper, crewSummary(s.Crew), latest, s.BestPosition})
				}
			}
		})
}

func TeamsCSV(doc model.Document) []byte {
	return renderCSV(
		table.Row{"equipe", "cidade", "categoria", "popeiro", "tripulacao"},
		func(t table.Writer) {
			for _, team := range doc.Teams {
				t.AppendRow(table.Row{team.Name, team.Cidade, categoryName(doc, team.CategoryID), team.Skipper, crewSummary(team.Crew)})
			}
		})
}

func RacesCSV(doc model.Document) []byte {
	return renderCSV(
		table.Row{"corrida", "categoria", "data_hora", "status", "hora_inicio", "vento_velocidade_kmh", "vento_direcao", "temperatura_c", "chuva_mm", "umidade_percentual", "visivel_no_obs"},
		func(t table.Writer) {
			for _, race := range doc.Races {
				t.AppendRow(table.Row{
					race.Name,
					categoryName(doc, race.CategoryID),
					race.Date,
					string(race.Status),
					race.StartTime,
					floatOrEmpty(race.WindSpeed),
					race.WindDirection,
					floatOrEmpty(race.Temperature),
					floatOrEmpty(race.Rain),
					intOrEmpty(race.Humidity),
					race.ObsVisible,
				})
			}
		})
}

func ResultsCSV(doc model.Document) []byte {
	return renderCSV(
		table.Row{"corrida", "equipe", "posicao", "tempo", "observacoes", "registrado_em"},
		func(t table.Writer) {
			for _, result := range doc.Results {
				raceName := result.RaceID
				if race, ok := doc.Race(result.RaceID); ok {
					raceName = race.Name
				}
				teamName := result.TeamID
				if team, ok := doc.Team(result.TeamID); ok {
					teamName = team.Name
				}
				t.AppendRow(table.Row{raceName, teamName, result.Position, result.FinishTime, result.Notes, result.Timestamp})
			}
		})
}

func categoryName(doc model.Document, categoryID string) string {
	if category, ok := doc.Category(categoryID); ok {
		return category.Name
	}
	return categoryID
}

func crewSummary(crew []model.CrewMember) string {
	parts := make([]string, 0, len(crew))
	for _, member := range crew {
		parts = append(parts, fmt.Sprintf("%s (%s)", member.Name, member.Funcao))
	}
	return strings.Join(parts, "; ")
}

func floatOrEmpty(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func intOrEmpty(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
