package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/helper"
	"github.com/leoniltonftc/corrida/pkg/model"
)

func (a *App) renderResults(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		doc := a.controller.Current()
		results := doc.Results
		title := "Resultados"
		if len(args) > 0 && args[0] != "" {
			race, ok := resolveRace(doc, args[0])
			if !ok {
				return a.reply(chatId, "Corrida não encontrada.")
			}
			results = doc.ResultsForRace(race.ID)
			title = fmt.Sprintf("Resultados: %s", race.Name)
		}
		if len(results) == 0 {
			return a.reply(chatId, fmt.Sprintf("Nenhum resultado registrado. Use %s Corrida | Equipe | Posição | Observações", cmdAddResult))
		}
		return a.replyTable(chatId, title, func(t table.Writer) {
			t.AppendHeader(table.Row{"ID", "Corrida", "Equipe", "Pos", "Tempo"})
			for _, result := range results {
				raceName := result.RaceID
				if race, ok := doc.Race(result.RaceID); ok {
					raceName = race.Name
				}
				teamName := result.TeamID
				if team, ok := doc.Team(result.TeamID); ok {
					teamName = team.Name
				}
				t.AppendRow(table.Row{result.ID, raceName, teamName, result.Position, result.FinishTime})
			}
		})
	}
}

func (a *App) handleAddResult(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 3 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s Corrida | Equipe | Posição | Observações", cmdAddResult))
		}
		doc := a.controller.Current()
		race, ok := resolveRace(doc, args[0])
		if !ok {
			return a.reply(chatId, "Corrida não encontrada.")
		}
		team, ok := resolveTeam(doc, args[1])
		if !ok {
			return a.reply(chatId, "Equipe não encontrada.")
		}
		if team.CategoryID != race.CategoryID {
			return a.reply(chatId, fmt.Sprintf("A equipe %q não pertence à categoria da corrida %q.", team.Name, race.Name))
		}
		position, err := strconv.Atoi(args[2])
		if err != nil || position < 1 {
			return a.reply(chatId, "Posição inválida. Informe um número a partir de 1.")
		}
		for _, existing := range doc.ResultsForRace(race.ID) {
			if existing.TeamID == team.ID {
				return a.reply(chatId, fmt.Sprintf("A equipe %q já possui resultado nesta corrida (%s).", team.Name, existing.ID))
			}
		}

		notes := ""
		if len(args) > 3 {
			notes = args[3]
		}
		result := newResult(race, team.ID, position, notes)

		success := fmt.Sprintf("Resultado registrado: %s em %dº lugar na corrida %q.", team.Name, position, race.Name)
		if result.FinishTime != "" {
			success += fmt.Sprintf(" Tempo: %s", result.FinishTime)
		}
		return a.applyAndReply(ctx, chatId, command.NewAdd(result), success)
	}
}

func (a *App) handleDelResult(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID", cmdDelResult))
		}
		doc := a.controller.Current()
		result, ok := doc.Result(args[0])
		if !ok {
			return a.reply(chatId, "Resultado não encontrado.")
		}
		return a.applyAndReply(ctx, chatId, command.NewDelete(model.EntityResult, result.ID),
			fmt.Sprintf("Resultado %s excluído.", result.ID))
	}
}

// newResult stamps the timing fields. While the race clock is running the
// finish is recorded as formatted elapsed time since the start; otherwise the
// result carries the position only and the time stays absent.
func newResult(race model.Race, teamID string, position int, notes string) model.Result {
	result := model.Result{
		ID:        helper.NewID("result"),
		Type:      string(model.EntityResult),
		RaceID:    race.ID,
		TeamID:    teamID,
		Position:  position,
		Notes:     notes,
		Timestamp: helper.NowISO(),
	}
	if race.Status == model.RaceActive && race.StartTime != "" {
		if ms, ok := elapsedSince(race.StartTime, helper.NowISO()); ok {
			result.ElapsedTimeMs = &ms
			result.FinishTime = helper.FormatElapsedTime(ms)
		}
	}
	return result
}

func resolveRace(doc model.Document, ref string) (model.Race, bool) {
	if race, ok := doc.Race(ref); ok {
		return race, true
	}
	for _, race := range doc.Races {
		if strings.EqualFold(race.Name, ref) {
			return race, true
		}
	}
	return model.Race{}, false
}

func resolveTeam(doc model.Document, ref string) (model.Team, bool) {
	if team, ok := doc.Team(ref); ok {
		return team, true
	}
	for _, team := range doc.Teams {
		if strings.EqualFold(team.Name, ref) {
			return team, true
		}
	}
	return model.Team{}, false
}

func elapsedSince(start, finish string) (int64, bool) {
	const layout = "2006-01-02T15:04:05.000Z"
	from, err := time.Parse(layout, start)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse(layout, finish)
	if err != nil || to.Before(from) {
		return 0, false
	}
	return to.Sub(from).Milliseconds(), true
}
