package admin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/helper"
	"github.com/leoniltonftc/corrida/pkg/model"
)

var statusLabels = map[model.RaceStatus]string{
	model.RaceScheduled: "Programada",
	model.RaceActive:    "Ativa",
	model.RaceFinished:  "Finalizada",
}

func (a *App) renderRaces() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		doc := a.controller.Current()
		if len(doc.Races) == 0 {
			return a.reply(chatId, fmt.Sprintf("Nenhuma corrida cadastrada. Use %s Nome | Categoria | AAAA-MM-DDTHH:MM", cmdAddRace))
		}
		return a.replyTable(chatId, "Corridas", func(t table.Writer) {
			t.AppendHeader(table.Row{"ID", "Corrida", "Categoria", "Data", "Status", "OBS"})
			for _, race := range doc.Races {
				categoryName := race.CategoryID
				if category, ok := doc.Category(race.CategoryID); ok {
					categoryName = category.Name
				}
				obs := "👁"
				if !race.ObsVisible {
					obs = "-"
				}
				t.AppendRow(table.Row{race.ID, race.Name, categoryName, race.Date, statusLabels[race.Status], obs})
			}
		})
	}
}

func (a *App) handleAddRace(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 3 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s Nome | Categoria | AAAA-MM-DDTHH:MM", cmdAddRace))
		}
		doc := a.controller.Current()
		category, ok := resolveCategory(doc, args[1])
		if !ok {
			return a.reply(chatId, fmt.Sprintf("Categoria %q não encontrada. Veja %s", args[1], menuCategories))
		}
		localDate := args[2]
		date, err := time.ParseInLocation("2006-01-02T15:04", localDate, time.UTC)
		if err != nil {
			return a.reply(chatId, "Data inválida. Use o formato AAAA-MM-DDTHH:MM")
		}

		race := model.Race{
			ID:         helper.NewID("race"),
			Type:       string(model.EntityRace),
			Name:       args[0],
			CategoryID: category.ID,
			Date:       date.Format("2006-01-02T15:04:05.000Z"),
			Status:     model.RaceScheduled,
			ObsVisible: true,
			Timestamp:  helper.NowISO(),
		}

		// pre-populate the weather snapshot; no forecast is not a failure
		if forecast, err := a.weather.GetForecast(ctx, localDate); err != nil {
			log.Printf("no weather forecast for %s: %s\n", localDate, err.Error())
		} else {
			race.WindSpeed = &forecast.WindSpeed
			race.WindDirection = forecast.WindDirection
			race.Temperature = &forecast.Temperature
			race.Rain = &forecast.Rain
			race.Humidity = &forecast.Humidity
		}

		success := fmt.Sprintf("Corrida %q criada na categoria %q (%s).", race.Name, category.Name, race.ID)
		if race.WindSpeed != nil {
			success += fmt.Sprintf("\nPrevisão: vento %.1f km/h %s, %.1f°C, chuva %.1f mm, umidade %d%%.",
				*race.WindSpeed, race.WindDirection, *race.Temperature, *race.Rain, *race.Humidity)
		}
		return a.applyAndReply(ctx, chatId, command.NewAdd(race), success)
	}
}

// handleEditRace keeps the current value for every field left empty. The
// status is not editable here, it only moves through start and finish.
func (a *App) handleEditRace(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 2 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID | Nome | AAAA-MM-DDTHH:MM", cmdEditRace))
		}
		doc := a.controller.Current()
		race, ok := doc.Race(args[0])
		if !ok {
			return a.reply(chatId, "Corrida não encontrada.")
		}
		if args[1] != "" {
			race.Name = args[1]
		}
		if len(args) > 2 && args[2] != "" {
			date, err := time.ParseInLocation("2006-01-02T15:04", args[2], time.UTC)
			if err != nil {
				return a.reply(chatId, "Data inválida. Use o formato AAAA-MM-DDTHH:MM")
			}
			race.Date = date.Format("2006-01-02T15:04:05.000Z")
		}
		return a.applyAndReply(ctx, chatId, command.NewUpdate(race),
			fmt.Sprintf("Corrida %q atualizada.", race.Name))
	}
}

func (a *App) handleDelRace(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID", cmdDelRace))
		}
		doc := a.controller.Current()
		race, ok := doc.Race(args[0])
		if !ok {
			return a.reply(chatId, "Corrida não encontrada.")
		}
		if len(doc.ResultsForRace(race.ID)) > 0 {
			return a.reply(chatId, "Não é possível excluir esta corrida, pois existem resultados associados a ela.")
		}
		return a.applyAndReply(ctx, chatId, command.NewDelete(model.EntityRace, race.ID),
			fmt.Sprintf("Corrida %q excluída.", race.Name))
	}
}

// handleStartRace enforces the single-active-race rule: the document model
// stays permissive, the rule lives here at the command surface.
func (a *App) handleStartRace(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID", cmdStartRace))
		}
		doc := a.controller.Current()
		race, ok := doc.Race(args[0])
		if !ok {
			return a.reply(chatId, "Corrida não encontrada.")
		}
		if active, ok := doc.ActiveRace(); ok && active.ID != race.ID {
			return a.reply(chatId, fmt.Sprintf("A corrida %q já está ativa. Finalize-a antes de iniciar uma nova.", active.Name))
		}

		race.Status = model.RaceActive
		if race.StartTime == "" {
			race.StartTime = helper.NowISO()
		}
		return a.applyAndReply(ctx, chatId, command.NewUpdate(race),
			fmt.Sprintf("Corrida %q iniciada. 🏁", race.Name))
	}
}

func (a *App) handleFinishRace(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID", cmdFinishRace))
		}
		doc := a.controller.Current()
		race, ok := doc.Race(args[0])
		if !ok {
			return a.reply(chatId, "Corrida não encontrada.")
		}
		race.Status = model.RaceFinished
		return a.applyAndReply(ctx, chatId, command.NewUpdate(race),
			fmt.Sprintf("Corrida %q finalizada.", race.Name))
	}
}

func (a *App) handleToggleRaceObs(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID", cmdToggleRaceObs))
		}
		doc := a.controller.Current()
		race, ok := doc.Race(args[0])
		if !ok {
			return a.reply(chatId, "Corrida não encontrada.")
		}
		race.ObsVisible = !race.ObsVisible
		visibility := "visível no overlay"
		if !race.ObsVisible {
			visibility = "oculta do overlay"
		}
		return a.applyAndReply(ctx, chatId, command.NewUpdate(race),
			fmt.Sprintf("Corrida %q agora está %s.", race.Name, visibility))
	}
}

func (a *App) handleObsMaster(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 || (args[0] != "on" && args[0] != "off") {
			return a.reply(chatId, fmt.Sprintf("Uso: %s on|off", cmdObsMaster))
		}
		a.overlay.SetOverlayEnabled(args[0] == "on")
		if a.overlay.OverlayEnabled() {
			return a.reply(chatId, "Overlay OBS ativado.")
		}
		return a.reply(chatId, "Overlay OBS desativado.")
	}
}
