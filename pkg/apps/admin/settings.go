package admin

import (
	"context"
	"fmt"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/helper"
	"github.com/leoniltonftc/corrida/pkg/model"
)

func (a *App) renderConfig() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		doc := a.controller.Current()
		settings, ok := doc.CurrentSettings()
		if !ok {
			return a.reply(chatId, fmt.Sprintf("Campeonato ainda não configurado. Use %s Título | Local | Datas | Organizador | Descrição", cmdSetConfig))
		}
		message := fmt.Sprintf("🏆 %s\n📍 %s\n", settings.ChampionshipTitle, settings.Location)
		if settings.Dates != "" {
			message += fmt.Sprintf("📅 %s\n", settings.Dates)
		}
		if settings.Organizer != "" {
			message += fmt.Sprintf("Organização: %s\n", settings.Organizer)
		}
		if settings.Description != "" {
			message += "\n" + settings.Description + "\n"
		}
		return a.reply(chatId, message)
	}
}

// handleSetConfig appends a new settings record instead of editing in place,
// so the configuration history stays intact.
func (a *App) handleSetConfig(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 2 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s Título | Local | Datas | Organizador | Descrição", cmdSetConfig))
		}
		settings := model.Settings{
			ID:                helper.NewID("settings"),
			Type:              string(model.EntitySettings),
			ChampionshipTitle: args[0],
			Location:          args[1],
			Timestamp:         helper.NowISO(),
		}
		if len(args) > 2 {
			settings.Dates = args[2]
		}
		if len(args) > 3 {
			settings.Organizer = args[3]
		}
		if len(args) > 4 {
			settings.Description = args[4]
		}
		return a.applyAndReply(ctx, chatId, command.NewAdd(settings),
			fmt.Sprintf("Configuração atualizada: %s.", settings.ChampionshipTitle))
	}
}
