package admin

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leoniltonftc/corrida/pkg/export"
	"github.com/leoniltonftc/corrida/pkg/model"
)

var exporters = map[string]struct {
	fileName string
	render   func(doc model.Document) []byte
}{
	"classificacao": {"classificacao_geral.csv", export.StandingsCSV},
	"equipes":       {"equipes.csv", export.TeamsCSV},
	"corridas":      {"corridas.csv", export.RacesCSV},
	"resultados":    {"resultados.csv", export.ResultsCSV},
}

func (a *App) handleExport(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s classificacao|equipes|corridas|resultados", menuExport))
		}
		exporter, ok := exporters[args[0]]
		if !ok {
			return a.reply(chatId, fmt.Sprintf("Exportação %q desconhecida. Opções: classificacao, equipes, corridas, resultados", args[0]))
		}
		doc := a.controller.Current()
		file := tgbotapi.FileBytes{
			Name:  exporter.fileName,
			Bytes: exporter.render(doc),
		}
		_, err := a.bot.Send(tgbotapi.NewDocument(chatId, file))
		return err
	}
}
