package admin

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leoniltonftc/corrida/pkg/standings"
)

func (a *App) renderStandings() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		doc := a.controller.Current()
		byCategory := standings.ByCategory(doc)

		sent := false
		for _, category := range doc.Categories {
			ranked := byCategory[category.ID]
			if len(ranked) == 0 {
				continue
			}
			sent = true
			err := a.replyTable(chatId, fmt.Sprintf("Classificação: %s", category.Name), func(t table.Writer) {
				t.AppendHeader(table.Row{"Pos", "Equipe", "Popeiro", "Melhor Pos", "Último Tempo"})
				for i, s := range ranked {
					latest := s.LatestRaceTime
					if latest == "" {
						latest = "N/A"
					}
					t.AppendRow(table.Row{i + 1, s.TeamName, s.Skipper, s.BestPosition, latest})
				}
			})
			if err != nil {
				return err
			}
		}
		if !sent {
			return a.reply(chatId, "Nenhuma equipe com resultados registrados ainda.")
		}
		return nil
	}
}
