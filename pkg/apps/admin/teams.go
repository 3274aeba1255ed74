package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/helper"
	"github.com/leoniltonftc/corrida/pkg/model"
)

func (a *App) renderTeams() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		doc := a.controller.Current()
		if len(doc.Teams) == 0 {
			return a.reply(chatId, fmt.Sprintf("Nenhuma equipe cadastrada. Use %s Nome | Cidade | Categoria | Popeiro | Tripulação", cmdAddTeam))
		}
		return a.replyTable(chatId, "Equipes", func(t table.Writer) {
			t.AppendHeader(table.Row{"ID", "Equipe", "Cidade", "Categoria", "Popeiro"})
			for _, team := range doc.Teams {
				categoryName := team.CategoryID
				if category, ok := doc.Category(team.CategoryID); ok {
					categoryName = category.Name
				}
				t.AppendRow(table.Row{team.ID, team.Name, team.Cidade, categoryName, team.Skipper})
			}
		})
	}
}

func (a *App) handleAddTeam(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 4 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s Nome | Cidade | Categoria | Popeiro | Nome:Função;Nome:Função", cmdAddTeam))
		}
		doc := a.controller.Current()
		category, ok := resolveCategory(doc, args[2])
		if !ok {
			return a.reply(chatId, fmt.Sprintf("Categoria %q não encontrada. Veja %s", args[2], menuCategories))
		}

		crew := []model.CrewMember{}
		if len(args) > 4 && args[4] != "" {
			var err error
			crew, err = parseCrew(args[4])
			if err != nil {
				return a.reply(chatId, err.Error())
			}
		}

		team := model.Team{
			ID:         helper.NewID("team"),
			Type:       string(model.EntityTeam),
			Name:       args[0],
			Cidade:     args[1],
			CategoryID: category.ID,
			Skipper:    args[3],
			Crew:       crew,
		}
		return a.applyAndReply(ctx, chatId, command.NewAdd(team),
			fmt.Sprintf("Equipe %q criada na categoria %q (%s).", team.Name, category.Name, team.ID))
	}
}

// handleEditTeam keeps the current value for every field left empty.
func (a *App) handleEditTeam(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 2 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID | Nome | Cidade | Categoria | Popeiro | Tripulação", cmdEditTeam))
		}
		doc := a.controller.Current()
		team, ok := doc.Team(args[0])
		if !ok {
			return a.reply(chatId, "Equipe não encontrada.")
		}
		if args[1] != "" {
			team.Name = args[1]
		}
		if len(args) > 2 && args[2] != "" {
			team.Cidade = args[2]
		}
		if len(args) > 3 && args[3] != "" {
			category, ok := resolveCategory(doc, args[3])
			if !ok {
				return a.reply(chatId, fmt.Sprintf("Categoria %q não encontrada. Veja %s", args[3], menuCategories))
			}
			team.CategoryID = category.ID
		}
		if len(args) > 4 && args[4] != "" {
			team.Skipper = args[4]
		}
		if len(args) > 5 && args[5] != "" {
			crew, err := parseCrew(args[5])
			if err != nil {
				return a.reply(chatId, err.Error())
			}
			team.Crew = crew
		}
		return a.applyAndReply(ctx, chatId, command.NewUpdate(team),
			fmt.Sprintf("Equipe %q atualizada.", team.Name))
	}
}

func (a *App) handleDelTeam(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID", cmdDelTeam))
		}
		doc := a.controller.Current()
		team, ok := doc.Team(args[0])
		if !ok {
			return a.reply(chatId, "Equipe não encontrada.")
		}
		for _, result := range doc.Results {
			if result.TeamID == team.ID {
				return a.reply(chatId, "Não é possível excluir esta equipe, pois existem resultados associados a ela.")
			}
		}
		return a.applyAndReply(ctx, chatId, command.NewDelete(model.EntityTeam, team.ID),
			fmt.Sprintf("Equipe %q excluída.", team.Name))
	}
}

// resolveCategory accepts a category id or its exact name.
func resolveCategory(doc model.Document, ref string) (model.Category, bool) {
	if category, ok := doc.Category(ref); ok {
		return category, true
	}
	for _, category := range doc.Categories {
		if strings.EqualFold(category.Name, ref) {
			return category, true
		}
	}
	return model.Category{}, false
}

// parseCrew reads "Nome:Função;Nome:Função" and validates every role
// against the fixed crew function enumeration.
func parseCrew(raw string) ([]model.CrewMember, error) {
	crew := []model.CrewMember{}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("Tripulante inválido: %q. Use Nome:Função", entry)
		}
		funcao := model.CrewFunction(strings.TrimSpace(parts[1]))
		if !funcao.IsValid() {
			valid := make([]string, 0, len(model.CrewFunctions()))
			for _, f := range model.CrewFunctions() {
				valid = append(valid, string(f))
			}
			return nil, fmt.Errorf("Função %q inválida. Funções: %s", funcao, strings.Join(valid, ", "))
		}
		crew = append(crew, model.CrewMember{Name: strings.TrimSpace(parts[0]), Funcao: funcao})
	}
	return crew, nil
}
