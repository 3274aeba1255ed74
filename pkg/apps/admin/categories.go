package admin

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/helper"
	"github.com/leoniltonftc/corrida/pkg/model"
)

func (a *App) renderCategories() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		doc := a.controller.Current()
		if len(doc.Categories) == 0 {
			return a.reply(chatId, fmt.Sprintf("Nenhuma categoria cadastrada. Use %s Nome | Descrição", cmdAddCategory))
		}
		return a.replyTable(chatId, "Categorias", func(t table.Writer) {
			t.AppendHeader(table.Row{"ID", "Nome", "Equipes"})
			for _, category := range doc.Categories {
				t.AppendRow(table.Row{category.ID, category.Name, len(doc.TeamsInCategory(category.ID))})
			}
		})
	}
}

func (a *App) handleAddCategory(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 || args[0] == "" {
			return a.reply(chatId, fmt.Sprintf("Uso: %s Nome | Descrição", cmdAddCategory))
		}
		category := model.Category{
			ID:   helper.NewID("cat"),
			Type: string(model.EntityCategory),
			Name: args[0],
		}
		if len(args) > 1 {
			category.Description = args[1]
		}
		return a.applyAndReply(ctx, chatId, command.NewAdd(category),
			fmt.Sprintf("Categoria %q criada (%s).", category.Name, category.ID))
	}
}

// handleEditCategory keeps the current value for every field left empty.
func (a *App) handleEditCategory(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 2 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID | Nome | Descrição", cmdEditCategory))
		}
		doc := a.controller.Current()
		category, ok := doc.Category(args[0])
		if !ok {
			return a.reply(chatId, "Categoria não encontrada.")
		}
		if args[1] != "" {
			category.Name = args[1]
		}
		if len(args) > 2 && args[2] != "" {
			category.Description = args[2]
		}
		return a.applyAndReply(ctx, chatId, command.NewUpdate(category),
			fmt.Sprintf("Categoria %q atualizada.", category.Name))
	}
}

func (a *App) handleDelCategory(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 1 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s ID", cmdDelCategory))
		}
		doc := a.controller.Current()
		category, ok := doc.Category(args[0])
		if !ok {
			return a.reply(chatId, "Categoria não encontrada.")
		}
		// dependent teams or races block the delete; the document model
		// itself would happily remove and leave dangling references
		for _, team := range doc.Teams {
			if team.CategoryID == category.ID {
				return a.reply(chatId, "Não é possível excluir esta categoria, pois existem equipes associadas a ela.")
			}
		}
		for _, race := range doc.Races {
			if race.CategoryID == category.ID {
				return a.reply(chatId, "Não é possível excluir esta categoria, pois existem corridas associadas a ela.")
			}
		}
		return a.applyAndReply(ctx, chatId, command.NewDelete(model.EntityCategory, category.ID),
			fmt.Sprintf("Categoria %q excluída.", category.Name))
	}
}
