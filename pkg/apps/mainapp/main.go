package mainapp

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leoniltonftc/corrida/pkg/apps"
	"github.com/leoniltonftc/corrida/pkg/apps/admin"
	"github.com/leoniltonftc/corrida/pkg/config"
	"github.com/leoniltonftc/corrida/pkg/datasync"
	"github.com/leoniltonftc/corrida/pkg/weather"
)

const (
	menuStart = "/start"
	menuMenu  = "/menu"

	buttonCategories = "Categorias"
	buttonTeams      = "Equipes"
	buttonRaces      = "Corridas"
	buttonResults    = "Resultados"
	buttonStandings  = "Classificação"
	buttonConfig     = "Configuração"
	buttonBackToMenu = "Voltar ao menu"
)

var (
	menuKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonCategories),
			tgbotapi.NewKeyboardButton(buttonTeams),
			tgbotapi.NewKeyboardButton(buttonRaces),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonResults),
			tgbotapi.NewKeyboardButton(buttonStandings),
			tgbotapi.NewKeyboardButton(buttonConfig),
		),
	)

	// button labels resolve to the same handlers as the slash commands
	buttonCommands = map[string]string{
		buttonCategories: "/categorias",
		buttonTeams:      "/equipes",
		buttonRaces:      "/corridas",
		buttonResults:    "/resultados",
		buttonStandings:  "/classificacao",
		buttonConfig:     "/config",
	}
)

type MainApp struct {
	bot       *tgbotapi.BotAPI
	accepters []apps.Accepter
}

func NewMainApp(bot *tgbotapi.BotAPI, controller *datasync.Controller, wc *weather.Client, overlay admin.OverlaySwitch, subs admin.Subscriptions, cfg config.Config) *MainApp {
	adminApp := admin.NewApp(bot, controller, wc, overlay, subs, cfg)
	return &MainApp{
		bot:       bot,
		accepters: []apps.Accepter{adminApp},
	}
}

func (m *MainApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == menuStart {
		return true, m.renderStart()
	} else if command == menuMenu {
		return true, m.renderMenu()
	}
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptCommand(command)
		if accept {
			return true, handler
		}
	}

	return false, nil
}

func (m *MainApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == buttonBackToMenu {
		return true, m.renderMenu()
	}
	if command, ok := buttonCommands[button]; ok {
		return m.AcceptCommand(command)
	}
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptButton(button)
		if accept {
			return true, handler
		}
	}
	return false, nil
}

func (m *MainApp) renderStart() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Olá! Sou o bot do campeonato de corrida de canoas.\n\n"
		message += "Você pode usar os seguintes comandos:\n\n"
		message += fmt.Sprintf("%s - Mostra o menu do bot\n", menuMenu)
		message += "/ajuda - Lista todos os comandos\n"
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}

func (m *MainApp) renderMenu() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Menu do campeonato.\n\n"
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}
