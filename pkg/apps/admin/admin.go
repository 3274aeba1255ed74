// Package admin is the change-instruction surface of the system: every
// mutation of the event document enters through a bot command handled here.
// This layer owns the validations the core deliberately leaves to callers:
// referential checks, the single-active-race rule and delete guards.
package admin

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/config"
	"github.com/leoniltonftc/corrida/pkg/datasync"
	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/store"
	"github.com/leoniltonftc/corrida/pkg/weather"
)

const (
	menuCategories = "/categorias"
	menuTeams      = "/equipes"
	menuRaces      = "/corridas"
	menuResults    = "/resultados"
	menuStandings  = "/classificacao"
	menuConfig     = "/config"
	menuExport     = "/exportar"
	menuHelp       = "/ajuda"

	cmdLogin          = "/login"
	cmdAddCategory    = "/addcategoria"
	cmdEditCategory   = "/editcategoria"
	cmdDelCategory    = "/delcategoria"
	cmdAddTeam        = "/addequipe"
	cmdEditTeam       = "/editequipe"
	cmdDelTeam        = "/delequipe"
	cmdAddRace        = "/addcorrida"
	cmdEditRace       = "/editcorrida"
	cmdDelRace        = "/delcorrida"
	cmdStartRace      = "/iniciarcorrida"
	cmdFinishRace     = "/finalizarcorrida"
	cmdToggleRaceObs  = "/obscorrida"
	cmdObsMaster      = "/obsmaster"
	cmdAddResult      = "/addresultado"
	cmdDelResult      = "/delresultado"
	cmdSetConfig      = "/setconfig"
	cmdNotifyOn       = "/notificar"
	cmdNotifyOff      = "/silenciar"
)

// OverlaySwitch is the OBS overlay master toggle exposed by the display
// server.
type OverlaySwitch interface {
	SetOverlayEnabled(enabled bool)
	OverlayEnabled() bool
}

// Subscriptions is the notification recipient registry.
type Subscriptions interface {
	SubscribeRaceStart(chatID, name string) error
	UnsubscribeRaceStart(chatID string) error
}

type App struct {
	bot        *tgbotapi.BotAPI
	controller *datasync.Controller
	weather    *weather.Client
	overlay    OverlaySwitch
	subs       Subscriptions
	cfg        config.Config

	mu       sync.Mutex
	sessions map[int64]bool // chats authenticated via /login
}

func NewApp(bot *tgbotapi.BotAPI, controller *datasync.Controller, wc *weather.Client, overlay OverlaySwitch, subs Subscriptions, cfg config.Config) *App {
	return &App{
		bot:        bot,
		controller: controller,
		weather:    wc,
		overlay:    overlay,
		subs:       subs,
		cfg:        cfg,
		sessions:   map[int64]bool{},
	}
}

func (a *App) AcceptCommand(text string) (bool, func(ctx context.Context, chatId int64) error) {
	cmd, args := splitCommand(text)
	switch cmd {
	case menuHelp:
		return true, a.renderHelp()
	case cmdLogin:
		return true, a.handleLogin(args)
	case cmdNotifyOn:
		return true, a.handleNotifyOn()
	case cmdNotifyOff:
		return true, a.handleNotifyOff()
	case menuCategories:
		return true, a.renderCategories()
	case menuTeams:
		return true, a.renderTeams()
	case menuRaces:
		return true, a.renderRaces()
	case menuResults:
		return true, a.renderResults(args)
	case menuStandings:
		return true, a.renderStandings()
	case menuConfig:
		return true, a.renderConfig()
	case menuExport:
		return true, a.guarded(a.handleExport(args))
	case cmdAddCategory:
		return true, a.guarded(a.handleAddCategory(args))
	case cmdEditCategory:
		return true, a.guarded(a.handleEditCategory(args))
	case cmdDelCategory:
		return true, a.guarded(a.handleDelCategory(args))
	case cmdAddTeam:
		return true, a.guarded(a.handleAddTeam(args))
	case cmdEditTeam:
		return true, a.guarded(a.handleEditTeam(args))
	case cmdDelTeam:
		return true, a.guarded(a.handleDelTeam(args))
	case cmdAddRace:
		return true, a.guarded(a.handleAddRace(args))
	case cmdEditRace:
		return true, a.guarded(a.handleEditRace(args))
	case cmdDelRace:
		return true, a.guarded(a.handleDelRace(args))
	case cmdStartRace:
		return true, a.guarded(a.handleStartRace(args))
	case cmdFinishRace:
		return true, a.guarded(a.handleFinishRace(args))
	case cmdToggleRaceObs:
		return true, a.guarded(a.handleToggleRaceObs(args))
	case cmdObsMaster:
		return true, a.guarded(a.handleObsMaster(args))
	case cmdAddResult:
		return true, a.guarded(a.handleAddResult(args))
	case cmdDelResult:
		return true, a.guarded(a.handleDelResult(args))
	case cmdSetConfig:
		return true, a.guarded(a.handleSetConfig(args))
	}
	return false, nil
}

func (a *App) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	return false, nil
}

// splitCommand separates the command word from its argument text. Arguments
// are pipe-separated: `/addcategoria Vela Oceânica | Barcos acima de 30 pés`.
func splitCommand(text string) (string, []string) {
	text = strings.TrimSpace(text)
	cmd := text
	rest := ""
	if idx := strings.IndexAny(text, " \n"); idx >= 0 {
		cmd = text[:idx]
		rest = strings.TrimSpace(text[idx+1:])
	}
	if rest == "" {
		return cmd, nil
	}
	parts := strings.Split(rest, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return cmd, parts
}

func (a *App) isAuthorized(chatId int64) bool {
	if a.cfg.AdminChatIDs[chatId] {
		return true
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[chatId]
}

// guarded wraps a mutating handler behind the credential check.
func (a *App) guarded(handler func(ctx context.Context, chatId int64) error) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if !a.isAuthorized(chatId) {
			return a.reply(chatId, fmt.Sprintf("Acesso restrito. Use %s usuário | senha", cmdLogin))
		}
		return handler(ctx, chatId)
	}
}

func (a *App) handleLogin(args []string) func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if len(args) < 2 {
			return a.reply(chatId, fmt.Sprintf("Uso: %s usuário | senha", cmdLogin))
		}
		if args[0] != a.cfg.AdminUser || args[1] != a.cfg.AdminPassword {
			return a.reply(chatId, "Usuário ou senha inválidos.")
		}
		a.mu.Lock()
		a.sessions[chatId] = true
		a.mu.Unlock()
		return a.reply(chatId, "Login efetuado. Você pode administrar o evento.")
	}
}

func (a *App) handleNotifyOn() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if err := a.subs.SubscribeRaceStart(fmt.Sprint(chatId), fmt.Sprint(chatId)); err != nil {
			return err
		}
		return a.reply(chatId, "🔔 Você será notificado quando uma corrida for iniciada.")
	}
}

func (a *App) handleNotifyOff() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		if err := a.subs.UnsubscribeRaceStart(fmt.Sprint(chatId)); err != nil {
			return err
		}
		return a.reply(chatId, "🔕 Notificações de corrida desativadas.")
	}
}

func (a *App) renderHelp() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Comandos disponíveis:\n\n"
		message += fmt.Sprintf("%s - Lista as categorias\n", menuCategories)
		message += fmt.Sprintf("%s - Lista as equipes\n", menuTeams)
		message += fmt.Sprintf("%s - Lista as corridas\n", menuRaces)
		message += fmt.Sprintf("%s [corrida] - Lista os resultados\n", menuResults)
		message += fmt.Sprintf("%s - Classificação geral\n", menuStandings)
		message += fmt.Sprintf("%s - Configuração do campeonato\n", menuConfig)
		message += fmt.Sprintf("%s classificacao|equipes|corridas|resultados - Exporta CSV\n", menuExport)
		message += fmt.Sprintf("%s / %s - Notificações de corrida\n\n", cmdNotifyOn, cmdNotifyOff)
		message += "Administração (requer login):\n"
		message += fmt.Sprintf("%s Nome | Descrição\n", cmdAddCategory)
		message += fmt.Sprintf("%s Nome | Cidade | Categoria | Popeiro | Nome:Função;Nome:Função\n", cmdAddTeam)
		message += fmt.Sprintf("%s Nome | Categoria | AAAA-MM-DDTHH:MM\n", cmdAddRace)
		message += fmt.Sprintf("%s / %s / %s ID | campos (vazio mantém)\n", cmdEditCategory, cmdEditTeam, cmdEditRace)
		message += fmt.Sprintf("%s Corrida | Equipe | Posição | Observações\n", cmdAddResult)
		message += fmt.Sprintf("%s / %s / %s Corrida\n", cmdStartRace, cmdFinishRace, cmdToggleRaceObs)
		message += fmt.Sprintf("%s Título | Local | Datas | Organizador | Descrição\n", cmdSetConfig)
		return a.reply(chatId, message)
	}
}

// update pushes one change instruction through the sync controller, applying
// the interpreter's mutation optimistically.
func (a *App) update(ctx context.Context, instr command.Instruction) error {
	return a.controller.Update(ctx, instr, func(doc model.Document) model.Document {
		return command.Apply(doc, instr)
	})
}

// saveErrorMessage mirrors the historical UI copy for a failed confirmation.
const saveErrorMessage = "Ocorreu um erro ao salvar os dados. Suas alterações podem não ter sido salvas."

func (a *App) applyAndReply(ctx context.Context, chatId int64, instr command.Instruction, success string) error {
	if err := a.update(ctx, instr); err != nil {
		return a.reply(chatId, saveErrorMessage)
	}
	return a.reply(chatId, success)
}

func (a *App) reply(chatId int64, message string) error {
	msg := tgbotapi.NewMessage(chatId, message)
	_, err := a.bot.Send(msg)
	return err
}

// replyTable sends a go-pretty rounded table inside a MarkdownV2 code block.
func (a *App) replyTable(chatId int64, title string, build func(t table.Writer)) error {
	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()
	build(t)
	t.Render()

	msg := tgbotapi.NewMessage(chatId, fmt.Sprintf("```\n%s\n\n%s```", title, b.String()))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := a.bot.Send(msg)
	return err
}

var _ Subscriptions = (*store.Manager)(nil)
