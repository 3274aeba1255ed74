package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/leoniltonftc/corrida/pkg/apps/mainapp"
	"github.com/leoniltonftc/corrida/pkg/authority"
	"github.com/leoniltonftc/corrida/pkg/config"
	"github.com/leoniltonftc/corrida/pkg/datasync"
	"github.com/leoniltonftc/corrida/pkg/display"
	"github.com/leoniltonftc/corrida/pkg/notification"
	"github.com/leoniltonftc/corrida/pkg/pubsub"
	"github.com/leoniltonftc/corrida/pkg/store"
	"github.com/leoniltonftc/corrida/pkg/weather"
	"github.com/leoniltonftc/corrida/pkg/webserver"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Panic(err)
	}

	dbName := cfg.DbName
	if dbName == "" {
		dbName = store.DefaultDbName
	}
	storeMgr, err := store.NewManager(dbName)
	if err != nil {
		log.Panic(err)
	}
	defer storeMgr.Close()

	// the snapshot survives restarts; a missing one is a fresh event
	local := authority.NewLocal()
	initial, found, err := storeMgr.Load()
	if err != nil {
		log.Panic(err)
	}
	if !found {
		initial = local.InitialData()
	}

	var confirmer datasync.Confirmer = local
	if cfg.AuthorityURL != "" {
		log.Printf("using remote authority at %s\n", cfg.AuthorityURL)
		confirmer = authority.NewRemote(cfg.AuthorityURL)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Panic(err)
	}
	bot.Debug = false

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)

	pubsubMgr := pubsub.NewPubSub[string]()
	controller := datasync.NewController(initial, confirmer, storeMgr, pubsubMgr)

	ws := webserver.NewManager(cfg.HTTPAddr)
	displaySrv := display.NewServer(ws.Router(), controller)
	go ws.Serve(ctx)

	exitChan := make(chan bool)
	notificationMgr := notification.NewManager(ctx, bot, storeMgr, pubsubMgr, initial)
	go notificationMgr.Start(exitChan)

	app := mainapp.NewMainApp(bot, controller, weather.NewClient(), displaySrv, storeMgr, cfg)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	go receiveUpdates(ctx, updates, app)

	log.Println("Start listening for updates. Press Ctrl-C to stop it")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// lock the main thread until we receive a signal
	<-sigs

	exitChan <- true
	cancel()
}

func receiveUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel, app *mainapp.MainApp) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			handleUpdate(ctx, update, app)
		}
	}
}

func handleUpdate(ctx context.Context, update tgbotapi.Update, app *mainapp.MainApp) {
	if update.Message == nil {
		return
	}
	handleMessage(ctx, update.Message, app)
}

func handleMessage(ctx context.Context, message *tgbotapi.Message, app *mainapp.MainApp) {
	user := message.From
	text := message.Text

	if user == nil {
		return
	}

	log.Printf("%s wrote %s", user.FirstName, text)

	var accept bool
	var handler func(ctx context.Context, chatId int64) error
	if message.IsCommand() {
		accept, handler = app.AcceptCommand(text)
	} else {
		accept, handler = app.AcceptButton(text)
	}
	if !accept {
		return
	}
	if err := handler(ctx, message.Chat.ID); err != nil {
		log.Printf("An error occured: %s", err.Error())
	}
}
