package notification

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"

	"github.com/leoniltonftc/corrida/pkg/datasync"
	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/pubsub"
	"github.com/leoniltonftc/corrida/pkg/store"
)

// Lister yields the chats subscribed to race-start notifications.
type Lister interface {
	ListRaceStartChats() ([]store.Chat, error)
}

// Manager watches the document stream and notifies subscribed chats when a
// race turns active.
type Manager struct {
	ctx     context.Context
	lister  Lister
	bot     *tgbotapi.BotAPI
	docChan <-chan string
	codec   datasync.DocumentCodec

	// last seen status per race id, to detect transitions
	statuses map[string]model.RaceStatus
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, lister Lister, pubsubMgr *pubsub.PubSub[string], initial model.Document) *Manager {
	m := &Manager{
		ctx:      ctx,
		bot:      bot,
		lister:   lister,
		docChan:  pubsubMgr.Subscribe(datasync.PubSubDocumentTopic),
		statuses: map[string]model.RaceStatus{},
	}
	m.rememberStatuses(initial)
	return m
}

func (m *Manager) Start(exitChan <-chan bool) {
	for {
		select {
		case <-exitChan:
			return
		case payload := <-m.docChan:
			doc, err := m.codec.Decode(payload)
			if err != nil {
				log.Printf("Error decoding document: %s\n", err.Error())
				continue
			}
			started := m.detectStartedRaces(doc)
			m.rememberStatuses(doc)
			for _, race := range started {
				log.Printf("Race turned active: %s\n", race.Name)
				m.handleNotification(doc, race)
			}
		}
	}
}

func (m *Manager) rememberStatuses(doc model.Document) {
	statuses := make(map[string]model.RaceStatus, len(doc.Races))
	for _, race := range doc.Races {
		statuses[race.ID] = race.Status
	}
	m.statuses = statuses
}

func (m *Manager) detectStartedRaces(doc model.Document) []model.Race {
	started := []model.Race{}
	for _, race := range doc.Races {
		if race.Status == model.RaceActive && m.statuses[race.ID] != model.RaceActive {
			started = append(started, race)
		}
	}
	return started
}

func (m *Manager) handleNotification(doc model.Document, race model.Race) {
	recipients, err := m.lister.ListRaceStartChats()
	if err != nil {
		log.Printf("Error listing chats for race started: %s", err.Error())
		return
	}
	log.Printf("Sending race-start notification for %q to %d telegram chats\n", race.Name, len(recipients))
	if err := m.sendNotification(recipients, doc, race); err != nil {
		log.Printf("Error notifying chats: %s", err.Error())
	}
}

func (m *Manager) sendNotification(chats []store.Chat, doc model.Document, race model.Race) error {
	if len(chats) == 0 {
		return nil
	}

	tg := Telegram{}
	tg.SetClient(m.bot)
	for _, chat := range chats {
		chatID, _ := strconv.ParseInt(chat.ChatID, 0, 64)
		tg.AddReceivers(chatID)
	}

	categoryName := race.CategoryID
	if category, ok := doc.Category(race.CategoryID); ok {
		categoryName = category.Name
	}

	n := notify.NewWithServices(&tg)
	return n.Send(m.ctx, "Corrida iniciada:", race.Name+" ("+categoryName+")")
}
