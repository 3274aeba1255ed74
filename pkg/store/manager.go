// Package store is the durable side of the system: a SQLite database holding
// the latest confirmed document snapshot and the chats subscribed to race
// notifications.
package store

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/leoniltonftc/corrida/pkg/helper"
	"github.com/leoniltonftc/corrida/pkg/model"
)

const DefaultDbName = "./regatta-live.db"

// Chat is a Telegram chat subscribed to race-start notifications.
type Chat struct {
	ChatID string
	Name   string
}

type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager(dbName string) (*Manager, error) {
	db, err := sql.Open("sqlite3", dbName)
	if err != nil {
		log.Printf("error opening database: %s\n", err.Error())
		return nil, err
	}

	for _, stmt := range []string{buildCreateSnapshotTable(), buildCreateNotifyChatsTable()} {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("error init database: %s\n", err.Error())
			return nil, err
		}
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// Save replaces the stored snapshot with the given document.
func (m *Manager) Save(doc model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	_, err = m.db.Exec(buildUpsertSnapshotCommand(), string(payload), helper.NowISO())
	if err != nil {
		return errors.Wrap(err, "writing snapshot")
	}
	return nil
}

// Load returns the stored snapshot. A missing snapshot is the normal
// first-run condition, reported through the bool, not an error.
func (m *Manager) Load() (model.Document, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query, read := buildSelectSnapshotCommand()
	rows, err := m.db.Query(query)
	if err != nil {
		return model.Document{}, false, errors.Wrap(err, "reading snapshot")
	}
	payload, found, err := read(rows)
	if err != nil || !found {
		return model.Document{}, false, err
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return model.Document{}, false, errors.Wrap(err, "decoding snapshot")
	}
	return doc, true, nil
}

func (m *Manager) SubscribeRaceStart(chatID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.db.Exec(buildUpsertNotifyChatCommand(), chatID, name)
	return err
}

func (m *Manager) UnsubscribeRaceStart(chatID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.db.Exec(buildDeleteNotifyChatCommand(), chatID)
	return err
}

func (m *Manager) ListRaceStartChats() ([]Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query, read := buildSelectNotifyChatsCommand()
	rows, err := m.db.Query(query)
	if err != nil {
		return []Chat{}, err
	}
	return read(rows)
}
