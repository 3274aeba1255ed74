package store

import (
	"database/sql"
)

func buildCreateSnapshotTable() string {
	return `CREATE TABLE IF NOT EXISTS snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL);`
}

func buildCreateNotifyChatsTable() string {
	return `CREATE TABLE IF NOT EXISTS notify_chats (
		chatid TEXT PRIMARY KEY,
		name TEXT NOT NULL);`
}

// payload travels as a bind parameter: the document JSON is full of quotes
func buildUpsertSnapshotCommand() string {
	return `INSERT OR REPLACE INTO snapshot (id, payload, updated_at) VALUES (1, ?, ?)`
}

func buildSelectSnapshotCommand() (string, func(*sql.Rows) (string, bool, error)) {
	return `SELECT payload FROM snapshot WHERE id = 1`, processSelectSnapshotRows
}

func processSelectSnapshotRows(rows *sql.Rows) (string, bool, error) {
	defer rows.Close()

	if rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return "", false, err
		}
		return payload, true, nil
	}
	return "", false, rows.Err()
}

func buildUpsertNotifyChatCommand() string {
	return `INSERT OR REPLACE INTO notify_chats (chatid, name) VALUES (?, ?)`
}

func buildDeleteNotifyChatCommand() string {
	return `DELETE FROM notify_chats WHERE chatid = ?`
}

func buildSelectNotifyChatsCommand() (string, func(*sql.Rows) ([]Chat, error)) {
	return `SELECT chatid, name FROM notify_chats`, processSelectNotifyChatsRows
}

func processSelectNotifyChatsRows(rows *sql.Rows) ([]Chat, error) {
	defer rows.Close()

	chats := make([]Chat, 0)
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ChatID, &c.Name); err != nil {
			return chats, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
