package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/pubsub"
	"github.com/leoniltonftc/corrida/pkg/store"
)

type fakeLister struct {
	chats []store.Chat
}

func (f fakeLister) ListRaceStartChats() ([]store.Chat, error) {
	return f.chats, nil
}

func raceDoc(statuses map[string]model.RaceStatus) model.Document {
	doc := model.EmptyDocument()
	for id, status := range statuses {
		doc.Upsert(model.Race{ID: id, Type: string(model.EntityRace), Name: "Bateria " + id, Status: status})
	}
	return doc
}

func TestManager_DetectsScheduledToActiveTransition(t *testing.T) {
	initial := raceDoc(map[string]model.RaceStatus{"race_1": model.RaceScheduled})
	m := NewManager(context.Background(), nil, fakeLister{}, pubsub.NewPubSub[string](), initial)

	started := m.detectStartedRaces(raceDoc(map[string]model.RaceStatus{"race_1": model.RaceActive}))

	require.Len(t, started, 1)
	assert.Equal(t, "race_1", started[0].ID)
}

func TestManager_AlreadyActiveRaceIsNotReported(t *testing.T) {
	initial := raceDoc(map[string]model.RaceStatus{"race_1": model.RaceActive})
	m := NewManager(context.Background(), nil, fakeLister{}, pubsub.NewPubSub[string](), initial)

	started := m.detectStartedRaces(raceDoc(map[string]model.RaceStatus{"race_1": model.RaceActive}))

	assert.Empty(t, started)
}

func TestManager_NewRaceArrivingActiveIsReported(t *testing.T) {
	m := NewManager(context.Background(), nil, fakeLister{}, pubsub.NewPubSub[string](), model.EmptyDocument())

	started := m.detectStartedRaces(raceDoc(map[string]model.RaceStatus{"race_9": model.RaceActive}))

	require.Len(t, started, 1)
	assert.Equal(t, "race_9", started[0].ID)
}

func TestManager_FinishingARaceIsNotAStart(t *testing.T) {
	initial := raceDoc(map[string]model.RaceStatus{"race_1": model.RaceActive})
	m := NewManager(context.Background(), nil, fakeLister{}, pubsub.NewPubSub[string](), initial)

	next := raceDoc(map[string]model.RaceStatus{"race_1": model.RaceFinished})
	started := m.detectStartedRaces(next)
	m.rememberStatuses(next)

	assert.Empty(t, started)

	// restarting later counts as a fresh start
	started = m.detectStartedRaces(raceDoc(map[string]model.RaceStatus{"race_1": model.RaceActive}))
	require.Len(t, started, 1)
	assert.Equal(t, "race_1", started[0].ID)
}
