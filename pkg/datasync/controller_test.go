package datasync

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/model"
	"github.com/leoniltonftc/corrida/pkg/pubsub"
)

type fakeConfirmer struct {
	fail     bool
	lastDoc  model.Document
	response model.Document
}

func (f *fakeConfirmer) Confirm(_ context.Context, instr command.Instruction, doc model.Document) (model.Document, error) {
	f.lastDoc = doc
	if f.fail {
		return model.Document{}, fmt.Errorf("authority rejected")
	}
	if len(f.response.Categories) > 0 || len(f.response.Teams) > 0 {
		return f.response, nil
	}
	return command.Apply(doc, instr), nil
}

type fakeStore struct {
	saves []model.Document
	fail  bool
}

func (f *fakeStore) Save(doc model.Document) error {
	if f.fail {
		return fmt.Errorf("disk full")
	}
	f.saves = append(f.saves, doc)
	return nil
}

func applyOptimistic(instr command.Instruction) OptimisticFunc {
	return func(doc model.Document) model.Document {
		return command.Apply(doc, instr)
	}
}

func TestController_UpdateAdoptsConfirmedDocument(t *testing.T) {
	confirmer := &fakeConfirmer{}
	store := &fakeStore{}
	c := NewController(model.EmptyDocument(), confirmer, store, pubsub.NewPubSub[string]())

	instr := command.NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"})
	err := c.Update(context.Background(), instr, applyOptimistic(instr))

	require.NoError(t, err)
	doc := c.Current()
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "40 HP", doc.Categories[0].Name)
}

func TestController_ConfirmerReceivesPreInstructionDocument(t *testing.T) {
	initial := model.EmptyDocument()
	initial.Upsert(model.Category{ID: "cat_1", Name: "40 HP"})
	confirmer := &fakeConfirmer{}
	c := NewController(initial, confirmer, &fakeStore{}, pubsub.NewPubSub[string]())

	instr := command.NewAdd(model.Category{ID: "cat_2", Type: string(model.EntityCategory), Name: "60 HP"})
	require.NoError(t, c.Update(context.Background(), instr, applyOptimistic(instr)))

	// the authority must see the document before the optimistic mutation
	require.Len(t, confirmer.lastDoc.Categories, 1)
	assert.Equal(t, "cat_1", confirmer.lastDoc.Categories[0].ID)
}

func TestController_FailedConfirmationRollsBack(t *testing.T) {
	initial := model.EmptyDocument()
	initial.Upsert(model.Category{ID: "cat_1", Name: "40 HP"})
	confirmer := &fakeConfirmer{fail: true}
	store := &fakeStore{}
	c := NewController(initial, confirmer, store, pubsub.NewPubSub[string]())

	instr := command.NewAdd(model.Category{ID: "cat_2", Type: string(model.EntityCategory), Name: "60 HP"})
	err := c.Update(context.Background(), instr, applyOptimistic(instr))

	require.Error(t, err)
	doc := c.Current()
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "cat_1", doc.Categories[0].ID)
	assert.Empty(t, store.saves, "nothing may be persisted on failure")
}

func TestController_PersistsOnlyConfirmedDocuments(t *testing.T) {
	confirmer := &fakeConfirmer{}
	store := &fakeStore{}
	c := NewController(model.EmptyDocument(), confirmer, store, pubsub.NewPubSub[string]())

	instr := command.NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"})
	require.NoError(t, c.Update(context.Background(), instr, applyOptimistic(instr)))

	require.Len(t, store.saves, 1)
	require.Len(t, store.saves[0].Categories, 1)
	assert.Equal(t, "cat_1", store.saves[0].Categories[0].ID)
}

func TestController_AuthorityResultWinsOverOptimistic(t *testing.T) {
	// the authority may return something other than the optimistic guess
	authorityDoc := model.EmptyDocument()
	authorityDoc.Upsert(model.Category{ID: "cat_authority", Name: "Autoridade"})
	confirmer := &fakeConfirmer{response: authorityDoc}
	c := NewController(model.EmptyDocument(), confirmer, &fakeStore{}, pubsub.NewPubSub[string]())

	instr := command.NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"})
	require.NoError(t, c.Update(context.Background(), instr, applyOptimistic(instr)))

	doc := c.Current()
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "cat_authority", doc.Categories[0].ID)
}

func TestController_PersistFailureKeepsAdoptedDocument(t *testing.T) {
	confirmer := &fakeConfirmer{}
	store := &fakeStore{fail: true}
	c := NewController(model.EmptyDocument(), confirmer, store, pubsub.NewPubSub[string]())

	instr := command.NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"})
	err := c.Update(context.Background(), instr, applyOptimistic(instr))

	require.Error(t, err)
	doc := c.Current()
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, "cat_1", doc.Categories[0].ID)
}

func TestController_PublishesOptimisticThenConfirmed(t *testing.T) {
	confirmer := &fakeConfirmer{}
	pubsubMgr := pubsub.NewPubSub[string]()
	docChan := pubsubMgr.Subscribe(PubSubDocumentTopic)
	c := NewController(model.EmptyDocument(), confirmer, &fakeStore{}, pubsubMgr)

	payloads := make(chan string, 4)
	go func() {
		for payload := range docChan {
			payloads <- payload
		}
	}()

	instr := command.NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"})
	require.NoError(t, c.Update(context.Background(), instr, applyOptimistic(instr)))

	optimistic := <-payloads
	confirmed := <-payloads
	assert.Contains(t, optimistic, "cat_1")
	assert.Contains(t, confirmed, "cat_1")
}

func TestController_CurrentReturnsIsolatedCopy(t *testing.T) {
	initial := model.EmptyDocument()
	initial.Upsert(model.Category{ID: "cat_1", Name: "40 HP"})
	c := NewController(initial, &fakeConfirmer{}, &fakeStore{}, pubsub.NewPubSub[string]())

	doc := c.Current()
	doc.Categories[0].Name = "mutated"

	assert.Equal(t, "40 HP", c.Current().Categories[0].Name)
}
