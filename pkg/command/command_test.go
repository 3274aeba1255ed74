package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoniltonftc/corrida/pkg/model"
)

func TestApply_AddInsertsRecord(t *testing.T) {
	doc := model.EmptyDocument()
	instr := NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"})

	next := Apply(doc, instr)

	require.Len(t, next.Categories, 1)
	assert.Equal(t, "40 HP", next.Categories[0].Name)
	assert.Empty(t, doc.Categories, "input document must not be mutated")
}

func TestApply_AddWithExistingIDReplaces(t *testing.T) {
	doc := model.EmptyDocument()
	doc.Upsert(model.Category{ID: "cat_1", Name: "40 HP"})

	next := Apply(doc, NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "60 HP"}))

	require.Len(t, next.Categories, 1)
	assert.Equal(t, "60 HP", next.Categories[0].Name)
}

func TestApply_UpdateAbsentIDInserts(t *testing.T) {
	doc := model.EmptyDocument()

	next := Apply(doc, NewUpdate(model.Team{ID: "team_1", Type: string(model.EntityTeam), Name: "Vencedora"}))

	require.Len(t, next.Teams, 1)
	assert.Equal(t, "Vencedora", next.Teams[0].Name)
}

func TestApply_DeleteRemovesOnlyTarget(t *testing.T) {
	doc := model.EmptyDocument()
	doc.Upsert(model.Team{ID: "team_1", Name: "Alpha"})
	doc.Upsert(model.Team{ID: "team_2", Name: "Beta"})

	next := Apply(doc, NewDelete(model.EntityTeam, "team_1"))

	require.Len(t, next.Teams, 1)
	assert.Equal(t, "team_2", next.Teams[0].ID)
	assert.Len(t, doc.Teams, 2)
}

func TestApply_DeleteAbsentIDIsNoOp(t *testing.T) {
	doc := model.EmptyDocument()
	doc.Upsert(model.Race{ID: "race_1"})

	next := Apply(doc, NewDelete(model.EntityRace, "race_missing"))

	assert.Len(t, next.Races, 1)
}

func TestApply_MalformedInstructionsAreIgnored(t *testing.T) {
	doc := model.EmptyDocument()
	doc.Upsert(model.Category{ID: "cat_1", Name: "40 HP"})

	for name, instr := range map[string]Instruction{
		"unknown operation":   {Op: Operation("MERGE"), EntityType: model.EntityCategory, Payload: json.RawMessage(`{"id":"cat_1"}`)},
		"unknown entity type": {Op: OpAdd, EntityType: model.EntityType("boat"), Payload: json.RawMessage(`{"id":"x"}`)},
		"undecodable payload": {Op: OpAdd, EntityType: model.EntityCategory, Payload: json.RawMessage(`not json`)},
		"missing id":          {Op: OpAdd, EntityType: model.EntityCategory, Payload: json.RawMessage(`{"name":"60 HP"}`)},
		"delete without id":   {Op: OpDelete, EntityType: model.EntityCategory, Payload: json.RawMessage(`{}`)},
	} {
		next := Apply(doc, instr)
		assert.Equal(t, doc, next, name)
	}
}
