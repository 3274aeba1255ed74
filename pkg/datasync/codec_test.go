package datasync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoniltonftc/corrida/pkg/model"
)

func TestDocumentCodec_RoundTrip(t *testing.T) {
	codec := DocumentCodec{}

	doc := model.EmptyDocument()
	doc.Categories = append(doc.Categories, model.Category{
		ID:   "cat_1",
		Type: string(model.EntityCategory),
		Name: "Canoa Grande",
	})
	doc.Races = append(doc.Races, model.Race{
		ID:         "race_1",
		Type:       string(model.EntityRace),
		Name:       "Primeira Bateria",
		CategoryID: "cat_1",
		Status:     model.RaceActive,
	})

	payload, err := codec.Encode(doc)
	require.NoError(t, err)

	decoded, err := codec.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestDocumentCodec_DecodeRejectsGarbage(t *testing.T) {
	codec := DocumentCodec{}

	_, err := codec.Decode("not a document")
	assert.Error(t, err)
}
