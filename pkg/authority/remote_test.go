package authority

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoniltonftc/corrida/pkg/command"
	"github.com/leoniltonftc/corrida/pkg/model"
)

func TestRemote_ConfirmPostsPromptAndData(t *testing.T) {
	var received updateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		updated := command.Apply(received.Data, command.NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"}))
		_ = json.NewEncoder(w).Encode(updated)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	doc := model.EmptyDocument()
	instr := command.NewAdd(model.Category{ID: "cat_1", Type: string(model.EntityCategory), Name: "40 HP"})

	confirmed, err := remote.Confirm(context.Background(), instr, doc)

	require.NoError(t, err)
	assert.Contains(t, received.Prompt, "Add the following new item of type 'category'")
	require.Len(t, confirmed.Categories, 1)
	assert.Equal(t, "40 HP", confirmed.Categories[0].Name)
}

func TestRemote_NonOKStatusIsConfirmationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	_, err := remote.Confirm(context.Background(), command.NewDelete(model.EntityTeam, "team_1"), model.EmptyDocument())
	assert.Error(t, err)
}

func TestRemote_UndecodableResponseIsConfirmationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	_, err := remote.Confirm(context.Background(), command.NewDelete(model.EntityTeam, "team_1"), model.EmptyDocument())
	assert.Error(t, err)
}
