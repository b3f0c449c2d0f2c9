package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurelialabs/faro/internal/state"
)

func TestCreateLead(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/leads", r.URL.Path)

		var body CreateLeadInput
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "Fresh Co", body.Name)
		assert.Equal(t, "C", body.Class)

		w.Write(jsonResponse(map[string]any{
			"id":       "lead-9",
			"name":     body.Name,
			"isSynced": true,
		}))
	})

	lead, err := client.CreateLead(CreateLeadInput{Name: "Fresh Co", Class: "C"})
	require.NoError(t, err)
	assert.Equal(t, "lead-9", lead.ID)
	assert.True(t, lead.Synced)
}

func TestPromoteEntity(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body CreateLeadInput
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "Offline Co", body.Name)
		w.Write(jsonResponse(map[string]any{"id": "lead-42", "name": body.Name}))
	})

	id, err := client.PromoteEntity(state.Entity{ID: "draft-1", Name: "Offline Co"})
	require.NoError(t, err)
	assert.Equal(t, "lead-42", id)
}

func TestPromoteEntityMissingID(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(jsonResponse(map[string]any{"name": "No ID Co"}))
	})

	_, err := client.PromoteEntity(state.Entity{Name: "No ID Co"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no id")
}

func TestUpdateLeadClass(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/pages/lead-1", r.URL.Path)

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		props, _ := body["properties"].(map[string]any)
		assert.Equal(t, "A", props["clase"])

		w.Write(jsonResponse(map[string]any{"status": "received"}))
	})

	err := client.UpdateLeadClass("lead-1", "A")
	require.NoError(t, err)
}
