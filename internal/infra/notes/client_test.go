package notes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remember-me/notification-engine/internal/infra/notes"
)

func TestPickOneSuccess(t *testing.T) {
	userID := uuid.Must(uuid.NewV7()).String()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/internal/users/"+userID+"/notes/random", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"note-1","text":"water the plants","source":"inbox"}`))
	}))
	defer server.Close()

	client := notes.NewClient(notes.ClientConfig{BaseURL: server.URL})

	content, err := client.PickOne(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, "note-1", content.NoteID)
	assert.Equal(t, "water the plants", content.Text)
	assert.Equal(t, "inbox", content.Source)
}

func TestPickOneNoNotes(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
		},
		{
			name:   "no content",
			status: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := notes.NewClient(notes.ClientConfig{BaseURL: server.URL})

			content, err := client.PickOne(context.Background(), uuid.NewString())

			require.NoError(t, err)
			assert.Nil(t, content)
		})
	}
}

func TestPickOneError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := notes.NewClient(notes.ClientConfig{BaseURL: server.URL})

			_, err := client.PickOne(context.Background(), uuid.NewString())

			assert.Error(t, err)
		})
	}
}
