package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackSendText(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	s := NewSlack(srv.URL)
	require.NoError(t, s.SendText("UNISWAP WAS SOLD"))
	assert.Equal(t, "UNISWAP WAS SOLD", got["text"])
}

func TestSlackRejectsEmptyWebhook(t *testing.T) {
	s := NewSlack("")
	assert.Error(t, s.SendText("hello"))
}

func TestSlackSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	s := NewSlack(srv.URL)
	err := s.SendText("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
